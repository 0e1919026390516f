package render

import (
	"fmt"
	"strings"
	"unicode"
)

// Style holds the subtitle rendering configuration for one burn. Immutable
// once the burn starts.
type Style struct {
	FontPath     string
	FontSize     float64 // points at full animation scale
	FontFill     string  // hex color, e.g. "#FFFFFF"
	Capitalize   bool
	FilterAlnum  bool
	StrokeWidth  int
	StrokeFill   string  // hex color
	RenderOffset float64 // seconds the overlay stream is shifted by
}

// DefaultStyle returns the stock caption look: big white text with a black
// outline, uppercased, punctuation stripped.
func DefaultStyle() Style {
	return Style{
		FontSize:    96,
		FontFill:    "#FFFFFF",
		Capitalize:  true,
		FilterAlnum: true,
		StrokeWidth: 8,
		StrokeFill:  "#000000",
	}
}

func (s Style) Validate() error {
	if s.FontPath == "" {
		return fmt.Errorf("font path is required")
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", s.FontSize)
	}
	if s.StrokeWidth < 0 {
		return fmt.Errorf("stroke width must not be negative, got %d", s.StrokeWidth)
	}
	return nil
}

// NormalizeText applies the style's text transforms in order: alphanumeric
// filtering, then capitalization.
func (s Style) NormalizeText(text string) string {
	if s.FilterAlnum {
		text = filterAlnum(text)
	}
	if s.Capitalize {
		text = strings.ToUpper(text)
	}
	return text
}

// filterAlnum drops everything except letters, digits and whitespace.
func filterAlnum(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
