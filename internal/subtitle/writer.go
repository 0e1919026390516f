package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{
			Title:    "Agni Generated Subtitles",
			FontName: "Arial",
			FontSize: 20,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (w *SRTWriter) Write(track *Track, path string) error {
	return writeFile(path, func(out io.Writer) error {
		return w.Encode(out, track)
	})
}

func (w *SRTWriter) Encode(out io.Writer, track *Track) error {
	for i, entry := range track.Entries {
		_, err := fmt.Fprintf(out, "%d\n%s --> %s\n%s\n\n",
			i+1,
			formatSRTTime(entry.StartTime),
			formatSRTTime(entry.EndTime),
			entry.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *VTTWriter) Write(track *Track, path string) error {
	return writeFile(path, func(out io.Writer) error {
		return w.Encode(out, track)
	})
}

func (w *VTTWriter) Encode(out io.Writer, track *Track) error {
	if _, err := io.WriteString(out, "WEBVTT\n\n"); err != nil {
		return err
	}
	for i, entry := range track.Entries {
		_, err := fmt.Fprintf(out, "%d\n%s --> %s\n%s\n\n",
			i+1,
			formatVTTTime(entry.StartTime),
			formatVTTTime(entry.EndTime),
			entry.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *ASSWriter) Write(track *Track, path string) error {
	return writeFile(path, func(out io.Writer) error {
		return w.Encode(out, track)
	})
}

func (w *ASSWriter) Encode(out io.Writer, track *Track) error {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", w.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		w.FontName, w.FontSize))

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, entry := range track.Entries {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(entry.StartTime),
			formatASSTime(entry.EndTime),
			strings.ReplaceAll(entry.Text, "\n", `\N`)))
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func writeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encode(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func formatASSTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
