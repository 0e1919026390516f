package render

import (
	"fmt"
	"image"
	"time"

	"github.com/fogleman/gg"
)

// Renderer rasterizes subtitle text onto full-frame transparent RGBA
// canvases matching the source video geometry.
type Renderer struct {
	width  int
	height int
	style  Style
	blank  []byte
}

func NewRenderer(width, height int, style Style) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame geometry %dx%d", width, height)
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		width:  width,
		height: height,
		style:  style,
		blank:  make([]byte, width*height*4),
	}, nil
}

// FrameSize is the byte length of one raw RGBA frame.
func (r *Renderer) FrameSize() int {
	return len(r.blank)
}

// BlankFrame returns the shared fully transparent frame. Callers must not
// mutate it.
func (r *Renderer) BlankFrame() []byte {
	return r.blank
}

// RenderFrame draws the text centered on a transparent canvas, scaled by the
// pop curve at the given elapsed display time, and returns raw RGBA bytes.
// A zero scale or empty normalized text yields the blank frame.
func (r *Renderer) RenderFrame(text string, elapsed time.Duration) ([]byte, error) {
	scale := Pop(elapsed.Seconds())
	fontSize := r.style.FontSize * scale
	if fontSize < 1 {
		return r.blank, nil
	}

	text = r.style.NormalizeText(text)
	if text == "" {
		return r.blank, nil
	}

	dc := gg.NewContext(r.width, r.height)
	if err := dc.LoadFontFace(r.style.FontPath, fontSize); err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", r.style.FontPath, err)
	}

	cx := float64(r.width) / 2
	cy := float64(r.height) / 2
	maxWidth := float64(r.width) * 0.9

	// outline first: the glyphs stamped at every offset within the stroke
	// radius, then the fill on top
	if r.style.StrokeWidth > 0 && r.style.StrokeFill != "" {
		dc.SetHexColor(r.style.StrokeFill)
		sw := r.style.StrokeWidth
		for dy := -sw; dy <= sw; dy++ {
			for dx := -sw; dx <= sw; dx++ {
				if dx*dx+dy*dy > sw*sw {
					continue
				}
				dc.DrawStringWrapped(text, cx+float64(dx), cy+float64(dy),
					0.5, 0.5, maxWidth, 1.4, gg.AlignCenter)
			}
		}
	}

	dc.SetHexColor(r.style.FontFill)
	dc.DrawStringWrapped(text, cx, cy, 0.5, 0.5, maxWidth, 1.4, gg.AlignCenter)

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected canvas image type %T", dc.Image())
	}

	return img.Pix, nil
}
