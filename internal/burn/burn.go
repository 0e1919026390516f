package burn

import (
	"fmt"
	"io"
	"time"

	"github.com/mgpai22/agni/internal/subtitle"
)

// frameRenderer is the slice of render.Renderer the frame loop needs.
type frameRenderer interface {
	RenderFrame(text string, elapsed time.Duration) ([]byte, error)
	BlankFrame() []byte
}

// writeFrames drives the burn: for every frame index it selects the most
// recently started cue, renders it at the elapsed display time, and writes
// the raw RGBA bytes to the encoder. Frames before the first cue, or with
// no cue at all, are the blank transparent frame. A cue stays active until
// the next cue starts.
func writeFrames(
	w io.Writer,
	renderer frameRenderer,
	cues []subtitle.Cue,
	fps float64,
	frameCount int,
) error {
	for n := 0; n < frameCount; n++ {
		frame := renderer.BlankFrame()

		if idx, ok := subtitle.CueIndexAt(cues, n, fps); ok {
			cue := cues[idx]
			elapsedFrames := n - cue.StartFrame(fps)
			elapsed := time.Duration(float64(elapsedFrames) / fps * float64(time.Second))

			rendered, err := renderer.RenderFrame(cue.Text, elapsed)
			if err != nil {
				return fmt.Errorf("failed to render frame %d: %w", n, err)
			}
			frame = rendered
		}

		if _, err := w.Write(frame); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", n, err)
		}
	}

	return nil
}
