package burn

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mgpai22/agni/internal/subtitle"
)

type renderCall struct {
	Text    string
	Elapsed time.Duration
}

// stubRenderer records what the frame loop asks for and returns
// distinguishable frames: blank frames are zero bytes, rendered frames are
// 0xFF bytes.
type stubRenderer struct {
	frameSize int
	calls     []renderCall
	err       error
}

func (s *stubRenderer) RenderFrame(text string, elapsed time.Duration) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.calls = append(s.calls, renderCall{Text: text, Elapsed: elapsed})
	frame := make([]byte, s.frameSize)
	for i := range frame {
		frame[i] = 0xFF
	}
	return frame, nil
}

func (s *stubRenderer) BlankFrame() []byte {
	return make([]byte, s.frameSize)
}

func TestWriteFramesEmptyTranscript(t *testing.T) {
	const frameSize = 4 * 4 * 4
	renderer := &stubRenderer{frameSize: frameSize}
	var buf bytes.Buffer

	if err := writeFrames(&buf, renderer, nil, 30, 10); err != nil {
		t.Fatalf("writeFrames failed: %v", err)
	}

	if len(renderer.calls) != 0 {
		t.Errorf("expected no render calls, got %d", len(renderer.calls))
	}
	if buf.Len() != 10*frameSize {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), 10*frameSize)
	}
	for i, b := range buf.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d is %d, want all frames blank", i, b)
		}
	}
}

func TestWriteFramesSingleCueFromStart(t *testing.T) {
	renderer := &stubRenderer{frameSize: 16}
	var buf bytes.Buffer

	cues := []subtitle.Cue{{Text: "HELLO", Start: 0}}

	if err := writeFrames(&buf, renderer, cues, 30, 90); err != nil {
		t.Fatalf("writeFrames failed: %v", err)
	}

	if len(renderer.calls) != 90 {
		t.Fatalf("expected 90 render calls, got %d", len(renderer.calls))
	}
	for n, call := range renderer.calls {
		if call.Text != "HELLO" {
			t.Fatalf("frame %d rendered %q, want HELLO", n, call.Text)
		}
		wantElapsed := time.Duration(float64(n) / 30 * float64(time.Second))
		if call.Elapsed != wantElapsed {
			t.Fatalf("frame %d elapsed = %v, want %v", n, call.Elapsed, wantElapsed)
		}
	}
}

func TestWriteFramesCueWindows(t *testing.T) {
	renderer := &stubRenderer{frameSize: 8}
	var buf bytes.Buffer

	// first at 1s, second at 2s, 30 fps, 90 frames
	cues := []subtitle.Cue{
		{Text: "first", Start: time.Second},
		{Text: "second", Start: 2 * time.Second},
	}

	if err := writeFrames(&buf, renderer, cues, 30, 90); err != nil {
		t.Fatalf("writeFrames failed: %v", err)
	}

	// frames 0-29 blank, 30-59 first, 60-89 second
	if len(renderer.calls) != 60 {
		t.Fatalf("expected 60 render calls, got %d", len(renderer.calls))
	}
	for i := 0; i < 30; i++ {
		if renderer.calls[i].Text != "first" {
			t.Fatalf("call %d rendered %q, want first", i, renderer.calls[i].Text)
		}
	}
	for i := 30; i < 60; i++ {
		if renderer.calls[i].Text != "second" {
			t.Fatalf("call %d rendered %q, want second", i, renderer.calls[i].Text)
		}
	}
	// the second cue resets elapsed time to zero at its start frame
	if renderer.calls[30].Elapsed != 0 {
		t.Errorf("second cue first frame elapsed = %v, want 0", renderer.calls[30].Elapsed)
	}

	if buf.Len() != 90*8 {
		t.Errorf("wrote %d bytes, want %d", buf.Len(), 90*8)
	}
}

func TestWriteFramesLastCueActiveForever(t *testing.T) {
	renderer := &stubRenderer{frameSize: 8}
	var buf bytes.Buffer

	cues := []subtitle.Cue{{Text: "only", Start: 0}}

	if err := writeFrames(&buf, renderer, cues, 30, 3000); err != nil {
		t.Fatalf("writeFrames failed: %v", err)
	}
	if len(renderer.calls) != 3000 {
		t.Fatalf("expected every frame rendered, got %d calls", len(renderer.calls))
	}
	last := renderer.calls[len(renderer.calls)-1]
	if last.Text != "only" {
		t.Errorf("last frame rendered %q", last.Text)
	}
}

type failingWriter struct {
	failAfter int
	written   int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.written >= w.failAfter {
		return 0, fmt.Errorf("broken pipe")
	}
	w.written++
	return len(p), nil
}

func TestWriteFramesPropagatesWriteError(t *testing.T) {
	renderer := &stubRenderer{frameSize: 8}
	w := &failingWriter{failAfter: 5}

	err := writeFrames(w, renderer, nil, 30, 10)
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if !strings.Contains(err.Error(), "frame 5") {
		t.Errorf("error %q should name the failing frame", err)
	}
}

func TestWriteFramesPropagatesRenderError(t *testing.T) {
	renderer := &stubRenderer{frameSize: 8, err: fmt.Errorf("font missing")}
	var buf bytes.Buffer

	cues := []subtitle.Cue{{Text: "x", Start: 0}}
	if err := writeFrames(&buf, renderer, cues, 30, 10); err == nil {
		t.Fatal("expected render error to propagate")
	}
}

func TestEncoderArgs(t *testing.T) {
	cfg := encoderConfig{
		VideoPath:    "in.mp4",
		OutPath:      "out.mp4",
		Width:        1080,
		Height:       1920,
		FrameRate:    30,
		RenderOffset: 0.1,
		HasAudio:     true,
	}

	got := cfg.args()
	want := []string{
		"-y",
		"-i", "in.mp4",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", "1080x1920",
		"-framerate", "30",
		"-i", "-",
		"-filter_complex", "[1:v]setpts=PTS+0.1/TB[v1];[0:v][v1]overlay=0:0",
		"-c:v", "libx264",
		"-map", "0:a",
		"-c:a", "copy",
		"-loglevel", "error",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args() = %v, want %v", got, want)
	}
}

func TestEncoderArgsNoAudio(t *testing.T) {
	cfg := encoderConfig{
		VideoPath: "in.mp4",
		OutPath:   "out.mp4",
		Width:     640,
		Height:    480,
		FrameRate: 23.976,
	}

	args := cfg.args()
	for _, a := range args {
		if a == "-map" || a == "copy" {
			t.Fatalf("audio mapping present for silent source: %v", args)
		}
	}

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-s 640x480") {
		t.Errorf("geometry missing from %v", args)
	}
	if !strings.Contains(joined, "-framerate 23.976") {
		t.Errorf("frame rate missing from %v", args)
	}
}
