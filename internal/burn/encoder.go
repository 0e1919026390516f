package burn

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	ffmpegbin "github.com/mgpai22/agni/internal/ffmpeg"
)

// encoderConfig describes one ffmpeg compositing run: the source video on
// input 0, raw RGBA overlay frames on stdin as input 1.
type encoderConfig struct {
	VideoPath    string
	OutPath      string
	Width        int
	Height       int
	FrameRate    float64
	RenderOffset float64 // seconds added to every overlay frame's PTS
	HasAudio     bool
}

// args builds the ffmpeg argument list. The overlay stream is time-shifted
// by the render offset and composited over the video at the origin; audio
// is stream-copied when the source has any.
func (c encoderConfig) args() []string {
	args := []string{
		"-y",
		"-i", c.VideoPath,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", c.Width, c.Height),
		"-framerate", strconv.FormatFloat(c.FrameRate, 'f', -1, 64),
		"-i", "-",
		"-filter_complex",
		fmt.Sprintf("[1:v]setpts=PTS+%s/TB[v1];[0:v][v1]overlay=0:0",
			strconv.FormatFloat(c.RenderOffset, 'f', -1, 64)),
		"-c:v", "libx264",
	}
	if c.HasAudio {
		args = append(args, "-map", "0:a", "-c:a", "copy")
	}
	args = append(args, "-loglevel", "error", c.OutPath)
	return args
}

// encoder wraps the running ffmpeg subprocess. Frames are written to its
// stdin; Close always closes the pipe and waits for the process.
type encoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	closed bool
}

func startEncoder(ctx context.Context, cfg encoderConfig) (*encoder, error) {
	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate ffmpeg: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, cfg.args()...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open encoder stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start encoder: %w", err)
	}

	return &encoder{cmd: cmd, stdin: stdin}, nil
}

func (e *encoder) Write(p []byte) (int, error) {
	return e.stdin.Write(p)
}

// Close closes the frame pipe and waits for ffmpeg to finish. Safe to call
// more than once; only the first call does the work.
func (e *encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	closeErr := e.stdin.Close()
	waitErr := e.cmd.Wait()

	if waitErr != nil {
		return fmt.Errorf("encoder exited with error: %w", waitErr)
	}
	return closeErr
}
