package mediainfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpegbin "github.com/mgpai22/agni/internal/ffmpeg"
)

// Info is the media descriptor for a source video. It is read once per
// session and never mutated afterwards.
type Info struct {
	Path       string
	Width      int
	Height     int
	FrameRate  float64
	FrameCount int
	Duration   time.Duration
	VideoCodec string
	HasAudio   bool
	AudioCodec string
}

// JSON schema emitted by ffprobe -print_format json
type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

// Probe inspects a video file with ffprobe and returns its descriptor.
func Probe(ctx context.Context, videoPath string) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return decodeProbe(videoPath, out.Bytes())
}

// decodeProbe builds an Info from raw ffprobe JSON output.
func decodeProbe(videoPath string, data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{Path: videoPath}

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if info.Width != 0 {
				continue
			}
			info.Width = stream.Width
			info.Height = stream.Height
			info.VideoCodec = stream.CodecName

			rate, err := parseRational(stream.RFrameRate)
			if err != nil {
				return nil, fmt.Errorf("invalid frame rate %q: %w", stream.RFrameRate, err)
			}
			info.FrameRate = rate

			if stream.NbFrames != "" {
				count, err := strconv.Atoi(stream.NbFrames)
				if err != nil {
					return nil, fmt.Errorf("invalid frame count %q: %w", stream.NbFrames, err)
				}
				info.FrameCount = count
			}
		case "audio":
			info.HasAudio = true
			if info.AudioCodec == "" {
				info.AudioCodec = stream.CodecName
			}
		}
	}

	if info.Width == 0 || info.Height == 0 {
		return nil, fmt.Errorf("no video stream in %s", videoPath)
	}
	if info.FrameRate <= 0 {
		return nil, fmt.Errorf("no usable frame rate in %s", videoPath)
	}

	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", probe.Format.Duration, err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	// some containers omit nb_frames; fall back to duration * rate
	if info.FrameCount == 0 && info.Duration > 0 {
		info.FrameCount = int(math.Round(info.Duration.Seconds() * info.FrameRate))
	}

	if info.FrameCount <= 0 {
		return nil, fmt.Errorf("cannot determine frame count for %s", videoPath)
	}

	return info, nil
}

// parseRational parses ffprobe rationals like "30000/1001" or "25/1".
func parseRational(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0/0" {
		return 0, fmt.Errorf("empty rational")
	}

	num, den, found := strings.Cut(s, "/")
	if !found {
		return strconv.ParseFloat(num, 64)
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator in %q", s)
	}

	return n / d, nil
}
