package burn

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mgpai22/agni/internal/audio"
	"github.com/mgpai22/agni/internal/logging"
	"github.com/mgpai22/agni/internal/mediainfo"
	"github.com/mgpai22/agni/internal/render"
	"github.com/mgpai22/agni/internal/subtitle"
	"github.com/mgpai22/agni/internal/transcribe"
)

// Source selects where the subtitle cues come from. At most one of
// SubtitlePath or Segments is set; when both are empty the video is
// transcribed with the configured speech recognition provider.
type Source struct {
	SubtitlePath string
	Segments     []subtitle.Segment
}

// ASRConfig configures automatic transcription when no subtitle source is
// given.
type ASRConfig struct {
	Provider      transcribe.Provider
	APIKey        string
	Options       transcribe.Options
	ChunkDuration time.Duration
	Concurrency   int
}

// Session holds everything needed to burn one video: the probed media
// descriptor and the resolved cue sequence. Both are immutable after
// construction.
type Session struct {
	VideoPath string
	Info      *mediainfo.Info
	Cues      []subtitle.Cue

	log *logging.Logger
}

// NewSession probes the video and resolves the subtitle source into cues.
func NewSession(
	ctx context.Context,
	videoPath string,
	source Source,
	asr ASRConfig,
	log *logging.Logger,
) (*Session, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	info, err := mediainfo.Probe(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to probe video: %w", err)
	}

	track, err := resolveTrack(ctx, videoPath, source, asr, log)
	if err != nil {
		return nil, err
	}

	return &Session{
		VideoPath: videoPath,
		Info:      info,
		Cues:      track.Cues(),
		log:       log,
	}, nil
}

func resolveTrack(
	ctx context.Context,
	videoPath string,
	source Source,
	asr ASRConfig,
	log *logging.Logger,
) (*subtitle.Track, error) {
	switch {
	case source.SubtitlePath != "":
		track, err := subtitle.Open(source.SubtitlePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load subtitles: %w", err)
		}
		return track, nil

	case source.Segments != nil:
		return subtitle.FromSegments(source.Segments), nil

	default:
		return transcribeVideo(ctx, videoPath, asr, log)
	}
}

// transcribeVideo extracts and chunks the audio, then runs the configured
// transcriber over the chunks.
func transcribeVideo(
	ctx context.Context,
	videoPath string,
	asr ASRConfig,
	log *logging.Logger,
) (*subtitle.Track, error) {
	if asr.APIKey == "" {
		return nil, fmt.Errorf("transcription requires an API key")
	}
	if asr.ChunkDuration <= 0 {
		asr.ChunkDuration = time.Minute
	}

	tempDir, err := os.MkdirTemp("", "agni-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	log.Infow("Extracting audio for transcription", "video", videoPath)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	if err := audio.Extract(ctx, videoPath, audioPath, audio.DefaultExtractOptions()); err != nil {
		return nil, fmt.Errorf("failed to extract audio: %w", err)
	}

	chunkDir := filepath.Join(tempDir, "chunks")
	chunks, err := audio.Chunk(ctx, audioPath, asr.ChunkDuration, chunkDir, asr.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	log.Infow("Transcribing audio",
		"chunks", len(chunks),
		"provider", string(asr.Provider),
	)

	transcriber, err := transcribe.Factory(ctx, asr.Provider, asr.APIKey, asr.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	result, err := transcribe.TranscribeChunks(ctx, transcriber, chunks, asr.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	log.Infow("Transcription complete", "segments", len(result.Segments))

	return subtitle.FromSegments(result.Segments), nil
}

// Burn renders every frame and pipes it through the compositing encoder to
// outPath. The encoder's stdin is always closed and the process always
// waited on, whether the frame loop succeeds or fails.
func (s *Session) Burn(ctx context.Context, outPath string, style render.Style) error {
	renderer, err := render.NewRenderer(s.Info.Width, s.Info.Height, style)
	if err != nil {
		return err
	}

	enc, err := startEncoder(ctx, encoderConfig{
		VideoPath:    s.VideoPath,
		OutPath:      outPath,
		Width:        s.Info.Width,
		Height:       s.Info.Height,
		FrameRate:    s.Info.FrameRate,
		RenderOffset: style.RenderOffset,
		HasAudio:     s.Info.HasAudio,
	})
	if err != nil {
		return err
	}

	s.log.Infow("Burning subtitles",
		"output", outPath,
		"frames", s.Info.FrameCount,
		"fps", s.Info.FrameRate,
		"cues", len(s.Cues),
	)

	writeErr := writeFrames(enc, renderer, s.Cues, s.Info.FrameRate, s.Info.FrameCount)
	closeErr := enc.Close()

	if writeErr != nil {
		return writeErr
	}
	return closeErr
}
