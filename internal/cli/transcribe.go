package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/agni/internal/audio"
	"github.com/mgpai22/agni/internal/subtitle"
	"github.com/mgpai22/agni/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Generate a subtitle file for an audio or video file",
	Long: `Transcribe the specified audio or video file and write the result
as a subtitle file.

The command accepts both audio files (mp3, wav, aac, etc.) and video
files (mp4, mkv, etc.). For video files, audio is extracted first.

The audio is split into chunks (default 1 minute) and transcribed in
parallel. Output can be SRT, VTT, or ASS.

Examples:
  agni transcribe video.mp4
  agni transcribe audio.mp3 --format vtt
  agni transcribe video.mp4 --provider openai --api-key YOUR_KEY
  agni transcribe podcast.mp3 -f srt -d 2 --concurrency 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY env var)")
	transcribeCmd.Flags().
		String("provider", "gemini", "Transcription provider (gemini, openai)")
	transcribeCmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio")
	transcribeCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt, ass)")
	transcribeCmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	transcribeCmd.Flags().
		String("model", "", "Model to use for transcription (provider-specific default)")
	transcribeCmd.Flags().
		String("transcript-language", "native", "Output language for transcript (e.g. 'english', or 'native' for original language)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	providerStr, _ := cmd.Flags().GetString("provider")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	formatStr, _ := cmd.Flags().GetString("format")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	model, _ := cmd.Flags().GetString("model")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")
	transcriptLang, _ := cmd.Flags().GetString("transcript-language")

	provider := transcribe.Provider(providerStr)
	if provider != transcribe.ProviderGemini && provider != transcribe.ProviderOpenAI {
		return fmt.Errorf("unsupported provider %q: use gemini or openai", providerStr)
	}
	if provider == transcribe.ProviderOpenAI && !isValidOpenAITranscriptLanguage(transcriptLang) {
		return fmt.Errorf(
			"transcript language %q is not supported by the openai provider: use 'native' or 'english'",
			transcriptLang,
		)
	}

	if apiKey == "" {
		apiKey = providerAPIKeyFromEnv(providerStr)
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or set the provider's environment variable")
	}

	format, err := subtitle.FormatForPath("x." + strings.ToLower(formatStr))
	if err != nil {
		return fmt.Errorf("unsupported format %q: use srt, vtt, or ass", formatStr)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		outputPath = baseName + format.Extension()
	}

	logger.Infow("Starting transcription",
		"input", mediaPath,
		"output", outputPath,
		"provider", providerStr,
		"format", formatStr,
		"chunk_duration", chunkDuration,
		"concurrency", concurrency,
	)

	tempDir, err := os.MkdirTemp("", "agni-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	if audio.IsVideoFile(mediaPath) {
		logger.Infow("Extracting audio from video")
	} else {
		logger.Infow("Compressing audio for transcription")
	}
	if err := audio.Extract(ctx, mediaPath, audioPath, audio.DefaultExtractOptions()); err != nil {
		return fmt.Errorf("failed to prepare audio: %w", err)
	}

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return fmt.Errorf("failed to get audio duration: %w", err)
	}
	logger.Infow("Audio prepared", "duration", duration.String())

	chunkDir := filepath.Join(tempDir, "chunks")
	chunkDur := time.Duration(chunkDuration) * time.Minute

	chunks, err := audio.Chunk(ctx, audioPath, chunkDur, chunkDir, concurrency)
	if err != nil {
		return fmt.Errorf("failed to split audio: %w", err)
	}
	logger.Infow("Created audio chunks", "count", len(chunks))

	transcribeOpts := transcribe.Options{
		Language:           language,
		TranscriptLanguage: transcriptLang,
		Model:              model,
	}

	transcriber, err := transcribe.Factory(ctx, provider, apiKey, transcribeOpts)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio", "concurrency", concurrency)

	result, err := transcribe.TranscribeChunks(ctx, transcriber, chunks, concurrency)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	_ = audio.CleanupChunks(chunks)
	logger.Infow("Transcription complete", "segments", len(result.Segments))

	generator := subtitle.NewDefaultGenerator()
	subs, err := generator.Generate(result.Segments)
	if err != nil {
		return fmt.Errorf("failed to generate subtitles: %w", err)
	}

	subs.Language = language
	subs.Format = format

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}
	if err := writer.Write(subs, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles generated successfully: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(subs.Entries))
	fmt.Printf("  Duration: %s\n", duration.String())

	return nil
}
