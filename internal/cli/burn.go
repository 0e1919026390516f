package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/agni/internal/burn"
	"github.com/mgpai22/agni/internal/render"
	"github.com/mgpai22/agni/internal/transcribe"
)

var burnCmd = &cobra.Command{
	Use:   "burn [video_file]",
	Short: "Burn animated subtitles onto a video",
	Long: `Burn subtitles onto the specified video file.

Each caption is rendered centered on the frame with a brief pop-in
animation and composited over the source video. Audio is copied through
untouched.

By default the video is transcribed automatically. Pass --subtitles to
use an existing SRT, VTT, or ASS file instead.

Examples:
  agni burn video.mp4 --font Impact.ttf
  agni burn video.mp4 --font Impact.ttf --subtitles video.srt
  agni burn video.mp4 --font Impact.ttf --font-size 120 --stroke-width 10
  agni burn video.mp4 --font Impact.ttf --provider openai -o final.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runBurn,
}

func init() {
	rootCmd.AddCommand(burnCmd)

	burnCmd.Flags().
		StringP("subtitles", "s", "", "Existing subtitle file (srt, vtt, ass); omit to transcribe")
	burnCmd.Flags().
		String("font", "", "Path to a TrueType font file (required)")
	burnCmd.Flags().
		Float64("font-size", 0, "Font size in points at full scale")
	burnCmd.Flags().
		String("font-color", "", "Text fill color (hex, e.g. #FFFFFF)")
	burnCmd.Flags().
		Int("stroke-width", -1, "Text outline width in pixels (0 disables)")
	burnCmd.Flags().
		String("stroke-color", "", "Text outline color (hex)")
	burnCmd.Flags().
		Bool("no-capitalize", false, "Keep the original letter case")
	burnCmd.Flags().
		Bool("no-filter", false, "Keep punctuation and symbols in the text")
	burnCmd.Flags().
		Float64("render-offset", 0, "Overlay time shift in seconds")
	burnCmd.Flags().
		String("provider", "gemini", "Transcription provider (gemini, openai)")
	burnCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY env var)")
	burnCmd.Flags().
		String("model", "", "Transcription model (provider-specific default)")
	burnCmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio")
	burnCmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	burnCmd.Flags().
		String("transcript-language", "native", "Output language for the transcript")

	_ = burnCmd.MarkFlagRequired("font")
}

func runBurn(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := context.Background()

	subtitlePath, _ := cmd.Flags().GetString("subtitles")
	fontPath, _ := cmd.Flags().GetString("font")
	fontSize, _ := cmd.Flags().GetFloat64("font-size")
	fontColor, _ := cmd.Flags().GetString("font-color")
	strokeWidth, _ := cmd.Flags().GetInt("stroke-width")
	strokeColor, _ := cmd.Flags().GetString("stroke-color")
	noCapitalize, _ := cmd.Flags().GetBool("no-capitalize")
	noFilter, _ := cmd.Flags().GetBool("no-filter")
	renderOffset, _ := cmd.Flags().GetFloat64("render-offset")
	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	transcriptLang, _ := cmd.Flags().GetString("transcript-language")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(fontPath); os.IsNotExist(err) {
		return fmt.Errorf("font file not found: %s", fontPath)
	}

	style := render.DefaultStyle()
	style.FontPath = fontPath
	style.RenderOffset = renderOffset
	if fontSize > 0 {
		style.FontSize = fontSize
	}
	if fontColor != "" {
		style.FontFill = fontColor
	}
	if strokeWidth >= 0 {
		style.StrokeWidth = strokeWidth
	}
	if strokeColor != "" {
		style.StrokeFill = strokeColor
	}
	style.Capitalize = !noCapitalize
	style.FilterAlnum = !noFilter

	if err := style.Validate(); err != nil {
		return err
	}

	var asr burn.ASRConfig
	if subtitlePath == "" {
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
			apiKey = providerAPIKeyFromEnv(string(provider))
		}
		if apiKey == "" {
			return fmt.Errorf(
				"transcription requires an API key: use --api-key, pass --subtitles, or set the provider's environment variable",
			)
		}

		asr = burn.ASRConfig{
			Provider: provider,
			APIKey:   apiKey,
			Options: transcribe.Options{
				Language:           language,
				TranscriptLanguage: transcriptLang,
				Model:              model,
			},
			ChunkDuration: time.Duration(chunkDuration) * time.Minute,
			Concurrency:   concurrency,
		}
	}

	if outputPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		outputPath = base + "-subtitled.mp4"
	}

	logger.Infow("Preparing burn session",
		"video", videoPath,
		"subtitles", subtitlePath,
		"output", outputPath,
	)

	session, err := burn.NewSession(
		ctx,
		videoPath,
		burn.Source{SubtitlePath: subtitlePath},
		asr,
		logger,
	)
	if err != nil {
		return err
	}

	if err := session.Burn(ctx, outputPath, style); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitled video written: %s\n", absOutput)
	fmt.Printf("  Frames: %d\n", session.Info.FrameCount)
	fmt.Printf("  Cues: %d\n", len(session.Cues))

	return nil
}

func providerAPIKeyFromEnv(provider string) string {
	switch provider {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}
