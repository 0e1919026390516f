package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/agni/internal/subtitle"
	"github.com/mgpai22/agni/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate subtitles to another language using AI",
	Long: `Translate an existing subtitle file to another language using AI.

Supports SRT, VTT, and ASS formats. The --overlay flag creates bilingual
subtitles with the translated text first, followed by the original text
on the next line.

Examples:
  agni translate video.srt --target-language japanese
  agni translate video.ass --target-language ja --overlay
  agni translate video.vtt -l english --target-language spanish -o translated.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslateCmd,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		Bool("overlay", false, "Overlay translated text with original (bilingual subtitles)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific default)")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of subtitle entries per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslateCmd(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	overlay, _ := cmd.Flags().GetBool("overlay")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	providerStr, _ := cmd.Flags().GetString("provider")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	if inputLang != "" &&
		strings.EqualFold(strings.TrimSpace(inputLang), strings.TrimSpace(targetLang)) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang, targetLang,
		)
	}

	provider := translate.Provider(providerStr)
	if apiKey == "" {
		apiKey = providerAPIKeyFromEnv(providerStr)
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or set the provider's environment variable")
	}

	track, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to load subtitles: %w", err)
	}
	if len(track.Entries) == 0 {
		return fmt.Errorf("subtitle file has no entries")
	}

	if outputPath == "" {
		ext := filepath.Ext(subtitlePath)
		base := strings.TrimSuffix(subtitlePath, ext)
		outputPath = fmt.Sprintf("%s.%s%s", base, sanitizeLangSuffix(targetLang), ext)
	}

	logger.Infow("Starting translation",
		"input", subtitlePath,
		"output", outputPath,
		"provider", providerStr,
		"target_language", targetLang,
		"entries", len(track.Entries),
	)

	opts := translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
	}

	translator, err := translate.Factory(ctx, provider, apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := make([]translate.TranslationItem, len(track.Entries))
	for i, entry := range track.Entries {
		items[i] = translate.TranslationItem{Index: i, Text: entry.Text}
	}

	var results []translate.TranslationResult
	if ct, ok := translator.(translate.ConcurrentTranslator); ok {
		results, err = ct.TranslateWithConcurrency(ctx, items, concurrency)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	translated := make(map[int]string, len(results))
	for _, r := range results {
		translated[r.Index] = r.Text
	}

	for i := range track.Entries {
		text, ok := translated[i]
		if !ok || text == "" {
			continue
		}
		if overlay {
			track.Entries[i].Text = text + "\n" + track.Entries[i].Text
		} else {
			track.Entries[i].Text = text
		}
	}
	track.Language = targetLang

	writer, err := subtitle.NewWriter(track.Format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}
	if err := writer.Write(track, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles translated successfully: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(track.Entries))

	return nil
}

// sanitizeLangSuffix turns a target language name into a filename-safe
// suffix ("Portuguese (Brazil)" -> "portuguese-brazil").
func sanitizeLangSuffix(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	var sb strings.Builder
	lastDash := false
	for _, r := range lang {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		case !lastDash && sb.Len() > 0:
			sb.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
