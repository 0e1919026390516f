package cli

import (
	"github.com/mgpai22/agni/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "agni",
	Short: "Burn animated subtitles onto videos",
	Long: `Agni burns timed subtitles directly onto video files, rendering
each caption with a pop-in animation and compositing it over the
source frames.

Subtitles can come from an existing SRT/VTT/ASS file or be generated
automatically with AI transcription.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}
