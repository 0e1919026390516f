package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgpai22/agni/internal/mediainfo"
)

var probeCmd = &cobra.Command{
	Use:   "probe [video_file]",
	Short: "Print media information for a video file",
	Long: `Probe the specified video file and print its media descriptor:
dimensions, frame rate, frame count, duration, and codecs.

Example:
  agni probe video.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", videoPath)
	}

	info, err := mediainfo.Probe(context.Background(), videoPath)
	if err != nil {
		return err
	}

	fmt.Printf("File:        %s\n", info.Path)
	fmt.Printf("Resolution:  %dx%d\n", info.Width, info.Height)
	fmt.Printf("Frame rate:  %g fps\n", info.FrameRate)
	fmt.Printf("Frames:      %d\n", info.FrameCount)
	fmt.Printf("Duration:    %s\n", info.Duration)
	fmt.Printf("Video codec: %s\n", info.VideoCodec)
	if info.HasAudio {
		fmt.Printf("Audio codec: %s\n", info.AudioCodec)
	} else {
		fmt.Println("Audio:       none")
	}

	return nil
}
