package cli

import (
	"context"
	"fmt"
	"os"

	"captionforge/internal/config"
	"captionforge/internal/pipeline"
	"captionforge/internal/video"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render caption images plus an FCPXML timeline",
	Long: `Render one transparent PNG per subtitle block, styled per the fixed
config, and an FCPXML document that places them on a timeline at
frame-accurate positions.

The video file is only probed for its frame rate and dimensions; it is
never decoded or re-encoded.

Examples:
  captionforge render --video clip.mp4 --srt clip.srt --out captions_out
  captionforge render --video clip.mp4 --srt clip.srt --out captions_out --seed 42`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("video", "", "Source video to probe for frame rate and dimensions")
	renderCmd.Flags().String("srt", "", "Subtitle file (SRT)")
	renderCmd.Flags().StringP("out", "o", "", "Output directory")
	renderCmd.Flags().Int("track-index", 0, "Timeline track index (default from config)")
	renderCmd.Flags().Int64("seed", 0, "Seed for the accent color sequence")
	renderCmd.MarkFlagRequired("video")
	renderCmd.MarkFlagRequired("srt")
	renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	videoPath, _ := cmd.Flags().GetString("video")
	srtPath, _ := cmd.Flags().GetString("srt")
	outDir, _ := cmd.Flags().GetString("out")
	trackIndex, _ := cmd.Flags().GetInt("track-index")
	seed, _ := cmd.Flags().GetInt64("seed")

	if _, err := os.Stat(srtPath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", srtPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if trackIndex == 0 {
		trackIndex = cfg.Output.TrackIndex
	}

	info, err := video.Probe(context.Background(), videoPath)
	if err != nil {
		return fmt.Errorf("failed to probe video: %w", err)
	}
	logger.Infow("Probed video",
		"fps", fmt.Sprintf("%d/%d", info.FPSNum, info.FPSDen),
		"width", info.Width,
		"height", info.Height,
	)

	outDir = pipeline.UniqueDir(outDir)
	result, err := pipeline.Run(cfg, srtPath, *info, pipeline.Options{
		OutDir:     outDir,
		Seed:       seed,
		TrackIndex: trackIndex,
		Dialect:    pipeline.DialectFCPXML,
	}, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Rendered %d captions to %s\n", result.Captions, outDir)
	fmt.Printf("  Timeline: %s\n", result.XMLPath)
	fmt.Printf("  Manifest: %s\n", result.ManifestPath)
	return nil
}
