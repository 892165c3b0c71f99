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

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export caption PNGs plus an FCP 7 XML timeline",
	Long: `Export each subtitle block as a trimmed transparent PNG and describe
the sequence in the legacy FCP 7 XML (XMEML) dialect, which references
the images by absolute path.

When the video cannot be probed, 30 fps and 1920x1080 are assumed.

Examples:
  captionforge export --video clip.mp4 --srt clip.srt --out captions_out`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("video", "", "Source video to probe for frame rate and dimensions")
	exportCmd.Flags().String("srt", "", "Subtitle file (SRT)")
	exportCmd.Flags().StringP("out", "o", "", "Output directory")
	exportCmd.Flags().Int64("seed", 0, "Seed for the accent color sequence")
	exportCmd.MarkFlagRequired("video")
	exportCmd.MarkFlagRequired("srt")
	exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	videoPath, _ := cmd.Flags().GetString("video")
	srtPath, _ := cmd.Flags().GetString("srt")
	outDir, _ := cmd.Flags().GetString("out")
	seed, _ := cmd.Flags().GetInt64("seed")

	if _, err := os.Stat(srtPath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", srtPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	info, err := video.Probe(context.Background(), videoPath)
	if err != nil {
		logger.Warnw("Failed to probe video, assuming 30 fps 1920x1080",
			"error", err,
		)
		fallback := video.DefaultInfo(videoPath)
		info = &fallback
	}

	outDir = pipeline.UniqueDir(outDir)
	result, err := pipeline.Run(cfg, srtPath, *info, pipeline.Options{
		OutDir:     outDir,
		Seed:       seed,
		TrackIndex: cfg.Output.TrackIndex,
		Dialect:    pipeline.DialectXMEML,
	}, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d caption PNGs to %s\n", result.Captions, outDir)
	fmt.Printf("  Timeline: %s\n", result.XMLPath)
	return nil
}
