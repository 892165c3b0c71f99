package cli

import (
	"captionforge/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "captionforge",
	Short: "Styled caption rasterizer and timeline exporter",
	Long: `Captionforge turns a subtitle track into individually colored,
stroke-and-shadow styled transparent images, timed to whole video
frames, plus a timeline document a non-linear editor can import to
place them over the source footage.

Styling comes from a fixed YAML config; run "captionforge init-config"
to create it.`,
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
}
