package cli

import (
	"fmt"

	"captionforge/internal/config"

	"github.com/spf13/cobra"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the template YAML config and print its location",
	RunE:  runInitConfig,
}

func init() {
	rootCmd.AddCommand(initConfigCmd)

	initConfigCmd.Flags().Bool("overwrite", false, "Overwrite existing config if present")
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	path, err := config.Ensure(overwrite)
	if err != nil {
		return err
	}
	fmt.Printf("Config written to: %s\n", path)
	return nil
}
