package cli

import (
	"fmt"

	"captionforge/internal/config"
	"captionforge/internal/ffmpeg"
	"captionforge/internal/render"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run environment checks and print a short report",
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ok := true

	if ffmpeg.Available() {
		fmt.Println("ffprobe: OK")
	} else {
		fmt.Println("ffprobe: NOT FOUND on PATH")
		ok = false
	}

	path, err := config.Ensure(false)
	if err != nil {
		return err
	}
	fmt.Printf("Config path: %s\n", path)

	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Printf("Config structure: INVALID (%v)\n", err)
		return fmt.Errorf("environment verification failed")
	}
	fmt.Println("Config structure: OK")

	resolver := render.NewFSResolver()
	if _, err := resolver.Resolve(cfg.Text.FontFamily); err != nil {
		// not fatal at render time, the built-in face takes over
		fmt.Printf("Font %q: NOT FOUND (built-in fallback will be used)\n", cfg.Text.FontFamily)
	} else {
		fmt.Printf("Font %q: FOUND\n", cfg.Text.FontFamily)
	}

	if !ok {
		return fmt.Errorf("environment verification failed")
	}
	return nil
}
