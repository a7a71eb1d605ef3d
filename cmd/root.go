package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	assets  fs.FS
)

var rootCmd = &cobra.Command{
	Use:   "playground",
	Short: "Live HTML/CSS/JS playground server",
	Long: `Playground serves a three-pane live coding page: edit markup, style and
script side by side and see the result rendered in a sandboxed preview.
Editor contents and theme persist per browser profile.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on failure. static holds the
// embedded client files.
func Execute(static fs.FS) {
	assets = static
	exitOnError(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "playground.yml", "config file path")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
