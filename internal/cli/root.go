package cli

import (
	"fmt"
	"os"

	"github.com/benlindsay/keyup/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands
var (
	configFlag  string
	noColorFlag bool
)

// rootCmd is the base command for keyup.
var rootCmd = &cobra.Command{
	Use:   "keyup",
	Short: "Provision SSH access to your Git server",
	Long: `keyup sets up a developer machine for SSH access to a GitHub
Enterprise instance: it generates a key pair and registers a host entry
in ~/.ssh/config.

Start with:
  keyup provision <address>   Generate a key and register the host
  keyup list                  Show provisioned keys
  keyup doctor                Diagnose setup issues`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
}

// Execute runs the root command and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to settings file")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}
