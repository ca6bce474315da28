package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "rassert",
	Short: "Resumable assertions for Go programs under a debugger",
	Long: "Inspects the assertion runtime of this machine: debugger detection, trap\n" +
		"primitive, config and failure journal. Build with -tags debug to compile\n" +
		"assertions in.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default $RASSERT_CONFIG or ~/.rassert/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
