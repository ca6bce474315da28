package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rassert"
	"github.com/ppiankov/rassert/internal/trap"
)

const version = "0.3.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := map[string]any{
			"version": version,
			"name":    "rassert",
			"enabled": rassert.Enabled,
			"trap":    trap.Kind(),
			"target":  runtime.GOOS + "/" + runtime.GOARCH,
		}
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	},
}
