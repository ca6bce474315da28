package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/rassert/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config file operations",
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a config file and print the effective settings",
	Long:  "Loads the config (YAML, or TOML for .toml files), applies RASSERT_*\nenvironment overrides, validates it and prints the result as YAML.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	w := cmd.OutOrStdout()
	if cfg.Path == "" {
		fmt.Fprintf(w, "# no file at %s, built-in defaults\n", config.ResolvePath(path))
	} else {
		fmt.Fprintf(w, "# %s\n", cfg.Path)
	}
	_, err = w.Write(out)
	return err
}
