package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/explorer-platform/shipctl/internal/config"
	"github.com/explorer-platform/shipctl/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(forceFlag)
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false,
		"Overwrite an existing config file")

	return cmd
}

func runConfigInit(force bool) error {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.DefaultConfigFile()
		if err != nil {
			return err
		}
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}

	exists, err := config.ConfigFileExists(expanded)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", expanded)
	}

	cfg := (&config.Config{}).WithDefaults()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("Config written to %s", expanded)))
	return nil
}
