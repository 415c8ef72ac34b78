package cmd

import (
	"github.com/spf13/cobra"

	"github.com/explorer-platform/shipctl/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigVet()
		},
	}
}

func runConfigVet() error {
	// The config was already loaded with defaults by the root command;
	// vet only has to run the structural checks.
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return WrapValidation(err, "config validation")
	}

	output.Println(output.FormatCheckmark("Config is valid"))
	return nil
}
