package cmd

import (
	"github.com/spf13/cobra"

	"github.com/explorer-platform/shipctl/internal/config"
	"github.com/explorer-platform/shipctl/internal/output"
)

var (
	// Global flags
	configFlag  string
	verboseFlag bool

	// Loaded configuration (populated during PersistentPreRunE)
	shipConfig *config.Config
)

// NewRootCmd creates the root command for shipctl.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shipctl",
		Short:         "Release orchestrator for the explorer platform",
		Long:          `shipctl rolls a build of the explorer services out to staging and production, verifies each rollout, and rolls back any environment whose deploy phase fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to config file (env: SHIPCTL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewReleaseCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals() error {
	output.SetupLogging(verboseFlag)

	loaded, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return WrapValidation(err, "loading configuration")
	}
	shipConfig = loaded

	if verboseFlag {
		output.Debug("initializing CLI",
			"config", configFlag,
			"environments", len(shipConfig.Environments),
			"rolloutTimeout", shipConfig.Rollout.Timeout,
		)
	}

	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return shipConfig
}
