package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/explorer-platform/shipctl/internal/kubernetes"
	"github.com/explorer-platform/shipctl/internal/output"
)

// NewReleaseStatusCmd creates the release status command.
func NewReleaseStatusCmd() *cobra.Command {
	var kf K8sFlags
	var envFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the live deployment status of an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(&kf, envFlag, outputFlag)
		},
	}

	kf.AddTo(cmd)
	cmd.Flags().StringVar(&envFlag, "env", "staging",
		"Environment to inspect: staging or production")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "table",
		"Output format: table, yaml, json")

	return cmd
}

func runStatus(kf *K8sFlags, envFlag, outputFlag string) error {
	ctx := context.Background()

	env, err := resolveEnvironment(envFlag)
	if err != nil {
		return err
	}

	client, err := newClusterClient(kf)
	if err != nil {
		output.Error("connecting to cluster", "error", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	status, err := client.GetEnvironmentStatus(ctx, env.Name, env.Namespace, env.Services)
	if err != nil {
		output.Error("reading environment status", "error", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	rendered, err := kubernetes.FormatStatus(status, output.ParseFormat(outputFlag))
	if err != nil {
		return err
	}

	output.Print(rendered)
	return nil
}
