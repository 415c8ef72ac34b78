package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/explorer-platform/shipctl/internal/manifest"
	"github.com/explorer-platform/shipctl/internal/output"
	"github.com/explorer-platform/shipctl/internal/release"
)

// NewReleaseDeployCmd creates the release deploy command.
func NewReleaseDeployCmd() *cobra.Command {
	var kf K8sFlags
	var mf ManifestFlags
	var envFlag string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Roll a build out to the configured environments",
		Long: `Roll the images recorded in the build-result manifest out to the
configured environments and wait for each rollout to converge.

Environments are processed in order: staging first, then production. A
service without a valid manifest entry is skipped, not failed. One
service's failure never blocks the remaining services, and a failed
staging deploy never blocks the production attempt. Any environment
whose deploy phase fails is rolled back service by service; the exit
status stays non-zero even when every rollback succeeds.

Examples:
  # Deploy a build to staging and production
  shipctl release deploy --manifest services.json

  # Deploy to staging only
  shipctl release deploy --manifest services.json --env staging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(&kf, &mf, envFlag)
		},
	}

	kf.AddTo(cmd)
	mf.AddTo(cmd)
	cmd.Flags().StringVar(&envFlag, "env", "all",
		"Environment to deploy: staging, production, or all")

	return cmd
}

func runDeploy(kf *K8sFlags, mf *ManifestFlags, envFlag string) error {
	ctx := context.Background()

	build, err := manifest.Load(mf.Manifest)
	if err != nil {
		return WrapValidation(err, "loading build manifest")
	}
	output.Debug("build manifest loaded", "path", mf.Manifest, "built", build.Len())

	envs, err := resolveEnvironments(envFlag)
	if err != nil {
		return err
	}

	client, err := newClusterClient(kf)
	if err != nil {
		output.Error("connecting to cluster", "error", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	orch := release.New(client, GetConfig().Rollout.Timeout)
	results, runErr := orch.Run(ctx, envs, build)

	for _, result := range results {
		output.Println(formatResultTable(result))
	}

	if runErr != nil {
		output.Println(output.FormatCross("Release failed"))
		return &ExitError{Code: ExitGeneralError, Err: runErr, Printed: true}
	}

	output.Println(output.FormatCheckmark("Release deployed"))
	return nil
}

// formatResultTable renders one environment's per-service outcomes.
func formatResultTable(result *release.EnvironmentResult) string {
	tbl := output.NewTable("ENVIRONMENT", "SERVICE", "OUTCOME", "IMAGE")
	for _, s := range result.Services {
		outcome := output.OutcomeStyle(string(s.Outcome)).Render(string(s.Outcome))
		tbl.Row(result.Environment, s.Service, outcome, s.Image)
	}

	summary := fmt.Sprintf("%s: %d services processed", result.Environment, len(result.Services))
	if failed := result.Failed(); len(failed) > 0 {
		summary = fmt.Sprintf("%s, %d failed", summary, len(failed))
	}

	return tbl.String() + "\n" + output.StyleDim.Render(summary)
}
