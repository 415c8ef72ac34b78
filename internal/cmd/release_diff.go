package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/explorer-platform/shipctl/internal/manifest"
	"github.com/explorer-platform/shipctl/internal/output"
)

// NewReleaseDiffCmd creates the release diff command.
func NewReleaseDiffCmd() *cobra.Command {
	var kf K8sFlags
	var mf ManifestFlags
	var envFlag string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show what a deploy of the manifest would change",
		Long: `Compare the image set currently deployed in an environment against
the build-result manifest and render the differences. Services the
manifest marks as not built keep their live image and show no change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(&kf, &mf, envFlag)
		},
	}

	kf.AddTo(cmd)
	mf.AddTo(cmd)
	cmd.Flags().StringVar(&envFlag, "env", "staging",
		"Environment to compare against: staging or production")

	return cmd
}

func runDiff(kf *K8sFlags, mf *ManifestFlags, envFlag string) error {
	ctx := context.Background()

	build, err := manifest.Load(mf.Manifest)
	if err != nil {
		return WrapValidation(err, "loading build manifest")
	}

	env, err := resolveEnvironment(envFlag)
	if err != nil {
		return err
	}

	client, err := newClusterClient(kf)
	if err != nil {
		output.Error("connecting to cluster", "error", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	report, err := client.DiffImages(ctx, env.Namespace, env.Services, build, output.IsTTY())
	if err != nil {
		output.Error("computing diff", "error", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	if report == "" {
		output.Println(output.FormatCheckmark("No changes"))
		return nil
	}

	output.Println(report)
	return nil
}
