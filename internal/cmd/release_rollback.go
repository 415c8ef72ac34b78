package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/explorer-platform/shipctl/internal/manifest"
	"github.com/explorer-platform/shipctl/internal/output"
	"github.com/explorer-platform/shipctl/internal/release"
)

// NewReleaseRollbackCmd creates the release rollback command.
func NewReleaseRollbackCmd() *cobra.Command {
	var kf K8sFlags
	var mf ManifestFlags
	var envFlag string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Manually undo the most recent rollout of an environment",
		Long: `Undo the most recent rollout of every service in the environment that
has a valid entry in the build-result manifest. Services the manifest
marks as not built are left alone.

Each undo is best-effort and attempted exactly once; a failed undo does
not block the remaining services. Manual intervention may be required
when an undo fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollback(&kf, &mf, envFlag)
		},
	}

	kf.AddTo(cmd)
	mf.AddTo(cmd)
	cmd.Flags().StringVar(&envFlag, "env", "",
		"Environment to roll back: staging or production (required)")
	_ = cmd.MarkFlagRequired("env")

	return cmd
}

func runRollback(kf *K8sFlags, mf *ManifestFlags, envFlag string) error {
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

	orch := release.New(client, GetConfig().Rollout.Timeout)
	orch.RollbackEnvironment(ctx, env, build, nil)

	output.Println(output.FormatCheckmark(fmt.Sprintf("Rollback issued for %s", env.Name)))
	return nil
}
