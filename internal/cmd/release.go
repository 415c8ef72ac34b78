package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/explorer-platform/shipctl/internal/config"
	"github.com/explorer-platform/shipctl/internal/kubernetes"
	"github.com/explorer-platform/shipctl/internal/release"
)

// NewReleaseCmd creates the release command group.
func NewReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Deploy, roll back, and inspect service releases",
	}

	cmd.AddCommand(NewReleaseDeployCmd())
	cmd.AddCommand(NewReleaseRollbackCmd())
	cmd.AddCommand(NewReleaseStatusCmd())
	cmd.AddCommand(NewReleaseDiffCmd())

	return cmd
}

// newClusterClient builds the Kubernetes client for release commands,
// honoring config-file kubeconfig settings when flags are empty.
func newClusterClient(kf *K8sFlags) (*kubernetes.Client, error) {
	cfg := GetConfig()

	kubeconfig := kf.Kubeconfig
	if kubeconfig == "" && cfg != nil {
		kubeconfig = cfg.Kubeconfig
	}
	kubeContext := kf.Context
	if kubeContext == "" && cfg != nil {
		kubeContext = cfg.Context
	}

	pollInterval := config.DefaultPollInterval
	if cfg != nil {
		pollInterval = cfg.Rollout.PollInterval
	}

	return kubernetes.NewClient(kubernetes.ClientOptions{
		Kubeconfig:   kubeconfig,
		Context:      kubeContext,
		PollInterval: pollInterval,
	})
}

// resolveEnvironments maps the --env flag to the ordered environment list.
// "all" means staging first, then production.
func resolveEnvironments(envFlag string) ([]release.Environment, error) {
	cfg := GetConfig()

	names := []string{config.EnvStaging, config.EnvProduction}
	if envFlag != "" && envFlag != "all" {
		names = []string{envFlag}
	}

	envs := make([]release.Environment, 0, len(names))
	for _, name := range names {
		envCfg, err := cfg.Environment(name)
		if err != nil {
			return nil, WrapValidation(err, "resolving environment")
		}
		envs = append(envs, release.Environment{
			Name:      name,
			Namespace: envCfg.Namespace,
			Services:  envCfg.Services,
		})
	}

	return envs, nil
}

// resolveEnvironment maps the --env flag to exactly one environment.
// The "all" pseudo-value accepted by deploy is rejected here.
func resolveEnvironment(envFlag string) (release.Environment, error) {
	if envFlag == "" || envFlag == "all" {
		return release.Environment{}, WrapValidation(
			fmt.Errorf("a single environment is required: staging or production"),
			"resolving environment")
	}

	envs, err := resolveEnvironments(envFlag)
	if err != nil {
		return release.Environment{}, err
	}
	return envs[0], nil
}
