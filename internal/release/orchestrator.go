package release

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/explorer-platform/shipctl/internal/manifest"
	"github.com/explorer-platform/shipctl/internal/output"
)

// DefaultRolloutTimeout bounds a single service's convergence wait when no
// timeout is configured.
const DefaultRolloutTimeout = 600 * time.Second

// Orchestrator applies one build result to deployment environments and rolls
// back any environment whose deploy phase fails.
type Orchestrator struct {
	client  ClusterClient
	timeout time.Duration
}

// New creates an Orchestrator. A non-positive timeout falls back to
// DefaultRolloutTimeout.
func New(client ClusterClient, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultRolloutTimeout
	}
	return &Orchestrator{
		client:  client,
		timeout: timeout,
	}
}

// DeployEnvironment rolls every eligible service in the environment to the
// image recorded in the build result.
//
// Services are processed independently and in order: a service without a
// valid build entry is skipped, and one service's failure never prevents
// attempting the rest. The returned result carries every per-service outcome;
// the caller decides whether a non-empty failed-set triggers a rollback.
func (o *Orchestrator) DeployEnvironment(ctx context.Context, env Environment, build *manifest.BuildResult) *EnvironmentResult {
	envLog := output.EnvironmentLogger(env.Name)
	result := &EnvironmentResult{Environment: env.Name}

	for _, service := range env.Services {
		image, ok := build.Lookup(service)
		if !ok {
			envLog.Info("skipping service, no image built this run", "service", service)
			result.Services = append(result.Services, ServiceResult{
				Service: service,
				Outcome: OutcomeSkipped,
			})
			continue
		}

		envLog.Info("updating deployment image", "service", service, "image", image)
		if err := o.client.SetImage(ctx, env.Namespace, service, service, image); err != nil {
			envLog.Error("image update failed", "service", service, "error", err)
			result.Services = append(result.Services, ServiceResult{
				Service: service,
				Outcome: OutcomeFailed,
				Image:   image,
				Err:     err,
			})
			continue
		}

		envLog.Info("waiting for rollout", "service", service, "timeout", o.timeout)
		err := output.RunWithSpinner(ctx, func() error {
			return o.client.WaitForRollout(ctx, env.Namespace, service, o.timeout)
		}, output.WithTitle(fmt.Sprintf("Waiting for %s rollout in %s", service, env.Name)))
		if err != nil {
			envLog.Error("rollout did not converge", "service", service, "error", err)
			result.Services = append(result.Services, ServiceResult{
				Service: service,
				Outcome: OutcomeTimedOut,
				Image:   image,
				Err:     err,
			})
			continue
		}

		envLog.Info("rollout converged", "service", service)
		result.Services = append(result.Services, ServiceResult{
			Service: service,
			Outcome: OutcomeConverged,
			Image:   image,
		})
	}

	if failed := result.Failed(); len(failed) > 0 {
		envLog.Error("deploy phase failed", "failed", strings.Join(failed, ", "))
	}

	return result
}

// RollbackEnvironment undoes the most recent rollout of every service in the
// environment that had a valid build entry. Services that were never
// attempted (no build entry) are left alone.
//
// Each undo is best-effort and attempted exactly once; an undo failure is
// recorded and does not block the remaining undos. When a result from the
// deploy phase is supplied, failed services transition to rolled-back or
// rollback-failed in place.
func (o *Orchestrator) RollbackEnvironment(ctx context.Context, env Environment, build *manifest.BuildResult, result *EnvironmentResult) {
	envLog := output.EnvironmentLogger(env.Name)

	for _, service := range env.Services {
		if _, ok := build.Lookup(service); !ok {
			continue
		}

		envLog.Warn("rolling back deployment", "service", service)
		err := o.client.UndoRollout(ctx, env.Namespace, service)

		var record *ServiceResult
		if result != nil {
			record = result.find(service)
		}

		if err != nil {
			envLog.Error("rollback failed, manual intervention may be required",
				"service", service, "error", err)
			if record != nil && record.Outcome != OutcomeConverged {
				record.Outcome = OutcomeRollbackFailed
				record.Err = err
			}
			continue
		}

		envLog.Info("rollback issued", "service", service)
		if record != nil && record.Outcome != OutcomeConverged {
			record.Outcome = OutcomeRolledBack
		}
	}
}

// Run drives the full release: each environment's deploy phase runs in order,
// and an environment that fails is rolled back before the next one is
// attempted. A failed staging deploy never blocks the production attempt, and
// rollback never clears the recorded failure.
//
// The returned error is non-nil if any environment's deploy phase failed,
// even when every rollback succeeded.
func (o *Orchestrator) Run(ctx context.Context, envs []Environment, build *manifest.BuildResult) ([]*EnvironmentResult, error) {
	results := make([]*EnvironmentResult, 0, len(envs))
	var failedEnvs []string

	for _, env := range envs {
		result := o.DeployEnvironment(ctx, env, build)
		results = append(results, result)

		if !result.Succeeded() {
			failedEnvs = append(failedEnvs, env.Name)
			o.RollbackEnvironment(ctx, env, build, result)
		}
	}

	if len(failedEnvs) > 0 {
		return results, fmt.Errorf("deploy failed in %s", strings.Join(failedEnvs, ", "))
	}

	return results, nil
}
