// Package release drives per-environment deployment rollouts and rollbacks
// for one build of the explorer services.
package release

import (
	"context"
	"time"
)

// Outcome is the terminal state of one (environment, service) rollout.
type Outcome string

const (
	// OutcomeSkipped means the service had no valid build entry this run.
	// Skipping is not a failure.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeConverged means the rollout reached the desired state in time.
	OutcomeConverged Outcome = "converged"

	// OutcomeFailed means the image update call itself failed.
	OutcomeFailed Outcome = "failed"

	// OutcomeTimedOut means the rollout did not converge within the timeout.
	OutcomeTimedOut Outcome = "timed-out"

	// OutcomeRolledBack means a failed rollout was undone.
	OutcomeRolledBack Outcome = "rolled-back"

	// OutcomeRollbackFailed means the undo of a failed rollout also failed.
	// Manual intervention may be required.
	OutcomeRollbackFailed Outcome = "rollback-failed"
)

// ClusterClient is the cluster control-plane surface the orchestrator needs.
// The production implementation lives in internal/kubernetes; tests use a
// scripted fake.
type ClusterClient interface {
	// SetImage updates the named container's image on a deployment.
	// Re-issuing the same image is a no-op at the infrastructure level.
	SetImage(ctx context.Context, namespace, deployment, container, image string) error

	// WaitForRollout blocks until the deployment converges or the timeout
	// lapses, in which case it returns an error.
	WaitForRollout(ctx context.Context, namespace, deployment string, timeout time.Duration) error

	// UndoRollout reverts the deployment's most recent rollout.
	UndoRollout(ctx context.Context, namespace, deployment string) error
}

// Environment is one deployment target with its eligible service set.
type Environment struct {
	// Name identifies the environment (staging, production).
	Name string

	// Namespace is the Kubernetes namespace the services run in.
	Namespace string

	// Services is the ordered set of service names eligible for deployment.
	Services []string
}

// ServiceResult records the outcome of one service in one environment.
type ServiceResult struct {
	// Service is the service name.
	Service string `json:"service" yaml:"service"`

	// Outcome is the terminal state for this service.
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Image is the image reference that was deployed, if any.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Err carries the failure cause for non-converged outcomes.
	Err error `json:"-" yaml:"-"`
}

// EnvironmentResult collects per-service outcomes for one environment.
type EnvironmentResult struct {
	// Environment is the environment name.
	Environment string `json:"environment" yaml:"environment"`

	// Services holds the per-service results in processing order.
	Services []ServiceResult `json:"services" yaml:"services"`
}

// Failed returns the names of services whose deploy phase failed.
// Skipped services are never failures.
func (r *EnvironmentResult) Failed() []string {
	var failed []string
	for _, s := range r.Services {
		switch s.Outcome {
		case OutcomeFailed, OutcomeTimedOut, OutcomeRolledBack, OutcomeRollbackFailed:
			failed = append(failed, s.Service)
		}
	}
	return failed
}

// Succeeded reports whether every attempted service converged.
func (r *EnvironmentResult) Succeeded() bool {
	return len(r.Failed()) == 0
}

// find returns a pointer into Services for in-place outcome transitions.
func (r *EnvironmentResult) find(service string) *ServiceResult {
	for i := range r.Services {
		if r.Services[i].Service == service {
			return &r.Services[i]
		}
	}
	return nil
}
