package kubernetes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/explorer-platform/shipctl/internal/output"
)

// HealthStatus is the evaluated health of a deployment.
type HealthStatus string

const (
	// HealthReady means the deployment is fully available.
	HealthReady HealthStatus = "Ready"

	// HealthProgressing means a rollout is still in flight.
	HealthProgressing HealthStatus = "Progressing"

	// HealthNotReady means the deployment is not available.
	HealthNotReady HealthStatus = "NotReady"

	// HealthFailed means the deployment reported a replica failure.
	HealthFailed HealthStatus = "Failed"

	// HealthMissing means the deployment does not exist in the namespace.
	HealthMissing HealthStatus = "Missing"
)

// ServiceStatus is the live snapshot of one service's deployment.
type ServiceStatus struct {
	// Service is the service (and deployment) name.
	Service string `json:"service" yaml:"service"`

	// Image is the image currently recorded in the deployment spec.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Ready is the replica readiness fraction, e.g. "2/2".
	Ready string `json:"ready" yaml:"ready"`

	// Health is the evaluated health status.
	Health HealthStatus `json:"health" yaml:"health"`

	// Message carries detail for non-ready states.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Age is the human-readable age of the deployment.
	Age string `json:"age" yaml:"age"`
}

// EnvironmentStatus is the full status snapshot for one environment.
type EnvironmentStatus struct {
	// Environment is the environment name.
	Environment string `json:"environment" yaml:"environment"`

	// Namespace is the environment's namespace.
	Namespace string `json:"namespace" yaml:"namespace"`

	// Services holds per-service snapshots in configured order.
	Services []ServiceStatus `json:"services" yaml:"services"`
}

// GetEnvironmentStatus reads the deployment of every configured service and
// evaluates its health. A missing deployment is reported, not an error.
func (c *Client) GetEnvironmentStatus(ctx context.Context, env, namespace string, services []string) (*EnvironmentStatus, error) {
	status := &EnvironmentStatus{
		Environment: env,
		Namespace:   namespace,
	}

	for _, service := range services {
		d, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, service, metav1.GetOptions{})
		if err != nil {
			classified := classifyAPIError(err)
			if errors.Is(classified, ErrNotFound) {
				status.Services = append(status.Services, ServiceStatus{
					Service: service,
					Ready:   "0/0",
					Health:  HealthMissing,
					Message: "deployment not found",
					Age:     "<unknown>",
				})
				continue
			}
			return nil, fmt.Errorf("reading deployment %s/%s: %w", namespace, service, classified)
		}

		status.Services = append(status.Services, evaluateDeployment(service, d))
	}

	return status, nil
}

// evaluateDeployment derives a ServiceStatus from deployment conditions and
// replica counters.
func evaluateDeployment(service string, d *appsv1.Deployment) ServiceStatus {
	replicas := int32(1)
	if d.Spec.Replicas != nil {
		replicas = *d.Spec.Replicas
	}

	s := ServiceStatus{
		Service: service,
		Ready:   fmt.Sprintf("%d/%d", d.Status.ReadyReplicas, replicas),
		Age:     computeAge(d.CreationTimestamp.Time),
	}

	if containers := d.Spec.Template.Spec.Containers; len(containers) > 0 {
		idx := findContainer(containers, service)
		if idx < 0 {
			idx = 0
		}
		s.Image = containers[idx].Image
	}

	s.Health, s.Message = evaluateConditions(d)
	return s
}

func evaluateConditions(d *appsv1.Deployment) (HealthStatus, string) {
	for _, cond := range d.Status.Conditions {
		switch cond.Type {
		case appsv1.DeploymentReplicaFailure:
			if cond.Status == "True" {
				return HealthFailed, cond.Message
			}
		case appsv1.DeploymentAvailable:
			if cond.Status == "True" {
				return HealthReady, ""
			}
		case appsv1.DeploymentProgressing:
			if cond.Status == "True" && cond.Reason != "NewReplicaSetAvailable" {
				return HealthProgressing, cond.Message
			}
		}
	}

	if converged, err := deploymentConverged(d); err == nil && converged {
		return HealthReady, ""
	}

	return HealthNotReady, "not available"
}

// computeAge converts a creation timestamp into a human-readable age.
func computeAge(created time.Time) string {
	if created.IsZero() {
		return "<unknown>"
	}
	return formatDuration(time.Since(created))
}

// formatDuration converts a duration to a human-readable string (e.g. "5m",
// "2h30m", "3d").
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		hours := int(d.Hours())
		mins := int(d.Minutes()) - hours*60
		if mins > 0 {
			return fmt.Sprintf("%dh%dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	default:
		days := int(d.Hours() / 24)
		return fmt.Sprintf("%dd", days)
	}
}

// FormatStatus renders the status snapshot in the requested format.
func FormatStatus(status *EnvironmentStatus, format output.Format) (string, error) {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling status to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case output.FormatYAML:
		data, err := yaml.Marshal(status)
		if err != nil {
			return "", fmt.Errorf("marshaling status to YAML: %w", err)
		}
		return string(data), nil
	default:
		return formatStatusTable(status), nil
	}
}

func formatStatusTable(status *EnvironmentStatus) string {
	tbl := output.NewTable("SERVICE", "IMAGE", "READY", "HEALTH", "AGE")
	for _, s := range status.Services {
		tbl.Row(s.Service, s.Image, s.Ready, string(s.Health), s.Age)
	}
	return tbl.String() + "\n"
}
