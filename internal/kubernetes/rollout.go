package kubernetes

import (
	"context"
	"errors"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"
)

// SetImage updates the named container's image on a deployment. Setting the
// image the deployment already runs is a no-op, so re-issuing the same build
// is safe.
func (c *Client) SetImage(ctx context.Context, namespace, deployment, container, image string) error {
	err := retry.RetryOnConflict(retry.DefaultRetry, func() error {
		d, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, deployment, metav1.GetOptions{})
		if err != nil {
			return err
		}

		idx := findContainer(d.Spec.Template.Spec.Containers, container)
		if idx < 0 {
			return fmt.Errorf("deployment %s/%s has no container %q", namespace, deployment, container)
		}

		if d.Spec.Template.Spec.Containers[idx].Image == image {
			return nil
		}

		d.Spec.Template.Spec.Containers[idx].Image = image
		_, err = c.Clientset.AppsV1().Deployments(namespace).Update(ctx, d, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return fmt.Errorf("updating image of %s/%s: %w", namespace, deployment, classifyAPIError(err))
	}

	return nil
}

// WaitForRollout polls the deployment until its rollout converges (all
// replicas updated and available against the current generation) or the
// timeout lapses, in which case ErrRolloutTimeout is returned.
func (c *Client) WaitForRollout(ctx context.Context, namespace, deployment string, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, c.pollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			d, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, deployment, metav1.GetOptions{})
			if err != nil {
				return false, classifyAPIError(err)
			}
			return deploymentConverged(d)
		})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s/%s did not converge within %s",
				ErrRolloutTimeout, namespace, deployment, timeout)
		}
		return fmt.Errorf("waiting for rollout of %s/%s: %w", namespace, deployment, err)
	}

	return nil
}

// deploymentConverged applies the kubectl rollout-status convergence rules.
func deploymentConverged(d *appsv1.Deployment) (bool, error) {
	if d.Generation > d.Status.ObservedGeneration {
		return false, nil
	}

	for _, cond := range d.Status.Conditions {
		if cond.Type == appsv1.DeploymentProgressing && cond.Reason == "ProgressDeadlineExceeded" {
			return false, fmt.Errorf("deployment %s exceeded its progress deadline", d.Name)
		}
	}

	replicas := int32(1)
	if d.Spec.Replicas != nil {
		replicas = *d.Spec.Replicas
	}

	if d.Status.UpdatedReplicas < replicas {
		return false, nil
	}
	if d.Status.Replicas > d.Status.UpdatedReplicas {
		// Old replicas still terminating
		return false, nil
	}
	if d.Status.AvailableReplicas < d.Status.UpdatedReplicas {
		return false, nil
	}

	return true, nil
}

func findContainer(containers []corev1.Container, name string) int {
	for i := range containers {
		if containers[i].Name == name {
			return i
		}
	}
	return -1
}
