package kubernetes

import (
	"context"
	"fmt"
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/util/retry"
)

// revisionAnnotation is maintained by the deployment controller on both the
// Deployment and each of its ReplicaSets.
const revisionAnnotation = "deployment.kubernetes.io/revision"

// UndoRollout reverts a deployment to its previous revision, the same way
// kubectl rollout undo does: the pod template of the ReplicaSet one revision
// behind the current one is written back into the deployment spec.
func (c *Client) UndoRollout(ctx context.Context, namespace, deployment string) error {
	err := retry.RetryOnConflict(retry.DefaultRetry, func() error {
		d, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, deployment, metav1.GetOptions{})
		if err != nil {
			return err
		}

		previous, err := c.previousRevision(ctx, d)
		if err != nil {
			return err
		}

		template := previous.Spec.Template.DeepCopy()
		// The pod-template-hash label belongs to the ReplicaSet, not the
		// deployment spec.
		delete(template.Labels, appsv1.DefaultDeploymentUniqueLabelKey)

		d.Spec.Template = *template
		_, err = c.Clientset.AppsV1().Deployments(namespace).Update(ctx, d, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return fmt.Errorf("undoing rollout of %s/%s: %w", namespace, deployment, classifyAPIError(err))
	}

	return nil
}

// previousRevision finds the ReplicaSet holding the revision directly below
// the deployment's current one.
func (c *Client) previousRevision(ctx context.Context, d *appsv1.Deployment) (*appsv1.ReplicaSet, error) {
	selector, err := metav1.LabelSelectorAsSelector(d.Spec.Selector)
	if err != nil {
		return nil, fmt.Errorf("parsing deployment selector: %w", err)
	}

	rsList, err := c.Clientset.AppsV1().ReplicaSets(d.Namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector.String(),
	})
	if err != nil {
		return nil, err
	}

	currentRevision := parseRevision(d.Annotations)

	var best *appsv1.ReplicaSet
	bestRevision := int64(-1)
	for i := range rsList.Items {
		rs := &rsList.Items[i]
		if !ownedBy(rs, d) {
			continue
		}
		revision := parseRevision(rs.Annotations)
		if revision >= currentRevision {
			continue
		}
		if revision > bestRevision {
			best = rs
			bestRevision = revision
		}
	}

	if best == nil {
		return nil, fmt.Errorf("deployment %s/%s has no previous revision to roll back to",
			d.Namespace, d.Name)
	}

	return best, nil
}

func parseRevision(annotations map[string]string) int64 {
	revision, err := strconv.ParseInt(annotations[revisionAnnotation], 10, 64)
	if err != nil {
		return 0
	}
	return revision
}

func ownedBy(rs *appsv1.ReplicaSet, d *appsv1.Deployment) bool {
	for _, ref := range rs.OwnerReferences {
		if ref.Kind == "Deployment" && ref.Name == d.Name {
			return true
		}
	}
	return false
}
