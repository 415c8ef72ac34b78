package kubernetes

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Sentinel errors for cluster failure categories. The command layer maps
// these to exit codes.
var (
	// ErrConnectivity indicates the cluster could not be reached.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates insufficient RBAC permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a deployment or namespace was not found.
	ErrNotFound = errors.New("not found")

	// ErrRolloutTimeout indicates a rollout did not converge in time.
	ErrRolloutTimeout = errors.New("rollout timed out")
)

func wrapConnectivity(err error) error {
	return fmt.Errorf("%w: %w", ErrConnectivity, err)
}

// classifyAPIError attaches the matching sentinel to a Kubernetes API error
// so callers can branch on category with errors.Is.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case apierrors.IsNotFound(err):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		return fmt.Errorf("%w: %w", ErrPermission, err)
	case apierrors.IsServerTimeout(err), apierrors.IsTimeout(err),
		apierrors.IsServiceUnavailable(err), apierrors.IsTooManyRequests(err):
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	default:
		return err
	}
}
