// Package cmd provides CLI command implementations.
package cmd

// Exit codes reported by the shipctl process.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error, including a failed
	// deploy phase even when the rollback succeeded.
	ExitGeneralError = 1

	// ExitValidationError indicates manifest or config validation failed.
	ExitValidationError = 2

	// ExitConnectivityError indicates the Kubernetes cluster is unreachable.
	ExitConnectivityError = 3

	// ExitPermissionDenied indicates insufficient RBAC permissions.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a deployment, namespace, or file was not found.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConnectivityError:
		return "Connectivity Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
