// Package kubernetes provides the cluster operations shipctl needs: image
// rollouts on Deployments, convergence waits, revision rollbacks, and live
// status snapshots.
package kubernetes

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ClientOptions configures Kubernetes client creation.
type ClientOptions struct {
	// Kubeconfig is the path to the kubeconfig file.
	// Precedence: this field > SHIPCTL_KUBECONFIG env > KUBECONFIG env > ~/.kube/config
	Kubeconfig string

	// Context is the Kubernetes context to use.
	// If empty, uses the current-context from kubeconfig.
	Context string

	// PollInterval is the interval between rollout convergence checks.
	// Zero means the default (2s).
	PollInterval time.Duration
}

// Client wraps the typed Kubernetes clientset for shipctl operations.
type Client struct {
	// Clientset is the typed API surface used for all deployment operations.
	Clientset kubernetes.Interface

	// RestConfig is the underlying REST configuration.
	RestConfig *rest.Config

	pollInterval time.Duration
}

// cachedClient stores the singleton client for reuse within a command.
var (
	cachedClient *Client
	clientMu     sync.Mutex
)

// NewClient creates a Kubernetes client with the given options.
// The client is cached for reuse within the same command invocation.
func NewClient(opts ClientOptions) (*Client, error) {
	clientMu.Lock()
	defer clientMu.Unlock()

	if cachedClient != nil {
		return cachedClient, nil
	}

	restConfig, err := buildRestConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("building kubernetes config: %w", wrapConnectivity(err))
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating clientset: %w", wrapConnectivity(err))
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	cachedClient = &Client{
		Clientset:    clientset,
		RestConfig:   restConfig,
		pollInterval: pollInterval,
	}

	return cachedClient, nil
}

// NewFromClientset wraps an existing clientset. Used for testing with the
// fake clientset.
func NewFromClientset(clientset kubernetes.Interface, pollInterval time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Client{
		Clientset:    clientset,
		pollInterval: pollInterval,
	}
}

// ResetClient clears the cached client. Used for testing.
func ResetClient() {
	clientMu.Lock()
	defer clientMu.Unlock()
	cachedClient = nil
}

// buildRestConfig resolves kubeconfig with precedence:
// flag > SHIPCTL_KUBECONFIG env > KUBECONFIG env > ~/.kube/config
func buildRestConfig(opts ClientOptions) (*rest.Config, error) {
	kubeconfigPath := resolveKubeconfig(opts.Kubeconfig)

	loadingRules := &clientcmd.ClientConfigLoadingRules{
		ExplicitPath: kubeconfigPath,
	}

	overrides := &clientcmd.ConfigOverrides{}
	if opts.Context != "" {
		overrides.CurrentContext = opts.Context
	}

	config := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		overrides,
	)

	return config.ClientConfig()
}

// resolveKubeconfig resolves kubeconfig path with precedence:
// flag > SHIPCTL_KUBECONFIG > KUBECONFIG > ~/.kube/config
func resolveKubeconfig(flagValue string) string {
	var path string

	if flagValue != "" {
		path = flagValue
	} else if v := os.Getenv("SHIPCTL_KUBECONFIG"); v != "" {
		path = v
	} else if v := os.Getenv("KUBECONFIG"); v != "" {
		path = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".kube", "config")
	}

	return expandTilde(path)
}

// expandTilde expands a ~ or ~/ prefix in a path to the user's home directory.
func expandTilde(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	if len(path) > 1 && path[1] == '/' {
		return filepath.Join(homeDir, path[2:])
	}

	// ~username patterns are not expanded
	return path
}
