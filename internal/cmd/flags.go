package cmd

import "github.com/spf13/cobra"

// K8sFlags holds flags for Kubernetes cluster connection.
type K8sFlags struct {
	Kubeconfig string
	Context    string
}

// AddTo registers the Kubernetes connection flags on the given cobra command.
func (f *K8sFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Kubeconfig, "kubeconfig", "",
		"Path to kubeconfig file (env: SHIPCTL_KUBECONFIG)")
	cmd.Flags().StringVar(&f.Context, "context", "",
		"Kubernetes context to use")
}

// ManifestFlags holds flags for commands that consume a build-result manifest.
type ManifestFlags struct {
	Manifest string
}

// AddTo registers the manifest flags on the given cobra command.
func (f *ManifestFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Manifest, "manifest", "m", "services.json",
		"Path to the build-result manifest")
}
