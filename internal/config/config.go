// Package config handles shipctl configuration loading and validation.
package config

import (
	"fmt"
	"sort"
	"time"
)

// Default rollout settings.
const (
	// DefaultRolloutTimeout bounds how long a single service rollout may take
	// before it is recorded as failed.
	DefaultRolloutTimeout = 600 * time.Second

	// DefaultPollInterval is the interval between rollout convergence checks.
	DefaultPollInterval = 2 * time.Second
)

// Environment names recognized by the release driver.
const (
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Config is the top-level shipctl configuration.
type Config struct {
	// Environments maps environment name to its deployment target.
	Environments map[string]EnvironmentConfig `mapstructure:"environments" yaml:"environments"`

	// Rollout holds rollout timing settings.
	Rollout RolloutConfig `mapstructure:"rollout" yaml:"rollout"`

	// Kubeconfig is the path to the kubeconfig file.
	Kubeconfig string `mapstructure:"kubeconfig" yaml:"kubeconfig,omitempty"`

	// Context is the Kubernetes context to use.
	Context string `mapstructure:"context" yaml:"context,omitempty"`

	// Log holds logging settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// EnvironmentConfig describes one deployment target.
type EnvironmentConfig struct {
	// Namespace is the Kubernetes namespace the environment's services run in.
	Namespace string `mapstructure:"namespace" yaml:"namespace"`

	// Services is the ordered set of service names eligible for deployment
	// in this environment.
	Services []string `mapstructure:"services" yaml:"services"`
}

// RolloutConfig holds rollout timing settings.
type RolloutConfig struct {
	// Timeout bounds a single service's rollout convergence wait.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// PollInterval is the interval between convergence checks.
	PollInterval time.Duration `mapstructure:"pollInterval" yaml:"pollInterval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Timestamps enables timestamps in log output. Nil means default (true).
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// WithDefaults returns a copy of the config with defaults applied.
func (c *Config) WithDefaults() *Config {
	out := *c

	if out.Environments == nil {
		out.Environments = DefaultEnvironments()
	}
	if out.Rollout.Timeout <= 0 {
		out.Rollout.Timeout = DefaultRolloutTimeout
	}
	if out.Rollout.PollInterval <= 0 {
		out.Rollout.PollInterval = DefaultPollInterval
	}

	return &out
}

// DefaultEnvironments returns the built-in environment-to-service mapping.
// Staging serves a strict subset of the production services; indexer-nft and
// stats are production-only.
func DefaultEnvironments() map[string]EnvironmentConfig {
	return map[string]EnvironmentConfig{
		EnvStaging: {
			Namespace: "explorer-staging",
			Services:  []string{"api", "app", "backend", "indexer-base"},
		},
		EnvProduction: {
			Namespace: "explorer-prod",
			Services:  []string{"api", "app", "backend", "indexer-base", "indexer-nft", "stats"},
		},
	}
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if len(c.Environments) == 0 {
		return fmt.Errorf("no environments configured")
	}

	for _, name := range sortedEnvNames(c.Environments) {
		env := c.Environments[name]
		if env.Namespace == "" {
			return fmt.Errorf("environment %q: namespace is required", name)
		}
		if len(env.Services) == 0 {
			return fmt.Errorf("environment %q: at least one service is required", name)
		}

		seen := make(map[string]bool, len(env.Services))
		for _, svc := range env.Services {
			if svc == "" {
				return fmt.Errorf("environment %q: empty service name", name)
			}
			if seen[svc] {
				return fmt.Errorf("environment %q: duplicate service %q", name, svc)
			}
			seen[svc] = true
		}
	}

	if c.Rollout.Timeout <= 0 {
		return fmt.Errorf("rollout timeout must be positive")
	}
	if c.Rollout.PollInterval <= 0 {
		return fmt.Errorf("rollout poll interval must be positive")
	}

	return nil
}

// Environment returns the named environment configuration.
func (c *Config) Environment(name string) (EnvironmentConfig, error) {
	env, ok := c.Environments[name]
	if !ok {
		return EnvironmentConfig{}, fmt.Errorf("unknown environment %q (known: %v)",
			name, sortedEnvNames(c.Environments))
	}
	return env, nil
}

func sortedEnvNames(envs map[string]EnvironmentConfig) []string {
	names := make([]string, 0, len(envs))
	for name := range envs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
