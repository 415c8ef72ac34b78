package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	cfg := (&Config{}).WithDefaults()

	assert.Equal(t, DefaultRolloutTimeout, cfg.Rollout.Timeout)
	assert.Equal(t, DefaultPollInterval, cfg.Rollout.PollInterval)
	require.Contains(t, cfg.Environments, EnvStaging)
	require.Contains(t, cfg.Environments, EnvProduction)
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := (&Config{
		Rollout: RolloutConfig{
			Timeout:      time.Minute,
			PollInterval: 5 * time.Second,
		},
		Environments: map[string]EnvironmentConfig{
			"staging": {Namespace: "ns", Services: []string{"api"}},
		},
	}).WithDefaults()

	assert.Equal(t, time.Minute, cfg.Rollout.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Rollout.PollInterval)
	assert.Len(t, cfg.Environments, 1)
}

func TestDefaultEnvironments_StagingIsStrictSubset(t *testing.T) {
	envs := DefaultEnvironments()

	staging := envs[EnvStaging].Services
	production := make(map[string]bool)
	for _, svc := range envs[EnvProduction].Services {
		production[svc] = true
	}

	for _, svc := range staging {
		assert.True(t, production[svc], "staging service %q missing from production", svc)
	}
	assert.Equal(t, len(staging)+2, len(envs[EnvProduction].Services),
		"production should carry exactly two extra services")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no environments",
			cfg:     Config{},
			wantErr: "no environments",
		},
		{
			name: "missing namespace",
			cfg: Config{
				Environments: map[string]EnvironmentConfig{
					"staging": {Services: []string{"api"}},
				},
			},
			wantErr: "namespace is required",
		},
		{
			name: "no services",
			cfg: Config{
				Environments: map[string]EnvironmentConfig{
					"staging": {Namespace: "ns"},
				},
			},
			wantErr: "at least one service",
		},
		{
			name: "duplicate service",
			cfg: Config{
				Environments: map[string]EnvironmentConfig{
					"staging": {Namespace: "ns", Services: []string{"api", "api"}},
				},
			},
			wantErr: "duplicate service",
		},
		{
			name: "empty service name",
			cfg: Config{
				Environments: map[string]EnvironmentConfig{
					"staging": {Namespace: "ns", Services: []string{""}},
				},
			},
			wantErr: "empty service name",
		},
		{
			name: "zero timeout",
			cfg: Config{
				Environments: map[string]EnvironmentConfig{
					"staging": {Namespace: "ns", Services: []string{"api"}},
				},
				Rollout: RolloutConfig{PollInterval: time.Second},
			},
			wantErr: "timeout must be positive",
		},
		{
			name: "zero poll interval",
			cfg: Config{
				Environments: map[string]EnvironmentConfig{
					"staging": {Namespace: "ns", Services: []string{"api"}},
				},
				Rollout: RolloutConfig{Timeout: time.Minute},
			},
			wantErr: "poll interval must be positive",
		},
		{
			name: "valid",
			cfg: Config{
				Environments: map[string]EnvironmentConfig{
					"staging": {Namespace: "ns", Services: []string{"api"}},
				},
				Rollout: RolloutConfig{
					Timeout:      time.Minute,
					PollInterval: time.Second,
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEnvironment_Lookup(t *testing.T) {
	cfg := (&Config{}).WithDefaults()

	env, err := cfg.Environment(EnvStaging)
	require.NoError(t, err)
	assert.Equal(t, "explorer-staging", env.Namespace)

	_, err = cfg.Environment("qa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qa")
	assert.Contains(t, err.Error(), "staging")
}
