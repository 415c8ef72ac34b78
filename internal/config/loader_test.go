package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
environments:
  staging:
    namespace: custom-staging
    services: [api, app]
rollout:
  timeout: 5m
  pollInterval: 1s
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	require.Contains(t, cfg.Environments, "staging")
	assert.Equal(t, "custom-staging", cfg.Environments["staging"].Namespace)
	assert.Equal(t, []string{"api", "app"}, cfg.Environments["staging"].Services)
	assert.Equal(t, 5*time.Minute, cfg.Rollout.Timeout)
	assert.Equal(t, time.Second, cfg.Rollout.PollInterval)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := NewLoader().LoadWithDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultRolloutTimeout, cfg.Rollout.Timeout)
	require.Contains(t, cfg.Environments, EnvStaging)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "kubeconfig: /from/file\n")

	t.Setenv("SHIPCTL_KUBECONFIG", "/from/env")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Kubeconfig)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "environments: [not: a: map\n")

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}

func TestConfigFileExists(t *testing.T) {
	path := writeConfig(t, "kubeconfig: /x\n")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"plain path", "/etc/shipctl.yaml", "/etc/shipctl.yaml"},
		{"tilde only", "~", home},
		{"tilde slash", "~/cfg.yaml", filepath.Join(home, "cfg.yaml")},
		{"tilde user untouched", "~other/cfg.yaml", "~other/cfg.yaml"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expanded, err := ExpandPath(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, expanded)
		})
	}
}
