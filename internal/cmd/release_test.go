package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explorer-platform/shipctl/internal/config"
)

func withDefaultConfig(t *testing.T) {
	t.Helper()
	prev := shipConfig
	shipConfig = (&config.Config{}).WithDefaults()
	t.Cleanup(func() { shipConfig = prev })
}

func TestResolveEnvironments_AllIsStagingThenProduction(t *testing.T) {
	withDefaultConfig(t)

	envs, err := resolveEnvironments("all")
	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, config.EnvStaging, envs[0].Name)
	assert.Equal(t, config.EnvProduction, envs[1].Name)
}

func TestResolveEnvironments_UnknownEnvironment(t *testing.T) {
	withDefaultConfig(t)

	_, err := resolveEnvironments("qa")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveEnvironment_Single(t *testing.T) {
	withDefaultConfig(t)

	env, err := resolveEnvironment("production")
	require.NoError(t, err)
	assert.Equal(t, "explorer-prod", env.Namespace)
	assert.Contains(t, env.Services, "stats")
}

func TestResolveEnvironment_RejectsAll(t *testing.T) {
	withDefaultConfig(t)

	// Single-environment commands (status, diff, rollback) must not act on
	// staging alone when asked for "all".
	_, err := resolveEnvironment("all")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = resolveEnvironment("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
