package kubernetes

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/explorer-platform/shipctl/internal/output"
)

func TestGetEnvironmentStatus(t *testing.T) {
	available := converge(makeDeployment("explorer-staging", "api", "registry.example.com/api:v1"))
	available.Status.Conditions = []appsv1.DeploymentCondition{
		{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
	}

	progressing := makeDeployment("explorer-staging", "app", "registry.example.com/app:v2")
	progressing.Status = appsv1.DeploymentStatus{
		ObservedGeneration: progressing.Generation,
		Replicas:           2,
		UpdatedReplicas:    1,
		ReadyReplicas:      1,
		Conditions: []appsv1.DeploymentCondition{
			{
				Type:    appsv1.DeploymentProgressing,
				Status:  corev1.ConditionTrue,
				Reason:  "ReplicaSetUpdated",
				Message: "ReplicaSet is progressing",
			},
		},
	}

	clientset := fake.NewClientset(available, progressing)
	client := NewFromClientset(clientset, 10*time.Millisecond)

	status, err := client.GetEnvironmentStatus(context.Background(),
		"staging", "explorer-staging", []string{"api", "app", "backend"})
	require.NoError(t, err)

	require.Len(t, status.Services, 3)

	assert.Equal(t, HealthReady, status.Services[0].Health)
	assert.Equal(t, "registry.example.com/api:v1", status.Services[0].Image)
	assert.Equal(t, "2/2", status.Services[0].Ready)

	assert.Equal(t, HealthProgressing, status.Services[1].Health)

	// A deployment that does not exist is reported, not an error
	assert.Equal(t, HealthMissing, status.Services[2].Health)
}

func TestEvaluateConditions_ReplicaFailure(t *testing.T) {
	d := makeDeployment("ns", "api", "registry.example.com/api:v1")
	d.Status.Conditions = []appsv1.DeploymentCondition{
		{
			Type:    appsv1.DeploymentReplicaFailure,
			Status:  corev1.ConditionTrue,
			Message: "quota exceeded",
		},
	}

	health, message := evaluateConditions(d)
	assert.Equal(t, HealthFailed, health)
	assert.Equal(t, "quota exceeded", message)
}

func TestFormatStatus(t *testing.T) {
	status := &EnvironmentStatus{
		Environment: "staging",
		Namespace:   "explorer-staging",
		Services: []ServiceStatus{
			{Service: "api", Image: "registry.example.com/api:v1", Ready: "2/2", Health: HealthReady, Age: "3d"},
		},
	}

	t.Run("table", func(t *testing.T) {
		rendered, err := FormatStatus(status, output.FormatTable)
		require.NoError(t, err)
		assert.Contains(t, rendered, "SERVICE")
		assert.Contains(t, rendered, "api")
	})

	t.Run("json", func(t *testing.T) {
		rendered, err := FormatStatus(status, output.FormatJSON)
		require.NoError(t, err)

		var decoded EnvironmentStatus
		require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
		assert.Equal(t, "staging", decoded.Environment)
		require.Len(t, decoded.Services, 1)
		assert.Equal(t, HealthReady, decoded.Services[0].Health)
	})

	t.Run("yaml", func(t *testing.T) {
		rendered, err := FormatStatus(status, output.FormatYAML)
		require.NoError(t, err)
		assert.True(t, strings.Contains(rendered, "environment: staging"))
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 45 * time.Second, "45s"},
		{"minutes", 5 * time.Minute, "5m"},
		{"hours", 2 * time.Hour, "2h"},
		{"hours and minutes", 2*time.Hour + 30*time.Minute, "2h30m"},
		{"days", 72 * time.Hour, "3d"},
		{"negative clamps to zero", -time.Minute, "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatDuration(tc.duration))
		})
	}
}
