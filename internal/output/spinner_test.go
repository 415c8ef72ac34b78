package output

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFakeTTY forces the TTY path and replaces the terminal spinner with a
// stub that blocks on the wait closure, the same way the real one does.
func withFakeTTY(t *testing.T) {
	t.Helper()
	prevTTY, prevSpinner := isTTY, runSpinner
	isTTY = func() bool { return true }
	runSpinner = func(title string, wait func()) error {
		wait()
		return nil
	}
	t.Cleanup(func() {
		isTTY = prevTTY
		runSpinner = prevSpinner
	})
}

func TestRunWithSpinner_ReturnsAfterActionCompletes(t *testing.T) {
	withFakeTTY(t)

	// An uncancelled context must not keep RunWithSpinner blocked once the
	// action has finished.
	result := make(chan error, 1)
	go func() {
		result <- RunWithSpinner(context.Background(), func() error { return nil })
	}()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RunWithSpinner did not return after the action completed")
	}
}

func TestRunWithSpinner_ReturnsActionError(t *testing.T) {
	withFakeTTY(t)

	actionErr := errors.New("rollout timed out")

	result := make(chan error, 1)
	go func() {
		result <- RunWithSpinner(context.Background(), func() error { return actionErr })
	}()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, actionErr)
	case <-time.After(2 * time.Second):
		t.Fatal("RunWithSpinner did not return after the action completed")
	}
}

func TestRunWithSpinner_TimeoutWinsOverSlowAction(t *testing.T) {
	withFakeTTY(t)

	result := make(chan error, 1)
	go func() {
		result <- RunWithSpinner(context.Background(), func() error {
			time.Sleep(500 * time.Millisecond)
			return nil
		}, WithTimeout(20*time.Millisecond))
	}()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("RunWithSpinner did not return after the timeout")
	}
}

func TestRunWithSpinner_NonTTYRunsDirectly(t *testing.T) {
	prev := isTTY
	isTTY = func() bool { return false }
	t.Cleanup(func() { isTTY = prev })

	called := false
	err := RunWithSpinner(context.Background(), func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
