package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeName(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{ExitSuccess, "Success"},
		{ExitGeneralError, "General Error"},
		{ExitValidationError, "Validation Error"},
		{ExitConnectivityError, "Connectivity Error"},
		{ExitPermissionDenied, "Permission Denied"},
		{ExitNotFound, "Not Found"},
		{99, "Unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ExitCodeName(tc.code))
	}
}
