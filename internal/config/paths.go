package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigFile returns the default config file path
// (~/.config/shipctl/config.yaml).
func DefaultConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "shipctl", "config.yaml"), nil
}

// ExpandPath expands a ~ or ~/ prefix in a path to the user's home directory.
// Paths without a ~ prefix are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}

	if len(path) > 1 && path[1] == '/' {
		return filepath.Join(home, path[2:]), nil
	}

	// ~username patterns are not expanded
	return path, nil
}
