// Package config provides XDG path helpers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() (string, error) {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() (string, error) {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// DefaultDBPath returns the default path for the SQLite database. Failure
// to resolve it is a configuration error and fatal at startup.
func DefaultDBPath() (string, error) {
	data, err := XDGDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "cubetui", "cubetui.db"), nil
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() (string, error) {
	cfg, err := XDGConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "cubetui", "config.toml"), nil
}
