// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no configuration file exists in any search location.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./newfile.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "newfile", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. NEWFILE_CONFIG environment variable
//  2. ./newfile.toml (current directory)
//  3. $XDG_CONFIG_HOME/newfile/config.toml
//  4. /etc/newfile/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv("NEWFILE_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("NEWFILE_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./newfile.toml",
		DefaultPath(),
		"/etc/newfile/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
