// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// ResolveDocumentPath expands a user-supplied resume path and makes it absolute.
// The file is not opened.
func ResolveDocumentPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("document path is empty")
	}

	abs, err := filepath.Abs(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve document path %q: %w", path, err)
	}
	return abs, nil
}
