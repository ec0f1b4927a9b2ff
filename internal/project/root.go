// Package project provides project discovery and loading functionality.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the optional release configuration file.
const ConfigFileName = "release.yaml"

// ConfigEnvVar overrides the configuration file location.
const ConfigEnvVar = "DO_CONFIG"

// rootMarkers identify a project root. First match in a directory wins.
var rootMarkers = []string{
	ConfigFileName,
	"setup.py",
}

// ErrNoProjectRoot is returned when no root marker is found.
var ErrNoProjectRoot = errors.New("release.yaml or setup.py not found: not a project directory (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds a root marker.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds a root marker.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range rootMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && !info.IsDir() {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
