package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iafisher/do/internal/config"
)

// Project represents a loaded project ready to be tested or published.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
}

// LoadProject finds and loads a project from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads a project from a specified root directory.
// A missing release.yaml means every default applies.
func LoadProjectFrom(root string) (*Project, error) {
	cfg, warnings, err := config.LoadOrDefault(configPath(root))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Project{
		Root:     root,
		Config:   cfg,
		Warnings: warnings,
	}, nil
}

// ConfigPath returns the path of the project's configuration file.
func (p *Project) ConfigPath() string {
	return configPath(p.Root)
}

// MetadataPath returns the absolute path to the metadata file holding the version.
func (p *Project) MetadataPath() string {
	return filepath.Join(p.Root, p.Config.Metadata.Path)
}

// DistDir returns the absolute path to the build output directory.
func (p *Project) DistDir() string {
	return filepath.Join(p.Root, p.Config.Build.DistDir)
}

// configPath honours DO_CONFIG; relative overrides resolve against root.
func configPath(root string) string {
	if override := os.Getenv(ConfigEnvVar); override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(root, override)
	}
	return filepath.Join(root, ConfigFileName)
}
