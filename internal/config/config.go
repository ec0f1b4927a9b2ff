package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	doerrors "github.com/iafisher/do/internal/errors"
	"github.com/iafisher/do/internal/schema"
)

// Load reads and parses a release.yaml configuration file without
// applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(data)
}

// LoadAndValidate reads a config file, checks it against the embedded
// schema, applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, doerrors.Configf("failed to read config file: %v", err)
	}

	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, doerrors.Configf("%s: %v", path, err)
	}

	cfg, warnings, err := LoadWithWarnings(data)
	if err != nil {
		return nil, nil, doerrors.Configf("%s: %v", path, err)
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, warnings, doerrors.Configf("%s: %v", path, err)
	}

	return cfg, warnings, nil
}

// LoadOrDefault behaves like LoadAndValidate but returns Default() when
// path does not exist.
func LoadOrDefault(path string) (*Config, []string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil, nil
	}
	return LoadAndValidate(path)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}
