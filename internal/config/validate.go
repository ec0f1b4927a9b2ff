package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iafisher/do/internal/version"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied for errors the
// schema cannot express.
func Validate(cfg *Config) error {
	if err := validateMetadata(cfg.Metadata); err != nil {
		return err
	}
	if err := validateRelease(cfg.Release); err != nil {
		return err
	}
	if err := validateBuild(cfg.Build); err != nil {
		return err
	}
	if err := validateCommand("upload.command", cfg.Upload.Command); err != nil {
		return err
	}
	return validateCommand("test.command", cfg.Test.Command)
}

func validateMetadata(m *MetadataConfig) error {
	if filepath.IsAbs(m.Path) {
		return &ValidationError{Field: "metadata.path", Message: "must be relative to the project root"}
	}
	if err := version.CheckPattern(m.Pattern); err != nil {
		return &ValidationError{Field: "metadata.pattern", Message: err.Error()}
	}
	return nil
}

func validateRelease(r *ReleaseConfig) error {
	if strings.ContainsAny(r.Remote, " \t\n") {
		return &ValidationError{Field: "release.remote", Message: "must not contain whitespace"}
	}
	if !strings.Contains(r.TagFormat, "{version}") {
		return &ValidationError{Field: "release.tag_format", Message: `must contain "{version}"`}
	}
	if strings.ContainsAny(r.TagFormat, " \t\n~^:?*[\\") {
		return &ValidationError{Field: "release.tag_format", Message: "contains characters not allowed in git tag names"}
	}
	return nil
}

func validateBuild(b *BuildConfig) error {
	clean := filepath.Clean(b.DistDir)
	if filepath.IsAbs(clean) {
		return &ValidationError{Field: "build.dist_dir", Message: "must be relative to the project root"}
	}
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return &ValidationError{Field: "build.dist_dir", Message: "must be a subdirectory of the project root"}
	}
	return validateCommand("build.command", b.Command)
}

func validateCommand(field string, argv []string) error {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return &ValidationError{Field: field, Message: "must name an executable"}
	}
	return nil
}
