// Package config provides loading and validation for release.yaml.
package config

// Config represents the complete release.yaml configuration.
type Config struct {
	Metadata *MetadataConfig `yaml:"metadata,omitempty"`
	Release  *ReleaseConfig  `yaml:"release,omitempty"`
	Build    *BuildConfig    `yaml:"build,omitempty"`
	Upload   *UploadConfig   `yaml:"upload,omitempty"`
	Test     *TestConfig     `yaml:"test,omitempty"`
}

// MetadataConfig locates the recorded version.
type MetadataConfig struct {
	Path    string `yaml:"path,omitempty"`    // Relative to the project root
	Pattern string `yaml:"pattern,omitempty"` // Regex with one capture group around the version
}

// ReleaseConfig configures the commit, tag and push steps.
type ReleaseConfig struct {
	Remote        string `yaml:"remote,omitempty"`
	TagFormat     string `yaml:"tag_format,omitempty"`     // "{version}" is replaced
	CommitMessage string `yaml:"commit_message,omitempty"` // "{version}" is replaced
	TagMessage    string `yaml:"tag_message,omitempty"`    // "{version}" is replaced
}

// BuildConfig configures the package builder.
type BuildConfig struct {
	DistDir string   `yaml:"dist_dir,omitempty"`
	Command []string `yaml:"command,omitempty"`
}

// UploadConfig configures the package uploader. Every artifact path in
// the dist directory is appended to Command.
type UploadConfig struct {
	Command []string `yaml:"command,omitempty"`
}

// TestConfig configures the test runner. Forwarded arguments are appended
// to Command.
type TestConfig struct {
	Command []string `yaml:"command,omitempty"`
}
