package config

// Default configuration values.
const (
	DefaultMetadataPath  = "setup.py"
	DefaultPattern       = `version="([0-9.]+)"`
	DefaultRemote        = "origin"
	DefaultTagFormat     = "v{version}"
	DefaultCommitMessage = "Version {version}"
	DefaultTagMessage    = "Version {version}"
	DefaultDistDir       = "dist"
)

// Default commands, copied into each Config so callers may modify them.
var (
	DefaultBuildCommand  = []string{"python3", "setup.py", "sdist", "bdist_wheel"}
	DefaultUploadCommand = []string{"twine", "upload"}
	DefaultTestCommand   = []string{"python3", "-m", "unittest"}
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyMetadataDefaults(cfg)
	applyReleaseDefaults(cfg)
	applyBuildDefaults(cfg)
	applyUploadDefaults(cfg)
	applyTestDefaults(cfg)
}

func applyMetadataDefaults(cfg *Config) {
	if cfg.Metadata == nil {
		cfg.Metadata = &MetadataConfig{}
	}
	if cfg.Metadata.Path == "" {
		cfg.Metadata.Path = DefaultMetadataPath
	}
	if cfg.Metadata.Pattern == "" {
		cfg.Metadata.Pattern = DefaultPattern
	}
}

func applyReleaseDefaults(cfg *Config) {
	if cfg.Release == nil {
		cfg.Release = &ReleaseConfig{}
	}
	if cfg.Release.Remote == "" {
		cfg.Release.Remote = DefaultRemote
	}
	if cfg.Release.TagFormat == "" {
		cfg.Release.TagFormat = DefaultTagFormat
	}
	if cfg.Release.CommitMessage == "" {
		cfg.Release.CommitMessage = DefaultCommitMessage
	}
	if cfg.Release.TagMessage == "" {
		cfg.Release.TagMessage = DefaultTagMessage
	}
}

func applyBuildDefaults(cfg *Config) {
	if cfg.Build == nil {
		cfg.Build = &BuildConfig{}
	}
	if cfg.Build.DistDir == "" {
		cfg.Build.DistDir = DefaultDistDir
	}
	if len(cfg.Build.Command) == 0 {
		cfg.Build.Command = clone(DefaultBuildCommand)
	}
}

func applyUploadDefaults(cfg *Config) {
	if cfg.Upload == nil {
		cfg.Upload = &UploadConfig{}
	}
	if len(cfg.Upload.Command) == 0 {
		cfg.Upload.Command = clone(DefaultUploadCommand)
	}
}

func applyTestDefaults(cfg *Config) {
	if cfg.Test == nil {
		cfg.Test = &TestConfig{}
	}
	if len(cfg.Test.Command) == 0 {
		cfg.Test.Command = clone(DefaultTestCommand)
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
