package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafisher/do/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindRootFrom_SetupPy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "setup.py"), `setup(version="0.3")`)

	found, err := FindRootFrom(root)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_FoundFromSubdir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "")
	subdir := filepath.Join(root, "sqliteparser", "tests")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRootFrom(subdir)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_IgnoresDirectoryMarker(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "setup.py"), "")
	inner := filepath.Join(root, "inner")
	if err := os.MkdirAll(filepath.Join(inner, "setup.py"), 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRootFrom(inner)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := FindRootFrom(dir)
	if !errors.Is(err, ErrNoProjectRoot) {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestLoadProjectFrom_Defaults(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "setup.py"), `setup(version="0.3")`)

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if proj.Config.Release.Remote != config.DefaultRemote {
		t.Errorf("Remote = %q, want default", proj.Config.Release.Remote)
	}
	if proj.MetadataPath() != filepath.Join(root, "setup.py") {
		t.Errorf("MetadataPath() = %q", proj.MetadataPath())
	}
	if proj.DistDir() != filepath.Join(root, "dist") {
		t.Errorf("DistDir() = %q", proj.DistDir())
	}
	if proj.ConfigPath() != filepath.Join(root, ConfigFileName) {
		t.Errorf("ConfigPath() = %q", proj.ConfigPath())
	}
}

func TestLoadProjectFrom_ConfigFile(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "build:\n  dist_dir: out\nextra: 1\n")

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if proj.DistDir() != filepath.Join(root, "out") {
		t.Errorf("DistDir() = %q", proj.DistDir())
	}
	if len(proj.Warnings) != 1 || !strings.Contains(proj.Warnings[0], "extra") {
		t.Errorf("Warnings = %v, want one warning about 'extra'", proj.Warnings)
	}
}

func TestLoadProjectFrom_EnvOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ci", "release.yaml"), "release:\n  remote: upstream\n")
	t.Setenv(ConfigEnvVar, filepath.Join("ci", "release.yaml"))

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if proj.Config.Release.Remote != "upstream" {
		t.Errorf("Remote = %q, want upstream", proj.Config.Release.Remote)
	}
	if proj.ConfigPath() != filepath.Join(root, "ci", "release.yaml") {
		t.Errorf("ConfigPath() = %q", proj.ConfigPath())
	}
}

func TestLoadProjectFrom_InvalidConfig(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "build:\n  dist_dir: .\n")

	_, err := LoadProjectFrom(root)
	if err == nil {
		t.Fatal("LoadProjectFrom() expected error")
	}
	if !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("error = %q", err.Error())
	}
}
