// Package dist builds distributable packages into an output directory and
// uploads them to a package index.
package dist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/iafisher/do/internal/command"
	doerrors "github.com/iafisher/do/internal/errors"
)

// Builder produces fresh artifacts in an output directory.
type Builder struct {
	root    string
	distDir string
	argv    []string
	runner  command.Runner
}

// NewBuilder creates a Builder that runs argv in root and expects its
// artifacts in distDir (relative to root).
func NewBuilder(root, distDir string, argv []string, runner command.Runner) *Builder {
	return &Builder{root: root, distDir: distDir, argv: argv, runner: runner}
}

// Clean removes the output directory and everything in it.
func (b *Builder) Clean() error {
	path := filepath.Join(b.root, b.distDir)
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to clear %s: %w", b.distDir, err)
	}
	return nil
}

// Build clears the output directory and runs the build command.
func (b *Builder) Build(ctx context.Context) error {
	if err := b.Clean(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(b.root, b.distDir), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", b.distDir, err)
	}
	return b.runner.Run(ctx, command.New(b.root, b.argv...)).AsError()
}

// Command returns the build command line.
func (b *Builder) Command() command.Command {
	return command.New(b.root, b.argv...)
}

// Uploader uploads every artifact in an output directory.
type Uploader struct {
	root    string
	distDir string
	argv    []string
	runner  command.Runner
}

// NewUploader creates an Uploader that appends each artifact path in
// distDir (relative to root) to argv.
func NewUploader(root, distDir string, argv []string, runner command.Runner) *Uploader {
	return &Uploader{root: root, distDir: distDir, argv: argv, runner: runner}
}

// Upload runs the upload command once with all artifacts and returns the
// artifact paths it uploaded.
func (u *Uploader) Upload(ctx context.Context) ([]string, error) {
	artifacts, err := Artifacts(u.root, u.distDir)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, doerrors.Tool(u.Command().String(), doerrors.ExitToolFailure, fmt.Errorf("no artifacts found in %s", u.distDir))
	}

	argv := append(append([]string(nil), u.argv...), artifacts...)
	if err := u.runner.Run(ctx, command.New(u.root, argv...)).AsError(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// Command returns the upload command line without artifact paths.
func (u *Uploader) Command() command.Command {
	return command.New(u.root, u.argv...)
}

// Artifacts lists the regular files directly inside distDir, as paths
// relative to root, sorted. A missing directory yields no artifacts.
func Artifacts(root, distDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, distDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", distDir, err)
	}

	var artifacts []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		artifacts = append(artifacts, filepath.Join(distDir, e.Name()))
	}
	sort.Strings(artifacts)
	return artifacts, nil
}
