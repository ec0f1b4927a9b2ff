// Package vcs wraps the git commands used by the release workflow: reading
// pending changes, staging, committing, annotated tagging and pushing.
//
// Every operation shells out to git through a command.Runner so tests can
// substitute a recorder. Output is never parsed except for the pending
// path listings.
package vcs

import (
	"context"
	"sort"
	"strings"

	"github.com/iafisher/do/internal/command"
)

// State is the derived cleanliness of the working tree.
type State struct {
	Pending []string // Modified (unstaged) and staged-but-uncommitted paths
}

// Clean reports whether the working tree has no pending changes.
func (s State) Clean() bool {
	return len(s.Pending) == 0
}

// Git runs git commands inside a repository.
type Git struct {
	root   string
	runner command.Runner
}

// New creates a Git for the repository at root.
func New(root string, runner command.Runner) *Git {
	return &Git{root: root, runner: runner}
}

// PendingPaths returns the union of unstaged and staged changed paths,
// trimmed, de-duplicated and sorted.
func (g *Git) PendingPaths(ctx context.Context) ([]string, error) {
	unstaged, err := g.output(ctx, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	staged, err := g.output(ctx, "diff", "--name-only", "--cached")
	if err != nil {
		return nil, err
	}
	return unionLines(unstaged, staged), nil
}

// State inspects the working tree.
func (g *Git) State(ctx context.Context) (State, error) {
	paths, err := g.PendingPaths(ctx)
	if err != nil {
		return State{}, err
	}
	return State{Pending: paths}, nil
}

// Add stages paths.
func (g *Git) Add(ctx context.Context, paths ...string) error {
	return g.run(ctx, append([]string{"add", "--"}, paths...)...)
}

// Commit records the staged changes with message.
func (g *Git) Commit(ctx context.Context, message string) error {
	return g.run(ctx, "commit", "-m", message)
}

// Tag creates an annotated tag on HEAD.
func (g *Git) Tag(ctx context.Context, name, message string) error {
	return g.run(ctx, "tag", "-a", name, "-m", message)
}

// PushBranches pushes all local branches to remote.
func (g *Git) PushBranches(ctx context.Context, remote string) error {
	return g.run(ctx, "push", remote, "--all")
}

// PushTags pushes all local tags to remote.
func (g *Git) PushTags(ctx context.Context, remote string) error {
	return g.run(ctx, "push", remote, "--tags")
}

// Push pushes all branches, then all tags. git refuses --all together
// with --tags, so these are two invocations.
func (g *Git) Push(ctx context.Context, remote string) error {
	if err := g.PushBranches(ctx, remote); err != nil {
		return err
	}
	return g.PushTags(ctx, remote)
}

func (g *Git) run(ctx context.Context, args ...string) error {
	return g.runner.Run(ctx, command.New(g.root, append([]string{"git"}, args...)...)).AsError()
}

func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	cmd := command.New(g.root, append([]string{"git"}, args...)...)
	cmd.Capture = true
	inv := g.runner.Run(ctx, cmd)
	if err := inv.AsError(); err != nil {
		return "", err
	}
	return inv.Output, nil
}

func unionLines(outputs ...string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, out := range outputs {
		for _, line := range strings.Split(out, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			result = append(result, line)
		}
	}
	sort.Strings(result)
	return result
}
