// Package release provides the publish workflow: record a new version,
// commit and tag it, push, then build and upload the distribution.
package release

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iafisher/do/internal/command"
	"github.com/iafisher/do/internal/config"
	"github.com/iafisher/do/internal/dist"
	doerrors "github.com/iafisher/do/internal/errors"
	"github.com/iafisher/do/internal/logging"
	"github.com/iafisher/do/internal/output"
	"github.com/iafisher/do/internal/vcs"
	"github.com/iafisher/do/internal/version"
)

// Options configures publish behavior.
type Options struct {
	Version string // Requested version, with or without a leading "v"
	DryRun  bool   // Run the read-only checks, then print the plan
}

// Request carries the values derived while publishing. It is created at the
// start of Publish and passed to every step.
type Request struct {
	Requested string // Normalized requested version
	Current   string // Version recorded in the metadata file
	Tag       string // Tag name for Requested
	State     vcs.State
}

// Confirmer asks the operator for a yes/no answer. Confirm must return
// once ctx is canceled.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// StepResult records the outcome of one publish step.
type StepResult struct {
	Step string
	Err  error
}

// Publisher handles the publish workflow.
type Publisher struct {
	root      string
	config    *config.Config
	git       *vcs.Git
	confirmer Confirmer
	builder   *dist.Builder
	uploader  *dist.Uploader
	out       *output.Writer
	logger    *log.Logger
	results   []StepResult
}

// NewPublisher creates a Publisher for the project at root. cfg must have
// defaults applied.
func NewPublisher(root string, cfg *config.Config, runner command.Runner, confirmer Confirmer) *Publisher {
	return &Publisher{
		root:      root,
		config:    cfg,
		git:       vcs.New(root, runner),
		confirmer: confirmer,
		builder:   dist.NewBuilder(root, cfg.Build.DistDir, cfg.Build.Command, runner),
		uploader:  dist.NewUploader(root, cfg.Build.DistDir, cfg.Upload.Command, runner),
		out:       output.New(),
		logger:    logging.Discard(),
	}
}

// SetOutput sets a custom output writer (for testing).
func (p *Publisher) SetOutput(out *output.Writer) {
	p.out = out
}

// SetLogger sets the diagnostic logger.
func (p *Publisher) SetLogger(logger *log.Logger) {
	p.logger = logger
}

// Results returns the outcome of every step run by the last Publish call.
func (p *Publisher) Results() []StepResult {
	return append([]StepResult(nil), p.results...)
}

// step is one unit of the workflow. Steps with a describe func are numbered
// and announced before they run.
type step struct {
	name     string
	describe func(req *Request) string
	run      func(ctx context.Context, req *Request) error
}

// Step names, in execution order.
const (
	StepNormalize    = "normalize"
	StepCompare      = "compare"
	StepCheckClean   = "check clean"
	StepConfirm      = "confirm"
	StepWriteVersion = "write version"
	StepCommit       = "commit"
	StepTag          = "tag"
	StepPush         = "push"
	StepBuild        = "build"
	StepUpload       = "upload"
)

// checkSteps never mutate the repository and also run in dry-run mode.
func (p *Publisher) checkSteps() []step {
	return []step{
		{StepNormalize, nil, p.normalize},
		{StepCompare, nil, p.compare},
		{StepCheckClean, nil, p.checkClean},
	}
}

func (p *Publisher) mutatingSteps() []step {
	return []step{
		{StepConfirm, nil, p.confirm},
		{StepWriteVersion, p.describeWriteVersion, p.writeVersion},
		{StepCommit, p.describeCommit, p.commit},
		{StepTag, p.describeTag, p.tag},
		{StepPush, p.describePush, p.push},
		{StepBuild, p.describeBuild, p.build},
		{StepUpload, p.describeUpload, p.upload},
	}
}

// Publish runs the workflow and stops at the first failing step. Completed
// steps are never reverted.
func (p *Publisher) Publish(ctx context.Context, opts Options) error {
	p.results = nil
	req := &Request{Requested: opts.Version}

	if err := p.runSteps(ctx, req, p.checkSteps()); err != nil {
		return err
	}
	if opts.DryRun {
		p.dryRun(req)
		return nil
	}
	if err := p.runSteps(ctx, req, p.mutatingSteps()); err != nil {
		return err
	}

	p.out.FinalSuccess("Published %s (tag %s)", req.Requested, req.Tag)
	return nil
}

func (p *Publisher) runSteps(ctx context.Context, req *Request, steps []step) error {
	num := 1
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return p.abort(s.name, doerrors.Canceled(err))
		}
		if s.describe != nil {
			p.out.Step(num, "%s: %s", titleCase(s.name), s.describe(req))
			num++
		}

		p.logger.Debug("publish step", "step", s.name, "requested", req.Requested)
		err := s.run(ctx, req)
		p.results = append(p.results, StepResult{Step: s.name, Err: err})
		if err != nil {
			return p.abort(s.name, err)
		}
	}
	return nil
}

func (p *Publisher) abort(name string, err error) error {
	p.out.FinalFailure("Publish aborted at step %q", titleCase(name))
	return doerrors.InStep(name, err)
}

// dryRun prints what the mutating steps would do.
func (p *Publisher) dryRun(req *Request) {
	p.out.DryRunStart()
	p.out.Println("Would publish %s (current version is %s):", req.Requested, req.Current)
	num := 1
	for _, s := range p.mutatingSteps() {
		if s.describe == nil {
			continue
		}
		p.out.Step(num, "%s: %s", titleCase(s.name), s.describe(req))
		num++
	}
	p.out.DryRunEnd()
}

func (p *Publisher) normalize(_ context.Context, req *Request) error {
	req.Requested = version.Normalize(req.Requested)
	if err := version.Validate(req.Requested); err != nil {
		return doerrors.Usagef("invalid version %q: expected digits separated by periods, e.g. 1.4.0", req.Requested)
	}
	req.Tag = version.Tag(p.config.Release.TagFormat, req.Requested)
	return nil
}

func (p *Publisher) compare(_ context.Context, req *Request) error {
	current, err := version.Extract(p.metadataPath(), p.config.Metadata.Pattern)
	if err != nil {
		return err
	}
	req.Current = current

	if req.Requested == req.Current {
		return doerrors.VersionUnchanged(req.Current)
	}
	if c, err := version.Compare(req.Requested, req.Current); err == nil && c < 0 {
		p.out.Warning("requested version %s is lower than current version %s", req.Requested, req.Current)
	}
	return nil
}

func (p *Publisher) checkClean(ctx context.Context, req *Request) error {
	state, err := p.git.State(ctx)
	if err != nil {
		return err
	}
	req.State = state
	if !state.Clean() {
		p.out.Errorln("uncommitted changes:")
		p.out.ErrorList(state.Pending)
		return doerrors.DirtyRepository(state.Pending)
	}
	return nil
}

func (p *Publisher) confirm(ctx context.Context, req *Request) error {
	question := fmt.Sprintf("Publish version %s (current version is %s)?", req.Requested, req.Current)
	ok, err := p.confirmer.Confirm(ctx, question)
	if err != nil {
		return err
	}
	if !ok {
		return doerrors.Declined()
	}
	return nil
}

func (p *Publisher) writeVersion(ctx context.Context, req *Request) error {
	if err := version.Rewrite(p.metadataPath(), p.config.Metadata.Pattern, req.Requested); err != nil {
		return err
	}
	return p.git.Add(ctx, p.config.Metadata.Path)
}

func (p *Publisher) describeWriteVersion(req *Request) string {
	return fmt.Sprintf("set %s to %s and stage it", p.config.Metadata.Path, req.Requested)
}

func (p *Publisher) commit(ctx context.Context, req *Request) error {
	return p.git.Commit(ctx, p.commitMessage(req))
}

func (p *Publisher) describeCommit(req *Request) string {
	return fmt.Sprintf("%q", p.commitMessage(req))
}

func (p *Publisher) tag(ctx context.Context, req *Request) error {
	return p.git.Tag(ctx, req.Tag, p.tagMessage(req))
}

func (p *Publisher) describeTag(req *Request) string {
	return fmt.Sprintf("%s %q", req.Tag, p.tagMessage(req))
}

func (p *Publisher) push(ctx context.Context, req *Request) error {
	remote := p.config.Release.Remote
	if err := p.git.Push(ctx, remote); err != nil {
		p.out.Warning("commit and tag %s exist locally but were not pushed to %s", req.Tag, remote)
		p.out.Hint("To finish by hand: git push %s --all && git push %s --tags", remote, remote)
		return err
	}
	return nil
}

func (p *Publisher) describePush(_ *Request) string {
	remote := p.config.Release.Remote
	return fmt.Sprintf("git push %s --all, then git push %s --tags", remote, remote)
}

func (p *Publisher) build(ctx context.Context, _ *Request) error {
	return p.builder.Build(ctx)
}

func (p *Publisher) describeBuild(_ *Request) string {
	return fmt.Sprintf("clear %s/, run %s", p.config.Build.DistDir, p.builder.Command())
}

func (p *Publisher) upload(ctx context.Context, _ *Request) error {
	artifacts, err := p.uploader.Upload(ctx)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		p.out.StepDetail("%s", a)
	}
	return nil
}

func (p *Publisher) describeUpload(_ *Request) string {
	return fmt.Sprintf("%s %s/*", p.uploader.Command(), p.config.Build.DistDir)
}

func (p *Publisher) metadataPath() string {
	return filepath.Join(p.root, p.config.Metadata.Path)
}

func (p *Publisher) commitMessage(req *Request) string {
	return strings.ReplaceAll(p.config.Release.CommitMessage, "{version}", req.Requested)
}

func (p *Publisher) tagMessage(req *Request) string {
	return strings.ReplaceAll(p.config.Release.TagMessage, "{version}", req.Requested)
}

// titleCase formats a step name for display, e.g. "check clean" -> "Check Clean".
func titleCase(name string) string {
	return cases.Title(language.English).String(name)
}
