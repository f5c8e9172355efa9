// Package release builds, tests and uploads a Python distribution.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Veraticus/githooks/internal/config"
	"github.com/Veraticus/githooks/internal/git"
	"github.com/Veraticus/githooks/internal/hooks"
	"github.com/Veraticus/githooks/internal/logging"
	"github.com/Veraticus/githooks/internal/shared"
)

// ErrNotMaster is returned when a production release is attempted from a
// branch other than the release branch.
var ErrNotMaster = errors.New("production releases must run on the release branch")

// Stage is one step of the pipeline.
type Stage struct {
	Name    string
	Command string
}

// Options control a single release run.
type Options struct {
	// Verbose is the -v count: 1 shows stages, 2 shows commands.
	Verbose int
	// Production uploads to the default index instead of the test index.
	Production bool
	// DryRun prints the stages without running or cleaning anything.
	DryRun bool
}

// Pipeline runs branch check, clean, build, test, upload and cleanup.
type Pipeline struct {
	repo git.Repository
	exec *hooks.CommandExecutor
	fs   afero.Fs
	out  io.Writer
	cfg  config.ReleaseConfig
	dir  string
	opts Options
}

// New creates a pipeline working in dir, normally the repository root.
func New(repo git.Repository, deps *hooks.Dependencies, cfg config.ReleaseConfig, dir string, opts Options) *Pipeline {
	deps = deps.WithDefaults()
	return &Pipeline{
		repo: repo,
		exec: hooks.NewCommandExecutor(deps),
		fs:   deps.FS,
		out:  deps.Stdout,
		cfg:  cfg,
		dir:  dir,
		opts: opts,
	}
}

// Stages returns the build, test and upload stages. Test-index uploads get
// --repository <test_repository>.
func (p *Pipeline) Stages() []Stage {
	upload := p.cfg.Upload
	if !p.opts.Production && p.cfg.TestRepository != "" {
		upload += " --repository " + hooks.Quote(p.cfg.TestRepository)
	}
	return []Stage{
		{Name: "build", Command: p.cfg.Build},
		{Name: "test", Command: p.cfg.Test},
		{Name: "upload", Command: upload},
	}
}

// Run executes the pipeline. The first failing stage aborts the rest; build
// artifacts from a failed run are left in place.
func (p *Pipeline) Run(ctx context.Context) error {
	log := logging.Get(ctx).With("op", "release")

	if err := p.checkBranch(ctx); err != nil {
		return err
	}

	index := "test index " + p.cfg.TestRepository
	if p.opts.Production {
		index = "production index"
	}
	meta, err := p.metadata()
	switch {
	case err == nil:
		p.echo(0, fmt.Sprintf("Releasing %s to %s", shared.Colorize(shared.Magenta, meta), index))
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("no project file", "path", p.projectFile())
		p.echo(0, "Releasing to "+index)
	default:
		return err
	}

	if err := p.clean(ctx); err != nil {
		return err
	}

	for _, st := range p.Stages() {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.echo(1, shared.Colorize(shared.Blue, "==> "+st.Name))
		p.echo(2, shared.DimStyle.Render(st.Command))
		if p.opts.DryRun {
			continue
		}
		if _, err := p.exec.Run(ctx, st.Command, hooks.RunOptions{Check: true, Dir: p.dir}); err != nil {
			return fmt.Errorf("%s stage: %w", st.Name, err)
		}
	}

	if err := p.clean(ctx); err != nil {
		return err
	}

	if p.opts.DryRun {
		shared.Successf(p.out, "Dry run complete; nothing was built or uploaded")
		return nil
	}
	shared.Successf(p.out, "Released to %s", index)
	return nil
}

func (p *Pipeline) checkBranch(ctx context.Context) error {
	if !p.opts.Production {
		return nil
	}
	branch, err := p.repo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("determine current branch: %w", err)
	}
	if branch != p.cfg.Branch {
		return fmt.Errorf("%w: on %q, want %q", ErrNotMaster, branch, p.cfg.Branch)
	}
	p.echo(1, "On release branch "+shared.Colorize(shared.Green, branch))
	return nil
}

// clean removes paths matching the configured clean globs under dir.
func (p *Pipeline) clean(ctx context.Context) error {
	for _, pattern := range p.cfg.Clean {
		matches, err := afero.Glob(p.fs, filepath.Join(p.dir, pattern))
		if err != nil {
			return fmt.Errorf("clean %s: %w", pattern, err)
		}
		for _, m := range matches {
			if p.opts.DryRun {
				p.echo(2, "would remove "+m)
				continue
			}
			logging.Get(ctx).Debug("removing artifact", "path", m)
			if err := p.fs.RemoveAll(m); err != nil {
				return fmt.Errorf("remove %s: %w", m, err)
			}
			p.echo(2, "removed "+m)
		}
	}
	return nil
}

func (p *Pipeline) metadata() (Metadata, error) {
	if p.cfg.ProjectFile == "" {
		return Metadata{}, fs.ErrNotExist
	}
	return ReadMetadata(p.fs, p.projectFile())
}

func (p *Pipeline) projectFile() string {
	if filepath.IsAbs(p.cfg.ProjectFile) {
		return p.cfg.ProjectFile
	}
	return filepath.Join(p.dir, p.cfg.ProjectFile)
}

func (p *Pipeline) echo(level int, msg string) {
	shared.Echo(p.out, p.opts.Verbose, level, msg)
}
