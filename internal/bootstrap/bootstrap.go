// Package bootstrap wires the githooks dispatcher into a repository's hook
// slots.
//
// For every event folder under the hook-definitions tree it places two
// symlinks in .git/hooks:
//
//	.git/hooks/<event>   -> dispatcher executable
//	.git/hooks/<event>.d -> <tree>/<event>
//
// Existing entries are never overwritten.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Veraticus/githooks/internal/git"
	"github.com/Veraticus/githooks/internal/hooks"
	"github.com/Veraticus/githooks/internal/logging"
	"github.com/Veraticus/githooks/internal/shared"
)

const (
	hooksDirMode = 0o755
	// MirrorSuffix is appended to an event name to form its mirror link.
	MirrorSuffix = ".d"
	// LockName is the bootstrap lock file, relative to the .git directory.
	LockName = "githooks.lock"
)

// ErrNoTarget is returned when no dispatcher target was configured.
var ErrNoTarget = errors.New("no dispatcher target")

// LinkFs is a filesystem that can create and inspect symlinks.
type LinkFs interface {
	afero.Fs
	afero.Lstater
	afero.Linker
	afero.LinkReader
}

// Options configure an Installer.
type Options struct {
	// Verbose gates progress output; warnings are always shown.
	Verbose int
	// DryRun reports what would change without touching the filesystem.
	DryRun bool
	// HooksTree is the hook-definitions directory, absolute or relative to
	// the repository root.
	HooksTree string
	// Target is the dispatcher every hook slot links to.
	Target string
}

// Skip records an occupied slot that was left alone.
type Skip struct {
	Path   string
	Reason string
}

// Result lists what a run did, by path.
type Result struct {
	Created   []string
	Removed   []string
	Unchanged []string
	Skipped   []Skip
	// Ignored holds tree folders that are not git hook events.
	Ignored []string
}

// Changed reports whether the run created or removed anything.
func (r *Result) Changed() bool {
	return len(r.Created) > 0 || len(r.Removed) > 0
}

// Installer places and removes hook symlinks.
type Installer struct {
	repo git.Repository
	fs   LinkFs
	out  io.Writer
	opts Options
}

// New creates an Installer. A nil fs means the OS filesystem.
func New(repo git.Repository, fs LinkFs, out io.Writer, opts Options) *Installer {
	if fs == nil {
		fs = &afero.OsFs{}
	}
	if out == nil {
		out = io.Discard
	}
	return &Installer{repo: repo, fs: fs, out: out, opts: opts}
}

// layout holds the resolved paths for one repository.
type layout struct {
	root     string
	gitDir   string
	hooksDir string
	tree     string
}

func (in *Installer) resolve(ctx context.Context) (layout, error) {
	root, err := in.repo.Root(ctx)
	if err != nil {
		return layout{}, fmt.Errorf("resolve repository root: %w", err)
	}
	tree := in.opts.HooksTree
	if !filepath.IsAbs(tree) {
		tree = filepath.Join(root, tree)
	}
	gitDir := filepath.Join(root, ".git")
	return layout{
		root:     root,
		gitDir:   gitDir,
		hooksDir: filepath.Join(gitDir, "hooks"),
		tree:     tree,
	}, nil
}

// Install links every event folder of the hooks tree into .git/hooks. It is
// idempotent: a second run finds every slot unchanged. Links created before
// an error are left in place.
func (in *Installer) Install(ctx context.Context) (*Result, error) {
	if in.opts.Target == "" {
		return nil, ErrNoTarget
	}
	l, err := in.resolve(ctx)
	if err != nil {
		return nil, err
	}
	log := logging.Get(ctx).With("op", "install")

	if !in.opts.DryRun {
		if err := in.fs.MkdirAll(l.hooksDir, hooksDirMode); err != nil {
			return nil, fmt.Errorf("create hooks directory: %w", err)
		}
		lock := hooks.NewLockManager(in.fs, filepath.Join(l.gitDir, LockName), 0)
		if err := lock.Acquire(ctx); err != nil {
			return nil, err
		}
		defer func() { _ = lock.Release() }()
	}

	folders, err := in.eventFolders(l.tree)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, f := range folders {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !git.IsHookEvent(f) {
			shared.Warnf(in.out, "%s is not a git hook event; skipping", filepath.Join(l.tree, f))
			res.Ignored = append(res.Ignored, f)
			continue
		}
		slot := filepath.Join(l.hooksDir, f)
		log.Debug("placing hook", "event", f, "slot", slot)
		if err := in.place(slot, in.opts.Target, res); err != nil {
			return res, err
		}
		if err := in.place(slot+MirrorSuffix, filepath.Join(l.tree, f), res); err != nil {
			return res, err
		}
	}

	verb := "installed"
	if in.opts.DryRun {
		verb = "would be installed"
	}
	shared.Successf(in.out, "Hooks %s: %d created, %d unchanged, %d skipped",
		verb, len(res.Created), len(res.Unchanged), len(res.Skipped))
	return res, nil
}

// eventFolders returns the names of directories directly under tree, sorted.
// A missing tree yields none.
func (in *Installer) eventFolders(tree string) ([]string, error) {
	entries, err := afero.ReadDir(in.fs, tree)
	if errors.Is(err, fs.ErrNotExist) {
		shared.Warnf(in.out, "no hook definitions at %s", tree)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read hooks tree: %w", err)
	}

	var names []string
	for _, e := range entries {
		info := os.FileInfo(e)
		if e.Mode()&os.ModeSymlink != 0 {
			if info, err = in.fs.Stat(filepath.Join(tree, e.Name())); err != nil {
				continue
			}
		}
		if info.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// place creates slot -> dest unless something already occupies slot.
func (in *Installer) place(slot, dest string, res *Result) error {
	st, err := in.inspect(slot, dest)
	if err != nil {
		return err
	}

	switch st.State {
	case StateInstalled:
		shared.Echo(in.out, in.opts.Verbose, 2, shared.DimStyle.Render("unchanged "+slot))
		res.Unchanged = append(res.Unchanged, slot)
		return nil
	case StateForeign:
		shared.Warnf(in.out, "%s already exists (%s); leaving it untouched", slot, st.Detail)
		res.Skipped = append(res.Skipped, Skip{Path: slot, Reason: st.Detail})
		return nil
	}

	if in.opts.DryRun {
		shared.Echo(in.out, in.opts.Verbose, 1, fmt.Sprintf("would link %s -> %s", slot, dest))
		res.Created = append(res.Created, slot)
		return nil
	}
	if err := in.fs.SymlinkIfPossible(dest, slot); err != nil {
		return fmt.Errorf("link %s: %w", slot, err)
	}
	shared.Echo(in.out, in.opts.Verbose, 1, fmt.Sprintf("linked %s -> %s", slot, shared.Colorize(shared.Green, dest)))
	res.Created = append(res.Created, slot)
	return nil
}

// Uninstall removes hook and mirror symlinks that point at the dispatcher
// target or into the hooks tree. Everything else in .git/hooks is left alone.
func (in *Installer) Uninstall(ctx context.Context) (*Result, error) {
	l, err := in.resolve(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(in.fs, l.hooksDir)
	if errors.Is(err, fs.ErrNotExist) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read hooks directory: %w", err)
	}

	if !in.opts.DryRun {
		lock := hooks.NewLockManager(in.fs, filepath.Join(l.gitDir, LockName), 0)
		if err := lock.Acquire(ctx); err != nil {
			return nil, err
		}
		defer func() { _ = lock.Release() }()
	}

	res := &Result{}
	for _, e := range entries {
		if e.Mode()&os.ModeSymlink == 0 {
			continue
		}
		slot := filepath.Join(l.hooksDir, e.Name())
		dest, err := in.fs.ReadlinkIfPossible(slot)
		if err != nil {
			return res, fmt.Errorf("read link %s: %w", slot, err)
		}
		if !in.owns(l, dest) {
			continue
		}
		if in.opts.DryRun {
			shared.Echo(in.out, in.opts.Verbose, 1, "would remove "+slot)
		} else {
			if err := in.fs.Remove(slot); err != nil {
				return res, fmt.Errorf("remove %s: %w", slot, err)
			}
			shared.Echo(in.out, in.opts.Verbose, 1, "removed "+slot)
		}
		res.Removed = append(res.Removed, slot)
	}

	shared.Successf(in.out, "Hooks removed: %d", len(res.Removed))
	return res, nil
}

func (in *Installer) owns(l layout, dest string) bool {
	if in.opts.Target != "" && dest == in.opts.Target {
		return true
	}
	rel, err := filepath.Rel(l.tree, dest)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
