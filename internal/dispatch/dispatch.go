package dispatch

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
	"go.uber.org/multierr"

	"github.com/Veraticus/githooks/internal/checks"
	"github.com/Veraticus/githooks/internal/hooks"
	"github.com/Veraticus/githooks/internal/logging"
	"github.com/Veraticus/githooks/internal/shared"
	"github.com/Veraticus/githooks/internal/staged"
)

// Entry is one resolved unit of work for an event.
type Entry struct {
	// ID is the check name, or ScriptPrefix plus the script file name.
	ID string
	// Check is set for built-in checks.
	Check checks.Checker
	// Path is set for scripts.
	Path string
}

func (e Entry) String() string { return e.ID }

// Options locate the per-event script folders.
type Options struct {
	// Dir is the working directory for scripts, normally the repository root.
	Dir string
	// HooksDir is the .git/hooks directory holding the <event>.d mirrors.
	HooksDir string
	// HooksTree is the hook-definitions tree, used when a mirror is missing.
	HooksTree string
	Verbose   int
}

// Dispatcher runs the entries registered for an event.
type Dispatcher struct {
	reg  *Registry
	enum *staged.Enumerator
	fs   afero.Fs
	exec *hooks.CommandExecutor
	out  io.Writer
	opts Options
}

// New creates a dispatcher. enum feeds the built-in checks.
func New(reg *Registry, enum *staged.Enumerator, deps *hooks.Dependencies, opts Options) *Dispatcher {
	deps = deps.WithDefaults()
	return &Dispatcher{
		reg:  reg,
		enum: enum,
		fs:   deps.FS,
		exec: hooks.NewCommandExecutor(deps),
		out:  deps.Stdout,
		opts: opts,
	}
}

// Resolve lists what Dispatch would run for event: configured built-in
// checks in order, then every executable in the event folder sorted by name.
// Non-executable files are skipped with a warning.
func (d *Dispatcher) Resolve(ctx context.Context, event string) ([]Entry, error) {
	var entries []Entry
	for _, id := range d.reg.Checks(event) {
		c, ok := d.reg.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%s: %w %q (known: %s)", event, ErrUnknownCheck, id,
				strings.Join(d.reg.Builtins(), ", "))
		}
		entries = append(entries, Entry{ID: c.Name(), Check: c})
	}

	scripts, err := d.scripts(ctx, event)
	if err != nil {
		return nil, err
	}
	return append(entries, scripts...), nil
}

// ScriptDir returns the folder scripts for event are read from: the mirror
// link when present, otherwise the folder in the hooks tree.
func (d *Dispatcher) ScriptDir(event string) string {
	if d.opts.HooksDir != "" {
		mirror := filepath.Join(d.opts.HooksDir, event+".d")
		if _, err := d.fs.Stat(mirror); err == nil {
			return mirror
		}
	}
	if d.opts.HooksTree != "" {
		return filepath.Join(d.opts.HooksTree, event)
	}
	return ""
}

func (d *Dispatcher) scripts(ctx context.Context, event string) ([]Entry, error) {
	dir := d.ScriptDir(event)
	if dir == "" {
		return nil, nil
	}

	infos, err := afero.ReadDir(d.fs, dir)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Get(ctx).Debug("no script folder", "event", event, "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var entries []Entry
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		if info.Mode()&os.ModeSymlink != 0 {
			if info, err = d.fs.Stat(path); err != nil {
				shared.Warnf(d.out, "skipping %s: %v", path, err)
				continue
			}
		}
		if info.IsDir() {
			continue
		}
		if info.Mode().Perm()&0o111 == 0 {
			shared.Warnf(d.out, "skipping non-executable hook %s (use chmod +x to make it executable)", path)
			continue
		}
		entries = append(entries, Entry{ID: ScriptPrefix + info.Name(), Path: path})
	}
	return entries, nil
}

// Dispatch runs every entry for event with args. All entries run; the
// returned error aggregates every failure. An event with no entries succeeds.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, args []string) error {
	entries, err := d.Resolve(ctx, event)
	if err != nil {
		return err
	}
	log := logging.Get(ctx).With("event", event)
	log.Info("dispatching", "entries", len(entries))

	var errs error
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		shared.Echo(d.out, d.opts.Verbose, 1, shared.InfoStyle.Render("→ "+e.ID))
		if err := d.run(ctx, e, args); err != nil {
			log.Debug("entry failed", "entry", e.ID, "error", err)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (d *Dispatcher) run(ctx context.Context, e Entry, args []string) error {
	if e.Check != nil {
		_, err := checks.RunStaged(ctx, e.Check, d.enum, d.out)
		return err
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, hooks.Quote(e.Path))
	for _, a := range args {
		parts = append(parts, hooks.Quote(a))
	}
	if _, err := d.exec.Run(ctx, strings.Join(parts, " "), hooks.RunOptions{Check: true, Dir: d.opts.Dir}); err != nil {
		return fmt.Errorf("%s: %w", e.ID, err)
	}
	return nil
}

// EventFromArgv0 returns the hook event git invoked the binary as, or "" when
// the invocation name is not a hook event.
func EventFromArgv0(argv0 string, isEvent func(string) bool) string {
	name := filepath.Base(argv0)
	if isEvent(name) {
		return name
	}
	return ""
}
