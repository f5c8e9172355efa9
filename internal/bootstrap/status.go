package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/Veraticus/githooks/internal/git"
)

// State describes what occupies a hook slot.
type State string

const (
	StateInstalled State = "installed"
	StateForeign   State = "foreign"
	StateMissing   State = "missing"
)

// SlotStatus describes one path in .git/hooks.
type SlotStatus struct {
	Path  string
	State State
	// Detail explains a foreign slot.
	Detail string
}

// EventStatus is the hook and mirror state of one event.
type EventStatus struct {
	Event string
	// Defined is true when the hooks tree has a folder for the event.
	Defined bool
	Hook    SlotStatus
	Mirror  SlotStatus
}

// inspect reports whether slot is missing, already links to dest, or holds
// something else.
func (in *Installer) inspect(slot, dest string) (SlotStatus, error) {
	st := SlotStatus{Path: slot}

	info, _, err := in.fs.LstatIfPossible(slot)
	if errors.Is(err, fs.ErrNotExist) {
		st.State = StateMissing
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("inspect %s: %w", slot, err)
	}

	st.State = StateForeign
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		got, err := in.fs.ReadlinkIfPossible(slot)
		if err != nil {
			return st, fmt.Errorf("read link %s: %w", slot, err)
		}
		if got == dest {
			st.State = StateInstalled
			return st, nil
		}
		st.Detail = "symlink to " + got
	case info.IsDir():
		st.Detail = "directory"
	default:
		st.Detail = "regular file"
	}
	return st, nil
}

// Status reports every event that has a folder in the hooks tree or an entry
// in .git/hooks, sorted by event name.
func (in *Installer) Status(ctx context.Context) ([]EventStatus, error) {
	l, err := in.resolve(ctx)
	if err != nil {
		return nil, err
	}

	folders, err := in.eventFolders(l.tree)
	if err != nil {
		return nil, err
	}
	defined := make(map[string]bool, len(folders))
	for _, f := range folders {
		defined[f] = true
	}

	events := make(map[string]bool)
	for _, f := range folders {
		events[f] = true
	}
	if entries, err := afero.ReadDir(in.fs, l.hooksDir); err == nil {
		for _, e := range entries {
			events[e.Name()] = true
		}
	}

	names := make([]string, 0, len(events))
	for e := range events {
		if git.IsHookEvent(e) {
			names = append(names, e)
		}
	}
	sort.Strings(names)

	out := make([]EventStatus, 0, len(names))
	for _, e := range names {
		slot := filepath.Join(l.hooksDir, e)
		hook, err := in.inspect(slot, in.opts.Target)
		if err != nil {
			return nil, err
		}
		mirror, err := in.inspect(slot+MirrorSuffix, filepath.Join(l.tree, e))
		if err != nil {
			return nil, err
		}
		out = append(out, EventStatus{Event: e, Defined: defined[e], Hook: hook, Mirror: mirror})
	}
	return out, nil
}
