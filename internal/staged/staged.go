// Package staged enumerates the files staged for the next commit.
package staged

import (
	"context"
	"iter"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Veraticus/githooks/internal/git"
)

// Enumerator lists staged files that still exist on disk.
type Enumerator struct {
	repo git.Repository
	fs   afero.Fs
}

// NewEnumerator creates an enumerator over repo, checking existence on fs.
func NewEnumerator(repo git.Repository, fs afero.Fs) *Enumerator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Enumerator{repo: repo, fs: fs}
}

// Files queries git once and returns a sequence of absolute paths with the
// given suffix (e.g. ".py") that exist on disk. An empty suffix matches every
// path. Staged paths that were deleted or renamed away are skipped.
//
// The sequence reflects a single query; call Files again to re-read the index.
func (e *Enumerator) Files(ctx context.Context, suffix string) (iter.Seq[string], error) {
	root, err := e.repo.Root(ctx)
	if err != nil {
		return nil, err
	}
	paths, err := e.repo.StagedPaths(ctx)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		for _, p := range paths {
			if !MatchSuffix(p, suffix) {
				continue
			}
			abs := p
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(root, filepath.FromSlash(p))
			}
			if ok, statErr := isFile(e.fs, abs); statErr != nil || !ok {
				continue
			}
			if !yield(abs) {
				return
			}
		}
	}, nil
}

// MatchSuffix reports whether path's extension equals suffix. The leading dot
// on suffix is optional.
func MatchSuffix(path, suffix string) bool {
	if suffix == "" {
		return true
	}
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return filepath.Ext(path) == suffix
}

func isFile(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
