// Package git wraps the handful of git queries the hooks need behind a small
// interface so callers can be tested without a repository.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/githooks/internal/hooks"
)

// Repository is the version-control capability used by the checkers, the
// bootstrapper and the release pipeline.
type Repository interface {
	// StagedPaths lists paths staged for commit, relative to the root.
	StagedPaths(ctx context.Context) ([]string, error)
	// Root returns the absolute path of the working tree root.
	Root(ctx context.Context) (string, error)
	// CurrentBranch returns the checked-out branch, or the short commit hash
	// when HEAD is detached.
	CurrentBranch(ctx context.Context) (string, error)
}

// ErrNotRepository is returned when the working directory is not inside a git
// working tree.
var ErrNotRepository = errors.New("not a git repository")

// CLI implements Repository by shelling out to the git binary.
type CLI struct {
	dir  string
	exec *hooks.CommandExecutor
}

// NewCLI returns a Repository rooted at dir (empty means the current directory).
func NewCLI(dir string, deps *hooks.Dependencies) *CLI {
	return &CLI{
		dir:  dir,
		exec: hooks.NewCommandExecutor(deps),
	}
}

// stagedPathsCommand lists staged paths NUL-terminated and unquoted, so names
// with non-ASCII bytes, quotes or newlines come back verbatim.
const stagedPathsCommand = "git -c core.quotePath=false diff --cached --name-only -z"

// StagedPaths implements Repository.
func (c *CLI) StagedPaths(ctx context.Context) ([]string, error) {
	res, err := c.exec.Run(ctx, stagedPathsCommand, hooks.RunOptions{Check: true, Capture: true, Dir: c.dir})
	if err != nil {
		return nil, fmt.Errorf("list staged files: %w", err)
	}
	return SplitNUL(res.Output), nil
}

// Root implements Repository.
func (c *CLI) Root(ctx context.Context) (string, error) {
	out, err := c.exec.Output(ctx, c.dir, "git rev-parse --show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotRepository, err)
	}
	if out == "" {
		return "", ErrNotRepository
	}
	return out, nil
}

// CurrentBranch implements Repository.
func (c *CLI) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.exec.Output(ctx, c.dir, "git branch --show-current")
	if err == nil && out != "" {
		return out, nil
	}

	// Detached HEAD: fall back to the commit hash.
	out, err = c.exec.Output(ctx, c.dir, "git rev-parse --short HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve current branch: %w", err)
	}
	return out, nil
}

// SplitNUL splits NUL-terminated git output, dropping empty entries.
func SplitNUL(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, "\x00") {
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
