// Package checks implements the pre-commit violation checkers.
package checks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/Veraticus/githooks/internal/shared"
	"github.com/Veraticus/githooks/internal/staged"
)

// ErrRejected is returned when a checker found at least one violation.
var ErrRejected = errors.New("commit rejected")

// ErrToolNotFound is returned when a checker's external tool is not on PATH.
var ErrToolNotFound = errors.New("tool not found")

// Checker inspects a single staged file.
type Checker interface {
	// Name identifies the checker in the hook registry.
	Name() string
	// Suffix is the file extension the checker applies to.
	Suffix() string
	// Check inspects path, prints a diagnostic for every violation to out and
	// returns the number of violations found.
	Check(ctx context.Context, path string, out io.Writer) (int, error)
}

// Run applies c to every file and prints a summary. Every file is inspected
// before a rejection is returned. An error from Check other than a violation
// aborts immediately.
func Run(ctx context.Context, c Checker, files iter.Seq[string], out io.Writer) (int, error) {
	total := 0
	for path := range files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := c.Check(ctx, path, out)
		if err != nil {
			return total, fmt.Errorf("%s: %s: %w", c.Name(), path, err)
		}
		total += n
	}

	if total > 0 {
		_, _ = fmt.Fprintln(out, shared.ErrorStyle.Render(RejectionMessage(total)))
		return total, fmt.Errorf("%s: %w: %d violation(s)", c.Name(), ErrRejected, total)
	}
	return 0, nil
}

// RejectionMessage is the uniform message printed when violations were found.
func RejectionMessage(n int) string {
	return fmt.Sprintf("%d violation(s) found; commit rejected", n)
}

// RunStaged runs c over the staged files matching its suffix.
func RunStaged(ctx context.Context, c Checker, enum *staged.Enumerator, out io.Writer) (int, error) {
	files, err := enum.Files(ctx, c.Suffix())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.Name(), err)
	}
	return Run(ctx, c, files, out)
}
