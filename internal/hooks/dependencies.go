// Package hooks provides the process-spawning and filesystem plumbing shared by
// the checkers, the dispatcher, the bootstrapper and the release pipeline.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/afero"
)

// CommandRunner executes external commands.
type CommandRunner interface {
	// RunContext runs name with args in dir. Stdout goes to stdout and stderr to
	// stderr; either may be nil to discard.
	RunContext(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error
	LookPath(file string) (string, error)
}

// OutputWriter writes output to various destinations.
type OutputWriter interface {
	io.Writer
}

// Dependencies holds all external dependencies.
type Dependencies struct {
	FS     afero.Fs
	Runner CommandRunner
	Stdout OutputWriter
	Stderr OutputWriter
}

// Production implementations

type realCommandRunner struct{}

func (r *realCommandRunner) RunContext(
	ctx context.Context,
	dir string,
	stdout, stderr io.Writer,
	name string,
	args ...string,
) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // G204: command strings come from the repository config
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run command %s: %w", name, err)
	}
	return nil
}

func (r *realCommandRunner) LookPath(file string) (string, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return "", fmt.Errorf("look path %s: %w", file, err)
	}
	return path, nil
}

// NewDefaultDependencies creates production dependencies.
func NewDefaultDependencies() *Dependencies {
	return &Dependencies{
		FS:     afero.NewOsFs(),
		Runner: &realCommandRunner{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// WithDefaults fills any nil field of d with its production implementation.
func (d *Dependencies) WithDefaults() *Dependencies {
	if d == nil {
		return NewDefaultDependencies()
	}
	def := NewDefaultDependencies()
	out := *d
	if out.FS == nil {
		out.FS = def.FS
	}
	if out.Runner == nil {
		out.Runner = def.Runner
	}
	if out.Stdout == nil {
		out.Stdout = def.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = def.Stderr
	}
	return &out
}
