package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Shell is the interpreter command strings are handed to.
const Shell = "/bin/sh"

// RunOptions controls a single command invocation.
type RunOptions struct {
	// Check turns a nonzero exit status into an *ExitError.
	Check bool
	// Capture collects stdout (and stderr) instead of streaming them.
	Capture bool
	// Dir is the working directory; empty means the current one.
	Dir string
}

// Result represents the result of executing a command.
type Result struct {
	ExitCode int
	Output   string
	Stderr   string
}

// Success reports whether the command exited zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// ExitError is returned by Run when Check is set and the command exits nonzero.
type ExitError struct {
	Command  string
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
}

// CommandExecutor runs shell command strings.
type CommandExecutor struct {
	deps *Dependencies
}

// NewCommandExecutor creates a new command executor.
func NewCommandExecutor(deps *Dependencies) *CommandExecutor {
	return &CommandExecutor{deps: deps.WithDefaults()}
}

// Run executes command through the shell and waits for it to finish.
//
// Without Check the exit status is reported in the Result and the returned
// error is non-nil only when the process could not be started.
func (ce *CommandExecutor) Run(ctx context.Context, command string, opts RunOptions) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errors.New("empty command")
	}

	var stdout, stderr bytes.Buffer
	outW, errW := ce.deps.Stdout, ce.deps.Stderr
	if opts.Capture {
		outW, errW = &stdout, &stderr
	}

	err := ce.deps.Runner.RunContext(ctx, opts.Dir, outW, errW, Shell, "-c", command)

	result := &Result{
		Output: decode(stdout.Bytes()),
		Stderr: decode(stderr.Bytes()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("start %q: %w", command, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	if opts.Check && result.ExitCode != 0 {
		return result, &ExitError{
			Command:  command,
			ExitCode: result.ExitCode,
			Output:   result.Output + result.Stderr,
		}
	}

	return result, nil
}

// Output runs command with Check and Capture set and returns its trimmed stdout.
func (ce *CommandExecutor) Output(ctx context.Context, dir, command string) (string, error) {
	res, err := ce.Run(ctx, command, RunOptions{Check: true, Capture: true, Dir: dir})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Output), nil
}

// LookPath resolves an executable name the same way the runner would.
func (ce *CommandExecutor) LookPath(name string) (string, error) {
	return ce.deps.Runner.LookPath(name)
}

// Quote single-quotes s for safe interpolation into a shell command string.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./=:,+@%", r)
}

// decode converts process output to text, replacing invalid UTF-8.
func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
