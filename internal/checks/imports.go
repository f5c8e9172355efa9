package checks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/githooks/internal/hooks"
)

// ImportsName is the registry identifier of the import-order checker.
const ImportsName = "imports"

// DefaultImportsCommand checks a file's import order without rewriting it.
const DefaultImportsCommand = "isort --check-only --diff"

// Imports runs an external import sorter in check mode on each file. A
// nonzero exit is one violation no matter how many imports are misordered.
type Imports struct {
	exec    *hooks.CommandExecutor
	suffix  string
	command string
	dir     string

	resolved bool
	toolErr  error
}

// NewImports creates an import-order checker running command with the file
// path appended. Empty arguments fall back to ".py" and DefaultImportsCommand.
func NewImports(exec *hooks.CommandExecutor, dir, suffix, command string) *Imports {
	if suffix == "" {
		suffix = ".py"
	}
	if command == "" {
		command = DefaultImportsCommand
	}
	return &Imports{
		exec:    exec,
		suffix:  suffix,
		command: command,
		dir:     dir,
	}
}

// Name implements Checker.
func (c *Imports) Name() string { return ImportsName }

// Suffix implements Checker.
func (c *Imports) Suffix() string { return c.suffix }

// Check implements Checker.
func (c *Imports) Check(ctx context.Context, path string, out io.Writer) (int, error) {
	if err := c.resolveTool(); err != nil {
		return 0, err
	}
	command := c.command + " " + hooks.Quote(path)
	res, err := c.exec.Run(ctx, command, hooks.RunOptions{Capture: true, Dir: c.dir})
	if err != nil {
		return 0, err
	}
	if res.Success() {
		return 0, nil
	}

	diag := res.Output + res.Stderr
	if diag != "" {
		_, _ = io.WriteString(out, diag)
		if !strings.HasSuffix(diag, "\n") {
			_, _ = fmt.Fprintln(out)
		}
	} else {
		_, _ = fmt.Fprintf(out, "%s: imports are not sorted\n", path)
	}
	return 1, nil
}

// resolveTool confirms once that the command's program is on PATH.
func (c *Imports) resolveTool() error {
	if c.resolved {
		return c.toolErr
	}
	c.resolved = true
	tool := commandTool(c.command)
	if tool == "" {
		return nil
	}
	if _, err := c.exec.LookPath(tool); err != nil {
		c.toolErr = fmt.Errorf("%w: %s (install it or set imports.command)", ErrToolNotFound, tool)
	}
	return c.toolErr
}

// commandTool returns the program a shell command line starts with, skipping
// leading VAR=value assignments. Quoted words are unquoted.
func commandTool(command string) string {
	rest := command
	for {
		word, tail := firstWord(rest)
		if word == "" {
			return ""
		}
		if name, _, ok := strings.Cut(word, "="); ok && isEnvName(name) {
			rest = tail
			continue
		}
		return word
	}
}

// firstWord splits off the first shell word of s, honoring quotes and
// backslash escapes. An unquoted operator character ends the word.
func firstWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t\n")
	var b strings.Builder
	var quote rune
	escaped := false
	for i, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				b.WriteRune(r)
			}
		case r == '\\':
			escaped = true
		case r == '\'' || r == '"':
			quote = r
		case strings.ContainsRune(" \t\n;&|<>()", r):
			return b.String(), s[i:]
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), ""
}

func isEnvName(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for _, r := range s {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
