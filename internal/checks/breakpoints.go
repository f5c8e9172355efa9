package checks

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/Veraticus/githooks/internal/shared"
)

// BreakpointsName is the registry identifier of the breakpoint detector.
const BreakpointsName = "breakpoints"

// DefaultBreakpointMarkers are the banned debugger calls.
var DefaultBreakpointMarkers = []string{"breakpoint()", "set_trace()", "pdb.set_trace"}

// Breakpoints flags lines that call a debugger before any comment marker.
//
// Everything after the first comment marker on a line is ignored, so
// commented-out debug code does not block a commit. A comment marker inside a
// string literal is treated as a comment too.
type Breakpoints struct {
	fs            afero.Fs
	suffix        string
	commentMarker string
	markers       []string
}

// NewBreakpoints creates a breakpoint detector. Empty arguments fall back to
// ".py", "#" and DefaultBreakpointMarkers.
func NewBreakpoints(fs afero.Fs, suffix, commentMarker string, markers []string) *Breakpoints {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if suffix == "" {
		suffix = ".py"
	}
	if commentMarker == "" {
		commentMarker = "#"
	}
	if len(markers) == 0 {
		markers = DefaultBreakpointMarkers
	}
	return &Breakpoints{
		fs:            fs,
		suffix:        suffix,
		commentMarker: commentMarker,
		markers:       markers,
	}
}

// Name implements Checker.
func (b *Breakpoints) Name() string { return BreakpointsName }

// Suffix implements Checker.
func (b *Breakpoints) Suffix() string { return b.suffix }

// Check implements Checker.
func (b *Breakpoints) Check(_ context.Context, path string, out io.Writer) (int, error) {
	f, err := b.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	count := 0
	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return count, fmt.Errorf("read: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if b.Flagged(line) {
			count++
			_, _ = fmt.Fprintf(out, "%s:%s: %s\n",
				path, shared.WarningStyle.Render(fmt.Sprint(lineNo)), strings.TrimSpace(line))
		}
		if err != nil {
			break
		}
	}
	return count, nil
}

// Flagged reports whether line contains a banned marker before the comment
// marker.
func (b *Breakpoints) Flagged(line string) bool {
	code, _, _ := strings.Cut(line, b.commentMarker)
	for _, m := range b.markers {
		if strings.Contains(code, m) {
			return true
		}
	}
	return false
}
