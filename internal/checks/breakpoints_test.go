package checks

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakpointsFlagged(t *testing.T) {
	b := NewBreakpoints(afero.NewMemMapFs(), "", "", nil)

	// A '#' inside a string literal still ends the inspected portion.
	tests := map[string]struct {
		line string
		want bool
	}{
		"call after statement":          {"x = 1; set_trace()", true},
		"only inside comment":           {"# set_trace() disabled", false},
		"call before trailing comment":  {"set_trace()  # debug", true},
		"builtin breakpoint":            {"    breakpoint()", true},
		"pdb module call":               {"import pdb; pdb.set_trace()", true},
		"plain code":                    {"print('hello')", false},
		"indented comment":              {"    # breakpoint()", false},
		"hash inside string hides call": {"s = '#'; set_trace()", false},
		"empty line":                    {"", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Flagged(tc.line))
		})
	}
}

func TestBreakpointsCustomMarkers(t *testing.T) {
	b := NewBreakpoints(afero.NewMemMapFs(), ".js", "//", []string{"debugger"})

	assert.True(t, b.Flagged("  debugger;"))
	assert.False(t, b.Flagged("  // debugger;"))
	assert.False(t, b.Flagged("set_trace()"))
	assert.Equal(t, ".js", b.Suffix())
}

func TestBreakpointsCheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := strings.Join([]string{
		"import pdb",
		"x = 1; set_trace()",
		"# set_trace() disabled",
		"def f():",
		"    breakpoint()  # remove me",
		"",
	}, "\n")
	require.NoError(t, afero.WriteFile(fs, "/repo/app.py", []byte(src), 0o644))

	var out bytes.Buffer
	n, err := NewBreakpoints(fs, "", "", nil).Check(context.Background(), "/repo/app.py", &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "/repo/app.py:")
	assert.Contains(t, lines[0], "2")
	assert.Contains(t, lines[0], "x = 1; set_trace()")
	assert.Contains(t, lines[1], "5")
	assert.Contains(t, lines[1], "breakpoint()  # remove me")
}

func TestBreakpointsCheckLongLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	long := "s = '" + strings.Repeat("x", 2<<20) + "'"
	src := long + "\r\nset_trace()\n" + long + "; breakpoint()"
	require.NoError(t, afero.WriteFile(fs, "/repo/generated.py", []byte(src), 0o644))

	var out bytes.Buffer
	n, err := NewBreakpoints(fs, "", "", nil).Check(context.Background(), "/repo/generated.py", &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, out.String(), "set_trace()")
	assert.NotContains(t, out.String(), "\r")
}

func TestBreakpointsCheckLastLineWithoutNewline(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/tail.py", []byte("x = 1\npdb.set_trace()"), 0o644))

	n, err := NewBreakpoints(fs, "", "", nil).Check(context.Background(), "/repo/tail.py", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBreakpointsCheckMissingFile(t *testing.T) {
	_, err := NewBreakpoints(afero.NewMemMapFs(), "", "", nil).
		Check(context.Background(), "/nope.py", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunEnumeratesEveryFileBeforeRejecting(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/r/a.py", []byte("set_trace()\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/r/b.py", []byte("ok = True\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/r/c.py", []byte("breakpoint()\nbreakpoint()\n"), 0o644))

	var out bytes.Buffer
	n, err := Run(context.Background(), NewBreakpoints(fs, "", "", nil),
		slices.Values([]string{"/r/a.py", "/r/b.py", "/r/c.py"}), &out)

	assert.Equal(t, 3, n)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Contains(t, out.String(), "/r/a.py")
	assert.Contains(t, out.String(), "/r/c.py")
	assert.Contains(t, out.String(), RejectionMessage(3))
}

func TestRunClean(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/r/a.py", []byte("# set_trace()\n"), 0o644))

	var out bytes.Buffer
	n, err := Run(context.Background(), NewBreakpoints(fs, "", "", nil), slices.Values([]string{"/r/a.py"}), &out)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out.String())
}
