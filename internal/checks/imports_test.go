package checks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/githooks/internal/hooks"
)

// fakeSorter behaves like an import sorter in check mode: files whose first
// line is "import os" followed by "import sys" are sorted.
const fakeSorter = `#!/bin/sh
if [ "$(head -n 2 "$1" | tr '\n' ' ')" = "import os import sys " ]; then
  exit 0
fi
echo "ERROR: $1 Imports are incorrectly sorted and/or formatted."
exit 1
`

func setupSorter(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	tool := filepath.Join(dir, "fake-isort")
	require.NoError(t, os.WriteFile(tool, []byte(fakeSorter), 0o755))
	return dir, tool
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportsCheck(t *testing.T) {
	dir, tool := setupSorter(t)
	checker := NewImports(hooks.NewCommandExecutor(nil), dir, "", hooks.Quote(tool))
	ctx := context.Background()

	t.Run("sorted file has no violations", func(t *testing.T) {
		path := writeFile(t, dir, "sorted.py", "import os\nimport sys\n")
		var out bytes.Buffer
		n, err := checker.Check(ctx, path, &out)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, out.String())
	})

	t.Run("unsorted file counts once and echoes tool output", func(t *testing.T) {
		path := writeFile(t, dir, "unsorted.py", "import sys\nimport re\nimport os\nimport abc\n")
		var out bytes.Buffer
		n, err := checker.Check(ctx, path, &out)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "ERROR: "+path+" Imports are incorrectly sorted and/or formatted.\n", out.String())
	})

	t.Run("path with spaces is quoted", func(t *testing.T) {
		path := writeFile(t, dir, "my module.py", "import os\nimport sys\n")
		n, err := checker.Check(ctx, path, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestImportsRun(t *testing.T) {
	dir, tool := setupSorter(t)
	checker := NewImports(hooks.NewCommandExecutor(nil), dir, ".py", hooks.Quote(tool))

	good := writeFile(t, dir, "good.py", "import os\nimport sys\n")
	bad1 := writeFile(t, dir, "bad1.py", "import sys\nimport os\n")
	bad2 := writeFile(t, dir, "bad2.py", "import b\nimport a\n")

	var out bytes.Buffer
	n, err := Run(context.Background(), checker, slices.Values([]string{bad1, good, bad2}), &out)
	assert.Equal(t, 2, n)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Equal(t, 2, strings.Count(out.String(), "incorrectly sorted"))
	assert.Contains(t, out.String(), RejectionMessage(2))
}

func TestImportsDefaults(t *testing.T) {
	c := NewImports(hooks.NewCommandExecutor(nil), "", "", "")
	assert.Equal(t, ".py", c.Suffix())
	assert.Equal(t, ImportsName, c.Name())
	assert.Equal(t, DefaultImportsCommand, c.command)
}

func TestImportsMissingTool(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mod.py", "import os\n")
	checker := NewImports(hooks.NewCommandExecutor(nil), dir, "", "githooks-no-such-sorter --check-only")

	var out bytes.Buffer
	n, err := Run(context.Background(), checker, slices.Values([]string{path, path}), &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolNotFound))
	assert.False(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "githooks-no-such-sorter")
	assert.Zero(t, n)
	assert.Empty(t, out.String())
}

func TestCommandTool(t *testing.T) {
	tests := map[string]string{
		"isort --check-only --diff":          "isort",
		"PYTHONPATH=src isort --check-only":  "isort",
		"PATH=/opt/bin:/usr/bin ruff check":  "ruff",
		"'/tmp/my tools/isort' --check-only": "/tmp/my tools/isort",
		"/tmp/my\\ tools/isort -c":           "/tmp/my tools/isort",
		"echo unsorted; false":               "echo",
		"/usr/local/bin/isort":               "/usr/local/bin/isort",
		"":                                   "",
	}
	for command, want := range tests {
		assert.Equal(t, want, commandTool(command), command)
	}
}
