package hooks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

type mockCommandRunner struct {
	runFunc func(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error
	calls   [][]string
}

func (m *mockCommandRunner) RunContext(
	ctx context.Context,
	dir string,
	stdout, stderr io.Writer,
	name string,
	args ...string,
) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(ctx, dir, stdout, stderr, name, args...)
	}
	return nil
}

func (m *mockCommandRunner) LookPath(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func TestCommandExecutorRun(t *testing.T) {
	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		ce := NewCommandExecutor(nil)
		res, err := ce.Run(ctx, "echo hello", RunOptions{Capture: true})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if res.Output != "hello\n" {
			t.Errorf("Expected output 'hello\\n', got %q", res.Output)
		}
		if !res.Success() {
			t.Errorf("Expected success, got exit code %d", res.ExitCode)
		}
	})

	t.Run("reports exit code without check", func(t *testing.T) {
		ce := NewCommandExecutor(nil)
		res, err := ce.Run(ctx, "echo partial; exit 3", RunOptions{Capture: true})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if res.ExitCode != 3 {
			t.Errorf("Expected exit code 3, got %d", res.ExitCode)
		}
		if res.Output != "partial\n" {
			t.Errorf("Expected output 'partial\\n', got %q", res.Output)
		}
	})

	t.Run("check turns nonzero exit into ExitError", func(t *testing.T) {
		ce := NewCommandExecutor(nil)
		_, err := ce.Run(ctx, "echo oops >&2; exit 1", RunOptions{Check: true, Capture: true})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Expected *ExitError, got %v", err)
		}
		if exitErr.ExitCode != 1 {
			t.Errorf("Expected exit code 1, got %d", exitErr.ExitCode)
		}
		if exitErr.Output != "oops\n" {
			t.Errorf("Expected output 'oops\\n', got %q", exitErr.Output)
		}
	})

	t.Run("streams to configured writers when not capturing", func(t *testing.T) {
		var stdout bytes.Buffer
		ce := NewCommandExecutor(&Dependencies{Stdout: &stdout, Stderr: io.Discard})
		res, err := ce.Run(ctx, "echo streamed", RunOptions{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if res.Output != "" {
			t.Errorf("Expected no captured output, got %q", res.Output)
		}
		if stdout.String() != "streamed\n" {
			t.Errorf("Expected streamed output, got %q", stdout.String())
		}
	})

	t.Run("passes command to shell with working directory", func(t *testing.T) {
		runner := &mockCommandRunner{}
		var gotDir string
		runner.runFunc = func(_ context.Context, dir string, _, _ io.Writer, _ string, _ ...string) error {
			gotDir = dir
			return nil
		}
		ce := NewCommandExecutor(&Dependencies{Runner: runner})
		if _, err := ce.Run(ctx, "git status", RunOptions{Dir: "/repo"}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if gotDir != "/repo" {
			t.Errorf("Expected dir /repo, got %s", gotDir)
		}
		want := []string{Shell, "-c", "git status"}
		if len(runner.calls) != 1 || len(runner.calls[0]) != 3 {
			t.Fatalf("Expected one call %v, got %v", want, runner.calls)
		}
		for i := range want {
			if runner.calls[0][i] != want[i] {
				t.Errorf("Expected arg %d to be %q, got %q", i, want[i], runner.calls[0][i])
			}
		}
	})

	t.Run("start failure is an error even without check", func(t *testing.T) {
		runner := &mockCommandRunner{
			runFunc: func(context.Context, string, io.Writer, io.Writer, string, ...string) error {
				return errors.New("no such file")
			},
		}
		ce := NewCommandExecutor(&Dependencies{Runner: runner})
		if _, err := ce.Run(ctx, "anything", RunOptions{}); err == nil {
			t.Fatal("Expected error when the process cannot start")
		}
	})

	t.Run("rejects empty command", func(t *testing.T) {
		ce := NewCommandExecutor(nil)
		if _, err := ce.Run(ctx, "  ", RunOptions{}); err == nil {
			t.Fatal("Expected error for empty command")
		}
	})
}

func TestCommandExecutorOutput(t *testing.T) {
	ce := NewCommandExecutor(nil)
	out, err := ce.Output(context.Background(), "", "printf '  /repo/root\\n\\n'")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "/repo/root" {
		t.Errorf("Expected trimmed output '/repo/root', got %q", out)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"src/app.py", "src/app.py"},
		{"my file.py", "'my file.py'"},
		{"it's.py", `'it'\''s.py'`},
		{"$(rm -rf).py", "'$(rm -rf).py'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCommandExecutorLookPath(t *testing.T) {
	ce := NewCommandExecutor(&Dependencies{Runner: &mockCommandRunner{}})
	path, err := ce.LookPath("isort")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if path != "/usr/bin/isort" {
		t.Errorf("Expected /usr/bin/isort, got %q", path)
	}

	if _, err := NewCommandExecutor(nil).LookPath("githooks-no-such-tool"); err == nil {
		t.Error("Expected error for a missing executable")
	}
}
