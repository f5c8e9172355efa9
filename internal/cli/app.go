// Package cli provides the githooks command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/Veraticus/githooks/internal/checks"
	"github.com/Veraticus/githooks/internal/config"
	"github.com/Veraticus/githooks/internal/git"
	"github.com/Veraticus/githooks/internal/hooks"
	"github.com/Veraticus/githooks/internal/logging"
	"github.com/Veraticus/githooks/internal/shared"
)

// Version is set at build time.
var Version = "0.1.0"

// app holds flag values and injectable collaborators for one invocation.
type app struct {
	configFile string
	verbose    int
	dryRun     bool

	// fs and runner override the OS defaults in tests.
	fs      afero.Fs
	runner  hooks.CommandRunner
	newRepo func(dir string, deps *hooks.Dependencies) git.Repository

	deps *hooks.Dependencies
}

func newApp() *app {
	return &app{
		newRepo: func(dir string, deps *hooks.Dependencies) git.Repository {
			return git.NewCLI(dir, deps)
		},
	}
}

// session is the repository-bound state most commands need.
type session struct {
	repo git.Repository
	root string
	cfg  *config.Config
	deps *hooks.Dependencies
}

// setup builds dependencies and the logger from the command's writers.
func (a *app) setup(cmd *cobra.Command) {
	a.deps = (&hooks.Dependencies{
		FS:     a.fs,
		Runner: a.runner,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}).WithDefaults()

	log := logging.New(cmd.ErrOrStderr(), a.verbose)
	cmd.SetContext(logging.Put(cmd.Context(), log))
}

// open resolves the repository and loads its configuration.
func (a *app) open(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()
	repo := a.newRepo("", a.deps)
	root, err := repo.Root(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.Options{
		File:  a.configFile,
		Dir:   root,
		Flags: cmd.Root().PersistentFlags(),
	})
	if err != nil {
		return nil, err
	}
	if f := cfg.FileUsed(); f != "" {
		logging.Get(ctx).Info("using config file", "path", f)
	}

	return &session{repo: repo, root: root, cfg: cfg, deps: a.deps}, nil
}

// dispatcherTarget is the configured dispatcher or the running executable.
func (s *session) dispatcherTarget() (string, error) {
	if s.cfg.Dispatcher != "" {
		if filepath.IsAbs(s.cfg.Dispatcher) {
			return s.cfg.Dispatcher, nil
		}
		return filepath.Join(s.root, s.cfg.Dispatcher), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate githooks executable: %w", err)
	}
	return filepath.Abs(exe)
}

func (s *session) hooksDir() string {
	return filepath.Join(s.root, ".git", "hooks")
}

// Main runs cmd with args, cancelling on SIGINT or SIGTERM, and returns the
// process exit code. Errors are printed once to stderr.
func Main(cmd *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		report(cmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// report prints every error in err except checker rejections, which have
// already printed their own summary.
func report(w io.Writer, err error) {
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, checks.ErrRejected) {
			continue
		}
		shared.Errorf(w, "%v", e)
	}
}
