package cli

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/githooks/internal/bootstrap"
)

func (a *app) installer(s *session) (*bootstrap.Installer, error) {
	target, err := s.dispatcherTarget()
	if err != nil {
		return nil, err
	}
	fs, _ := s.deps.FS.(bootstrap.LinkFs)
	return bootstrap.New(s.repo, fs, s.deps.Stdout, bootstrap.Options{
		Verbose:   a.verbose,
		DryRun:    a.dryRun,
		HooksTree: s.cfg.HooksTree,
		Target:    target,
	}), nil
}

func newInstallCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Link the dispatcher into .git/hooks for every event folder",
		Long: `Install creates .git/hooks/<event> -> githooks and
.git/hooks/<event>.d -> <hooks_tree>/<event> for every folder in the hook tree
named after a git hook event. Existing hooks are never overwritten; re-running
is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			in, err := a.installer(s)
			if err != nil {
				return err
			}
			_, err = in.Install(cmd.Context())
			return err
		},
	}
	cmd.Flags().BoolVarP(&a.dryRun, "dry-run", "n", false, "show what would be linked without changing anything")
	return cmd
}

func newUninstallCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove hook links created by install",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			in, err := a.installer(s)
			if err != nil {
				return err
			}
			_, err = in.Uninstall(cmd.Context())
			return err
		},
	}
	cmd.Flags().BoolVarP(&a.dryRun, "dry-run", "n", false, "show what would be removed without changing anything")
	return cmd
}
