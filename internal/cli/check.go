package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/githooks/internal/checks"
	"github.com/Veraticus/githooks/internal/dispatch"
	"github.com/Veraticus/githooks/internal/shared"
	"github.com/Veraticus/githooks/internal/staged"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "check <name>",
		Short:     "Run one built-in check over the staged files",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{checks.BreakpointsName, checks.ImportsName},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			builtins := checks.Builtins(s.cfg, s.deps, s.root)
			c, ok := builtins[args[0]]
			if !ok {
				return fmt.Errorf("%w %q (known: %v)", dispatch.ErrUnknownCheck, args[0], checks.Names(builtins))
			}

			enum := staged.NewEnumerator(s.repo, s.deps.FS)
			if _, err := checks.RunStaged(cmd.Context(), c, enum, cmd.OutOrStdout()); err != nil {
				return err
			}
			shared.Echo(cmd.OutOrStdout(), a.verbose, 1, shared.SuccessPrefix+" "+c.Name()+": no violations")
			return nil
		},
	}
}
