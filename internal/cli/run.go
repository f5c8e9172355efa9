package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/githooks/internal/git"
)

func newRunCmd(a *app) *cobra.Command {
	var hooksDir string
	cmd := &cobra.Command{
		Use:   "run <event> [args...]",
		Short: "Run every check and script registered for a hook event",
		Long: `Run dispatches a git hook event: the built-in checks configured for it, in
order, then every executable script in its event folder, sorted by name. All
entries run; the command fails if any of them failed.

Hook symlinks installed by "githooks install" invoke this automatically.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event := args[0]
			if !git.IsHookEvent(event) {
				return fmt.Errorf("%q is not a git hook event", event)
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			d, _ := a.dispatcher(s, hooksDir)
			return d.Dispatch(cmd.Context(), event, args[1:])
		},
	}
	// Hook arguments follow the event verbatim.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&hooksDir, "hooks-dir", "", "directory holding the <event>.d mirrors (default: <repo>/.git/hooks)")
	return cmd
}
