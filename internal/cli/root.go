package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the githooks command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "githooks",
		Short: "Install and run repository git hooks",
		Long: `githooks links a dispatcher into .git/hooks for every event folder in the
repository's hook tree, and runs the registered checks and scripts when git
fires the event.

Invoked through a hook symlink (e.g. .git/hooks/pre-commit) it dispatches that
event directly.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: <repo>/githooks.toml)")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase verbosity (repeatable)")
	flags.String("hooks-tree", "", "hook-definitions directory relative to the repository root")
	flags.String("dispatcher", "", "symlink target for hook slots (default: this executable)")

	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newUninstallCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
