package cli

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/githooks/internal/release"
)

// NewReleaseCmd creates the standalone release command.
func NewReleaseCmd() *cobra.Command {
	return newReleaseCmd(newApp())
}

func newReleaseCmd(a *app) *cobra.Command {
	var production bool
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Build, test and upload the package",
		Long: `Release cleans old artifacts, builds the distribution, runs the tests and
uploads the result. Without --production the upload goes to the test index;
with it, the current branch must be the release branch (master by default).`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			p := release.New(s.repo, s.deps, s.cfg.Release, s.root, release.Options{
				Verbose:    a.verbose,
				Production: production,
				DryRun:     a.dryRun,
			})
			return p.Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: <repo>/githooks.toml)")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase verbosity (repeatable)")
	flags.BoolVar(&production, "production", false, "upload to the production index")
	flags.BoolVarP(&a.dryRun, "dry-run", "n", false, "print the stages without running them")
	return cmd
}
