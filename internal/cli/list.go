package cli

import (
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Veraticus/githooks/internal/checks"
	"github.com/Veraticus/githooks/internal/dispatch"
	"github.com/Veraticus/githooks/internal/git"
	"github.com/Veraticus/githooks/internal/output"
	"github.com/Veraticus/githooks/internal/shared"
	"github.com/Veraticus/githooks/internal/staged"
)

// dispatcher builds a Dispatcher for the session. hooksDir overrides where
// the <event>.d mirrors are looked up.
func (a *app) dispatcher(s *session, hooksDir string) (*dispatch.Dispatcher, *dispatch.Registry) {
	reg := dispatch.NewRegistry(s.cfg.Hooks, checks.Builtins(s.cfg, s.deps, s.root))
	if hooksDir == "" {
		hooksDir = s.hooksDir()
	}
	enum := staged.NewEnumerator(s.repo, s.deps.FS)
	return dispatch.New(reg, enum, s.deps, dispatch.Options{
		Dir:       s.root,
		HooksDir:  hooksDir,
		HooksTree: s.cfg.HooksTreePath(s.root),
		Verbose:   a.verbose,
	}), reg
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List what runs for each hook event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			d, reg := a.dispatcher(s, "")
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			lr := output.NewListRenderer()

			source := s.cfg.FileUsed()
			if source == "" {
				source = "(built-in defaults)"
			}
			_, _ = w.Write([]byte(lr.RenderMap("Configuration", map[string]string{
				"config":     source,
				"hooks tree": s.cfg.HooksTreePath(s.root),
			})))
			_, _ = w.Write([]byte(lr.Render("Built-in checks", reg.Builtins())))

			events := map[string]bool{}
			for _, e := range reg.Events() {
				events[e] = true
			}
			if infos, err := afero.ReadDir(s.deps.FS, s.cfg.HooksTreePath(s.root)); err == nil {
				for _, info := range infos {
					if info.IsDir() && git.IsHookEvent(info.Name()) {
						events[info.Name()] = true
					}
				}
			}
			names := make([]string, 0, len(events))
			for e := range events {
				names = append(names, e)
			}
			sort.Strings(names)

			groups := make([]output.Group, 0, len(names))
			for _, e := range names {
				entries, err := d.Resolve(ctx, e)
				if err != nil {
					return err
				}
				items := make([]string, 0, len(entries))
				for _, entry := range entries {
					items = append(items, entry.String())
				}
				groups = append(groups, output.Group{Name: e, Items: items, Empty: "(nothing registered)"})
			}
			if len(groups) == 0 {
				shared.Echo(w, 0, 0, shared.DimStyle.Render("No hook events configured."))
				return nil
			}
			_, _ = w.Write([]byte(lr.RenderGrouped("Hooks", groups)))
			return nil
		},
	}
}
