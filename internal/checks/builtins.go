package checks

import (
	"sort"

	"github.com/Veraticus/githooks/internal/config"
	"github.com/Veraticus/githooks/internal/hooks"
)

// Builtins returns the built-in checkers configured by cfg, keyed by name.
// Commands run from dir, normally the repository root.
func Builtins(cfg *config.Config, deps *hooks.Dependencies, dir string) map[string]Checker {
	deps = deps.WithDefaults()
	exec := hooks.NewCommandExecutor(deps)

	bp := NewBreakpoints(deps.FS, cfg.Breakpoints.Suffix, cfg.Breakpoints.CommentMarker, cfg.Breakpoints.Markers)
	im := NewImports(exec, dir, cfg.Imports.Suffix, cfg.Imports.Command)

	return map[string]Checker{
		bp.Name(): bp,
		im.Name(): im,
	}
}

// Names returns the keys of m, sorted.
func Names(m map[string]Checker) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
