// Package main implements the githooks CLI and hook dispatcher.
package main

import (
	"os"
	"path/filepath"

	"github.com/Veraticus/githooks/internal/cli"
	"github.com/Veraticus/githooks/internal/dispatch"
	"github.com/Veraticus/githooks/internal/git"
)

func main() {
	args := os.Args[1:]

	// Invoked by git through .git/hooks/<event>: dispatch that event, finding
	// the <event>.d mirror next to the invocation path.
	if event := dispatch.EventFromArgv0(os.Args[0], git.IsHookEvent); event != "" {
		hooksDir, err := filepath.Abs(filepath.Dir(os.Args[0]))
		if err != nil {
			hooksDir = filepath.Dir(os.Args[0])
		}
		args = append([]string{"run", "--hooks-dir", hooksDir, event}, args...)
	}

	os.Exit(cli.Main(cli.NewRootCmd(), args))
}
