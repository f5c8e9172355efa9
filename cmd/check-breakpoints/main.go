// Package main implements check-breakpoints, a pre-commit hook that rejects
// staged files calling a debugger.
package main

import (
	"os"

	"github.com/Veraticus/githooks/internal/checks"
	"github.com/Veraticus/githooks/internal/cli"
)

func main() {
	args := append([]string{"check", checks.BreakpointsName}, os.Args[1:]...)
	os.Exit(cli.Main(cli.NewRootCmd(), args))
}
