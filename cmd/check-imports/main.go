// Package main implements check-imports, a pre-commit hook that rejects
// staged files whose imports are not sorted.
package main

import (
	"os"

	"github.com/Veraticus/githooks/internal/checks"
	"github.com/Veraticus/githooks/internal/cli"
)

func main() {
	args := append([]string{"check", checks.ImportsName}, os.Args[1:]...)
	os.Exit(cli.Main(cli.NewRootCmd(), args))
}
