// Package main implements the release pipeline CLI.
package main

import (
	"os"

	"github.com/Veraticus/githooks/internal/cli"
)

func main() {
	os.Exit(cli.Main(cli.NewReleaseCmd(), os.Args[1:]))
}
