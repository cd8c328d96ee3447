// Package main is the entry point for the wysiwyg command.
package main

import (
	"os"

	"github.com/dshills/wysiwyg/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.Version = version
	cli.GitCommit = commit
	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
