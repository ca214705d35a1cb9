// Package main is the entry point for the dapic CLI.
package main

import (
	"context"
	"os"

	"github.com/yaklabco/dapic/internal/cli"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	return cli.Execute(context.Background(), info, os.Args[1:])
}
