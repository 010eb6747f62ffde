// Package main is the entry point for the appstrap-launch binary: the
// application launcher.
//
// The binary takes no arguments. It locates the runtime environment
// provisioned by appstrap-install in the current directory and starts the
// application inside it, blocking until the application exits. All
// functionality lives in the internal/cli package; this file only injects
// build metadata and executes the command.
package main

import (
	"github.com/shinji-kodama/appstrap/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time
// via ldflags. They provide binary identification for --version output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewLaunchCommand())
}
