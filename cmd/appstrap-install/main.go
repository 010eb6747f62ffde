// Package main is the entry point for the appstrap-install binary: the
// environment provisioner.
//
// The binary takes no arguments. It provisions an isolated Python runtime
// environment in the current directory and installs the application's
// dependencies into it. All functionality lives in the internal/cli
// package; this file only injects build metadata and executes the command.
//
// Build-time variables (version, commit, date) are injected via ldflags
// by GoReleaser during the release process. During development, they
// default to "dev", "none", and "unknown" respectively.
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

	cli.Execute(cli.NewInstallCommand())
}
