// Package cli implements the cobra-based commands for the two appstrap
// executables.
//
// There is deliberately no shared root command with subcommands: the
// provisioner (appstrap-install) and the launcher (appstrap-launch) are
// standalone binaries, each built around a single command defined in its
// own file here. This file layout keeps the shared plumbing — error
// printing, exit-code translation, verbose logging, the fatal-path pause —
// in one place (root.go) while each binary stays a double-clickable
// single-purpose tool.
package cli
