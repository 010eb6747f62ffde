// Package model defines the domain types and value objects for the
// appstrap CLIs.
//
// This package contains pure data structures with no external dependencies.
// The central entity is RuntimeEnv, a handle to an isolated Python virtual
// environment discovered on disk. There are no persistent state files owned
// by this package — a RuntimeEnv is reconstructed from the filesystem on
// every invocation.
//
// The package also defines exit codes (ExitCode), the failure taxonomy
// (FailureKind) and a custom error type (CLIError) that carries the failure
// kind for proper OS process exit handling.
package model
