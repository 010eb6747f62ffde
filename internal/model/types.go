// Package model defines the domain types for the appstrap CLIs.
//
// All entities in this package represent the small amount of state the
// provisioner and launcher share: the on-disk runtime environment and the
// outcome of an invocation. Both executables reconstruct everything from
// the filesystem at startup; nothing is cached between runs.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EnvSource identifies which of the two conventional directory names a
// runtime environment was discovered under.
//
// Discovery is strictly ordered: the preferred name is checked first, then
// the legacy name. When both directories exist the preferred one always
// wins, deterministically, regardless of filesystem enumeration order.
type EnvSource string

const (
	// SourcePreferred indicates the environment was found under (or created
	// with) the preferred directory name.
	SourcePreferred EnvSource = "preferred"

	// SourceLegacy indicates the environment was found under the legacy
	// directory name kept for installations made by older releases.
	SourceLegacy EnvSource = "legacy"
)

// Conventional directory names for the runtime environment, relative to the
// project root. New environments are always created under EnvNamePreferred;
// EnvNameLegacy is only ever read.
const (
	EnvNamePreferred = "env"
	EnvNameLegacy    = ".venv"
)

// String returns the string representation of EnvSource.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI messages.
func (s EnvSource) String() string {
	return string(s)
}

// IsValid checks whether the EnvSource value is one of the
// predefined valid sources.
func (s EnvSource) IsValid() bool {
	switch s {
	case SourcePreferred, SourceLegacy:
		return true
	default:
		return false
	}
}

// ParseEnvSource converts a string to an EnvSource.
// Returns an error if the string does not match any valid source.
func ParseEnvSource(s string) (EnvSource, error) {
	source := EnvSource(strings.ToLower(s))
	if !source.IsValid() {
		return "", fmt.Errorf("invalid environment source: %q (valid: preferred, legacy)", s)
	}
	return source, nil
}

// RuntimeEnv is a handle to an isolated Python virtual environment on disk.
// It is the primary aggregate entity in the domain.
//
// A RuntimeEnv is only ever constructed by discovery (pyenv.Resolve) or
// creation (pyenv.Create); holding one implies the interpreter binary
// existed at the recorded path when the handle was built.
type RuntimeEnv struct {
	// Root is the absolute path to the project root the environment
	// lives under.
	Root string `json:"root"`

	// Name is the environment directory name relative to Root
	// (EnvNamePreferred or EnvNameLegacy).
	Name string `json:"name"`

	// Source records which conventional name the environment was
	// discovered under.
	Source EnvSource `json:"source"`

	// Python is the absolute path to the environment's interpreter binary
	// (Scripts\python.exe on Windows, bin/python elsewhere).
	Python string `json:"python"`
}

// Dir returns the absolute path of the environment directory.
func (e *RuntimeEnv) Dir() string {
	return filepath.Join(e.Root, e.Name)
}

// String returns a human-readable identification of the environment,
// e.g. `env (preferred)`.
func (e *RuntimeEnv) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Source)
}

// ValidateEnvName checks that a configured environment directory name is a
// plain single path element. Names containing separators or path traversal
// would silently escape the project root during discovery and creation.
func ValidateEnvName(name string) error {
	if name == "" {
		return fmt.Errorf("environment name must not be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid environment name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid environment name %q: must not contain path separators", name)
	}
	return nil
}

// ExitCode defines the CLI exit codes. The external contract is
// deliberately narrow: success is 0 and every failure — configuration
// error, step failure or missing precondition — is 1. Scripts that need
// more detail must read the console output.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates the command terminated on any fatal error.
	ExitFailure ExitCode = 1
)

// FailureKind classifies fatal errors. The kind does not change the exit
// code (always 1) but drives how the error is reported: configuration
// errors and missing preconditions carry a specific remediation message,
// while step failures point at the preceding subprocess output.
type FailureKind string

const (
	// KindConfigError indicates a precondition the user must fix manually
	// was violated before any side effect (interpreter not on PATH,
	// execution from the protected system directory, bad config file).
	KindConfigError FailureKind = "config-error"

	// KindStepFailure indicates an external command run by a provisioning
	// step reported a non-zero status. Completed steps are not rolled back.
	KindStepFailure FailureKind = "step-failure"

	// KindMissingPrecondition indicates the launcher found no runtime
	// environment to launch into. The remediation is running the
	// provisioner first.
	KindMissingPrecondition FailureKind = "missing-precondition"
)

// String returns the string representation of FailureKind.
func (k FailureKind) String() string {
	return string(k)
}

// IsValid checks whether the FailureKind value is one of the
// predefined valid kinds.
func (k FailureKind) IsValid() bool {
	switch k {
	case KindConfigError, KindStepFailure, KindMissingPrecondition:
		return true
	default:
		return false
	}
}

// ParseFailureKind converts a string to a FailureKind.
// Returns an error if the string does not match any valid kind.
func ParseFailureKind(s string) (FailureKind, error) {
	kind := FailureKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid failure kind: %q (valid: config-error, step-failure, missing-precondition)", s)
	}
	return kind, nil
}

// CLIError is a custom error type that carries the failure classification.
// This allows the CLI layer to translate domain errors into the right
// console treatment while mapping every failure to exit code 1.
type CLIError struct {
	// Kind classifies the failure for reporting purposes.
	Kind FailureKind

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for this error. Every fatal
// error exits 1; the kind only affects reporting.
func (e *CLIError) ExitCode() ExitCode {
	return ExitFailure
}

// ChildExitError reports the exit status of the launched application when
// exit-code propagation is enabled. It is not a failure of the launcher
// itself: the CLI layer translates it directly into the process exit code
// without printing an error, since the application already reported
// whatever went wrong on its own console.
type ChildExitError struct {
	// Code is the child process's exit status.
	Code int
}

// Error satisfies the error interface.
func (e *ChildExitError) Error() string {
	return fmt.Sprintf("application exited with status %d", e.Code)
}

// ExitCode returns the child's exit status as the process exit code.
func (e *ChildExitError) ExitCode() ExitCode {
	return ExitCode(e.Code)
}

// NewCLIError creates a new CLIError with the given kind and message.
func NewCLIError(kind FailureKind, message string) *CLIError {
	return &CLIError{Kind: kind, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(kind FailureKind, message string, err error) *CLIError {
	return &CLIError{Kind: kind, Message: message, Err: err}
}
