package pyenv

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/appstrap/internal/model"
)

// Manager runs Python toolchain commands by invoking interpreter binaries
// as child processes.
//
// The zero-value writers default to the process's stdout/stderr, so
// long-running package installations stream their progress to the console
// exactly like the original scripts did. Tests substitute buffers.
type Manager struct {
	// Python is the system interpreter command or path, resolved via PATH
	// when it is not absolute. Used for the toolchain check and for
	// creating new environments; everything else runs through an
	// environment's own interpreter.
	Python string

	// Stdout and Stderr receive the output of streamed commands.
	// Nil values fall back to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewManager creates a Manager that invokes the given system interpreter.
func NewManager(python string) *Manager {
	return &Manager{Python: python}
}

// CheckInterpreter verifies that the system interpreter is present and
// runnable by asking it for its version. It returns the reported version
// string (e.g. "Python 3.11.9").
//
// A missing or broken interpreter is a configuration error the user must
// fix manually (install Python, fix PATH); it is reported as such and
// never retried.
func (m *Manager) CheckInterpreter(ctx context.Context) (string, error) {
	out, err := capture(ctx, m.Python, nil, "--version")
	if err != nil {
		return "", model.WrapCLIError(model.KindConfigError,
			fmt.Sprintf("%s was not found or is not runnable; install Python and ensure it is on PATH", m.Python),
			err)
	}
	return strings.TrimSpace(out), nil
}

// Create provisions a new virtual environment under the given name in the
// project root by running `python -m venv <dir>`.
//
// On success it returns a RuntimeEnv handle after confirming the created
// directory actually contains an interpreter binary — venv occasionally
// exits 0 while leaving a broken tree when the disk fills mid-copy.
func (m *Manager) Create(ctx context.Context, root, name string) (*model.RuntimeEnv, error) {
	envDir := filepath.Join(root, name)

	out, err := capture(ctx, m.Python, nil, "-m", "venv", envDir)
	if err != nil {
		message := fmt.Sprintf("failed to create virtual environment at %s", envDir)
		if trimmed := strings.TrimSpace(out); trimmed != "" {
			message = fmt.Sprintf("%s: %s", message, trimmed)
		}
		return nil, model.WrapCLIError(model.KindStepFailure, message, err)
	}

	python := InterpreterPath(envDir)
	if !isExecutableFile(python) {
		return nil, model.NewCLIError(model.KindStepFailure,
			fmt.Sprintf("virtual environment at %s was created without an interpreter binary", envDir))
	}

	return &model.RuntimeEnv{
		Root:   root,
		Name:   name,
		Source: model.SourcePreferred,
		Python: python,
	}, nil
}

// Run executes the environment's interpreter with the given arguments,
// streaming output to the Manager's writers. extraEnv entries (KEY=value)
// are appended to the inherited process environment of the child only.
//
// This is the workhorse for installation steps, where the user needs to
// see pip/uv progress live and failures are diagnosed from the preceding
// console output.
func (m *Manager) Run(ctx context.Context, env *model.RuntimeEnv, extraEnv []string, args ...string) error {
	cmd := newCommand(ctx, env.Python, extraEnv, args...)
	cmd.Stdout = m.stdout()
	cmd.Stderr = m.stderr()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", env.Name, strings.Join(args, " "), err)
	}
	return nil
}

// Output executes the environment's interpreter with the given arguments
// and returns its combined output. Used for quiet queries such as
// `-m pip show uv` and the interpreter verification, where the output is
// inspected or discarded rather than shown to the user.
func (m *Manager) Output(ctx context.Context, env *model.RuntimeEnv, extraEnv []string, args ...string) (string, error) {
	return capture(ctx, env.Python, extraEnv, args...)
}

func (m *Manager) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *Manager) stderr() io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}
