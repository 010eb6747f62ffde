package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/appstrap/internal/model"
	"github.com/shinji-kodama/appstrap/internal/pyenv"
)

// setupLaunchProject creates a project directory containing a provisioned
// preferred-name environment whose interpreter records its arguments,
// and makes it the working directory.
func setupLaunchProject(t *testing.T) (root, argsLog string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub interpreters are shell scripts; skipping on windows")
	}
	t.Setenv("SystemRoot", "")

	root = t.TempDir()
	argsLog = filepath.Join(t.TempDir(), "args.log")

	python := pyenv.InterpreterPath(filepath.Join(root, model.EnvNamePreferred))
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\nexit 0\n", argsLog)
	require.NoError(t, os.MkdirAll(filepath.Dir(python), 0o755))
	require.NoError(t, os.WriteFile(python, []byte(script), 0o755))

	chdir(t, root)
	return root, argsLog
}

// TestLaunchCommand_Success runs the launcher command end to end: the
// environment is discovered and the application spawned with --open.
func TestLaunchCommand_Success(t *testing.T) {
	_, argsLog := setupLaunchProject(t)

	cmd := NewLaunchCommand()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	args, err := os.ReadFile(argsLog)
	require.NoError(t, err)
	assert.Contains(t, string(args), "app.py")
	assert.Contains(t, string(args), "--open")
}

// TestLaunchCommand_NoEnvironment verifies the fail-fast path: no
// environment means a remediation error naming the provisioner and no
// spawn attempt.
func TestLaunchCommand_NoEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("harness uses shell-script stubs; skipping on windows")
	}
	t.Setenv("SystemRoot", "")
	chdir(t, t.TempDir())

	cmd := NewLaunchCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.KindMissingPrecondition, cliErr.Kind)
	assert.Contains(t, cliErr.Message, "appstrap-install")
}

// TestLaunchCommand_ProtectedDirectory verifies that running from the
// protected system directory fails before discovery, even when a valid
// environment exists in some project.
func TestLaunchCommand_ProtectedDirectory(t *testing.T) {
	_, argsLog := setupLaunchProject(t)

	systemRoot := t.TempDir()
	protected := filepath.Join(systemRoot, "System32")
	require.NoError(t, os.MkdirAll(protected, 0o755))
	t.Setenv("SystemRoot", systemRoot)
	chdir(t, protected)

	cmd := NewLaunchCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.KindConfigError, cliErr.Kind)

	_, statErr := os.Stat(argsLog)
	assert.True(t, os.IsNotExist(statErr), "nothing may be spawned from the protected directory")
}

// TestLaunchCommand_RejectsArguments verifies the external contract:
// the launcher takes no positional arguments.
func TestLaunchCommand_RejectsArguments(t *testing.T) {
	cmd := NewLaunchCommand()
	cmd.SetArgs([]string{"unexpected"})
	assert.Error(t, cmd.Execute())
}
