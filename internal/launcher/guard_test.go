package launcher

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/appstrap/internal/model"
)

// TestCheckWorkingDir_Protected verifies that execution from the
// protected system directory is refused as a configuration error with a
// remediation message.
func TestCheckWorkingDir_Protected(t *testing.T) {
	systemRoot := t.TempDir()
	t.Setenv("SystemRoot", systemRoot)

	err := CheckWorkingDir(filepath.Join(systemRoot, "System32"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.KindConfigError, cliErr.Kind)
	assert.Contains(t, cliErr.Message, "elevation")
}

// TestCheckWorkingDir_CaseInsensitive verifies the Windows-style
// case-insensitive path comparison.
func TestCheckWorkingDir_CaseInsensitive(t *testing.T) {
	systemRoot := t.TempDir()
	t.Setenv("SystemRoot", systemRoot)

	err := CheckWorkingDir(filepath.Join(systemRoot, "SYSTEM32"))
	assert.Error(t, err)
}

// TestCheckWorkingDir_NormalDirectory verifies that ordinary working
// directories pass.
func TestCheckWorkingDir_NormalDirectory(t *testing.T) {
	t.Setenv("SystemRoot", t.TempDir())

	assert.NoError(t, CheckWorkingDir(t.TempDir()))
}

// TestCheckWorkingDir_NoSystemRoot verifies that platforms without a
// SystemRoot variable never trigger the guard.
func TestCheckWorkingDir_NoSystemRoot(t *testing.T) {
	t.Setenv("SystemRoot", "")

	assert.NoError(t, CheckWorkingDir(filepath.Join("any", "dir")))
}
