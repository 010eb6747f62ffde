package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/appstrap/internal/model"
)

// writeConfigFile writes an appstrap.jsonc with the given contents into dir.
func writeConfigFile(t *testing.T, dir, contents string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644)
	require.NoError(t, err)
}

// TestDefault verifies that the zero-config defaults anchor every derived
// path at the absolute project root.
func TestDefault(t *testing.T) {
	root := t.TempDir()

	cfg, err := Default(root)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.Root))
	assert.Equal(t, "python", cfg.Python)
	assert.Equal(t, "env", cfg.PreferredEnvName)
	assert.Equal(t, ".venv", cfg.LegacyEnvName)
	assert.Equal(t, filepath.Join(cfg.Root, "requirements.txt"), cfg.Requirements)
	assert.Equal(t, filepath.Join(cfg.Root, "app.py"), cfg.AppEntry)
	assert.Equal(t, "https://download.pytorch.org/whl/cu128", cfg.ExtraIndexURL)
	assert.Equal(t, "unsafe-best-match", cfg.IndexStrategy)
	assert.True(t, cfg.OpenInterface)
	assert.False(t, cfg.PropagateExitCode)
	assert.Equal(t, filepath.Join(cfg.Root, "pip_cache"), cfg.Caches.Pip)
}

// TestLoad_MissingFile verifies that a project without appstrap.jsonc
// loads cleanly with defaults — zero-config is the normal case.
func TestLoad_MissingFile(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.Python)
}

// TestLoad_Overrides verifies that present fields override defaults while
// absent fields keep them, and that JSONC comments are accepted.
func TestLoad_Overrides(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, `{
		// pinned interpreter for this project
		"python": "python3.11",
		"requirements": "requirements/core.txt",
		"propagateExitCode": true,
		"openInterface": false,
	}`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "python3.11", cfg.Python)
	assert.Equal(t, filepath.Join(cfg.Root, "requirements", "core.txt"), cfg.Requirements)
	assert.True(t, cfg.PropagateExitCode)
	assert.False(t, cfg.OpenInterface)

	// Untouched fields keep their defaults.
	assert.Equal(t, "env", cfg.PreferredEnvName)
	assert.Equal(t, "unsafe-best-match", cfg.IndexStrategy)
}

// TestLoad_AbsolutePathsKept verifies that absolute override paths are not
// re-anchored at the project root.
func TestLoad_AbsolutePathsKept(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "app.py")
	writeConfigFile(t, root, `{"appEntry": `+marshalString(abs)+`}`)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.AppEntry)
}

// marshalString JSON-quotes a string, escaping Windows path backslashes.
func marshalString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(append(out, '"'))
}

// TestLoad_Malformed verifies that a present but unparseable file is a
// fatal configuration error, not silently ignored.
func TestLoad_Malformed(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, `{"python": `)

	_, err := Load(root)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.KindConfigError, cliErr.Kind)
}

// TestLoad_InvalidEnvNames verifies validation of configured environment
// directory names.
func TestLoad_InvalidEnvNames(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"path separator", `{"preferredEnvName": "envs/prod"}`},
		{"same names", `{"preferredEnvName": ".venv"}`},
		{"empty python", `{"python": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfigFile(t, root, tt.contents)

			_, err := Load(root)
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.KindConfigError, cliErr.Kind)
		})
	}
}

// TestEnvNames verifies the deterministic discovery order.
func TestEnvNames(t *testing.T) {
	cfg, err := Default(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"env", ".venv"}, cfg.EnvNames())
}
