package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolve verifies that all four cache paths are computed relative to
// the project root.
func TestResolve(t *testing.T) {
	root := filepath.Join("some", "project")
	s := Resolve(root)

	assert.Equal(t, filepath.Join(root, "uv_cache"), s.UV)
	assert.Equal(t, filepath.Join(root, "pip_cache"), s.Pip)
	assert.Equal(t, filepath.Join(root, "hf_cache"), s.HFHome)
	assert.Equal(t, filepath.Join(root, "torch_cache"), s.TorchHome)
}

// TestEnsureDirs verifies that missing cache directories are created.
func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	s := Resolve(root)

	require.NoError(t, s.EnsureDirs())

	for _, dir := range []string{s.UV, s.Pip, s.HFHome, s.TorchHome} {
		info, err := os.Stat(dir)
		require.NoError(t, err, "cache directory %s should exist", dir)
		assert.True(t, info.IsDir())
	}
}

// TestEnsureDirs_Idempotent verifies that repeated runs succeed and leave
// existing directory contents untouched.
func TestEnsureDirs_Idempotent(t *testing.T) {
	root := t.TempDir()
	s := Resolve(root)

	require.NoError(t, s.EnsureDirs())

	// Plant a file in one cache to prove a second run does not clean it.
	marker := filepath.Join(s.Pip, "wheel.whl")
	require.NoError(t, os.WriteFile(marker, []byte("cached"), 0o644))

	require.NoError(t, s.EnsureDirs())

	content, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(content))
}

// TestEnviron verifies the KEY=value rendering for provisioner children.
func TestEnviron(t *testing.T) {
	s := Resolve(filepath.Join("p"))
	env := s.Environ()

	assert.Equal(t, []string{
		"UV_CACHE_DIR=" + s.UV,
		"PIP_CACHE_DIR=" + s.Pip,
		"HF_HOME=" + s.HFHome,
		"TORCH_HOME=" + s.TorchHome,
	}, env)
}

// TestLauncherEnviron verifies that the launcher only receives the
// model-hub and torch redirects, never the package-manager ones.
func TestLauncherEnviron(t *testing.T) {
	s := Resolve(filepath.Join("p"))
	env := s.LauncherEnviron()

	assert.Equal(t, []string{
		"HF_HOME=" + s.HFHome,
		"TORCH_HOME=" + s.TorchHome,
	}, env)

	for _, kv := range env {
		assert.NotContains(t, kv, "PIP_CACHE_DIR")
		assert.NotContains(t, kv, "UV_CACHE_DIR")
	}
}
