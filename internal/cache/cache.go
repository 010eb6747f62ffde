package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default directory names for the four caches, relative to the project root.
const (
	DirUV    = "uv_cache"
	DirPip   = "pip_cache"
	DirHF    = "hf_cache"
	DirTorch = "torch_cache"
)

// Environment variable names recognized by the downstream tools.
const (
	EnvUVCache   = "UV_CACHE_DIR"
	EnvPipCache  = "PIP_CACHE_DIR"
	EnvHFHome    = "HF_HOME"
	EnvTorchHome = "TORCH_HOME"
)

// Set holds the absolute paths of the four project-local cache directories.
//
// A Set is pure data: Resolve computes it, EnsureDirs materializes it on
// disk, and the Environ methods render it for child processes. Nothing in
// this package mutates the current process environment.
type Set struct {
	// UV is the uv package-installer cache (UV_CACHE_DIR).
	UV string

	// Pip is the pip download/build cache (PIP_CACHE_DIR).
	Pip string

	// HFHome is the Hugging Face hub cache (HF_HOME), where the launched
	// application stores downloaded models.
	HFHome string

	// TorchHome is the torch hub cache (TORCH_HOME).
	TorchHome string
}

// Resolve computes the cache set for a project root. The root is expected
// to be absolute; the returned paths are root-relative joins, so they are
// absolute whenever the root is.
func Resolve(root string) Set {
	return Set{
		UV:        filepath.Join(root, DirUV),
		Pip:       filepath.Join(root, DirPip),
		HFHome:    filepath.Join(root, DirHF),
		TorchHome: filepath.Join(root, DirTorch),
	}
}

// EnsureDirs creates any cache directory that does not exist yet.
// Existing directories are left untouched, which makes repeated
// provisioner runs idempotent. Directories are never cleaned.
func (s Set) EnsureDirs() error {
	for _, dir := range []string{s.UV, s.Pip, s.HFHome, s.TorchHome} {
		// MkdirAll is a no-op for directories that already exist, so this
		// is safe to call on every run.
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}
	}
	return nil
}

// Environ returns all four cache redirects as KEY=value assignments,
// suitable for appending to an exec.Cmd environment. The provisioner
// passes these to every package-management subprocess.
func (s Set) Environ() []string {
	return []string{
		EnvUVCache + "=" + s.UV,
		EnvPipCache + "=" + s.Pip,
		EnvHFHome + "=" + s.HFHome,
		EnvTorchHome + "=" + s.TorchHome,
	}
}

// LauncherEnviron returns only the two redirects the launched application
// consumes (model-hub and torch caches). The launcher sets no
// package-manager redirects because it never installs anything.
func (s Set) LauncherEnviron() []string {
	return []string{
		EnvHFHome + "=" + s.HFHome,
		EnvTorchHome + "=" + s.TorchHome,
	}
}
