// Package cache resolves and prepares the project-local cache directories
// that redirect download and build artifacts away from user-global
// defaults.
//
// Four downstream tools honor a cache-redirect environment variable:
// uv (UV_CACHE_DIR), pip (PIP_CACHE_DIR), the Hugging Face hub (HF_HOME)
// and torch (TORCH_HOME). Keeping all four under the project root makes an
// installation fully self-contained and trivially removable.
//
// The variables are never set on the current process. They are rendered as
// KEY=value assignments and appended to the environment of each child
// process that needs them, so every step receives exactly the redirects it
// requires and nothing leaks between steps.
package cache
