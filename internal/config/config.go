package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/appstrap/internal/cache"
	"github.com/shinji-kodama/appstrap/internal/model"
)

// FileName is the optional override file looked up in the project root.
const FileName = "appstrap.jsonc"

// Defaults for everything the override file may change.
const (
	// DefaultPython is the system interpreter command used to verify the
	// toolchain and to create new environments. It is resolved via PATH.
	DefaultPython = "python"

	// DefaultRequirements is the dependency manifest, relative to the
	// project root.
	DefaultRequirements = "requirements.txt"

	// DefaultExtraIndexURL is the package index serving accelerated-computing
	// binaries (CUDA torch wheels) that are not on the default index.
	DefaultExtraIndexURL = "https://download.pytorch.org/whl/cu128"

	// DefaultIndexStrategy is uv's resolution strategy flag value. The
	// default "first-index" strategy would miss CUDA builds that only
	// exist on the extra index, so the best match across all indexes
	// is selected instead.
	DefaultIndexStrategy = "unsafe-best-match"

	// DefaultAppEntry is the launched application's entry point, relative
	// to the project root.
	DefaultAppEntry = "app.py"
)

// Config carries every path and option the provisioner and launcher need.
// It is computed once at startup and passed down explicitly; no step reads
// ambient process state.
type Config struct {
	// Root is the absolute project root. Environment directories, cache
	// directories, the requirements manifest and the app entry point are
	// all resolved against it.
	Root string

	// Python is the system interpreter command or path.
	Python string

	// PreferredEnvName and LegacyEnvName are the two conventional
	// environment directory names. Discovery checks them in this order.
	PreferredEnvName string
	LegacyEnvName    string

	// Requirements is the absolute path to the dependency manifest.
	Requirements string

	// ExtraIndexURL is the additional package index for accelerated
	// binaries. Empty disables the extra index.
	ExtraIndexURL string

	// IndexStrategy is the uv index resolution strategy.
	IndexStrategy string

	// AppEntry is the absolute path to the application entry point.
	AppEntry string

	// OpenInterface controls whether the launcher passes --open so the
	// application opens its web interface automatically. The original
	// launcher always did; this is configurable but defaults to true.
	OpenInterface bool

	// PropagateExitCode controls whether the launcher surfaces the
	// application's own exit status as its own. The original launcher
	// discarded it and treated "was launched" as success; that remains
	// the default, made explicit here.
	PropagateExitCode bool

	// Caches are the four project-local cache directories.
	Caches cache.Set
}

// fileOverrides mirrors the appstrap.jsonc structure. Pointer fields
// distinguish "absent" from zero values so the file only needs to mention
// what it changes. Unknown fields are silently ignored by encoding/json,
// which keeps old binaries tolerant of newer config files.
type fileOverrides struct {
	Python            *string `json:"python,omitempty"`
	PreferredEnvName  *string `json:"preferredEnvName,omitempty"`
	LegacyEnvName     *string `json:"legacyEnvName,omitempty"`
	Requirements      *string `json:"requirements,omitempty"`
	ExtraIndexURL     *string `json:"extraIndexUrl,omitempty"`
	IndexStrategy     *string `json:"indexStrategy,omitempty"`
	AppEntry          *string `json:"appEntry,omitempty"`
	OpenInterface     *bool   `json:"openInterface,omitempty"`
	PropagateExitCode *bool   `json:"propagateExitCode,omitempty"`
}

// Default returns the configuration for a project root with no override
// file applied. The root is made absolute so every derived path is too.
func Default(root string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %q: %w", root, err)
	}

	return &Config{
		Root:             absRoot,
		Python:           DefaultPython,
		PreferredEnvName: model.EnvNamePreferred,
		LegacyEnvName:    model.EnvNameLegacy,
		Requirements:     filepath.Join(absRoot, DefaultRequirements),
		ExtraIndexURL:    DefaultExtraIndexURL,
		IndexStrategy:    DefaultIndexStrategy,
		AppEntry:         filepath.Join(absRoot, DefaultAppEntry),
		OpenInterface:    true,
		Caches:           cache.Resolve(absRoot),
	}, nil
}

// Load builds the configuration for a project root, applying overrides
// from appstrap.jsonc when the file exists. A missing file is not an
// error; a present but malformed file is a fatal configuration error.
func Load(root string) (*Config, error) {
	cfg, err := Default(root)
	if err != nil {
		return nil, model.WrapCLIError(model.KindConfigError, "failed to build configuration", err)
	}

	path := filepath.Join(cfg.Root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Zero-config is the normal case; defaults cover it fully.
			return cfg, nil
		}
		return nil, model.WrapCLIError(model.KindConfigError,
			fmt.Sprintf("failed to read %s", path), err)
	}

	// Strip JSONC comments (// and /* */) and trailing commas before
	// parsing, so the override file can be annotated like any other
	// project-local JSONC config.
	var overrides fileOverrides
	if err := json.Unmarshal(jsonc.ToJSON(data), &overrides); err != nil {
		return nil, model.WrapCLIError(model.KindConfigError,
			fmt.Sprintf("failed to parse %s", path), err)
	}

	cfg.apply(&overrides)

	if err := cfg.validate(); err != nil {
		return nil, model.WrapCLIError(model.KindConfigError,
			fmt.Sprintf("invalid configuration in %s", path), err)
	}

	return cfg, nil
}

// apply copies the override values that are present onto the config.
// Relative manifest and entry-point paths are anchored at the project root.
func (c *Config) apply(o *fileOverrides) {
	if o.Python != nil {
		c.Python = *o.Python
	}
	if o.PreferredEnvName != nil {
		c.PreferredEnvName = *o.PreferredEnvName
	}
	if o.LegacyEnvName != nil {
		c.LegacyEnvName = *o.LegacyEnvName
	}
	if o.Requirements != nil {
		c.Requirements = c.anchor(*o.Requirements)
	}
	if o.ExtraIndexURL != nil {
		c.ExtraIndexURL = *o.ExtraIndexURL
	}
	if o.IndexStrategy != nil {
		c.IndexStrategy = *o.IndexStrategy
	}
	if o.AppEntry != nil {
		c.AppEntry = c.anchor(*o.AppEntry)
	}
	if o.OpenInterface != nil {
		c.OpenInterface = *o.OpenInterface
	}
	if o.PropagateExitCode != nil {
		c.PropagateExitCode = *o.PropagateExitCode
	}
}

// anchor resolves a possibly-relative path against the project root.
func (c *Config) anchor(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// validate rejects configurations that discovery or creation could not
// handle safely.
func (c *Config) validate() error {
	if c.Python == "" {
		return fmt.Errorf("python must not be empty")
	}
	if err := model.ValidateEnvName(c.PreferredEnvName); err != nil {
		return fmt.Errorf("preferredEnvName: %w", err)
	}
	if err := model.ValidateEnvName(c.LegacyEnvName); err != nil {
		return fmt.Errorf("legacyEnvName: %w", err)
	}
	if c.PreferredEnvName == c.LegacyEnvName {
		return fmt.Errorf("preferredEnvName and legacyEnvName must differ (both %q)", c.PreferredEnvName)
	}
	return nil
}

// EnvNames returns the discovery order: preferred first, then legacy.
func (c *Config) EnvNames() []string {
	return []string{c.PreferredEnvName, c.LegacyEnvName}
}
