package installer

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinji-kodama/appstrap/internal/config"
	"github.com/shinji-kodama/appstrap/internal/model"
	"github.com/shinji-kodama/appstrap/internal/pyenv"
)

// Result summarizes a successful provisioning run for the final report.
type Result struct {
	// Env is the runtime environment that was used or created.
	Env *model.RuntimeEnv

	// Created is true when this run created the environment, false when an
	// existing one was reused.
	Created bool

	// InterpreterVersion is the environment interpreter's reported version.
	InterpreterVersion string

	// ReceiptPath is the path of the written receipt, empty if writing it
	// failed (receipt failures are not fatal).
	ReceiptPath string
}

// Provisioner orchestrates the installation workflow. It owns no state
// beyond what a single Provision call accumulates; construct one per run.
type Provisioner struct {
	cfg *config.Config
	mgr *pyenv.Manager
	log func(format string, args ...interface{})

	// Warn receives user-facing warnings (currently only environment
	// shadowing). Unlike verbose logging these should reach the user
	// unconditionally; nil falls back to the log callback.
	Warn func(format string, args ...interface{})

	// Accumulated across steps within one Provision call.
	env     *model.RuntimeEnv
	created bool
	version string
}

// NewProvisioner creates a Provisioner for the given configuration.
// The log callback receives verbose progress and warnings; nil disables it.
func NewProvisioner(cfg *config.Config, mgr *pyenv.Manager, log func(format string, args ...interface{})) *Provisioner {
	return &Provisioner{cfg: cfg, mgr: mgr, log: log}
}

// Provision runs the full workflow and returns a summary on success.
// On failure the returned error is a model.CLIError; completed steps are
// left in place (no rollback), so a later run resumes from a valid state.
func (p *Provisioner) Provision(ctx context.Context) (*Result, error) {
	runner := &Runner{Log: p.log}

	if err := runner.Run(ctx, p.steps()); err != nil {
		return nil, err
	}

	result := &Result{
		Env:                p.env,
		Created:            p.created,
		InterpreterVersion: p.version,
	}

	// The receipt is informational; failing to write it must not fail an
	// otherwise complete installation.
	path, err := writeReceipt(result)
	if err != nil {
		p.logf("could not write receipt: %v", err)
	} else {
		result.ReceiptPath = path
	}

	return result, nil
}

// steps builds the ordered workflow. Each step closes over the
// Provisioner to pass results (the environment handle, version strings)
// forward to later steps.
func (p *Provisioner) steps() []Step {
	return []Step{
		{Name: "prepare cache directories", Run: p.prepareCaches},
		{Name: "verify system interpreter", Run: p.verifySystemInterpreter},
		{Name: "locate or create runtime environment", Run: p.resolveOrCreateEnv},
		{Name: "verify environment interpreter", Run: p.verifyEnvInterpreter},
		{Name: "ensure uv is installed", Run: p.ensureUV},
		{Name: "upgrade pip", Run: p.upgradePip},
		{Name: "install dependencies", Run: p.installRequirements},
	}
}

// prepareCaches creates the four project-local cache directories if they
// do not exist yet. This is the only filesystem mutation allowed before
// the interpreter check.
func (p *Provisioner) prepareCaches(ctx context.Context) error {
	return p.cfg.Caches.EnsureDirs()
}

// verifySystemInterpreter confirms python is available before anything
// else touches the environment directory. A missing interpreter is a
// configuration error the user must fix manually.
func (p *Provisioner) verifySystemInterpreter(ctx context.Context) error {
	version, err := p.mgr.CheckInterpreter(ctx)
	if err != nil {
		return err
	}
	p.logf("system interpreter: %s", version)
	return nil
}

// resolveOrCreateEnv discovers an existing environment (preferred name
// first, then legacy) or creates a fresh one under the preferred name.
// Reusing an existing environment is what makes repeated runs idempotent.
func (p *Provisioner) resolveOrCreateEnv(ctx context.Context) error {
	if env, ok := pyenv.Resolve(p.cfg.Root, p.cfg.EnvNames(), p.warnf); ok {
		p.env = env
		p.logf("reusing runtime environment %s", env)
		return nil
	}

	p.logf("no runtime environment found, creating %s", p.cfg.PreferredEnvName)
	env, err := p.mgr.Create(ctx, p.cfg.Root, p.cfg.PreferredEnvName)
	if err != nil {
		return err
	}

	p.env = env
	p.created = true
	return nil
}

// verifyEnvInterpreter runs the environment's own interpreter once. This
// replaces the batch scripts' activate step: instead of mutating PATH,
// every later command goes through env.Python directly, and this step
// proves that binary actually works before package installation starts.
func (p *Provisioner) verifyEnvInterpreter(ctx context.Context) error {
	out, err := p.mgr.Output(ctx, p.env, p.cfg.Caches.Environ(), "--version")
	if err != nil {
		return fmt.Errorf("environment interpreter %s is not runnable: %w", p.env.Python, err)
	}
	p.version = strings.TrimSpace(out)
	p.logf("environment interpreter: %s", p.version)
	return nil
}

// ensureUV installs the uv package installer into the environment unless
// it is already present. `pip show uv` exits non-zero when the package is
// missing, which is the expected signal, not a failure.
func (p *Provisioner) ensureUV(ctx context.Context) error {
	if _, err := p.mgr.Output(ctx, p.env, p.cfg.Caches.Environ(), "-m", "pip", "show", "uv"); err == nil {
		p.logf("uv already installed")
		return nil
	}

	return p.mgr.Run(ctx, p.env, p.cfg.Caches.Environ(), "-m", "pip", "install", "uv")
}

// upgradePip unconditionally upgrades pip, the one baseline packaging tool
// the rest of the workflow depends on. Old pip versions reject modern
// metadata, so this runs even when the environment already existed.
func (p *Provisioner) upgradePip(ctx context.Context) error {
	return p.mgr.Run(ctx, p.env, p.cfg.Caches.Environ(), "-m", "pip", "install", "--upgrade", "pip")
}

// installRequirements installs the dependency manifest through uv. The
// extra index serves CUDA torch wheels that the default index does not
// carry, and the index strategy lets uv pick the best match across both
// indexes instead of stopping at the first one that knows the name.
func (p *Provisioner) installRequirements(ctx context.Context) error {
	args := []string{"-m", "uv", "pip", "install", "-r", p.cfg.Requirements}
	if p.cfg.ExtraIndexURL != "" {
		args = append(args, "--extra-index-url", p.cfg.ExtraIndexURL)
	}
	if p.cfg.IndexStrategy != "" {
		args = append(args, "--index-strategy", p.cfg.IndexStrategy)
	}

	return p.mgr.Run(ctx, p.env, p.cfg.Caches.Environ(), args...)
}

func (p *Provisioner) logf(format string, args ...interface{}) {
	if p.log != nil {
		p.log(format, args...)
	}
}

func (p *Provisioner) warnf(format string, args ...interface{}) {
	if p.Warn != nil {
		p.Warn(format, args...)
		return
	}
	p.logf(format, args...)
}
