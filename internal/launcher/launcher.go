package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/shinji-kodama/appstrap/internal/config"
	"github.com/shinji-kodama/appstrap/internal/model"
	"github.com/shinji-kodama/appstrap/internal/pyenv"
)

// Launcher starts the application under a discovered runtime environment.
//
// The zero-value streams default to the process's own stdin/stdout/stderr
// so the application owns the console while it runs, exactly as it did
// when launched by the original script. Tests substitute buffers.
type Launcher struct {
	cfg *config.Config
	log func(format string, args ...interface{})

	// Warn receives user-facing warnings (currently only environment
	// shadowing). Nil falls back to the log callback.
	Warn func(format string, args ...interface{})

	// Stdin, Stdout and Stderr are handed to the child process.
	// Nil values fall back to the os streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Launcher for the given configuration. The log callback
// receives verbose progress and warnings; nil disables it.
func New(cfg *config.Config, log func(format string, args ...interface{})) *Launcher {
	return &Launcher{cfg: cfg, log: log}
}

// Launch runs the full launch sequence: working-directory guard,
// read-only environment discovery, then spawning the application entry
// point under the environment's interpreter. It blocks until the child
// exits.
//
// Failure modes, in order of detection:
//   - protected working directory → configuration error, nothing else is
//     even checked;
//   - no runtime environment → missing-precondition error naming the
//     provisioner, nothing is spawned;
//   - the child could not be started → step failure;
//   - the child started and exited non-zero → nil unless
//     propagateExitCode is set, in which case a model.ChildExitError
//     carries the child's status out.
func (l *Launcher) Launch(ctx context.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.KindConfigError, "failed to determine working directory", err)
	}
	if err := CheckWorkingDir(cwd); err != nil {
		return err
	}

	env, ok := pyenv.Resolve(l.cfg.Root, l.cfg.EnvNames(), l.warnf)
	if !ok {
		return model.NewCLIError(model.KindMissingPrecondition,
			fmt.Sprintf("no runtime environment found under %s; run appstrap-install first", l.cfg.Root))
	}
	l.logf("using runtime environment %s", env)

	return l.spawn(ctx, env)
}

// spawn starts the application and waits for it.
func (l *Launcher) spawn(ctx context.Context, env *model.RuntimeEnv) error {
	args := []string{l.cfg.AppEntry}
	if l.cfg.OpenInterface {
		// --open asks the application to open its web interface once it
		// has finished loading.
		args = append(args, "--open")
	}

	// #nosec G204 — interpreter path and args are constructed internally
	cmd := exec.CommandContext(ctx, env.Python, args...)
	cmd.Dir = l.cfg.Root

	// Only the model-hub and torch cache redirects are passed; the
	// launcher never installs packages. The child inherits everything
	// else from the current process environment.
	cmd.Env = append(os.Environ(), l.cfg.Caches.LauncherEnviron()...)

	cmd.Stdin = l.stdin()
	cmd.Stdout = l.stdout()
	cmd.Stderr = l.stderr()

	l.logf("launching %s %v", env.Python, args)
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The application started and terminated on its own. By default
		// that counts as a successful launch regardless of its status.
		if l.cfg.PropagateExitCode {
			return &model.ChildExitError{Code: exitErr.ExitCode()}
		}
		l.logf("application exited with status %d", exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return model.WrapCLIError(model.KindStepFailure,
			fmt.Sprintf("failed to launch %s", l.cfg.AppEntry), err)
	}

	return nil
}

func (l *Launcher) stdin() io.Reader {
	if l.Stdin != nil {
		return l.Stdin
	}
	return os.Stdin
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}
	return os.Stdout
}

func (l *Launcher) stderr() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}

func (l *Launcher) logf(format string, args ...interface{}) {
	if l.log != nil {
		l.log(format, args...)
	}
}

func (l *Launcher) warnf(format string, args ...interface{}) {
	if l.Warn != nil {
		l.Warn(format, args...)
		return
	}
	l.logf(format, args...)
}
