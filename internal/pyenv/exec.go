package pyenv

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// newCommand builds an exec.Cmd for an interpreter invocation. The child
// inherits the current process environment with extraEnv appended, so
// cache redirects reach the tool without ever being set on this process.
// Later entries win when a name collides with an inherited variable.
func newCommand(ctx context.Context, bin string, extraEnv []string, args ...string) *exec.Cmd {
	// #nosec G204 — bin and args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, bin, args...)

	// os.Environ() returns a copy, so appending does not affect this process.
	cmd.Env = append(os.Environ(), extraEnv...)

	return cmd
}

// capture runs an interpreter invocation and returns its combined
// stdout+stderr. On failure the output is still returned so callers can
// fold it into error messages, mirroring how git/compose wrappers surface
// subprocess stderr.
func capture(ctx context.Context, bin string, extraEnv []string, args ...string) (string, error) {
	cmd := newCommand(ctx, bin, extraEnv, args...)

	var combined strings.Builder
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	return combined.String(), err
}
