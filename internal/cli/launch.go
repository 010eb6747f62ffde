// Package cli — launch.go implements the appstrap-launch command.
//
// The launcher starts the application inside a previously provisioned
// environment without installing anything:
//
//  1. Refuse to run from the protected system directory (a symptom of
//     unnecessary administrator elevation)
//  2. Discover an existing runtime environment, read-only
//  3. Spawn the application entry point under the environment's
//     interpreter with the model-hub and torch cache redirects, and
//     block until it exits
//
// If no environment exists the command fails fast with a remediation
// message naming appstrap-install; it never auto-provisions.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/appstrap/internal/config"
	"github.com/shinji-kodama/appstrap/internal/launcher"
)

// NewLaunchCommand creates the appstrap-launch root command.
func NewLaunchCommand() *cobra.Command {
	cmd := newBaseCommand(
		"appstrap-launch",
		"Start the application in its runtime environment",
		`Start the application using the runtime environment provisioned by
appstrap-install.

The application is asked to open its web interface automatically and
owns the console until it exits. The launcher installs nothing and
never modifies the environment.`,
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runLaunch(cmd.Context())
	}

	return cmd
}

// runLaunch is the main orchestration function for the launcher.
func runLaunch(ctx context.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// The guard runs before the configuration is even read: when the
	// working directory is the protected system directory, nothing in it
	// should be touched, including a config file.
	if err := launcher.CheckWorkingDir(cwd); err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	VerboseLog("project root: %s", cfg.Root)

	l := launcher.New(cfg, VerboseLog)
	l.Warn = Warn

	return l.Launch(ctx)
}
