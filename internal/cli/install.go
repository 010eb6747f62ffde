// Package cli — install.go implements the appstrap-install command.
//
// The provisioner produces a working runtime environment with all
// declared dependencies installed, reentrant across repeated runs:
//
//  1. Resolve and create the four project-local cache directories
//  2. Verify the system Python interpreter is available
//  3. Discover an existing environment (preferred, then legacy) or
//     create a new one under the preferred name
//  4. Verify the environment's own interpreter
//  5. Ensure the uv package installer is present
//  6. Upgrade pip
//  7. Install the requirements manifest via uv, consulting the
//     accelerated-computing package index
//
// Any step failure is fatal and exits 1; on success a summary names the
// environment directory that was used.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/appstrap/internal/config"
	"github.com/shinji-kodama/appstrap/internal/installer"
	"github.com/shinji-kodama/appstrap/internal/pyenv"
)

// NewInstallCommand creates the appstrap-install root command.
func NewInstallCommand() *cobra.Command {
	cmd := newBaseCommand(
		"appstrap-install",
		"Provision the application's runtime environment",
		`Provision an isolated Python runtime environment for the application.

The command is safe to re-run: an existing environment is reused (the
preferred directory name wins over the legacy one) and only the
installation steps are repeated. Download and build caches are kept in
project-local directories so the installation is fully self-contained.

Requires a Python interpreter on PATH and network access to the package
indexes.`,
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.Context())
	}

	return cmd
}

// runInstall is the main orchestration function for the provisioner.
func runInstall(ctx context.Context) error {
	// The project root is the directory the binary is started from,
	// matching the original script's "its own directory" behavior.
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	VerboseLog("project root: %s", cfg.Root)

	mgr := pyenv.NewManager(cfg.Python)

	p := installer.NewProvisioner(cfg, mgr, VerboseLog)
	p.Warn = Warn

	result, err := p.Provision(ctx)
	if err != nil {
		return err
	}

	printInstallResult(result)
	return nil
}

// printInstallResult outputs the success summary, naming which
// environment directory was used.
func printInstallResult(result *installer.Result) {
	action := "reused existing"
	if result.Created {
		action = "created new"
	}

	color.New(color.FgGreen, color.Bold).Println("Installation complete.")
	fmt.Printf("  Environment: %s (%s)\n", result.Env.Dir(), action)
	fmt.Printf("  Interpreter: %s\n", result.InterpreterVersion)
	if result.ReceiptPath != "" {
		fmt.Printf("  Receipt:     %s\n", result.ReceiptPath)
	}
	fmt.Println()
	fmt.Println("Run appstrap-launch to start the application.")
}
