// Package cli — root.go holds the plumbing shared by both binaries:
// command scaffolding, error reporting, exit-code translation and
// verbose logging.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shinji-kodama/appstrap/internal/model"
)

// verbose enables detailed logging output for debugging.
// When true, additional information about operations is printed to stderr.
var verbose bool

// Version, Commit and Date are set at build time via ldflags.
// They are injected from the main packages to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// newBaseCommand creates a cobra command with the scaffolding both
// binaries share: version string, a --verbose flag, and silenced cobra
// error/usage output (errors are formatted by Execute instead).
func newBaseCommand(use, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,

		// Neither binary takes positional arguments: the provisioner and
		// launcher always operate on the current directory.
		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them with the fatal-path treatment instead.
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

// Execute runs the command and handles exit codes.
// This is the main entry point called from both main packages.
//
// Three outcomes exist:
//   - success → exit 0;
//   - a propagated application exit status (ChildExitError) → exit with
//     the child's code, printing nothing, because the application already
//     reported its own failure;
//   - any fatal error → red error line on stderr, a pause when attached
//     to an interactive console (so a double-clicked window does not
//     vanish with the message), then exit 1.
func Execute(cmd *cobra.Command) {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var childErr *model.ChildExitError
	if errors.As(err, &childErr) {
		os.Exit(int(childErr.ExitCode()))
	}

	printFatal(err.Error())
	pauseIfInteractive()

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		os.Exit(int(cliErr.ExitCode()))
	}
	os.Exit(int(model.ExitFailure))
}

// printFatal writes the fatal error line to stderr in red — the visual
// alarm of the fatal path.
func printFatal(message string) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %s\n", message)
}

// Warn writes a user-facing warning line to stderr in yellow. Unlike
// VerboseLog this is shown unconditionally.
func Warn(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout both binaries for debug/trace output that helps
// users understand what operations are being performed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// pauseIfInteractive blocks until Enter is pressed when stdin is an
// interactive terminal. Both binaries are commonly started by
// double-click on Windows, where the console window closes the moment
// the process exits; without the pause the error message would never be
// readable. Non-interactive invocations (scripts, CI) are unaffected.
func pauseIfInteractive() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Fprint(os.Stderr, "Press Enter to exit...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
