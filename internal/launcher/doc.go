// Package launcher starts the voice application inside a previously
// provisioned runtime environment.
//
// The launcher performs no installation of any kind. It guards against a
// common user mistake (running from the protected system directory, which
// happens when the executable is started "as administrator" on Windows),
// discovers an existing environment read-only, and spawns the application
// entry point under the environment's interpreter, blocking until the
// child exits.
//
// Whether the child's own exit status is surfaced is an explicit
// configuration choice (propagateExitCode). The historical behavior — and
// the default — is to treat "was launched" as success and discard the
// child's status.
package launcher
