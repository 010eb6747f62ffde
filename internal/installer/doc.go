// Package installer implements the environment provisioning workflow.
//
// The workflow is an ordered list of fallible steps evaluated by a small
// runner that stops at the first failure and reports it uniformly. This
// replaces the original scripts' duplicated "check errorlevel, jump to
// error label" pattern with a single error path: every step is attempted
// exactly once, there are no retries, and already-completed steps are
// never rolled back.
//
// Step order: prepare cache directories → verify the system interpreter →
// locate or create the runtime environment → verify the environment's own
// interpreter → ensure uv is installed → upgrade pip → install the
// requirements manifest. On success a small YAML receipt is written into
// the environment directory recording what was provisioned.
package installer
