// Package pyenv provides Python virtual-environment operations.
//
// This package wraps the Python CLI (via os/exec) to verify the system
// interpreter, create virtual environments, and run commands under an
// environment's own interpreter. It serves as the Python integration layer
// for both appstrap executables.
//
// Design decisions:
//   - We shell out to `python` rather than managing environments ourselves
//     because the venv directory format is owned by CPython's venv module,
//     and any reimplementation would chase its layout across versions.
//   - Environment discovery (Resolve) is a pure filesystem function with a
//     documented, deterministic preferred-then-legacy order, separated from
//     the Manager so it can be tested without any interpreter installed.
//   - "Activation" does not exist here. Instead of mutating PATH the way
//     activate scripts do, every subsequent command is run through the
//     discovered environment's own interpreter binary.
package pyenv
