package pyenv

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/shinji-kodama/appstrap/internal/model"
)

// InterpreterPath returns the path of the interpreter binary inside a
// virtual environment directory. The venv layout differs per platform:
// Scripts\python.exe on Windows, bin/python everywhere else.
func InterpreterPath(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envDir, "Scripts", "python.exe")
	}
	return filepath.Join(envDir, "bin", "python")
}

// Resolve discovers an existing runtime environment under the project root.
//
// The names slice is the discovery order; by convention it holds the
// preferred name first and the legacy name second, and the first name whose
// directory contains an interpreter binary wins. The selection depends only
// on the ordered names, never on filesystem enumeration order, so repeated
// calls are deterministic.
//
// An environment "exists" only if its interpreter binary exists — a bare
// directory left behind by a failed creation is ignored rather than
// launched into.
//
// When more than one name resolves to an environment, warn is called once
// for each shadowed environment. The original scripts silently preferred
// the first match, which could hide a stale second environment from the
// user indefinitely; surfacing a warning preserves the selection behavior
// while making the shadowing visible. A nil warn disables the warning.
//
// Returns (nil, false) when no environment exists. This is not an error:
// the provisioner responds by creating one and the launcher by telling the
// user to run the provisioner.
func Resolve(root string, names []string, warn func(format string, args ...interface{})) (*model.RuntimeEnv, bool) {
	var found *model.RuntimeEnv

	for i, name := range names {
		python := InterpreterPath(filepath.Join(root, name))
		if !isExecutableFile(python) {
			continue
		}

		env := &model.RuntimeEnv{
			Root:   root,
			Name:   name,
			Source: sourceForPosition(i),
			Python: python,
		}

		if found == nil {
			found = env
			continue
		}

		// A later name also resolved; it is shadowed by the earlier match.
		if warn != nil {
			warn("environment %s is shadowed by %s and will not be used; "+
				"remove %s if it is stale", env, found, env.Dir())
		}
	}

	return found, found != nil
}

// sourceForPosition maps a position in the discovery order to an
// EnvSource. The first name is the preferred one; everything after it is
// treated as legacy.
func sourceForPosition(i int) model.EnvSource {
	if i == 0 {
		return model.SourcePreferred
	}
	return model.SourceLegacy
}

// isExecutableFile reports whether path exists and is a regular file.
// Permission bits are not checked: on Windows executability is an
// extension property, and on other platforms venv always marks its
// interpreter executable.
func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
