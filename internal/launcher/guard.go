package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/appstrap/internal/model"
)

// CheckWorkingDir refuses execution when the working directory is the
// protected system directory (%SystemRoot%\System32).
//
// A process started "as administrator" on Windows gets System32 as its
// working directory, so this check catches users who elevated the
// launcher by mistake: elevation is unnecessary, and running there would
// resolve every relative path against a system directory. This is a
// safety check against a common mistake, not a security boundary.
//
// The check runs before any discovery or side effect. On platforms
// without a SystemRoot variable it never triggers.
func CheckWorkingDir(cwd string) error {
	protected := protectedDir()
	if protected == "" {
		return nil
	}

	// Windows paths are case-insensitive, so the comparison is too.
	if strings.EqualFold(filepath.Clean(cwd), filepath.Clean(protected)) {
		return model.NewCLIError(model.KindConfigError,
			fmt.Sprintf("running from %s is not supported; "+
				"administrator elevation is unnecessary and discouraged — "+
				"start the launcher from the project directory instead", protected))
	}

	return nil
}

// protectedDir derives the protected directory from the SystemRoot
// environment variable. Empty when the variable is unset.
func protectedDir() string {
	systemRoot := os.Getenv("SystemRoot")
	if systemRoot == "" {
		return ""
	}
	return filepath.Join(systemRoot, "System32")
}
