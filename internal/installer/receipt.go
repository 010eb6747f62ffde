// receipt.go writes the provisioning receipt: a small YAML document in
// the environment directory recording what the last successful run did.
// The receipt is purely informational — nothing reads it back at runtime,
// it exists so users (and bug reports) can tell which environment was
// provisioned, with which interpreter, and when.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ReceiptFileName is the receipt's name inside the environment directory.
const ReceiptFileName = "appstrap-receipt.yaml"

// Receipt is the YAML structure written after a successful installation.
type Receipt struct {
	// Environment is the absolute path of the provisioned environment.
	Environment string `yaml:"environment"`

	// Source records whether the preferred or legacy directory was used.
	Source string `yaml:"source"`

	// Interpreter is the environment interpreter's version string.
	Interpreter string `yaml:"interpreter"`

	// Created is true when the run created the environment rather than
	// reusing an existing one.
	Created bool `yaml:"created"`

	// InstalledAt is the completion time of the run, in UTC.
	InstalledAt time.Time `yaml:"installedAt"`
}

// writeReceipt renders the receipt for a provisioning result and writes it
// into the environment directory, overwriting any previous receipt.
// Returns the written path.
func writeReceipt(result *Result) (string, error) {
	receipt := Receipt{
		Environment: result.Env.Dir(),
		Source:      result.Env.Source.String(),
		Interpreter: result.InterpreterVersion,
		Created:     result.Created,
		InstalledAt: time.Now().UTC(),
	}

	data, err := yaml.Marshal(&receipt)
	if err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}

	path := filepath.Join(result.Env.Dir(), ReceiptFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}

	return path, nil
}
