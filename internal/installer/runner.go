package installer

import (
	"context"
	"errors"
	"fmt"

	"github.com/shinji-kodama/appstrap/internal/model"
)

// Step is one fallible unit of the provisioning workflow. Steps are
// executed strictly in order; a step only runs if every step before it
// succeeded.
type Step struct {
	// Name identifies the step in verbose output and failure messages.
	Name string

	// Run performs the step. Any error is fatal to the whole workflow.
	Run func(ctx context.Context) error
}

// Runner executes steps sequentially and stops at the first failure.
//
// Failures are reported uniformly: errors that already carry a failure
// classification (model.CLIError) pass through unchanged, everything else
// becomes a step failure pointing the user at the preceding console
// output, which is where the failing subprocess printed its diagnostics.
type Runner struct {
	// Log receives verbose progress messages. Nil disables them.
	Log func(format string, args ...interface{})
}

// Run executes the steps in order. It returns nil only if every step
// succeeded.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		r.logf("step: %s", step.Name)

		if err := step.Run(ctx); err != nil {
			// Preserve the classification of errors that already have one
			// (configuration errors keep their specific remediation text).
			var cliErr *model.CLIError
			if errors.As(err, &cliErr) {
				return err
			}

			return model.WrapCLIError(model.KindStepFailure,
				fmt.Sprintf("%s failed; see the output above for details", step.Name), err)
		}
	}
	return nil
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Log != nil {
		r.Log(format, args...)
	}
}
