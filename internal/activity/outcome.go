package activity

import (
	"errors"
	"fmt"

	"tasklane/internal/models"
	"tasklane/internal/progress"
)

// Step names a secondary effect that runs after the primary mutation.
type Step string

const (
	StepAudit     Step = "audit"
	StepNotify    Step = "notify"
	StepPropagate Step = "propagate"
)

// StepFailure records one secondary step that failed.
type StepFailure struct {
	Step Step
	Err  error
}

// Outcome reports what a coordinator operation did. The primary mutation has
// succeeded whenever an Outcome is returned with a nil error; Failures lists
// the secondary steps that did not.
type Outcome struct {
	Task          *models.Task
	Comment       *models.Comment
	Membership    *models.Membership
	History       []models.HistoryEntry
	Notifications []models.Notification
	Propagation   *progress.Result
	Failures      []StepFailure
}

// Partial reports whether any secondary step failed.
func (o Outcome) Partial() bool {
	return len(o.Failures) > 0
}

// Failed reports whether step failed.
func (o Outcome) Failed(step Step) bool {
	for _, f := range o.Failures {
		if f.Step == step {
			return true
		}
	}
	return false
}

// Err returns nil when every step succeeded, otherwise an error wrapping
// ErrPartialFailure and each step error.
func (o Outcome) Err() error {
	if !o.Partial() {
		return nil
	}
	errs := make([]error, 0, len(o.Failures)+1)
	errs = append(errs, ErrPartialFailure)
	for _, f := range o.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Step, f.Err))
	}
	return errors.Join(errs...)
}

func (o *Outcome) fail(step Step, err error) {
	o.Failures = append(o.Failures, StepFailure{Step: step, Err: err})
}
