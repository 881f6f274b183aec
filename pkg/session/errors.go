// Package session owns the edit session over one workflow document: a
// bounded undo/redo history of snapshots, mutation commands, SLA weight
// redistribution, and save/reconciliation against the workflow backend.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/validation"
)

// Standard session error types.
var (
	// ErrStepNotFound indicates a mutation referenced a step id absent from
	// the current snapshot.
	ErrStepNotFound = errors.New("step not found")

	// ErrStepExists indicates an added step reused an existing id.
	ErrStepExists = errors.New("step already exists")

	// ErrTransitionNotFound indicates a mutation referenced a transition id
	// absent from the current snapshot.
	ErrTransitionNotFound = errors.New("transition not found")

	// ErrTransitionExists indicates an added transition reused an existing id.
	ErrTransitionExists = errors.New("transition already exists")

	// ErrDeleteNotConfirmed indicates the confirmation callback declined a
	// destructive delete. State is unchanged.
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")

	// ErrSaveInFlight indicates a save was requested while another save on
	// the same session had not yet completed.
	ErrSaveInFlight = errors.New("save already in flight")

	// ErrNotSaveReady indicates the document failed the save-readiness check.
	ErrNotSaveReady = errors.New("workflow is not ready to save")

	// ErrNoClient indicates Save was called on a session without a backend client.
	ErrNoClient = errors.New("no backend client configured")

	// ErrInvalidWeight indicates an SLA weight outside the 1-10 range.
	ErrInvalidWeight = errors.New("sla weight must be between 1 and 10")
)

// MutationError wraps a rejected mutation with its operation and target id.
type MutationError struct {
	Op  string // Operation being performed (e.g., "AddStep", "DeleteTransition")
	ID  string // Step or transition id if applicable
	Err error  // Underlying error
}

func (e *MutationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

func (e *MutationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// ConnectionError carries the structured validation result of a rejected
// transition mutation.
type ConnectionError struct {
	Result models.ValidationResult
}

func (e *ConnectionError) Error() string {
	messages := make([]string, 0, len(e.Result.Errors))
	for _, issue := range e.Result.Errors {
		messages = append(messages, issue.Message)
	}

	return "invalid connection: " + strings.Join(messages, "; ")
}

// NotReadyError carries the readiness report of a blocked save.
type NotReadyError struct {
	Report validation.ReadinessReport
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%v: %d issues", ErrNotSaveReady, len(e.Report.Issues))
}

func (e *NotReadyError) Unwrap() error {
	return ErrNotSaveReady
}

// IsStepNotFound checks if an error indicates a missing step.
func IsStepNotFound(err error) bool {
	return errors.Is(err, ErrStepNotFound)
}

// IsTransitionNotFound checks if an error indicates a missing transition.
func IsTransitionNotFound(err error) bool {
	return errors.Is(err, ErrTransitionNotFound)
}

// IsNotConfirmed checks if an error indicates a declined confirmation.
func IsNotConfirmed(err error) bool {
	return errors.Is(err, ErrDeleteNotConfirmed)
}

// IsConnectionError extracts the validation result from a rejected
// transition mutation.
func IsConnectionError(err error) (*ConnectionError, bool) {
	var target *ConnectionError
	ok := errors.As(err, &target)

	return target, ok
}

// IsNotSaveReady checks if an error indicates a blocked save.
func IsNotSaveReady(err error) bool {
	return errors.Is(err, ErrNotSaveReady)
}
