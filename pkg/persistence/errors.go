package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrDraftNotFound indicates no draft exists for the given workflow.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrDraftCorrupted indicates a stored draft could not be decoded.
	ErrDraftCorrupted = errors.New("draft corrupted")
)

// DraftError wraps draft-related errors with additional context.
type DraftError struct {
	Op         string // Operation being performed (e.g., "SaveDraft", "DeleteDraft")
	WorkflowID string // Workflow ID if applicable
	Err        error  // Underlying error
}

func (e *DraftError) Error() string {
	return fmt.Sprintf("%s operation failed for workflow %s: %v", e.Op, e.WorkflowID, e.Err)
}

func (e *DraftError) Unwrap() error {
	return e.Err
}

func (e *DraftError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewDraftError creates a new draft error with context.
func NewDraftError(op, workflowID string, err error) *DraftError {
	return &DraftError{
		Op:         op,
		WorkflowID: workflowID,
		Err:        err,
	}
}

// IsDraftNotFound checks if an error indicates a draft was not found.
func IsDraftNotFound(err error) bool {
	return errors.Is(err, ErrDraftNotFound)
}

// IsDraftCorrupted checks if an error indicates an undecodable draft.
func IsDraftCorrupted(err error) bool {
	return errors.Is(err, ErrDraftCorrupted)
}
