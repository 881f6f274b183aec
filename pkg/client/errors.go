package client

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkflowNotFound is returned when the backend has no workflow with the requested id.
	ErrWorkflowNotFound = errors.New("workflow not found")
	// ErrUnauthorized is returned when the backend rejects the request credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServerError is returned when the backend answers with a 5xx status.
	ErrServerError = errors.New("backend server error")
	// ErrInvalidPayload is returned when a backend response fails schema validation.
	ErrInvalidPayload = errors.New("invalid backend payload")
)

// APIError carries the HTTP context of a failed backend call.
type APIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Err.Error())
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(op string, statusCode int) *APIError {
	var err error

	switch {
	case statusCode == 404:
		err = ErrWorkflowNotFound
	case statusCode == 401 || statusCode == 403:
		err = ErrUnauthorized
	case statusCode >= 500:
		err = ErrServerError
	default:
		err = fmt.Errorf("unexpected status %d", statusCode)
	}

	return &APIError{Op: op, StatusCode: statusCode, Err: err}
}

// IsNotFound reports whether the error indicates a missing workflow.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsInvalidPayload reports whether the error indicates a malformed backend response.
func IsInvalidPayload(err error) bool {
	return errors.Is(err, ErrInvalidPayload)
}
