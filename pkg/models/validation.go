package models

// ValidationCode classifies a single connection or graph validation failure.
type ValidationCode string

const (
	CodeInvalidSourceHandle ValidationCode = "INVALID_SOURCE_HANDLE"
	CodeInvalidTargetHandle ValidationCode = "INVALID_TARGET_HANDLE"
	CodeWrongDirection      ValidationCode = "WRONG_DIRECTION"
	CodeSameTypeConnection  ValidationCode = "SAME_TYPE_CONNECTION"
	CodeSelfLoop            ValidationCode = "SELF_LOOP"
	CodeDuplicateEdge       ValidationCode = "DUPLICATE_EDGE"
	CodeCardinalityExceeded ValidationCode = "CARDINALITY_EXCEEDED"
	CodeSourceNotFound      ValidationCode = "SOURCE_NOT_FOUND"
	CodeTargetNotFound      ValidationCode = "TARGET_NOT_FOUND"
	CodeHandleNotFound      ValidationCode = "HANDLE_NOT_FOUND"
)

// ValidationIssue is one typed failure in a validation result.
type ValidationIssue struct {
	Code    ValidationCode `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ValidationResult is the outcome of validating a proposed connection.
// Failures are reported as values, never as panics.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationIssue `json:"errors"`
}

// Valid returns a passing result.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true, Errors: []ValidationIssue{}}
}

// Invalid returns a failing result carrying the given issues.
func Invalid(issues ...ValidationIssue) ValidationResult {
	return ValidationResult{IsValid: false, Errors: issues}
}

// HasCode reports whether the result contains an issue with the given code.
func (r ValidationResult) HasCode(code ValidationCode) bool {
	for _, issue := range r.Errors {
		if issue.Code == code {
			return true
		}
	}

	return false
}
