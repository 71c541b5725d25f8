package gridquery

import "fmt"

// Error code constants for categorizing errors.
const (
	ErrFieldNotFound       = "FIELD_NOT_FOUND"
	ErrUnsupportedOperator = "UNSUPPORTED_OPERATOR"
	ErrInvalidValue        = "INVALID_VALUE" // literal text does not convert to the field's kind
	ErrValidation          = "VALIDATION_ERROR"
	ErrInternal            = "INTERNAL_ERROR"
)

// Error represents a structured error with a code, message, and optional details.
// It is JSON-serializable for use in API responses.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func fieldNotFound(path, segment string) *Error {
	return &Error{
		Code:    ErrFieldNotFound,
		Message: fmt.Sprintf("unknown field %q in path %q", segment, path),
		Details: map[string]any{"path": path, "segment": segment},
	}
}

func unsupportedOperator(path string, op string, kind Kind) *Error {
	return &Error{
		Code:    ErrUnsupportedOperator,
		Message: fmt.Sprintf("operator %q is not supported for %s field %q", op, kind, path),
		Details: map[string]any{"path": path, "operator": op, "kind": kind.String()},
	}
}

func invalidValue(path string, kind Kind, value string, cause error) *Error {
	e := &Error{
		Code:    ErrInvalidValue,
		Message: fmt.Sprintf("cannot convert %q to %s for field %q", value, kind, path),
		Details: map[string]any{"path": path, "kind": kind.String(), "value": value},
	}
	if cause != nil {
		e.Details["cause"] = cause.Error()
	}
	return e
}

// Diagnostic records one directive that was skipped while shaping a query.
// A diagnostic never aborts the pipeline; the directive is simply dropped.
type Diagnostic struct {
	Stage    string `json:"stage"` // StageFilter or StageSort
	Field    string `json:"field"`
	Operator string `json:"operator,omitempty"`
	Err      *Error `json:"error"`
}

// Diagnostic stages.
const (
	StageFilter = "filter"
	StageSort   = "sort"
)

func (d Diagnostic) String() string {
	if d.Operator != "" {
		return fmt.Sprintf("%s %s %s: %s", d.Stage, d.Field, d.Operator, d.Err.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Stage, d.Field, d.Err.Message)
}
