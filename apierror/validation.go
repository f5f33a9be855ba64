package apierror

import (
	"strconv"

	"apiexception/response"
)

// ValidationError is a schema-validation fault: an ordered list of
// field/message pairs produced by an upstream validator.
type ValidationError struct {
	Fields []response.FieldError
	cause  error
}

// NewValidationError builds a validation fault. cause is the validator's
// native error, kept for Unwrap.
func NewValidationError(cause error, fields ...response.FieldError) *ValidationError {
	return &ValidationError{
		Fields: fields,
		cause:  cause,
	}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation failed"
	}

	switch len(e.Fields) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Fields[0].Message
	default:
		return "validation failed: " + e.Fields[0].Message + " (and " + strconv.Itoa(len(e.Fields)-1) + " more)"
	}
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// FirstMessage returns the first field's message, or "" for an empty list.
func (e *ValidationError) FirstMessage() string {
	if len(e.Fields) == 0 {
		return ""
	}

	return e.Fields[0].Message
}
