// Package response defines the uniform response envelope shared by success
// and failure outcomes, and helpers that write it through Echo.
package response

import (
	"apiexception/internal/errors"
)

// Status is the outcome carried by an envelope.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFail    Status = "FAIL"
)

// ErrInvalidEnvelope is returned by Validate when an envelope breaks the
// SUCCESS/FAIL field rules.
var ErrInvalidEnvelope = errors.New("response: invalid envelope")

// Envelope is the response body shape. Its serialized field set does not
// depend on T.
type Envelope[T any] struct {
	Status      Status  `json:"status"`
	Message     string  `json:"message"`
	ErrorCode   *string `json:"error_code"`
	Description *string `json:"description"`
	Data        *T      `json:"data"`
}

// Success builds a SUCCESS envelope; error_code is always null.
func Success[T any](message string, data T) Envelope[T] {
	return Envelope[T]{
		Status:  StatusSuccess,
		Message: message,
		Data:    &data,
	}
}

// Fail builds a FAIL envelope; data is always null.
func Fail[T any](message, errorCode, description string) Envelope[T] {
	return Envelope[T]{
		Status:      StatusFail,
		Message:     message,
		ErrorCode:   &errorCode,
		Description: &description,
	}
}

// WithDescription returns a copy of e with description set.
func (e Envelope[T]) WithDescription(description string) Envelope[T] {
	e.Description = &description

	return e
}

// Code returns the error code or "" when null.
func (e Envelope[T]) Code() string {
	if e.ErrorCode == nil {
		return ""
	}

	return *e.ErrorCode
}

// Validate checks the invariants: SUCCESS has no error_code, FAIL has no data.
func (e Envelope[T]) Validate() error {
	switch e.Status {
	case StatusSuccess:
		if e.ErrorCode != nil {
			return errors.Wrap(ErrInvalidEnvelope, "success envelope carries an error code")
		}
	case StatusFail:
		if e.Data != nil {
			return errors.Wrap(ErrInvalidEnvelope, "fail envelope carries data")
		}
	default:
		return errors.Wrapf(ErrInvalidEnvelope, "unknown status %q", e.Status)
	}

	return nil
}

// FieldError is one diagnostic item in the "error" extension field.
type FieldError struct {
	Type    string `json:"type"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
	Tag     string `json:"tag,omitempty"`
	Value   any    `json:"value,omitempty"`
}

// Body is the envelope plus host extensions. Both extension fields are
// omitted when empty so the core five-field shape is unchanged.
type Body[T any] struct {
	Envelope[T]

	RequestID string       `json:"request_id,omitempty"`
	Errors    []FieldError `json:"error,omitempty"`
}
