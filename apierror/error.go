// Package apierror provides the typed error raised by application code to
// report a catalog failure, and the validation fault produced by request
// schema checks.
package apierror

import (
	"apiexception/catalog"
	"apiexception/internal/errors"
	"apiexception/response"
)

// Error is raised at the point of failure and consumed once by the boundary
// handler. It carries a catalog entry and optional overrides.
type Error struct {
	entry       catalog.Entry
	httpStatus  int
	message     string
	description string
	log         bool
	cause       error
	origin      error
}

// New creates an Error for entry.
func New(entry catalog.Entry, opts ...Option) *Error {
	e := &Error{
		entry:  entry,
		origin: errors.NewWithStack(entry.Code()),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FromCode looks code up in r and creates an Error for it.
func FromCode(r *catalog.Registry, code string, opts ...Option) (*Error, error) {
	entry, err := r.Lookup(code)
	if err != nil {
		return nil, err
	}

	return New(entry, opts...), nil
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "apierror: <nil>"
	}
	if e.cause != nil {
		return e.entry.Code() + ": " + e.Message() + ": " + e.cause.Error()
	}

	return e.entry.Code() + ": " + e.Message()
}

// Unwrap returns the cause attached with WithCause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Entry returns the catalog entry.
func (e *Error) Entry() catalog.Entry {
	return e.entry
}

// Code returns the catalog code.
func (e *Error) Code() string {
	return e.entry.Code()
}

// Message returns the override message, or the catalog default.
func (e *Error) Message() string {
	if e.message != "" {
		return e.message
	}

	return e.entry.Message()
}

// Description returns the override description, or the catalog default.
func (e *Error) Description() string {
	if e.description != "" {
		return e.description
	}

	return e.entry.Description()
}

// HTTPStatus returns the status override, if one was set.
func (e *Error) HTTPStatus() (int, bool) {
	return e.httpStatus, e.httpStatus != 0
}

// ShouldLog reports whether server-side logging was requested.
func (e *Error) ShouldLog() bool {
	return e.log
}

// Stack returns the stack recorded when the error was created.
func (e *Error) Stack() string {
	if e.cause != nil {
		if st := errors.StackTrace(e.cause); st != "" {
			return st
		}
	}

	return errors.StackTrace(e.origin)
}

// Envelope renders the error as a FAIL envelope.
func (e *Error) Envelope() response.Envelope[any] {
	return response.Fail[any](e.Message(), e.Code(), e.Description())
}
