package apierror

// Option configures an Error.
type Option func(*Error)

// WithHTTPStatus overrides the mapped HTTP status. Values outside 100..599
// are ignored.
func WithHTTPStatus(status int) Option {
	return func(e *Error) {
		if status < 100 || status > 599 {
			return
		}
		e.httpStatus = status
	}
}

// WithMessage overrides the catalog message.
func WithMessage(message string) Option {
	return func(e *Error) {
		e.message = message
	}
}

// WithDescription overrides the catalog description.
func WithDescription(description string) Option {
	return func(e *Error) {
		e.description = description
	}
}

// WithLog requests a server-side log record for this error.
func WithLog() Option {
	return func(e *Error) {
		e.log = true
	}
}

// WithCause attaches the underlying error. It is logged, never serialized.
func WithCause(err error) Option {
	return func(e *Error) {
		e.cause = err
	}
}
