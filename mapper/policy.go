// Package mapper turns a raised error, a validation fault, or any other
// fault into an HTTP status and a response envelope.
//
// Three inputs are recognised:
//
//   - *apierror.Error: status override, else the StatusMap entry for its
//     code, else 500. Overrides win over catalog message and description.
//   - *apierror.ValidationError: always the validation status (422), with the
//     first field message as description.
//   - anything else: 500 with the generic internal entry. The fault text is
//     never placed in the body.
//
// Every call yields exactly one status and one body.
package mapper

import (
	"context"
	"log/slog"

	"apiexception/apierror"
	"apiexception/catalog"
	"apiexception/internal/errors"
	"apiexception/internal/reqctx"
	"apiexception/response"
)

// Unhandled is the opaque marker attached to unanticipated faults.
var Unhandled = response.FieldError{Type: "unhandled_exception"}

// ValidationFieldType is the FieldError type used for validator output.
const ValidationFieldType = "validation_error"

// Policy maps errors to envelopes. It is safe for concurrent use.
type Policy struct {
	statuses            StatusMap
	logger              *slog.Logger
	logAll              bool
	errorDetails        bool
	fallbackDescription string
}

// Option configures a Policy.
type Option func(*Policy)

// WithStatusMap replaces the default status map.
func WithStatusMap(m StatusMap) Option {
	return func(p *Policy) {
		p.statuses = m
	}
}

// WithLogger sets the logger used when no request-scoped logger is present.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Policy) {
		p.logger = logger
	}
}

// WithLogging logs every mapped error, not only those raised with
// apierror.WithLog.
func WithLogging(enabled bool) Option {
	return func(p *Policy) {
		p.logAll = enabled
	}
}

// WithErrorDetails controls the "error" extension field: the raw field list
// for validation faults and the Unhandled marker for unanticipated faults.
func WithErrorDetails(enabled bool) Option {
	return func(p *Policy) {
		p.errorDetails = enabled
	}
}

// WithFallbackDescription sets the description used for a validation fault
// with no field messages.
func WithFallbackDescription(description string) Option {
	return func(p *Policy) {
		if description != "" {
			p.fallbackDescription = description
		}
	}
}

// New creates a Policy.
func New(opts ...Option) *Policy {
	p := &Policy{
		statuses:            NewStatusMap(nil),
		logger:              slog.Default(),
		errorDetails:        true,
		fallbackDescription: catalog.ValidationError.Description(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Statuses returns the policy's status map.
func (p *Policy) Statuses() StatusMap {
	return p.statuses
}

// ToEnvelope maps err to an HTTP status and a FAIL body.
func (p *Policy) ToEnvelope(ctx context.Context, err error) (int, response.Body[any]) {
	if ctx == nil {
		ctx = context.Background()
	}

	// A typed nil pointer matches errors.As but carries nothing to map.
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return p.fromAPIError(ctx, err, apiErr)
	}

	var validationErr *apierror.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return p.fromValidation(ctx, validationErr)
	}

	return p.fromFault(ctx, err)
}

func (p *Policy) fromAPIError(ctx context.Context, err error, apiErr *apierror.Error) (int, response.Body[any]) {
	status, ok := apiErr.HTTPStatus()
	if !ok {
		status = p.statuses.Status(apiErr.Code())
	}

	if p.logAll || apiErr.ShouldLog() {
		p.log(ctx, "api exception", record{
			status:      status,
			code:        apiErr.Code(),
			message:     apiErr.Message(),
			description: apiErr.Description(),
			err:         err,
			stack:       apiErr.Stack(),
		})
	}

	return status, response.Body[any]{Envelope: apiErr.Envelope()}
}

func (p *Policy) fromValidation(ctx context.Context, validationErr *apierror.ValidationError) (int, response.Body[any]) {
	entry := catalog.ValidationError
	status := p.statuses.Validation()

	description := validationErr.FirstMessage()
	if description == "" {
		description = p.fallbackDescription
	}

	if p.logAll {
		p.log(ctx, "validation failed", record{
			status:      status,
			code:        entry.Code(),
			message:     entry.Message(),
			description: description,
			err:         validationErr,
		})
	}

	body := response.Body[any]{
		Envelope: response.Fail[any](entry.Message(), entry.Code(), description),
	}
	if p.errorDetails && len(validationErr.Fields) > 0 {
		body.Errors = append([]response.FieldError(nil), validationErr.Fields...)
	}

	return status, body
}

func (p *Policy) fromFault(ctx context.Context, err error) (int, response.Body[any]) {
	entry := catalog.InternalServerError
	status := p.statuses.Fallback()

	if p.logAll {
		p.log(ctx, "unhandled exception", record{
			status:      status,
			code:        entry.Code(),
			message:     entry.Message(),
			description: entry.Description(),
			err:         err,
			stack:       errors.StackTrace(err),
		})
	}

	body := response.Body[any]{
		Envelope: response.Fail[any](entry.Message(), entry.Code(), entry.Description()),
	}
	if p.errorDetails {
		body.Errors = []response.FieldError{Unhandled}
	}

	return status, body
}

type record struct {
	status      int
	code        string
	message     string
	description string
	err         error
	stack       string
}

// log writes one record. A failing handler must not stop the response.
func (p *Policy) log(ctx context.Context, msg string, rec record) {
	defer func() {
		_ = recover()
	}()

	logger := reqctx.LoggerOrDefault(ctx, p.logger)
	if logger == nil {
		return
	}

	level := slog.LevelWarn
	if rec.status >= 500 {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("error_code", rec.code),
		slog.String("message", rec.message),
		slog.String("description", rec.description),
		slog.Int("http_status", rec.status),
	}
	if rec.err != nil {
		attrs = append(attrs, slog.String("error", rec.err.Error()))
	}
	if rec.stack != "" {
		attrs = append(attrs, slog.String("stack", rec.stack))
	}

	logger.LogAttrs(ctx, level, msg, attrs...)
}
