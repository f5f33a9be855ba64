package echoapi

import (
	"log/slog"

	"apiexception/internal/errors"
	"apiexception/mapper"

	"github.com/labstack/echo/v4"
)

// Options controls Register.
type Options struct {
	// Policy maps errors to envelopes. Defaults to mapper.New with Logger.
	Policy *mapper.Policy

	// Logger is used when a request carries no request-scoped logger.
	Logger *slog.Logger

	// UseFallbackMiddleware installs Fallback so panics become 500 envelopes.
	// Leave it off to install a custom recovery middleware instead.
	UseFallbackMiddleware bool

	// ValidateOnBind validates every struct right after c.Bind.
	ValidateOnBind bool

	// DisableRequestID skips RequestIDMiddleware.
	DisableRequestID bool
}

// Register installs the error contract on e: validator, binder, request-id
// middleware, optional fallback, and the central HTTPErrorHandler. Call it
// once during startup, before serving.
func Register(e *echo.Echo, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Policy == nil {
		opts.Policy = mapper.New(mapper.WithLogger(opts.Logger))
	}

	validator, err := NewValidator()
	if err != nil {
		return errors.WithStack(err)
	}
	e.Validator = validator
	e.Binder = &Binder{ValidateOnBind: opts.ValidateOnBind}

	if !opts.DisableRequestID {
		e.Use(NewRequestIDMiddleware(opts.Logger).Process)
	}
	if opts.UseFallbackMiddleware {
		e.Use(Fallback)
	}

	e.HTTPErrorHandler = NewErrorHandler(opts.Policy, opts.Logger).HandleHTTPError

	return nil
}
