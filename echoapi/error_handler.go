// Package echoapi plugs the error contract into Echo: a central
// HTTPErrorHandler, a panic fallback, request-id and request-logging
// middleware, and a validator/binder pair that report schema faults.
package echoapi

import (
	"log/slog"
	"net/http"

	"apiexception/apierror"
	"apiexception/catalog"
	"apiexception/internal/errors"
	"apiexception/internal/reqctx"
	"apiexception/mapper"

	"github.com/labstack/echo/v4"
)

// ErrorHandler handles errors in the HTTP pipeline
type ErrorHandler struct {
	policy *mapper.Policy
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(policy *mapper.Policy, logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		policy: policy,
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (h *ErrorHandler) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := h.policy.ToEnvelope(c.Request().Context(), normalize(err))
	body.RequestID = reqctx.GetRequestID(c)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		reqctx.LoggerOrDefault(c.Request().Context(), h.logger).Error("Failed to write error response",
			slog.Any("error", writeErr),
			slog.String("path", c.Request().URL.Path),
			slog.String("method", c.Request().Method),
		)
	}
}

// normalize rewrites framework errors into the contract's error types.
// Raised and validation errors pass through untouched.
func normalize(err error) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return err
	}

	var validationErr *apierror.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return apierror.NewValidationError(err, bindingField(bindErr))
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	return err
}

// fromHTTPError maps a client-side Echo HTTPError (unknown route, wrong
// method, body limit, ...) to the matching catalog entry. Any 5xx stays an
// unanticipated fault so its message never reaches the client.
func fromHTTPError(httpErr *echo.HTTPError) error {
	if httpErr.Code >= http.StatusInternalServerError {
		return httpErr
	}

	opts := []apierror.Option{
		apierror.WithHTTPStatus(httpErr.Code),
		apierror.WithCause(httpErr),
	}
	if msg, ok := httpErr.Message.(string); ok && msg != "" && msg != http.StatusText(httpErr.Code) {
		opts = append(opts, apierror.WithDescription(msg))
	}

	return apierror.New(entryForStatus(httpErr.Code), opts...)
}

func entryForStatus(status int) catalog.Entry {
	switch status {
	case http.StatusBadRequest:
		return catalog.RequestBadRequest
	case http.StatusUnauthorized:
		return catalog.AuthUnauthorized
	case http.StatusForbidden:
		return catalog.PermissionDenied
	case http.StatusNotFound:
		return catalog.ResourceNotFound
	case http.StatusMethodNotAllowed:
		return catalog.RequestMethodNotAllowed
	case http.StatusConflict:
		return catalog.ResourceConflict
	case http.StatusRequestEntityTooLarge:
		return catalog.RequestTooLarge
	case http.StatusUnprocessableEntity:
		return catalog.ValidationError
	case http.StatusTooManyRequests:
		return catalog.RequestRateLimited
	}

	return catalog.RequestBadRequest
}
