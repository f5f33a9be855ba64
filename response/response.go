package response

import (
	"net/http"

	"apiexception/internal/reqctx"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultSuccessMessage = "Success"

// JSON writes body with the current request ID attached.
func JSON[T any](c echo.Context, statusCode int, body Body[T]) error {
	if body.RequestID == "" {
		body.RequestID = reqctx.GetRequestID(c)
	}

	return errors.WithStack(c.JSON(statusCode, body))
}

// Ok returns a successful response
func Ok[T any](c echo.Context, statusCode int, data T, message string) error {
	if message == "" {
		message = defaultSuccessMessage
	}

	return JSON(c, statusCode, Body[T]{Envelope: Success(message, data)})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode, message, description string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return JSON(c, statusCode, Body[any]{Envelope: Fail[any](message, errorCode, description)})
}
