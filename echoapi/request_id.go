package echoapi

import (
	"log/slog"

	"apiexception/internal/reqctx"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the request/response header carrying the request ID.
const HeaderXRequestID = reqctx.HeaderXRequestID

// RequestIDMiddleware generates or extracts a unique Request ID for each request and creates a request-scoped logger
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process handles the generation or extraction of the Request ID and creates a logger with requestID
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		reqctx.SetRequestID(c, requestID)
		c.Response().Header().Set(HeaderXRequestID, requestID)

		reqLogger := m.logger.With(slog.String("request_id", requestID))

		// Store requestID and logger in context.Context for the mapping policy and service layer
		ctx := c.Request().Context()
		ctx = reqctx.WithRequestID(ctx, requestID)
		ctx = reqctx.WithLogger(ctx, reqLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequestID returns the request ID assigned by RequestIDMiddleware, or "".
func RequestID(c echo.Context) string {
	return reqctx.GetRequestID(c)
}
