package echoapi

import (
	"fmt"
	"net/http"

	"apiexception/internal/errors"

	"github.com/labstack/echo/v4"
)

// Fallback recovers panics raised further down the chain and returns them as
// errors, so the central handler answers with the 500 envelope.
// http.ErrAbortHandler is re-panicked.
func Fallback(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity as net/http does
				panic(r)
			}

			recovered, ok := r.(error)
			if !ok {
				recovered = fmt.Errorf("%v", r)
			}
			err = errors.Wrap(recovered, "panic recovered")
		}()

		return next(c)
	}
}
