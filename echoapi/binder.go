package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"apiexception/apierror"
	"apiexception/internal/errors"
	"apiexception/response"

	"github.com/labstack/echo/v4"
)

// FieldError types produced while decoding a request.
const (
	BindingFieldType = "binding_error"
	TypeFieldType    = "type_error"
	JSONFieldType    = "json_invalid"
)

// Binder wraps echo.DefaultBinder so decoding failures surface as
// *apierror.ValidationError instead of a bare 400.
type Binder struct {
	echo.DefaultBinder

	// ValidateOnBind runs the registered echo.Validator after a successful bind.
	ValidateOnBind bool
}

// Bind implements echo.Binder.
func (b *Binder) Bind(i any, c echo.Context) error {
	if err := b.DefaultBinder.Bind(i, c); err != nil {
		return BindFault(err)
	}
	if b.ValidateOnBind && c.Echo().Validator != nil {
		return errors.WithStack(c.Validate(i))
	}

	return nil
}

// BindErrors converts the errors collected by echo's fluent value binders
// (echo.QueryParamsBinder, echo.PathParamsBinder) into one validation fault.
// It returns nil when errs is empty.
func BindErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	fields := make([]response.FieldError, 0, len(errs))
	for _, err := range errs {
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) {
			fields = append(fields, bindingField(bindErr))

			continue
		}
		fields = append(fields, response.FieldError{
			Type:    BindingFieldType,
			Message: err.Error(),
		})
	}

	return apierror.NewValidationError(errors.Join(errs...), fields...)
}

// BindFault translates a bind error into a validation fault when it
// describes malformed input. Other errors are returned unchanged.
func BindFault(err error) error {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return apierror.NewValidationError(err, bindingField(bindErr))
	}

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		return err
	}

	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		numErr    *strconv.NumError
	)
	switch {
	case errors.As(httpErr.Internal, &typeErr):
		return apierror.NewValidationError(err, response.FieldError{
			Type:    TypeFieldType,
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
			Value:   typeErr.Value,
		})
	case errors.As(httpErr.Internal, &syntaxErr):
		return apierror.NewValidationError(err, response.FieldError{
			Type:    JSONFieldType,
			Message: "request body is not valid JSON",
		})
	case errors.As(httpErr.Internal, &numErr):
		return apierror.NewValidationError(err, response.FieldError{
			Type:    TypeFieldType,
			Message: fmt.Sprintf("value %q is not a valid number", numErr.Num),
			Value:   numErr.Num,
		})
	default:
		return apierror.NewValidationError(err, response.FieldError{
			Type:    BindingFieldType,
			Message: httpMessage(httpErr),
		})
	}
}

func bindingField(bindErr *echo.BindingError) response.FieldError {
	field := response.FieldError{
		Type:    BindingFieldType,
		Field:   bindErr.Field,
		Message: fmt.Sprintf("%s: %s", bindErr.Field, httpMessage(bindErr.HTTPError)),
	}
	if len(bindErr.Values) > 0 {
		field.Value = strings.Join(bindErr.Values, ",")
	}

	return field
}

func httpMessage(httpErr *echo.HTTPError) string {
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		return msg
	}

	return http.StatusText(httpErr.Code)
}
