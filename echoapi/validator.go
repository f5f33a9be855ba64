package echoapi

import (
	"reflect"
	"strings"

	"apiexception/apierror"
	"apiexception/internal/errors"
	"apiexception/mapper"
	"apiexception/response"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator implements echo.Validator on top of go-playground/validator.
// Failures are returned as *apierror.ValidationError with one FieldError per
// violated rule, named after the json tag.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a Validator with English messages.
func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, errors.Wrap(err, "register validator translations")
	}

	return &Validator{
		validate: validate,
		trans:    trans,
	}, nil
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		// Non-struct input is a programming error, not a client fault.
		return errors.WithStack(err)
	}

	fields := make([]response.FieldError, 0, len(violations))
	for _, fe := range violations {
		fields = append(fields, response.FieldError{
			Type:    mapper.ValidationFieldType,
			Field:   fieldPath(fe),
			Message: fe.Translate(v.trans),
			Tag:     fe.Tag(),
		})
	}

	return apierror.NewValidationError(err, fields...)
}

// fieldPath drops the top-level struct name: "DemoBody.limit" -> "limit".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}

	return ns
}

func jsonTagName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}

	return field.Name
}
