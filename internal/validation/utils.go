package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/produce-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling Struct on the receiver.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule that cannot be written as a struct tag.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name: json first, then the path parameter.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
		if name := fld.Tag.Get("param"); name != "" {
			return name
		}
		return ""
	})

	return v
}

// Struct runs the `validate` tags of s.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds path parameters and the JSON body into payload, then
// validates it. payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindErrorMessage extracts the client facing part of an echo bind error.
func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch m := he.Message.(type) {
		case string:
			return "Invalid request body: " + m
		case error:
			return "Invalid request body: " + m.Error()
		}
	}
	return "Invalid request body"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		fieldErrors := make([]errs.FieldError, 0, len(custom))
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldErrorMessage(fe),
		})
	}

	return "Validation failed", fieldErrors
}

func fieldErrorMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "numeric":
		return "must be a number"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
