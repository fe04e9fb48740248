package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// jsonTagParts is the number of parts when splitting a JSON tag by comma.
const jsonTagParts = 2

// Validation errors.
var (
	// ErrValidation indicates a validation failure occurred.
	ErrValidation = errors.New("validation failed")

	// ErrBinding indicates JSON binding failed.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the singleton validator. Field errors are reported under
// their JSON names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", jsonTagParts)[0]
			if name == "-" {
				return ""
			}

			return name
		})
	})

	return validate
}

// Validate validates a struct using the validator instance.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate binds the JSON body to v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors extracts field-level messages from a validator error.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

func validationMessage(fe validator.FieldError) string {
	switch tag := fe.Tag(); tag {
	case "required":
		return "this field is required"
	case "min", "max":
		return minMaxMessage(tag, fe.Param(), fe.Type().Kind())
	default:
		return "failed validation: " + tag
	}
}

func minMaxMessage(tag, param string, kind reflect.Kind) string {
	suffix := ""
	if kind == reflect.String {
		suffix = " characters"
	}

	if tag == "min" {
		return "must be at least " + param + suffix
	}

	return "must be at most " + param + suffix
}

