package app

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quote-gallery/internal/domain"
)

// Age form messages shown next to the input.
const (
	MsgAgeRequired = "Age is required"
	MsgAgeNumber   = "Age must be a number"
	MsgAgePositive = "Age must be greater than 0"
)

// AgeForm is the raw input of the modal's age field.
type AgeForm struct {
	Age string `form:"age" json:"age" validate:"required,wholenumber,positive"`
}

var formValidate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	mustRegister(v, "wholenumber", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())

		return err == nil
	})

	mustRegister(v, "positive", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())

		return err == nil && n > 0
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("registering validator " + tag + ": " + err.Error())
	}
}

// Validate returns the age as an int, or a *domain.ValidationError on field
// "age" carrying the message to display. Surrounding whitespace is ignored.
func (f AgeForm) Validate() (int, error) {
	trimmed := AgeForm{Age: strings.TrimSpace(f.Age)}

	err := formValidate.Struct(trimmed)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return 0, err
		}

		return 0, domain.NewValidationErrorWithValue("age", ageMessage(fieldErrs[0].Tag()), f.Age)
	}

	n, _ := strconv.Atoi(trimmed.Age)

	return n, nil
}

func ageMessage(tag string) string {
	switch tag {
	case "required":
		return MsgAgeRequired
	case "positive":
		return MsgAgePositive
	default:
		return MsgAgeNumber
	}
}
