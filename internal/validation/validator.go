// internal/validation/validator.go
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/unclebandit/customer-registration/internal/model"
)

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// FieldErrors maps a form field (json name) to the message shown under it.
type FieldErrors map[string]string

// Fields is the form order, used when rendering and when checking blur requests.
var Fields = []string{
	"firstName",
	"lastName",
	"passwordHash",
	"birthdate",
	"gender",
	"address",
	"email",
	"contactNumber",
}

var labels = map[string]string{
	"firstName":     "First Name",
	"lastName":      "Last Name",
	"passwordHash":  "Password",
	"birthdate":     "Birth Date",
	"gender":        "Gender",
	"address":       "Address",
	"email":         "Email",
	"contactNumber": "Contact Number",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// registration only fails on an empty tag name
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate returns the first failing rule of every invalid field. An empty map means the input can be sent.
func (v *Validator) Validate(input model.CreateCustomerInformationInput) FieldErrors {
	fieldErrors := FieldErrors{}

	err := v.validate.Struct(input)
	if err == nil {
		return fieldErrors
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError only happens on a nil or non-struct argument
		fieldErrors["form"] = err.Error()
		return fieldErrors
	}

	for _, fe := range verrs {
		if _, seen := fieldErrors[fe.Field()]; seen {
			continue
		}
		fieldErrors[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return fieldErrors
}

// ValidateField checks a single field, as done when it loses focus.
// The boolean is false for names that are not form fields.
func (v *Validator) ValidateField(input model.CreateCustomerInformationInput, field string) (string, bool) {
	if _, ok := labels[field]; !ok {
		return "", false
	}
	return v.Validate(input)[field], true
}

func message(field, tag string) string {
	label := labels[field]
	switch tag {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email"
	default:
		return "Invalid " + label
	}
}
