package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to its messages.
type FieldErrors map[string][]string

// Error implements error so FieldErrors can flow through echo.Validator.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(fe[f], ", "))
	}
	return strings.Join(parts, "; ")
}

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether field has any message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// Validator implements echo.Validator and reports failures as FieldErrors.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator that names fields by their form tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator interface. The returned error, when
// non-nil, is always FieldErrors.
func (v *Validator) Validate(i interface{}) error {
	if n, ok := i.(interface{ Normalize() }); ok {
		n.Normalize()
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, ve := range verrs {
		fe.Add(ve.Field(), message(ve))
	}
	return fe
}

// AsFieldErrors extracts FieldErrors from err, or returns nil.
func AsFieldErrors(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "eqfield":
		return fmt.Sprintf("Field must be equal to %s.", fieldLabel(fe.Param()))
	default:
		return "Invalid value."
	}
}

func fieldLabel(structField string) string {
	switch structField {
	case "Password":
		return "password"
	case "ConfirmPassword":
		return "confirm_password"
	default:
		return strings.ToLower(structField)
	}
}
