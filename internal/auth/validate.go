package auth

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Messages shown when a form is submitted.
var submitMessages = map[string]string{
	FieldUsername:        "Name must be at least 3 characters long",
	FieldEmail:           "Please enter a valid email address",
	FieldPassword:        "Password must be at least 6 characters long",
	FieldConfirmPassword: "Passwords do not match",
	FieldSigninUsername:  "Please enter your email",
	FieldSigninPassword:  "Please enter your password",
}

// Messages shown when a single field loses focus.
var fieldMessages = map[string]string{
	FieldUsername:        "Username must be at least 3 characters",
	FieldEmail:           "Please enter a valid email",
	FieldPassword:        "Password must be at least 6 characters",
	FieldConfirmPassword: "Passwords do not match",
	FieldSigninUsername:  "This field is required",
	FieldSigninPassword:  "This field is required",
}

var fieldRules = map[string]string{
	FieldUsername:       "min=3",
	FieldEmail:          "shop_email",
	FieldPassword:       "min=6",
	FieldSigninUsername: "required",
	FieldSigninPassword: "required",
}

var formValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	if err := v.RegisterValidation("shop_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the sign-up form. Name and email are trimmed first.
// It returns nil when the form can be submitted.
func (f *SignupForm) Validate() FieldErrors {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return collect(formValidator.Struct(f))
}

// Validate checks the sign-in form. The email is trimmed first.
func (f *SigninForm) Validate() FieldErrors {
	f.Email = strings.TrimSpace(f.Email)
	return collect(formValidator.Struct(f))
}

func collect(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return FieldErrors{FieldEmail: err.Error()}
	}
	out := make(FieldErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = submitMessages[fe.Field()]
	}
	return out
}

// ValidateField validates one field as the user leaves it. password is
// only consulted for the confirm-password field. It returns the error
// message, or "" when the value is valid. Unknown fields are valid.
func ValidateField(field, value, password string) string {
	value = strings.TrimSpace(value)

	if field == FieldConfirmPassword {
		if value != password {
			return fieldMessages[field]
		}
		return ""
	}

	rule, ok := fieldRules[field]
	if !ok {
		return ""
	}
	if err := formValidator.Var(value, rule); err != nil {
		return fieldMessages[field]
	}
	return ""
}
