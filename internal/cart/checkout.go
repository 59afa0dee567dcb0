package cart

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CheckoutForm is the shipping form submitted with an order.
type CheckoutForm struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

var checkoutLabels = map[string]string{
	"full_name":   "Full name",
	"email":       "Email",
	"address":     "Address",
	"city":        "City",
	"postal_code": "Postal code",
	"phone":       "Phone",
}

var formValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Validate returns an error naming the first invalid field, or nil.
func (f CheckoutForm) Validate() error {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	label := checkoutLabels[fe.Field()]
	if fe.Tag() == "email" {
		return errors.New("Please enter a valid email address")
	}
	return fmt.Errorf("%s is required", label)
}
