package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// OrderForm carries the buyer fields exactly as entered, so a failed
// submission can re-render the form without losing input.
type OrderForm struct {
	Name    string `validate:"required,min=2"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required,bdmobile"`
	Address string `validate:"required,min=6"`
	Floor   string
}

// Local mobile numbers: 11 digits starting with 01.
var mobileRegex = regexp.MustCompile(`^01\d{9}$`)

// NewValidator returns a validator with the bdmobile rule registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	// The regex never fails to register; panic would mean a programming error.
	_ = v.RegisterValidation("bdmobile", func(fl validator.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})
	return v
}

var orderFormMessages = map[string]string{
	"Name":    "Please enter your name (at least 2 characters).",
	"Email":   "Please enter a valid email address.",
	"Phone":   "Please enter a valid 11-digit mobile number (01XXXXXXXXX).",
	"Address": "Please enter your full delivery address (at least 6 characters).",
}

// Validate returns one message per failed field, keyed by field name.
// An empty map means the form is valid.
func (f OrderForm) Validate(v *validator.Validate) map[string]string {
	errs := make(map[string]string)
	err := v.Struct(f)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["Form"] = "Invalid form data."
		return errs
	}
	for _, fe := range verrs {
		if msg, ok := orderFormMessages[fe.Field()]; ok {
			errs[fe.Field()] = msg
		} else {
			errs[fe.Field()] = "Invalid value."
		}
	}
	return errs
}
