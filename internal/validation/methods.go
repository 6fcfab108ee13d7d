// Package validation provides request payload validation helpers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validator defines validation methods
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Required checks if a string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Positive checks that a numeric amount is greater than zero
func (v *Validator) Positive(field string, value int64) {
	v.Check(value > 0, field, "must be greater than zero")
}

// ID checks that an identifier is set
func (v *Validator) ID(field string, value uint) {
	v.Check(value != 0, field, "must be set")
}

// Range checks if a number is between min and max
func (v *Validator) Range(field string, value, min, max int) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %d and %d", min, max))
}

// OneOf checks that a value is one of the allowed options
func (v *Validator) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// Password validates password strength
func (v *Validator) Password(field, password string) {
	v.Check(len(password) >= 8, field, "must be at least 8 characters long")

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	v.Check(hasLetter, field, "must contain at least one letter")
	v.Check(hasNumber, field, "must contain at least one number")
}

// Message flattens the error map into a single message for error responses.
func (v *Validator) Message() string {
	parts := make([]string, 0, len(v.Errors))
	for field, msg := range v.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}
