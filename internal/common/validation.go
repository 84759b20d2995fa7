package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Validator collects field-level failures so a caller sees every problem
// with an input at once.
type Validator struct {
	errors []ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

// Field applies the rules to one named value.
func (v *Validator) Field(name, value string, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if msg, ok := rule(value); !ok {
			v.errors = append(v.errors, ValidationError{Field: name, Message: msg})
		}
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// Error returns the collected failures as one AppError, or nil.
func (v *Validator) Error() error {
	if len(v.errors) == 0 {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.Error()
	}
	return NewAppError("VALIDATION_ERROR", strings.Join(messages, "; "), ErrValidation)
}

// ValidationRule checks one value; ok=false carries the failure message.
type ValidationRule func(value string) (msg string, ok bool)

func Required(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return "is required", false
	}
	return "", true
}

func MaxLength(max int) ValidationRule {
	return func(value string) (string, bool) {
		if utf8.RuneCountInString(value) > max {
			return fmt.Sprintf("must be at most %d characters", max), false
		}
		return "", true
	}
}

func OneOf(allowed ...string) ValidationRule {
	return func(value string) (string, bool) {
		for _, a := range allowed {
			if value == a {
				return "", true
			}
		}
		return fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")), false
	}
}
