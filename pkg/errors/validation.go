package errors

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates multiple validation errors
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// NewValidationErrors creates a new validation errors collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: []FieldError{},
	}
}

// Add appends a field-level validation error
func (v *ValidationErrors) Add(field string, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any validation error was collected
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	if !v.HasErrors() {
		return "no validation errors"
	}

	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ToMap groups messages by field for API responses
func (v *ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = append(result[e.Field], e.Message)
	}
	return result
}

// AsAppError converts the collection into a single AppError
func (v *ValidationErrors) AsAppError() *AppError {
	details := make(map[string]interface{}, len(v.Errors))
	for field, messages := range v.ToMap() {
		details[field] = messages
	}
	return NewValidationError(v.Error()).WithDetails(details)
}
