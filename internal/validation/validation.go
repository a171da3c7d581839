// Package validation provides field-level validation for request payloads.
package validation

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// ValidWorkLogStatuses are the allowed work log lifecycle values.
var ValidWorkLogStatuses = []string{"done", "in progress", "pending"}

// ValidationError represents a structured validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects multiple field errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

func (ve *ValidationErrors) Error() string {
	msgs := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		msgs[i] = e.Field + ": " + e.Message
	}
	return strings.Join(msgs, "; ")
}

// RequireField checks a required string field is non-empty.
func RequireField(ve *ValidationErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, "is required")
	}
}

// ValidateEnum checks a field is one of allowed values.
func ValidateEnum(ve *ValidationErrors, field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	ve.Add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// ValidateDate checks a field is a valid date (YYYY-MM-DD).
func ValidateDate(ve *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		ve.Add(field, "must be a valid date (YYYY-MM-DD)")
	}
}

// ValidateMaxLength checks a field does not exceed maxLen characters.
func ValidateMaxLength(ve *ValidationErrors, field, value string, maxLen int) {
	if len(value) > maxLen {
		ve.Add(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
}

// ValidateIntRange checks an integer field is within [min, max].
func ValidateIntRange(ve *ValidationErrors, field string, value, min, max int) {
	if value < min || value > max {
		ve.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
}

// ValidateIP checks a field parses as an IP address.
func ValidateIP(ve *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if net.ParseIP(value) == nil {
		ve.Add(field, "must be a valid IP address")
	}
}
