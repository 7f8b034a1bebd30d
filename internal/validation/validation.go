// Package validation applies declarative field-level checks to submitted
// form payloads. A schema validates in collect-all mode: every violation
// across all fields is accumulated before reporting, and validation
// failures are values, never panics.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format for date fields.
const DateLayout = "2006-01-02"

// FieldError describes a single violation on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the accumulated set of violations for one payload.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + " " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Rule checks a non-empty value and returns a violation message, or ""
// if the value passes. Empty values are handled by the schema itself.
type Rule func(value string) string

// Field binds a payload key to its rules.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is a named set of field constraints for one payload shape.
type Schema struct {
	Name   string
	Fields []Field
}

// Validate runs every rule of every field against the submitted values
// and returns all violations. A nil result means the payload is valid.
// Every field in the schema is required; an absent or blank value yields
// a single "is required" violation and skips the field's other rules.
func (s Schema) Validate(get func(name string) string) Errors {
	var errs Errors
	for _, f := range s.Fields {
		value := strings.TrimSpace(get(f.Name))
		if value == "" {
			errs = append(errs, FieldError{Field: f.Name, Message: "is required"})
			continue
		}
		for _, rule := range f.Rules {
			if msg := rule(value); msg != "" {
				errs = append(errs, FieldError{Field: f.Name, Message: msg})
			}
		}
	}
	return errs
}

// Alphanumeric requires letters and digits only.
func Alphanumeric() Rule {
	re := regexp.MustCompile(`^[A-Za-z0-9]+$`)
	return func(value string) string {
		if !re.MatchString(value) {
			return "must contain only letters and digits"
		}
		return ""
	}
}

// LenBetween requires min <= len(value) <= max.
func LenBetween(min, max int) Rule {
	return func(value string) string {
		if len(value) < min || len(value) > max {
			return fmt.Sprintf("must be between %d and %d characters", min, max)
		}
		return ""
	}
}

// MaxLen requires len(value) <= max.
func MaxLen(max int) Rule {
	return func(value string) string {
		if len(value) > max {
			return fmt.Sprintf("must be at most %d characters", max)
		}
		return ""
	}
}

// Pattern requires the value to match re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return func(value string) string {
		if !re.MatchString(value) {
			return message
		}
		return ""
	}
}

// Email requires a parseable email address.
func Email() Rule {
	return func(value string) string {
		if _, err := mail.ParseAddress(value); err != nil {
			return "must be a valid email address"
		}
		return ""
	}
}

// DateBetween requires a DateLayout date strictly after min and strictly
// before the current date.
func DateBetween(min time.Time) Rule {
	return func(value string) string {
		d, err := time.Parse(DateLayout, value)
		if err != nil {
			return "must be a date in YYYY-MM-DD format"
		}
		if !d.After(min) {
			return fmt.Sprintf("must be after %s", min.Format(DateLayout))
		}
		if !d.Before(time.Now()) {
			return "must be before today"
		}
		return ""
	}
}

// ParseDate parses a DateLayout date previously accepted by DateBetween.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}
