package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule is a declarative constraint set for a single input field.
type Rule struct {
	Field    string
	Required bool
	MinLen   int
	MaxLen   int
	OneOf    []string
	Numeric  bool
	Email    bool
	Digits   int // exact digit count, 0 disables

	// Messages override the generated ones when set.
	RequiredMsg string
	LengthMsg   string
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Apply evaluates every rule against the supplied values and returns all
// failures. Absence of a key means the field was omitted: omitted optional
// fields are skipped, while a key that is present runs every check, so an
// explicitly supplied empty value fails its length/enum constraints.
func Apply(values map[string]string, rules []Rule) []FieldError {
	var errs []FieldError

	for _, r := range rules {
		val, present := values[r.Field]
		val = strings.TrimSpace(val)

		if !present && !r.Required {
			continue
		}

		if val == "" && r.Required {
			msg := r.RequiredMsg
			if msg == "" {
				msg = fmt.Sprintf("%s is required", r.Field)
			}
			errs = append(errs, FieldError{Field: r.Field, Message: msg})
			continue
		}

		if r.MinLen > 0 || r.MaxLen > 0 {
			n := len([]rune(val))
			if (r.MinLen > 0 && n < r.MinLen) || (r.MaxLen > 0 && n > r.MaxLen) {
				msg := r.LengthMsg
				if msg == "" {
					msg = fmt.Sprintf("%s should be in range of %d to %d characters", r.Field, r.MinLen, r.MaxLen)
				}
				errs = append(errs, FieldError{Field: r.Field, Message: msg})
			}
		}

		if len(r.OneOf) > 0 && !contains(r.OneOf, val) {
			errs = append(errs, FieldError{
				Field:   r.Field,
				Message: fmt.Sprintf("%s must be one of: %s", r.Field, strings.Join(r.OneOf, ", ")),
			})
		}

		if r.Numeric {
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				errs = append(errs, FieldError{Field: r.Field, Message: fmt.Sprintf("%s must be a number", r.Field)})
			}
		}

		if r.Email && !emailRe.MatchString(val) {
			errs = append(errs, FieldError{Field: r.Field, Message: "Must be a valid email"})
		}

		if r.Digits > 0 {
			if len(val) != r.Digits || !allDigits(val) {
				errs = append(errs, FieldError{
					Field:   r.Field,
					Message: fmt.Sprintf("%s must be %d digits long", r.Field, r.Digits),
				})
			}
		}
	}

	return errs
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
