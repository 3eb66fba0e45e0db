// Package validation collects field level problems found while checking form input.
package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the longest name, location or event the store accepts.
const MaxTextLength = 256

type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by services when input fails validation. It is never sent to the store.
type Errors []Problem

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, p := range e {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether a problem was recorded for field.
func (e Errors) Has(field string) bool {
	for _, p := range e {
		if p.Field == field {
			return true
		}
	}
	return false
}

type Validator struct {
	problems Errors
}

func (v *Validator) Add(field, message string) {
	v.problems = append(v.problems, Problem{Field: field, Message: message})
}

// Text checks that value is non-empty after trimming and at most max characters long.
func (v *Validator) Text(field, value string, max int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.Add(field, "is required")
		return
	}
	v.OptionalText(field, value, max)
}

func (v *Validator) OptionalText(field, value string, max int) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		v.Add(field, "must be at most "+strconv.Itoa(max)+" characters")
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Number rejects NaN and infinities. It returns false when value is unusable.
func (v *Validator) Number(field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.Add(field, "must be a number")
		return false
	}
	return true
}

// Err returns nil when no problem was recorded.
func (v *Validator) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return v.problems
}
