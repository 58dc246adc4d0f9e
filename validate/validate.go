// Package validate enforces the gateway's parameter rules before any
// network call is made. It performs no I/O.
package validate

import (
	"fmt"
	"strings"
)

const (
	ReasonEmpty        = "empty"
	ReasonTooLong      = "too_long"
	ReasonInvalidChars = "invalid_chars"
	ReasonOutOfRange   = "out_of_range"
)

const maxFieldLength = 255

// Characters the gateway rejects in caller-supplied identifiers.
var forbiddenChars = []string{"<", ">", "&", `"`, "'"}

type Error struct {
	Field     string
	Reason    string
	Offending []string
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return fmt.Sprintf("%s cannot be empty", e.Field)
	case ReasonTooLong:
		return fmt.Sprintf("%s cannot exceed %d characters", e.Field, maxFieldLength)
	case ReasonInvalidChars:
		return fmt.Sprintf("%s contains invalid characters: %s", e.Field, strings.Join(e.Offending, ", "))
	case ReasonOutOfRange:
		return fmt.Sprintf("%s is outside the allowed range", e.Field)
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}

// Field checks a required identifier: non-empty, at most 255 characters,
// none of the forbidden characters.
func Field(name, value string) error {
	if value == "" {
		return &Error{Field: name, Reason: ReasonEmpty}
	}
	return check(name, value)
}

// FieldOptional applies the same rules but accepts an empty value.
func FieldOptional(name, value string) error {
	if value == "" {
		return nil
	}
	return check(name, value)
}

func check(name, value string) error {
	// Charset is checked before length so a dirty value is reported as
	// invalid_chars no matter how long it is.
	var offending []string
	for _, c := range forbiddenChars {
		if strings.Contains(value, c) {
			offending = append(offending, c)
		}
	}
	if len(offending) > 0 {
		return &Error{Field: name, Reason: ReasonInvalidChars, Offending: offending}
	}

	if len(value) > maxFieldLength {
		return &Error{Field: name, Reason: ReasonTooLong}
	}

	return nil
}

// Amount checks the closed interval [min, max].
func Amount(amount, min, max float64) error {
	if amount < min || amount > max {
		return &Error{Field: "amount", Reason: ReasonOutOfRange}
	}
	return nil
}
