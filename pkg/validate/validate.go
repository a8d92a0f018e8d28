// Package validate holds the field checks shared by every network operation.
// Checks never panic: they return the normalized value or an *Error naming
// the offending field.
package validate

import (
	"errors"
	"strings"
)

var (
	ErrBlank       = errors.New("cannot be blank")
	ErrNonPositive = errors.New("must be positive")
	ErrEmpty       = errors.New("cannot be empty")
)

// Error is a failed check on a single field. Err is one of ErrBlank,
// ErrNonPositive or ErrEmpty.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return e.Field + " " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(field string, err error) *Error {
	return &Error{Field: field, Err: err}
}

// NonBlank trims value and rejects it if nothing is left.
func NonBlank(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fail(field, ErrBlank)
	}
	return trimmed, nil
}

// Positive rejects zero and negative values.
func Positive(value int, field string) (int, error) {
	if value <= 0 {
		return 0, fail(field, ErrNonPositive)
	}
	return value, nil
}

// NonEmpty rejects an empty set.
func NonEmpty[T any](values []T, field string) error {
	if len(values) == 0 {
		return fail(field, ErrEmpty)
	}
	return nil
}

// OptionalPositive accepts nil; a present value must be positive.
func OptionalPositive(value *int, field string) (*int, error) {
	if value == nil {
		return nil, nil
	}
	v, err := Positive(*value, field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// TrimOptional trims an optional text value. Blank input becomes "" (absent).
func TrimOptional(value string) string {
	return strings.TrimSpace(value)
}

// Topics trims every topic, drops blanks and duplicates (first occurrence
// wins) and requires at least one topic to remain.
func Topics(topics []string, field string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if err := NonEmpty(out, field); err != nil {
		return nil, err
	}
	return out, nil
}
