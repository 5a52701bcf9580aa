package service

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing records and records owned by someone
	// else; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness violation, e.g. a duplicate category
	// name for the same user.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials is returned on login with a bad username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError aggregates field-level violations so the caller sees every
// problem with a payload at once instead of only the first.
type ValidationError struct {
	Fields map[string][]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// mapNotFound translates the store's record-not-found into the service error.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
