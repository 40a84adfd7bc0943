// Package common defines shared constants and sentinel errors used across
// the server and client layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrPasswordTooLong is reported alongside ErrorValidation for passwords
	// over the bcrypt input limit.
	ErrPasswordTooLong = errors.New("password too long")

	// ErrFieldTooLong is reported alongside ErrorValidation for names and
	// emails over the column limits.
	ErrFieldTooLong = errors.New("field too long")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError lists the request fields that were missing or malformed.
// It matches ErrorValidation with errors.Is.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrorValidation.Error()
	}
	return ErrorValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrorValidation }
