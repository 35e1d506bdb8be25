// Package services holds the error taxonomy shared by the service layer.
// Controllers map these onto HTTP statuses; anything unwrapped is a storage
// failure and surfaces as a 500.
package services

import "errors"

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an operation on a record that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden marks an operation on a record owned by someone else.
	ErrForbidden = errors.New("forbidden")
)
