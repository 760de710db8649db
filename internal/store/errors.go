package store

import "errors"

var (
	// ErrNotFound indicates the requested entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrConstraint indicates a foreign key or check constraint violation.
	ErrConstraint = errors.New("constraint violation")

	// ErrInvalid indicates a snapshot failed validation.
	ErrInvalid = errors.New("invalid snapshot")

	// ErrUnsupportedFormat indicates an export file extension with no codec.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
