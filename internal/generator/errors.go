package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/vmunix/newfile/internal/naming"
)

var (
	// ErrValidation indicates the request failed pre-flight validation.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists indicates the target file already exists.
	ErrAlreadyExists = errors.New("file already exists")

	// ErrPermissionDenied indicates the process may not write the target.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDirectoryNotFound indicates a directory on the target path is missing.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrPathTooLong indicates the target path exceeds the platform limit.
	ErrPathTooLong = errors.New("path too long")

	// ErrIO indicates a generic read or write failure.
	ErrIO = errors.New("I/O error")

	// ErrCreateFailed is the catch-all for anything else.
	ErrCreateFailed = errors.New("file creation failed")
)

// classify maps err onto one of the package sentinels.
func classify(err error) error {
	for _, sentinel := range []error{
		ErrValidation, ErrAlreadyExists, ErrPermissionDenied,
		ErrDirectoryNotFound, ErrPathTooLong, ErrIO,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	var pathErr *fs.PathError
	var linkErr *os.LinkError
	switch {
	case errors.Is(err, fs.ErrExist):
		return ErrAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return ErrDirectoryNotFound
	case errors.Is(err, syscall.ENAMETOOLONG), errors.Is(err, naming.ErrPathTooLong):
		return ErrPathTooLong
	case errors.As(err, &pathErr), errors.As(err, &linkErr):
		return ErrIO
	default:
		return ErrCreateFailed
	}
}

// wrap attaches the matching sentinel to err unless it already carries one.
func wrap(err error) error {
	sentinel := classify(err)
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
