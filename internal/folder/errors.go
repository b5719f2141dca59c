package folder

import (
	"errors"
	"fmt"
)

var (
	// ErrFolderNotFound is returned when the referenced folder no longer
	// exists, typically because a delete raced the caller's view.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrDuplicateItem is returned when the item is already present in the
	// target folder. Callers surface it to the user as "already added".
	ErrDuplicateItem = errors.New("item already exists in this folder")
)

// ValidationError reports caller-supplied input that violates a
// precondition, such as an empty folder name.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// StorageError wraps a failed read or write against the blob store. After
// one the caller's in-memory view may no longer match durable state.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("folder storage %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
