package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Wrapped errors carry the field-level message.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStoreFailure indicates the external record store rejected or failed an
// operation. The in-memory state is left untouched when it is returned.
var ErrStoreFailure = errors.New("record store failure")

// StoreFailure tags err as a record store failure. Both ErrStoreFailure and
// err's own chain stay matchable with errors.Is.
func StoreFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}
