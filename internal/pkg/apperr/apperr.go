// Package apperr defines the business error taxonomy shared by all modules.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel categories. Services wrap these with context via the constructors
// below; handlers classify with errors.Is and map each category to a status.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

func NotFound(format string, args ...interface{}) error {
	return wrap(ErrNotFound, format, args...)
}

func Forbidden(format string, args ...interface{}) error {
	return wrap(ErrForbidden, format, args...)
}

func InvalidArgument(format string, args ...interface{}) error {
	return wrap(ErrInvalidArgument, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return wrap(ErrConflict, format, args...)
}

// StoreUnavailable marks a transient dependency failure. The cause is kept in
// the chain for logging but the category is what handlers dispatch on.
func StoreUnavailable(cause error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return fmt.Errorf("%s: %w", msg, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrStoreUnavailable, cause)
}

func wrap(category error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), category)
}
