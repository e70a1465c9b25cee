package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad, missing or out-of-range input. State is never changed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an operation on a product that does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrInsufficientStock marks a sale larger than the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPersistence marks a failure to read or write the data files.
	ErrPersistence = errors.New("persistence failure")

	// ErrLogWrite marks a failed activity log append after a committed mutation.
	ErrLogWrite = errors.New("activity log write failed")
)

// ValidationError describes which input was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid is a shorthand for building a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing product.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("product %q not found", e.Name) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError is a ValidationError specialization carrying the
// requested and available quantities.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Product, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock || target == ErrValidation
}

// IOError wraps a filesystem failure with the operation and the path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrPersistence }

// LogWriteError is returned when a mutation was committed and saved but its
// activity log line could not be written.
type LogWriteError struct {
	Action string
	Err    error
}

func (e *LogWriteError) Error() string {
	return fmt.Sprintf("mutation committed but activity log append failed: %v", e.Err)
}

func (e *LogWriteError) Unwrap() error { return e.Err }

func (e *LogWriteError) Is(target error) bool { return target == ErrLogWrite }
