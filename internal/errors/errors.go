// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrOversell        = errors.New("sell quantity exceeds held lots")
	ErrNoLegs          = errors.New("no option legs provided")
	ErrTooManyLegs     = errors.New("too many option legs")
	ErrInputValidation = errors.New("input validation failed")
	ErrUnknownProfile  = errors.New("unknown risk profile")
	ErrDataNotFound    = errors.New("data not found")
	ErrDatabaseError   = errors.New("database error")
)

// ValidationError represents a malformed-input error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// LedgerError represents a lot-accounting error, carrying the symbol and the
// quantities involved.
type LedgerError struct {
	Symbol    string
	Requested int
	Held      int
	Err       error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger error [%s]: requested %d, held %d: %v", e.Symbol, e.Requested, e.Held, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError.
func NewLedgerError(symbol string, requested, held int, err error) *LedgerError {
	return &LedgerError{
		Symbol:    symbol,
		Requested: requested,
		Held:      held,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
