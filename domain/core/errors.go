package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Dataset shape errors
	ErrEmptyDataset = errors.New("empty dataset")
	ErrEmptyInput   = errors.New("empty input")
	ErrMissingField = errors.New("missing field")

	// Type errors
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrLengthMismatch   = errors.New("values and positions length mismatch")

	// Degenerate numeric cases - surfaced explicitly instead of
	// letting NaN/Inf propagate into reshaped output
	ErrDivisionByZero = errors.New("division by zero")
	ErrDegenerateFit  = errors.New("degenerate fit")

	// Lookup errors
	ErrNotFound         = errors.New("resource not found")
	ErrArtifactNotFound = fmt.Errorf("%w: artifact", ErrNotFound)
	ErrFieldNotFound    = fmt.Errorf("%w: field", ErrNotFound)
)

// Error constructors with context
func NewMissingFieldError(field string, recordIndex int) error {
	return fmt.Errorf("%w: %q in record %d", ErrMissingField, field, recordIndex)
}

func NewInvalidFieldTypeError(field string, recordIndex int, got string) error {
	return fmt.Errorf("%w: %q in record %d is %s, expected numeric", ErrInvalidFieldType, field, recordIndex, got)
}

func NewDivisionByZeroError(scope string) error {
	return fmt.Errorf("%w: %s total is zero", ErrDivisionByZero, scope)
}

func NewDegenerateFitError(category string) error {
	return fmt.Errorf("%w: all x values identical in category %q", ErrDegenerateFit, category)
}

// Error checking helpers
func IsDataError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidFieldType) ||
		errors.Is(err, ErrLengthMismatch)
}

func IsDegenerateError(err error) bool {
	return errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrDegenerateFit)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
