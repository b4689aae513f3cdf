package errors

import (
	stderrors "errors"
	"fmt"

	"chartprep/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code, resolving domain sentinels for plain errors
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeFor(err)
}

// Predefined error codes
const (
	CodeEmptyDataset     = "EMPTY_DATASET"
	CodeEmptyInput       = "EMPTY_INPUT"
	CodeMissingField     = "MISSING_FIELD"
	CodeInvalidFieldType = "INVALID_FIELD_TYPE"
	CodeLengthMismatch   = "LENGTH_MISMATCH"
	CodeDivisionByZero   = "DIVISION_BY_ZERO"
	CodeDegenerateFit    = "DEGENERATE_FIT"
	CodeNotFound         = "NOT_FOUND"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeIngestError      = "INGEST_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// CodeFor maps domain sentinel errors to their error code
func CodeFor(err error) string {
	switch {
	case stderrors.Is(err, core.ErrEmptyDataset):
		return CodeEmptyDataset
	case stderrors.Is(err, core.ErrEmptyInput):
		return CodeEmptyInput
	case stderrors.Is(err, core.ErrMissingField):
		return CodeMissingField
	case stderrors.Is(err, core.ErrInvalidFieldType):
		return CodeInvalidFieldType
	case stderrors.Is(err, core.ErrLengthMismatch):
		return CodeLengthMismatch
	case stderrors.Is(err, core.ErrDivisionByZero):
		return CodeDivisionByZero
	case stderrors.Is(err, core.ErrDegenerateFit):
		return CodeDegenerateFit
	case stderrors.Is(err, core.ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternalError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func IngestError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeIngestError,
		Message: message,
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
