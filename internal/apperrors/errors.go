package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but may not touch the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a write was based on a stale version of the resource.
var ErrConflict = errors.New("version conflict")

// ErrNotConfigured indicates that an optional integration has no credentials configured.
var ErrNotConfigured = errors.New("integration not configured")

// ErrIncompleteReceipt indicates the OCR vendor returned a document without an id or total.
var ErrIncompleteReceipt = errors.New("incomplete receipt data")

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
