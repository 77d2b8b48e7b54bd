package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the custom error type for the application.
type AppError struct {
	Code         ErrorCode    // General system-level category (e.g., NOT_FOUND)
	BusinessCode BusinessCode // Specific business reason (e.g., RESOURCE_NOT_FOUND)
	Message      string       // Caller-facing message
	HTTPStatus   int          // HTTP status code
	Details      any          // Extra details (e.g., validation errors)
	Inner        error        // Wrapped underlying error
}

func (e *AppError) Error() string { return e.Message }
func (e *AppError) Unwrap() error { return e.Inner }

// WithDetails sets the details and returns the same error.
// Package-level sentinels must be copied with Clone first.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// Clone returns a shallow copy, so a shared sentinel can carry
// per-call details without leaking them into other requests.
func (e *AppError) Clone() *AppError {
	c := *e
	return &c
}

// New creates a new AppError.
func New(code ErrorCode, bizCode BusinessCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, BusinessCode: bizCode, Message: message, HTTPStatus: httpStatus}
}

// Wrap creates a new AppError that wraps an existing error.
func Wrap(inner error, code ErrorCode, bizCode BusinessCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, BusinessCode: bizCode, Message: message, HTTPStatus: httpStatus, Inner: inner}
}

// Internal is the generic store/transport failure. The message is what the
// caller sees; inner is kept for logs only.
func Internal(message string, inner error) *AppError {
	return Wrap(inner, CodeInternalError, BusinessCodeGeneral, message, http.StatusInternalServerError)
}

// Forbidden is a permission failure with a caller-facing message.
func Forbidden(message string) *AppError {
	return New(CodeForbidden, BusinessCodePermissionDenied, message, http.StatusForbidden)
}

// Validation is a caller input failure.
func Validation(bizCode BusinessCode, message string) *AppError {
	return New(CodeValidationFailed, bizCode, message, http.StatusBadRequest)
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is allows errors.Is to work with AppError
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	// Match by both Code and BusinessCode for precise matching
	return e.Code == t.Code && e.BusinessCode == t.BusinessCode
}

// Format implements fmt.Formatter for better error output
func (e *AppError) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			_, _ = fmt.Fprintf(f, "Code: %s, BusinessCode: %s, Message: %s, HTTPStatus: %d",
				e.Code, e.BusinessCode, e.Message, e.HTTPStatus)
			if e.Inner != nil {
				_, _ = fmt.Fprintf(f, "\nCaused by: %+v", e.Inner)
			}
			if e.Details != nil {
				_, _ = fmt.Fprintf(f, "\nDetails: %+v", e.Details)
			}
		} else {
			_, _ = fmt.Fprint(f, e.Message)
		}
	case 's':
		_, _ = fmt.Fprint(f, e.Message)
	}
}
