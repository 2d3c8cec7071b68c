package common

import (
	"errors"
	"net/http"
)

// Error codes shared by every endpoint.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeParse         = "PARSE_ERROR"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeNotFound      = "NOT_FOUND"
	CodeBadRequest    = "BAD_REQUEST"
	CodeInternal      = "INTERNAL"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithDetails returns the error with the payload attached.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// ValidationError reports malformed or empty client input.
func ValidationError(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, http.StatusBadRequest, err)
}

// ParseError reports freeform text that matched no supported format.
func ParseError(message string, err error) *AppError {
	return NewAppError(CodeParse, message, http.StatusBadRequest, err)
}

// AlreadyExistsError reports a uniqueness violation on the given key.
func AlreadyExistsError(message string, err error) *AppError {
	return NewAppError(CodeAlreadyExists, message, http.StatusConflict, err)
}

// NotFoundError reports a lookup miss on the given key.
func NotFoundError(message string, err error) *AppError {
	return NewAppError(CodeNotFound, message, http.StatusNotFound, err)
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	var target *AppError
	if !errors.As(err, &target) {
		return false
	}
	return target.Code == code
}
