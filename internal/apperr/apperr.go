// Package apperr defines the application error taxonomy surfaced over HTTP.
// Local failures (validation, consent, unknown session) are represented here;
// external-assistant failures never become errors at all — the gateway
// converts them into degraded replies.
package apperr

import (
	"fmt"
	"net/http"
	"time"
)

// Code identifies an error class. Codes map one-to-one onto HTTP statuses.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimited  Code = "RATE_LIMITED"
	CodeExternalAPI  Code = "EXTERNAL_API_ERROR"
	CodeInternal     Code = "INTERNAL_SERVER_ERROR"
)

// Error is a tagged application error with structured details.
type Error struct {
	Code      Code           `json:"error"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// New builds an Error with the current timestamp.
func New(code Code, message string, details map[string]any) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// Validation reports missing or malformed input. No state was mutated.
func Validation(message string, details map[string]any) *Error {
	return New(CodeValidation, message, details)
}

// Unauthorized reports a missing or withdrawn consent gate.
func Unauthorized(message string, details map[string]any) *Error {
	return New(CodeUnauthorized, message, details)
}

// NotFound reports an unknown session or resource.
func NotFound(message string, details map[string]any) *Error {
	return New(CodeNotFound, message, details)
}

// Internal reports an unexpected failure.
func Internal(message string, details map[string]any) *Error {
	return New(CodeInternal, message, details)
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code onto its HTTP status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeExternalAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// From converts any error into an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	return Internal(err.Error(), nil)
}
