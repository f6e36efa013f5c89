// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the gateway.

It provides a rich error type that bridges the gap between upstream/transport
failures and the uniform JSON error body returned to clients.

Taxonomy:

  - VALIDATION_ERROR: local, raised before any network call.
  - UNAUTHORIZED: missing or invalid session credential, raised before any network call.
  - UPSTREAM_ERROR: a non-2xx reply from the CMS, carrying its status and message.
  - NETWORK_ERROR: no reply at all; always reported as 500.
  - INTERNAL_ERROR: anything else.

Every error that leaves the service layer should be an [AppError] so the HTTP
layer can render it without guessing.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeNetwork         = "NETWORK_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the gateway.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "UPSTREAM_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Name is the upstream error class (e.g. "ValidationError"), if any.
	Name string `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
	// RetryAfter, in seconds, is sent as the Retry-After header when positive.
	RetryAfter int `json:"-"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches a server-side cause and returns e for chaining.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// BadRequest creates a 400 [AppError] for malformed requests that are not
// field-level validation failures (e.g. missing multipart body).
func BadRequest(msg string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// PayloadTooLarge creates a 413 [AppError].
func PayloadTooLarge(msg string) *AppError {
	return &AppError{
		Code:       CodePayloadTooLarge,
		Message:    msg,
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
		RetryAfter: retryAfterSeconds,
	}
}

// # Upstream Errors

// Upstream creates an [AppError] that mirrors a failed upstream reply.
//
// A status outside the 4xx/5xx range is coerced to 502 so a broken upstream can
// never make the gateway report success.
func Upstream(status int, name, msg string) *AppError {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &AppError{
		Code:       CodeUpstream,
		Message:    msg,
		Name:       name,
		HTTPStatus: status,
	}
}

// Network creates the fixed 500 [AppError] used when the upstream could not be reached.
func Network(cause error) *AppError {
	return &AppError{
		Code:       CodeNetwork,
		Message:    "Failed to connect to API",
		Name:       "NetworkError",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// StatusOf returns the HTTP status carried by err, or 500 if err is not an [AppError].
func StatusOf(err error) int {
	if ae := As(err); ae != nil {
		return ae.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsUnauthorized reports whether err means the session credential was rejected,
// either locally or by the upstream.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
