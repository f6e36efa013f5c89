// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tributeclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// FieldError is one failed form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a non-2xx gateway reply.
type Error struct {
	Status  int          `json:"-"`
	Message string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		parts = append(parts, detail.Field+": "+detail.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// ErrNotAuthenticated is returned by [Session.RequireAuth] when signed out.
var ErrNotAuthenticated = &Error{
	Status:  http.StatusUnauthorized,
	Message: "Authentication required",
	Code:    "UNAUTHORIZED",
}

// IsUnauthorized reports whether err is a 401 from the gateway or [ErrNotAuthenticated].
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func decodeError(status int, payload []byte) *Error {
	apiErr := &Error{Status: status}
	if json.Unmarshal(payload, apiErr) != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
