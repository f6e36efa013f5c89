// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every response leaving the gateway follows one of two shapes: the success
// envelope `{data, meta}` mirrored from the upstream, or the error body
// `{error, code, details}`. The `error` key always carries the message.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/constants"
	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// MetaEnvelope is the JSON envelope for responses that carry upstream metadata
// (pagination and friends).
type MetaEnvelope struct {
	Data any             `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// WithMeta writes a 200 OK response carrying the upstream meta block verbatim.
func WithMeta(writer http.ResponseWriter, data any, meta json.RawMessage) {
	JSON(writer, http.StatusOK, MetaEnvelope{Data: data, Meta: meta})
}

// Plain writes a bare JSON object with 200 OK. Used by the auth routes whose
// contract is `{user, success}` rather than the data envelope.
func Plain(writer http.ResponseWriter, payload any) {
	JSON(writer, http.StatusOK, payload)
}

// NoStore marks the response as uncacheable. Call before writing the body.
func NoStore(writer http.ResponseWriter) {
	header := writer.Header()
	header.Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
	header.Set("Pragma", "no-cache")
	header.Set("Expires", "0")
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side or upstream issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	if appError.RetryAfter > 0 {
		writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(appError.RetryAfter))
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
