// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tributestream/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Session Credential

// WithToken returns a new context carrying the caller's upstream bearer token.
//
// The token is request-scoped: nothing outside the request ever holds it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyToken, token)
}

// GetToken retrieves the bearer token resolved for this request.
// Returns an empty string for anonymous requests.
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxkey.KeyToken).(string)
	return token
}

// WithUserID records the upstream user id carried by the session token.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUserID, id)
}

// GetUserID returns the upstream user id, or 0 for anonymous requests and
// tokens without an id claim.
func GetUserID(ctx context.Context) int64 {
	id, _ := ctx.Value(ctxkey.KeyUserID).(int64)
	return id
}
