// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
	"github.com/taibuivan/tributestream/internal/platform/respond"
	"github.com/taibuivan/tributestream/internal/platform/sec"
	"github.com/taibuivan/tributestream/internal/platform/session"
)

// TokenInspector defines the interface needed to vet tokens in middleware.
type TokenInspector interface {
	Inspect(token string) (*sec.TokenClaims, error)
}

// Authenticate resolves the caller's upstream credential.
//
// # Flow
//  1. Ask the [session.Store] for a token (cookie, then bearer header).
//  2. If absent, request proceeds as anonymous.
//  3. If present but malformed or expired, clear the cookie and proceed as anonymous.
//  4. Otherwise inject the token into the request context for the upstream call.
//
// The upstream remains the authority: a token that passes here may still be
// rejected with 401 by the CMS.
func Authenticate(store session.Store, inspector TokenInspector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := store.Token(request)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Local Inspection ───────────────────────────────────────────
			claims, err := inspector.Inspect(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "session_token_discarded",
					slog.String("reason", err.Error()),
				)
				store.Clear(writer)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithToken(request.Context(), token)
			if claims.UserID != 0 {
				ctx = ctxutil.WithUserID(ctx, claims.UserID)
			}

			// ── 4. Upstream Rejection ─────────────────────────────────────────
			// Any 401 answered with this token means the CMS no longer accepts it.
			guarded := &clearOnUnauthorized{ResponseWriter: writer, store: store}
			next.ServeHTTP(guarded, request.WithContext(ctx))
		})
	}
}

// clearOnUnauthorized expires the session cookie when a 401 is written.
type clearOnUnauthorized struct {
	http.ResponseWriter
	store       session.Store
	wroteHeader bool
}

func (guard *clearOnUnauthorized) WriteHeader(code int) {
	if !guard.wroteHeader {
		guard.wroteHeader = true
		if code == http.StatusUnauthorized {
			guard.store.Clear(guard.ResponseWriter)
		}
	}
	guard.ResponseWriter.WriteHeader(code)
}

func (guard *clearOnUnauthorized) Write(payload []byte) (int, error) {
	guard.wroteHeader = true
	return guard.ResponseWriter.Write(payload)
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (guard *clearOnUnauthorized) Unwrap() http.ResponseWriter {
	return guard.ResponseWriter
}

// RequireSession blocks requests that carry no usable credential.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Rejection happens
// before any upstream call is made.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetToken(request.Context()) == "" {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
