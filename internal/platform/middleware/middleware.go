// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP chain in front of the proxy
handlers.

Standard Stack:

  - Trace: request IDs, propagated to the upstream call.
  - Log: one structured line per request (slog).
  - Guard: per-IP rate limiting and CORS.
  - Session: resolving the upstream credential before handlers run.
  - Safe: panic recovery.

Handlers behind this chain only parse, forward and reshape.
*/
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/constants"
	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
	"github.com/taibuivan/tributestream/internal/platform/respond"
	"github.com/taibuivan/tributestream/pkg/uuid"
)

// # Request Tracing

// maxRequestIDLength bounds client-supplied IDs; they end up in upstream
// headers and every log line.
const maxRequestIDLength = 64

// RequestID attaches a correlation ID to every request. A client-supplied ID
// is kept only when it is short and made of [A-Za-z0-9._-].
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !validRequestID(requestID) {
				requestID = uuid.New()
			}

			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Write(payload []byte) (int, error) {
	n, err := recorder.ResponseWriter.Write(payload)
	recorder.written += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (recorder *statusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

// StructuredLogger writes one line per request and injects a request-scoped
// logger into the context. Tokens and bodies are never logged.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			wrapped := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrapped, request.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case wrapped.status >= 500:
				level = slog.LevelError
			case wrapped.status >= 400:
				level = slog.LevelWarn
			}

			attrs := []any{
				slog.Int("status", wrapped.status),
				slog.Int64("bytes", wrapped.written),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					attrs = append(attrs, slog.String("route", pattern))
				}
			}

			requestLogger.Log(ctx, level, "http_request_finished", attrs...)
		})
	}
}

// # Rate Limiting

// ipLimiter holds one token bucket per client IP.
type ipLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rateLimitClient
}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// allow spends one token for ip. When the bucket is empty it returns the wait
// until the next token.
func (l *ipLimiter) allow(ip string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, found := l.clients[ip]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now

	if client.limiter.AllowN(now, 1) {
		return true, 0
	}

	reservation := client.limiter.ReserveN(now, 1)
	wait := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return false, wait
}

func (l *ipLimiter) prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, client := range l.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(l.clients, ip)
		}
	}
}

// RateLimit limits requests per IP using a token bucket. Rejections carry a
// Retry-After header.
//
// Each call owns its own client table, so two routers never share buckets.
// Idle entries are pruned until ctx is done.
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	limiter := &ipLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rateLimitClient),
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiter.prune(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			allowed, wait := limiter.allow(RealIP(request), time.Now())
			if !allowed {
				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds(wait)))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func retryAfterSeconds(wait time.Duration) int {
	if wait == rate.InfDuration {
		return int(constants.RateLimitClientTTL.Seconds())
	}
	return max(1, int(math.Ceil(wait.Seconds())))
}

// # Reliability & Safety

// PanicRecovery turns a handler panic into a 500 and logs the stack with the
// request-scoped logger. [http.ErrAbortHandler] is re-raised so net/http can
// abort the response.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(debug.Stack())),
				)

				respond.JSON(writer, http.StatusInternalServerError, respond.ErrorEnvelope{
					Error: apperr.Internal(fmt.Errorf("panic: %v", recovered)).Message,
					Code:  apperr.CodeInternal,
				})
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// OriginPolicy decides which browser origins may call the gateway.
type OriginPolicy interface {
	AllowsOrigin(origin string) bool
}

// CORS handles cross-origin requests. The session cookie needs credentials,
// so the exact origin is echoed back and never "*". Preflight gets 204.
func CORS(policy OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)
			if policy.AllowsOrigin(origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "Retry-After, X-Request-ID")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP extracts the client IP, trusting X-Real-IP then the first
// X-Forwarded-For hop. The gateway is expected to sit behind one proxy.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
