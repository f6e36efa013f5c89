// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire gateway.

It defines default timeouts, rate limits, header names and the JSON field
identifiers shared between the HTTP layer and the upstream translator.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Headers: Tracing and proxy header names.

Session cookie settings are NOT here: they are configuration and live in
[config.Config] so they can be injected per environment.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tributestream-gateway"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads are streamed, so this is generous.
	DefaultReadTimeout = 60 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete
	// during shutdown. It outlasts GlobalRequestTimeout so no request is still
	// running when the audit queue closes.
	ShutdownTimeout = GlobalRequestTimeout + 5*time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Uploads

const (
	// MaxUploadBytes bounds the multipart body accepted by POST /api/upload.
	MaxUploadBytes = 32 << 20
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderCacheControl  = "Cache-Control"
	HeaderRetryAfter    = "Retry-After"

	// ContentTypeJSON is the media type used for every JSON exchange.
	ContentTypeJSON = "application/json"

	// CacheControlNoStore prevents intermediaries from caching identity responses.
	CacheControlNoStore = "no-store, no-cache, must-revalidate, proxy-revalidate"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldSuccess = "success"
	FieldOK      = "ok"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixAuthAttempt = "gateway:auth_attempt:"
)
