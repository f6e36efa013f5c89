// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
	"github.com/taibuivan/tributestream/internal/platform/sec"
)

// # Contracts & Types

// LoginInput holds a validated login form.
type LoginInput struct {
	Identifier string
	Password   string
	ClientIP   string
}

// RegisterInput holds a validated registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	ClientIP string
}

// ResetPasswordInput holds a validated password reset form.
type ResetPasswordInput struct {
	Code                 string
	Password             string
	PasswordConfirmation string
	ClientIP             string
}

// Service implements the authentication use cases on top of a [Gateway].
type Service struct {
	gateway Gateway
	limiter AttemptLimiter
}

// NewService constructs a new [Service].
func NewService(gateway Gateway, limiter AttemptLimiter) *Service {
	return &Service{gateway: gateway, limiter: limiter}
}

// # Session Flows

/*
Login exchanges credentials for a session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Token and user
  - error: RateLimited before the network, or the upstream failure
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	if err := service.throttle(context, "login", input.ClientIP, input.Identifier); err != nil {
		return nil, err
	}
	return service.gateway.Login(context, input.Identifier, input.Password)
}

/*
Register creates an account upstream and returns its first session.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Token and user
  - error: RateLimited before the network, or the upstream failure
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	if err := service.throttle(context, "register", input.ClientIP, input.Email); err != nil {
		return nil, err
	}
	return service.gateway.Register(context, input)
}

// ForgotPassword requests a reset code for email.
func (service *Service) ForgotPassword(context context.Context, email, clientIP string) error {
	if err := service.throttle(context, "forgot", clientIP, email); err != nil {
		return err
	}
	return service.gateway.ForgotPassword(context, email)
}

// ResetPassword consumes a reset code and returns a fresh session.
func (service *Service) ResetPassword(context context.Context, input ResetPasswordInput) (*Session, error) {
	if err := service.throttle(context, "reset", input.ClientIP, ""); err != nil {
		return nil, err
	}
	return service.gateway.ResetPassword(context, input)
}

// # Identity

/*
CurrentUser returns the user behind token.

Description: An empty token fails with Unauthorized without touching the
network.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: Current user
  - error: Unauthorized, or the upstream failure
*/
func (service *Service) CurrentUser(context context.Context, token string) (*User, error) {
	if token == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.gateway.Me(context, token)
}

// # Throttling

// throttle counts attempts per action, client IP and account identifier.
// Identifiers compare case-insensitively. It fails open: a broken limiter
// backend is logged, never surfaced.
func (service *Service) throttle(context context.Context, action, clientIP, identifier string) error {
	if service.limiter == nil {
		return nil
	}

	key := sec.Fingerprint(action, clientIP, strings.ToLower(strings.TrimSpace(identifier)))
	retryAfter, err := service.limiter.Allow(context, key)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "auth_throttle_unavailable",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if retryAfter > 0 {
		ctxutil.GetLogger(context).WarnContext(context, "auth_attempts_throttled",
			slog.String("action", action),
			slog.Duration("retry_after", retryAfter),
		)
		return apperr.RateLimited(int(math.Ceil(retryAfter.Seconds())))
	}

	return nil
}

// SessionTTL picks the cookie lifetime for a login: remembered sessions get
// the long TTL, an explicit "don't remember" the short one, and everything
// else the default.
func SessionTTL(rememberMe *bool, standard, remember, short time.Duration) time.Duration {
	switch {
	case rememberMe == nil:
		return standard
	case *rememberMe:
		return remember
	default:
		return short
	}
}
