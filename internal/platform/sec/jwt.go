// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides local inspection of upstream-issued credentials.
//
// # Architecture
//
// The gateway never mints tokens: the upstream CMS signs them. What lives
// here is the cheap, offline check that lets the gateway reject an obviously
// dead credential before spending a network round-trip on it.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken means the value is not a structurally valid JWT.
	ErrMalformedToken = errors.New("sec: malformed token")

	// ErrExpiredToken means the token's exp claim is in the past.
	ErrExpiredToken = errors.New("sec: token expired")

	// ErrInvalidSignature means a signing secret is configured and the token
	// does not verify against it.
	ErrInvalidSignature = errors.New("sec: invalid token signature")
)

// TokenClaims mirrors the claims the upstream puts in its session tokens.
type TokenClaims struct {
	jwt.RegisteredClaims

	// UserID is the upstream's numeric user identifier.
	UserID int64 `json:"id"`
}

// TokenInspector checks upstream JWTs without contacting the upstream.
type TokenInspector struct {
	secret []byte
	now    func() time.Time
}

// NewTokenInspector creates a TokenInspector. An empty secret disables
// signature verification; structure and expiry are always checked.
func NewTokenInspector(secret string) *TokenInspector {
	inspector := &TokenInspector{now: time.Now}
	if secret != "" {
		inspector.secret = []byte(secret)
	}
	return inspector
}

// WithClock overrides the time source. Intended for tests.
func (inspector *TokenInspector) WithClock(now func() time.Time) *TokenInspector {
	inspector.now = now
	return inspector
}

// Inspect returns the claims of a usable token or one of the sentinel errors.
func (inspector *TokenInspector) Inspect(raw string) (*TokenClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Count(raw, ".") != 2 {
		return nil, ErrMalformedToken
	}

	if inspector.secret == nil {
		return inspector.inspectUnverified(raw)
	}
	return inspector.inspectSigned(raw)
}

func (inspector *TokenInspector) inspectUnverified(raw string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.ExpiresAt != nil && !inspector.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}

func (inspector *TokenInspector) inspectSigned(raw string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(inspector.now),
	)

	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return inspector.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case !token.Valid:
		return nil, ErrInvalidSignature
	}

	return claims, nil
}
