// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Upstream Access

// Gateway defines the upstream calls behind the auth routes. Every method
// performs exactly one network call.
type Gateway interface {

	/*
		Login exchanges credentials for a session.

		Parameters:
		  - context: context.Context
		  - identifier: string (email or username)
		  - password: string

		Returns:
		  - *Session: Token and user
		  - error: Upstream or network failure
	*/
	Login(context context.Context, identifier, password string) (*Session, error)

	/*
		Register creates an account and returns its first session.

		Parameters:
		  - context: context.Context
		  - input: RegisterInput

		Returns:
		  - *Session: Token and user
		  - error: Upstream or network failure
	*/
	Register(context context.Context, input RegisterInput) (*Session, error)

	/*
		Me returns the user the token belongs to.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *User: Current user
		  - error: Upstream 401 when the token is rejected
	*/
	Me(context context.Context, token string) (*User, error)

	/*
		ForgotPassword asks the upstream to mail a reset code.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Upstream or network failure
	*/
	ForgotPassword(context context.Context, email string) error

	/*
		ResetPassword consumes a reset code and returns a fresh session.

		Parameters:
		  - context: context.Context
		  - input: ResetPasswordInput

		Returns:
		  - *Session: Token and user
		  - error: Upstream or network failure
	*/
	ResetPassword(context context.Context, input ResetPasswordInput) (*Session, error)
}

// # Attempt Throttling

// AttemptLimiter counts credential attempts per key within a window.
type AttemptLimiter interface {

	/*
		Allow registers one attempt.

		Parameters:
		  - context: context.Context
		  - key: string (already fingerprinted)

		Returns:
		  - time.Duration: Zero when allowed, otherwise the wait until the next attempt
		  - error: Backend failure (callers fail open)
	*/
	Allow(context context.Context, key string) (time.Duration, error)
}
