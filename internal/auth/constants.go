// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "regexp"

// # Upstream Endpoints

const (
	PathLogin          = "/auth/local"
	PathRegister       = "/auth/local/register"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathMe             = "/users/me"
)

// # Credential Rules

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	PasswordMinLength = 8
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// # Messages

const (
	msgIdentifierRequired   = "Email or username is required"
	msgPasswordRequired     = "Password is required"
	msgUsernameRequired     = "Username is required"
	msgUsernameTooShort     = "Username must be at least 3 characters"
	msgUsernameTooLong      = "Username must be less than 50 characters"
	msgUsernameCharset      = "Username can only contain letters, numbers, and underscores"
	msgEmailInvalid         = "Invalid email address"
	msgPasswordTooShort     = "Password must be at least 8 characters"
	msgPasswordNeedsUpper   = "Password must contain at least one uppercase letter"
	msgPasswordNeedsLower   = "Password must contain at least one lowercase letter"
	msgPasswordNeedsDigit   = "Password must contain at least one number"
	msgConfirmationRequired = "Password confirmation is required"
	msgPasswordsMismatch    = "Passwords don't match"
	msgCodeRequired         = "Reset code is required"
)
