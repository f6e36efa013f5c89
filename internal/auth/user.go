// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the authentication surface of the gateway.

The upstream CMS owns every account. This package validates credentials
locally, forwards exactly one call per request, and turns the upstream's
token into an HttpOnly session cookie.

# Architecture

  - Handler: transport concerns (validation, cookie, status codes).
  - Service: throttling and orchestration.
  - Gateway: the upstream calls (/auth/local, /users/me, ...).
*/
package auth

import "time"

// # Domain Entities

// Role is the upstream permission role attached to a user.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// User is the upstream account record, relayed verbatim and never modified here.
type User struct {
	ID         int64      `json:"id"`
	DocumentID string     `json:"documentId,omitempty"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Provider   string     `json:"provider,omitempty"`
	Confirmed  bool       `json:"confirmed"`
	Blocked    bool       `json:"blocked"`
	Role       *Role      `json:"role,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Session is the result of a successful login, registration or password reset.
//
// Token must only ever reach the session cookie, never a response body.
type Session struct {
	Token string `json:"jwt"`
	User  User   `json:"user"`
}

// # Field Identifiers

const (
	FieldIdentifier           = "identifier"
	FieldPassword             = "password"
	FieldRememberMe           = "rememberMe"
	FieldUsername             = "username"
	FieldEmail                = "email"
	FieldPasswordConfirmation = "passwordConfirmation"
	FieldCode                 = "code"
)
