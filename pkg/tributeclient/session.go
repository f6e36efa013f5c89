// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tributeclient

import (
	"context"
	"net/http"
	"sync"
)

// AuthState is the signed-in view of one [Session].
type AuthState struct {
	User          *User
	Authenticated bool
	Loading       bool
	Error         string
}

// Session owns the auth state for one [Client]. State changes only through
// its actions and is read through [Session.Snapshot]; a later write replaces
// an earlier one.
type Session struct {
	client *Client

	mu    sync.Mutex
	state AuthState
}

// NewSession returns a signed-out Session bound to client.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

type sessionReply struct {
	User    User `json:"user"`
	Success bool `json:"success"`
}

type checkReply struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

// # Actions

// Login signs in. rememberMe nil keeps the gateway default.
func (s *Session) Login(ctx context.Context, identifier, password string, rememberMe *bool) error {
	body := map[string]any{"identifier": identifier, "password": password}
	if rememberMe != nil {
		body["rememberMe"] = *rememberMe
	}
	return s.open(ctx, "/api/auth/login", body)
}

func (s *Session) Register(ctx context.Context, username, email, password string) error {
	return s.open(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// ResetPassword completes a reset and signs in as the user it belongs to.
func (s *Session) ResetPassword(ctx context.Context, code, password, confirmation string) error {
	return s.open(ctx, "/api/auth/reset-password", map[string]string{
		"code":                 code,
		"password":             password,
		"passwordConfirmation": confirmation,
	})
}

// ForgotPassword asks the gateway to mail a reset link. State is untouched
// apart from Loading and Error.
func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	s.begin()
	err := s.client.call(ctx, http.MethodPost, "/api/auth/forgot-password", nil, map[string]string{"email": email}, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.state.Error = message(err)
	return err
}

// Logout clears the gateway cookie. The local state is signed out even when
// the call fails.
func (s *Session) Logout(ctx context.Context) error {
	s.begin()
	err := s.client.call(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)

	s.set(AuthState{Error: message(err)})
	return err
}

// Refresh asks the gateway who the cookie belongs to.
func (s *Session) Refresh(ctx context.Context) error {
	s.begin()

	var reply checkReply
	if err := s.client.call(ctx, http.MethodGet, "/api/auth/check", nil, nil, &reply); err != nil {
		s.set(AuthState{Error: message(err)})
		return err
	}

	s.set(AuthState{User: reply.User, Authenticated: reply.Authenticated && reply.User != nil})
	return nil
}

// # Reads

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated
}

// RequireAuth returns the signed-in user or [ErrNotAuthenticated].
func (s *Session) RequireAuth() (*User, error) {
	state := s.Snapshot()
	if !state.Authenticated || state.User == nil {
		return nil, ErrNotAuthenticated
	}
	return state.User, nil
}

// # Helpers

func (s *Session) open(ctx context.Context, path string, body any) error {
	s.begin()

	var reply sessionReply
	if err := s.client.call(ctx, http.MethodPost, path, nil, body, &reply); err != nil {
		s.set(AuthState{Error: message(err)})
		return err
	}

	user := reply.User
	s.set(AuthState{User: &user, Authenticated: true})
	return nil
}

func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Error = ""
}

func (s *Session) set(state AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
