// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/upstream"
)

// UpstreamGateway implements [Gateway] against the CMS auth endpoints.
type UpstreamGateway struct {
	client *upstream.Client
}

// NewUpstreamGateway creates a new UpstreamGateway.
func NewUpstreamGateway(client *upstream.Client) *UpstreamGateway {
	return &UpstreamGateway{client: client}
}

// Login implements [Gateway].
func (gateway *UpstreamGateway) Login(context context.Context, identifier, password string) (*Session, error) {
	return gateway.session(context, PathLogin, map[string]string{
		FieldIdentifier: identifier,
		FieldPassword:   password,
	})
}

// Register implements [Gateway].
func (gateway *UpstreamGateway) Register(context context.Context, input RegisterInput) (*Session, error) {
	return gateway.session(context, PathRegister, map[string]string{
		FieldUsername: input.Username,
		FieldEmail:    input.Email,
		FieldPassword: input.Password,
	})
}

// ResetPassword implements [Gateway].
func (gateway *UpstreamGateway) ResetPassword(context context.Context, input ResetPasswordInput) (*Session, error) {
	return gateway.session(context, PathResetPassword, map[string]string{
		FieldCode:                 input.Code,
		FieldPassword:             input.Password,
		FieldPasswordConfirmation: input.PasswordConfirmation,
	})
}

// Me implements [Gateway]. The role relation is populated so callers can
// render it without a second call.
func (gateway *UpstreamGateway) Me(context context.Context, token string) (*User, error) {
	result, err := gateway.client.Call(context, upstream.Request{
		Method: http.MethodGet,
		Path:   PathMe,
		Query:  url.Values{"populate": {"role"}},
		Token:  token,
	})
	if err != nil {
		return nil, err
	}

	var user User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword implements [Gateway].
func (gateway *UpstreamGateway) ForgotPassword(context context.Context, email string) error {
	_, err := gateway.client.Call(context, upstream.Request{
		Method: http.MethodPost,
		Path:   PathForgotPassword,
		Body:   map[string]string{FieldEmail: email},
	})
	return err
}

func (gateway *UpstreamGateway) session(context context.Context, path string, body any) (*Session, error) {
	result, err := gateway.client.Call(context, upstream.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := result.Decode(&session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, apperr.Upstream(http.StatusBadGateway, "", "Authentication response did not include a token").
			WithCause(errors.New("auth: upstream " + path + " returned no jwt"))
	}
	return &session, nil
}
