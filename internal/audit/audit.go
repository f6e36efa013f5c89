// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit records successful state-changing calls that passed through the gateway.

Architecture:

  - Event: one row per login, registration, mutation or upload.
  - Recorder: a sink (Postgres when configured, otherwise the structured log).
  - Queue: a bounded worker that decouples recording from the response path.

Recording is best-effort. A failure is logged and never changes what the
client receives.
*/
package audit

import (
	"context"
	"time"
)

// # Actions

const (
	ActionLogin         = "auth.login"
	ActionRegister      = "auth.register"
	ActionLogout        = "auth.logout"
	ActionResetPassword = "auth.reset_password"
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionUpload        = "upload"
)

// Event is a single audit record.
type Event struct {
	ID         string
	Action     string
	Resource   string
	ResourceID string
	Actor      string
	RequestID  string
	IP         string
	Status     int
	CreatedAt  time.Time
}

// Recorder persists audit events.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// RecorderFunc adapts a function to [Recorder].
type RecorderFunc func(ctx context.Context, event Event) error

// Record implements [Recorder].
func (fn RecorderFunc) Record(ctx context.Context, event Event) error {
	return fn(ctx, event)
}
