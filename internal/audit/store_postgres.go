// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor is the subset of pgxpool.Pool the recorder needs.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresRecorder appends events to audit.proxy_event.
type PostgresRecorder struct {
	db Executor
}

// NewPostgresRecorder creates a new PostgresRecorder.
func NewPostgresRecorder(db Executor) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

const insertEventQuery = `
	INSERT INTO audit.proxy_event (
		id, action, resource, resource_id, actor, request_id, ip, status, created_at
	) VALUES (
		@id, @action, @resource, NULLIF(@resource_id, ''), NULLIF(@actor, ''),
		NULLIF(@request_id, ''), NULLIF(@ip, ''), @status, @created_at
	)`

/*
Record inserts one event.

Parameters:
  - context: context.Context
  - event: Event

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRecorder) Record(context context.Context, event Event) error {
	_, err := repository.db.Exec(context, insertEventQuery, pgx.NamedArgs{
		"id":          event.ID,
		"action":      event.Action,
		"resource":    event.Resource,
		"resource_id": event.ResourceID,
		"actor":       event.Actor,
		"request_id":  event.RequestID,
		"ip":          event.IP,
		"status":      event.Status,
		"created_at":  event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("audit: insert event %s: %w", event.ID, err)
	}
	return nil
}
