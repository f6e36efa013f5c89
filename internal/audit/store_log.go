// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"log/slog"
)

// LogRecorder writes events to the structured log. It is the fallback when
// no database is configured.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder creates a new LogRecorder.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Record implements [Recorder].
func (recorder *LogRecorder) Record(ctx context.Context, event Event) error {
	recorder.logger.InfoContext(ctx, "audit_event",
		slog.String("event_id", event.ID),
		slog.String("action", event.Action),
		slog.String("resource", event.Resource),
		slog.String("resource_id", event.ResourceID),
		slog.String("actor", event.Actor),
		slog.String("request_id", event.RequestID),
		slog.String("ip", event.IP),
		slog.Int("status", event.Status),
	)
	return nil
}
