// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// recordTimeout bounds a single write to the underlying recorder.
const recordTimeout = 3 * time.Second

// Queue hands events to a background worker so the response path never waits
// on the audit sink. When the buffer is full, events are dropped and logged.
type Queue struct {
	recorder Recorder
	logger   *slog.Logger
	events   chan Event

	// mu guards closed and the send on events against Close.
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewQueue starts the worker. Call [Queue.Close] on shutdown to drain it.
func NewQueue(recorder Recorder, buffer int, logger *slog.Logger) *Queue {
	queue := &Queue{
		recorder: recorder,
		logger:   logger,
		events:   make(chan Event, buffer),
		done:     make(chan struct{}),
	}
	go queue.run()
	return queue
}

// Record enqueues the event. It implements [Recorder] and never blocks.
// Events arriving after [Queue.Close] are dropped.
func (queue *Queue) Record(ctx context.Context, event Event) error {
	queue.mu.RLock()
	defer queue.mu.RUnlock()

	if queue.closed {
		queue.drop(ctx, "audit_event_after_close", event)
		return nil
	}

	select {
	case queue.events <- event:
	default:
		queue.drop(ctx, "audit_event_dropped", event)
	}
	return nil
}

// Close stops accepting events and waits until the buffer is drained or ctx expires.
// It is safe to call more than once.
func (queue *Queue) Close(ctx context.Context) error {
	queue.mu.Lock()
	if !queue.closed {
		queue.closed = true
		close(queue.events)
	}
	queue.mu.Unlock()

	select {
	case <-queue.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (queue *Queue) run() {
	defer close(queue.done)

	for event := range queue.events {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := queue.recorder.Record(ctx, event); err != nil {
			queue.logger.Error("audit_record_failed",
				slog.String("event_id", event.ID),
				slog.String("action", event.Action),
				slog.String("error", err.Error()),
			)
		}
		cancel()
	}
}

func (queue *Queue) drop(ctx context.Context, message string, event Event) {
	queue.logger.WarnContext(ctx, message,
		slog.String("action", event.Action),
		slog.String("resource", event.Resource),
	)
}
