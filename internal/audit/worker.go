package audit

import (
	"context"
	"errors"
	"log/slog"
)

// ErrQueueFull is returned by Emit when the event was dropped.
var ErrQueueFull = errors.New("audit queue full")

// ErrClosed is returned by Emit once the publisher has been closed.
var ErrClosed = errors.New("audit publisher closed")

// Worker consumes audit events and persists them. Store failures are logged
// and the event is skipped; the worker keeps running.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until ctx is done or the inbox is closed. On
// cancellation the events already queued are still flushed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.append(ctx, event)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.append(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", event.Action,
			"party_id", event.PartyID,
			"error", err,
		)
	}
}
