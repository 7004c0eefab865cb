package audit

import (
	"context"
	"log/slog"
	"sync"

	"partybridge/pkg/requestcontext"
)

// Publisher captures structured audit events. Emit never blocks on the store:
// events are queued and a Worker drains the queue. A full queue drops the event
// and logs it, so auditing never delays or fails a party operation.
type Publisher struct {
	mu     sync.RWMutex
	closed bool
	queue  chan Event
	logger *slog.Logger
}

// NewPublisher creates a publisher with a queue of the given capacity.
func NewPublisher(capacity int, logger *slog.Logger) *Publisher {
	if capacity <= 0 {
		capacity = 256
	}
	return &Publisher{queue: make(chan Event, capacity), logger: logger}
}

// Emit enqueues an event, stamping its timestamp and request id when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.WarnContext(ctx, "audit publisher closed, dropping event",
			"action", event.Action,
			"party_id", event.PartyID,
		)
		return ErrClosed
	}
	select {
	case p.queue <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit queue full, dropping event",
			"action", event.Action,
			"party_id", event.PartyID,
		)
		return ErrQueueFull
	}
}

// Inbox exposes the queue to a Worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.queue
}

// Close stops accepting events. The worker drains what remains. Emit after
// Close drops the event with ErrClosed. Close is idempotent.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.queue)
}
