package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"partybridge/pkg/platform/sentinel"
)

// Operation is a named unit of work invoked by the workflow engine. It reads
// in, writes out and reports user-facing messages to msgs. Failures are data:
// an operation never returns an error.
type Operation func(ctx context.Context, in Input, out Output, msgs *MessageLog)

// Result is everything an invocation produced.
type Result struct {
	Output   Output   `json:"output"`
	Errors   []string `json:"errors"`
	Messages []string `json:"messages"`
}

// Registry maps operation names to operations. It is populated at startup and
// read concurrently afterwards.
type Registry struct {
	mu     sync.RWMutex
	ops    map[string]Operation
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{ops: make(map[string]Operation), logger: logger}
}

// Register adds op under name. Names are unique.
func (r *Registry) Register(name string, op Operation) error {
	if name == "" || op == nil {
		return fmt.Errorf("register operation %q: name and operation are required", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[name]; exists {
		return fmt.Errorf("register operation %q: %w", name, sentinel.ErrConflict)
	}
	r.ops[name] = op
	return nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("operation %q: %w", name, sentinel.ErrNotFound)
	}
	return op, nil
}

// Names lists the registered operation names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named operation against a fresh output context.
func (r *Registry) Invoke(ctx context.Context, name string, in Input) (Result, error) {
	op, err := r.Lookup(name)
	if err != nil {
		return Result{}, err
	}
	if in == nil {
		in = Input{}
	}
	out := Output{}
	msgs := NewMessageLog()
	op(ctx, in, out, msgs)

	r.logger.DebugContext(ctx, "operation invoked",
		"operation", name,
		"errors", len(msgs.Errors),
		"messages", len(msgs.Messages),
	)
	return Result{Output: out, Errors: msgs.Errors, Messages: msgs.Messages}, nil
}
