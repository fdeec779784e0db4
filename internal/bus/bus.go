// Package bus is the in-process domain event bus. Publishing is
// fire-and-forget: handlers run on their own goroutines and their
// failures never reach the publisher.
package bus

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"threadbase.app/comments/common/id"
	"threadbase.app/comments/common/logger"
	"threadbase.app/comments/internal/model"
)

// Handler consumes one domain event. Errors are logged by the bus and
// otherwise discarded; events are never retried.
type Handler func(ctx context.Context, evt model.Event) error

// Subscription is the stable token returned by Subscribe. Handlers are
// removed by token, not by func identity (Go funcs are not comparable).
type Subscription struct {
	token     int64
	eventType model.EventType
}

type Bus interface {
	// Subscribe registers handler for eventType. Handlers for one type
	// are dispatched in registration order.
	Subscribe(eventType model.EventType, handler Handler) *Subscription
	// Unsubscribe removes a registration. Unknown or already-removed
	// subscriptions are a silent no-op.
	Unsubscribe(sub *Subscription)
	// Publish dispatches evt to every handler currently registered for
	// its type and returns without waiting for any of them. Handlers
	// registered after Publish returns do not see the event.
	Publish(ctx context.Context, evt model.Event)
}

type registration struct {
	token   int64
	handler Handler
}

type inProcessBus struct {
	mu       sync.RWMutex
	handlers map[model.EventType][]registration
	logger   *slog.Logger
}

func New(log *slog.Logger) Bus {
	if log == nil {
		log = slog.Default()
	}
	return &inProcessBus{
		handlers: make(map[model.EventType][]registration),
		logger:   log,
	}
}

func (b *inProcessBus) Subscribe(eventType model.EventType, handler Handler) *Subscription {
	reg := registration{token: id.New(), handler: handler}

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], reg)
	b.mu.Unlock()

	return &Subscription{token: reg.token, eventType: eventType}
}

func (b *inProcessBus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.eventType]
	for i, reg := range regs {
		if reg.token == sub.token {
			b.handlers[sub.eventType] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

func (b *inProcessBus) Publish(ctx context.Context, evt model.Event) {
	b.mu.RLock()
	regs := slices.Clone(b.handlers[evt.Type])
	b.mu.RUnlock()

	if len(regs) == 0 {
		b.logger.DebugContext(ctx, "no handlers for event", "event_type", evt.Type, "event_id", evt.ID)
		return
	}

	// Handlers outlive the request that triggered the event; keep log and
	// trace values but drop the request's cancellation.
	ctx = context.WithoutCancel(ctx)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		EventID:   logger.Ptr(evt.ID),
		EventType: logger.Ptr(string(evt.Type)),
		Component: "comments.bus",
	})

	for _, reg := range regs {
		go b.dispatch(ctx, reg, evt)
	}
}

func (b *inProcessBus) dispatch(ctx context.Context, reg registration, evt model.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked", "event_type", evt.Type, "event_id", evt.ID, "panic", r)
		}
	}()

	if err := reg.handler(ctx, evt); err != nil {
		b.logger.ErrorContext(ctx, "event handler failed", "event_type", evt.Type, "event_id", evt.ID, "error", err)
	}
}
