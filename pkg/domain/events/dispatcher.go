package events

import (
	"context"
	"fmt"
	"sync"
)

// HandlerFunc handles a single event.
type HandlerFunc func(ctx context.Context, event Event) error

type namedHandler struct {
	id      uint64
	name    string
	handler HandlerFunc
}

// Bus dispatches events to handlers registered per event type.
// Handlers run synchronously in registration order, specific types first
// and wildcard handlers after.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]namedHandler

	// ContinueOnError keeps dispatching after a handler fails and
	// collects the errors into a DispatchError.
	ContinueOnError bool
}

// NewBus creates an empty bus that stops at the first handler error.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]namedHandler)}
}

// Subscribe registers handler for the given event types, or for every type
// when none are given. The returned func removes the registration.
func (b *Bus) Subscribe(name string, handler HandlerFunc, eventTypes ...string) (unsubscribe func()) {
	if len(eventTypes) == 0 {
		eventTypes = []string{Wildcard}
	}

	b.mu.Lock()
	b.nextID++
	nh := namedHandler{id: b.nextID, name: name, handler: handler}
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], nh)
	}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(nh.id, eventTypes) })
	}
}

func (b *Bus) remove(id uint64, eventTypes []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range eventTypes {
		hs := b.handlers[t]
		kept := hs[:0]
		for _, h := range hs {
			if h.id != id {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(b.handlers, t)
			continue
		}
		b.handlers[t] = kept
	}
}

// Publish dispatches event to its handlers. The handler list is copied
// before dispatch so handlers may subscribe or unsubscribe while running.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	var handlers []namedHandler
	handlers = append(handlers, b.handlers[event.Type]...)
	if event.Type != Wildcard {
		handlers = append(handlers, b.handlers[Wildcard]...)
	}
	b.mu.RUnlock()

	var errs []error
	for _, nh := range handlers {
		if err := nh.handler(ctx, event); err != nil {
			handlerErr := fmt.Errorf("handler %s failed for event %s: %w", nh.name, event.Type, err)
			if !b.ContinueOnError {
				return handlerErr
			}
			errs = append(errs, handlerErr)
		}
	}

	if len(errs) > 0 {
		return &DispatchError{Errors: errs}
	}
	return nil
}

// HandlerCount returns how many handlers would receive an event of eventType.
func (b *Bus) HandlerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := len(b.handlers[eventType])
	if eventType != Wildcard {
		count += len(b.handlers[Wildcard])
	}
	return count
}

// DispatchError contains multiple errors from event dispatch.
type DispatchError struct {
	Errors []error
}

func (e *DispatchError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("multiple dispatch errors (%d)", len(e.Errors))
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *DispatchError) Unwrap() []error {
	return e.Errors
}
