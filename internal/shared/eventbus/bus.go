package eventbus

import (
	"context"
	"sync"
	"time"

	"membersync/internal/shared/logger"
)

// Event is a generic event carried by the bus.
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler handles a published event.
type Handler func(ctx context.Context, event Event) error

// EventBus is an in-memory publish/subscribe bus. Sync operations publish
// completion events on it; journals and other observers subscribe.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Logger
}

// NewEventBus creates a new event bus instance.
func NewEventBus(log logger.Logger) *EventBus {
	if log == nil {
		log = &noopLogger{}
	}
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   log,
	}
}

// Subscribe adds a handler for an event type.
func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.logger.Debugf("Subscribed handler for event type: %s", eventType)
}

// Publish delivers an event to all handlers registered for its type. The
// first handler error stops delivery and is returned.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := eb.handlers[event.Type()]
	eb.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			eb.logger.Errorf("Handler failed for event %s: %v", event.Type(), err)
			return err
		}
	}
	return nil
}

// PublishAndForget delivers an event in the background. Handler failures are
// logged and never surfaced to the caller.
func (eb *EventBus) PublishAndForget(ctx context.Context, event Event) {
	go func() {
		if err := eb.Publish(ctx, event); err != nil {
			eb.logger.Errorf("Failed to publish event %s: %v", event.Type(), err)
		}
	}()
}

// SubscriberCount returns the number of handlers for an event type.
func (eb *EventBus) SubscriberCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}

// BasicEvent is the default Event implementation.
type BasicEvent struct {
	eventType string
	data      interface{}
	timestamp time.Time
	source    string
}

// NewEvent creates an event with the given type, payload and source.
func NewEvent(eventType string, data interface{}, source string) Event {
	return &BasicEvent{
		eventType: eventType,
		data:      data,
		timestamp: time.Now().UTC(),
		source:    source,
	}
}

func (e *BasicEvent) Type() string         { return e.eventType }
func (e *BasicEvent) Data() interface{}    { return e.data }
func (e *BasicEvent) Timestamp() time.Time { return e.timestamp }
func (e *BasicEvent) Source() string       { return e.source }

// noopLogger keeps the bus usable when no logger is wired.
type noopLogger struct{}

func (n *noopLogger) Debug(args ...interface{})                       {}
func (n *noopLogger) Info(args ...interface{})                        {}
func (n *noopLogger) Warn(args ...interface{})                        {}
func (n *noopLogger) Error(args ...interface{})                       {}
func (n *noopLogger) Fatal(args ...interface{})                       {}
func (n *noopLogger) Debugf(format string, args ...interface{})       {}
func (n *noopLogger) Infof(format string, args ...interface{})        {}
func (n *noopLogger) Warnf(format string, args ...interface{})        {}
func (n *noopLogger) Errorf(format string, args ...interface{})       {}
func (n *noopLogger) Fatalf(format string, args ...interface{})       {}
func (n *noopLogger) WithFields(map[string]interface{}) logger.Logger { return n }
func (n *noopLogger) WithContext(context.Context) logger.Logger       { return n }
func (n *noopLogger) WithComponent(string) logger.Logger              { return n }
