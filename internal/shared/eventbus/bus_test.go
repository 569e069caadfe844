package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversToSubscribers(t *testing.T) {
	bus := NewEventBus(nil)

	var received []Event
	bus.Subscribe("sync.completed", func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	event := NewEvent("sync.completed", map[string]interface{}{"count": 2}, "test")
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, received, 1)
	assert.Equal(t, "sync.completed", received[0].Type())
	assert.Equal(t, "test", received[0].Source())
	assert.WithinDuration(t, time.Now().UTC(), received[0].Timestamp(), time.Minute)
}

func TestPublish_NoSubscribersIsNoop(t *testing.T) {
	bus := NewEventBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), NewEvent("unknown", nil, "test")))
}

func TestPublish_HandlerErrorStopsDelivery(t *testing.T) {
	bus := NewEventBus(nil)
	handlerErr := errors.New("journal down")

	calls := 0
	bus.Subscribe("sync.completed", func(ctx context.Context, event Event) error {
		calls++
		return handlerErr
	})
	bus.Subscribe("sync.completed", func(ctx context.Context, event Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewEvent("sync.completed", nil, "test"))

	assert.ErrorIs(t, err, handlerErr)
	assert.Equal(t, 1, calls)
}

func TestPublishAndForget_NeverBlocksCaller(t *testing.T) {
	bus := NewEventBus(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("sync.completed", func(ctx context.Context, event Event) error {
		defer wg.Done()
		return errors.New("swallowed")
	})

	bus.PublishAndForget(context.Background(), NewEvent("sync.completed", nil, "test"))
	wg.Wait()
}

func TestSubscriberCount(t *testing.T) {
	bus := NewEventBus(nil)
	assert.Zero(t, bus.SubscriberCount("sync.completed"))

	bus.Subscribe("sync.completed", func(ctx context.Context, event Event) error { return nil })
	bus.Subscribe("sync.completed", func(ctx context.Context, event Event) error { return nil })

	assert.Equal(t, 2, bus.SubscriberCount("sync.completed"))
}
