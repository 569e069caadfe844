package persistence

import (
	"context"
	"encoding/json"

	"membersync/internal/shared/eventbus"
	"membersync/internal/shared/logger"
	"membersync/internal/sync/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SyncJournal persists completed sync operations to Redis Streams so
// operators can audit what each call wrote and deleted. Journaling is
// best-effort: a journal failure is logged and never fails the sync call
// that produced the event.
type SyncJournal struct {
	client *redis.Client
	logger logger.Logger
}

// NewSyncJournal creates a Redis-backed journal.
func NewSyncJournal(client *redis.Client, log logger.Logger) *SyncJournal {
	return &SyncJournal{
		client: client,
		logger: log.WithComponent("sync_journal"),
	}
}

// Subscribe registers the journal for every sync completion event type.
func (j *SyncJournal) Subscribe(bus *eventbus.EventBus) {
	for _, eventType := range []string{
		usecase.EventSyncCompleted,
		usecase.EventDeleteCompleted,
		usecase.EventReconcileCompleted,
	} {
		bus.Subscribe(eventType, j.Record)
	}
}

// Record appends one event to the stream of its target domain.
func (j *SyncJournal) Record(ctx context.Context, event eventbus.Event) error {
	payload, err := json.Marshal(event.Data())
	if err != nil {
		j.logger.Error("Failed to serialize sync event", zap.Error(err))
		return err
	}

	stream := streamName(event)
	_, err = j.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"type":      event.Type(),
			"source":    event.Source(),
			"timestamp": event.Timestamp().UnixNano(),
			"data":      payload,
		},
	}).Result()
	if err != nil {
		j.logger.Error("Failed to journal sync event",
			zap.String("stream", stream),
			zap.String("eventType", event.Type()),
			zap.Error(err))
		return err
	}

	j.logger.Debug("Sync event journaled",
		zap.String("stream", stream),
		zap.String("eventType", event.Type()))
	return nil
}

// streamName derives the per-domain stream from the event payload.
func streamName(event eventbus.Event) string {
	if data, ok := event.Data().(map[string]interface{}); ok {
		if domain, ok := data["domain"].(string); ok && domain != "" {
			return "sync:events:" + domain
		}
		if collection, ok := data["collection"].(string); ok && collection != "" {
			return "sync:events:" + collection
		}
	}
	return "sync:events"
}
