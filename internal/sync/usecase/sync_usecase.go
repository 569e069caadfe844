package usecase

import (
	"context"
	"time"

	"membersync/internal/shared/errors"
	"membersync/internal/shared/eventbus"
	"membersync/internal/shared/logger"
	"membersync/internal/sync/domain/model"
	"membersync/internal/sync/domain/repository"

	"github.com/google/uuid"
)

// SyncUsecase implements the bulk upsert engine and the snapshot reconciler
// on top of the persistence gateway.
type SyncUsecase struct {
	repo     repository.SyncRepository
	eventBus *eventbus.EventBus
	logger   logger.Logger
	now      func() time.Time
}

// NewSyncUsecase creates the sync usecase. The event bus is optional; when
// nil, completion events are not published.
func NewSyncUsecase(repo repository.SyncRepository, bus *eventbus.EventBus, log logger.Logger) *SyncUsecase {
	return &SyncUsecase{
		repo:     repo,
		eventBus: bus,
		logger:   log.WithComponent("sync_usecase"),
		now:      time.Now,
	}
}

// SyncVersions converts a batch of flat records into one
// insert-or-replace-by-key operation per record keyed on versionId and
// submits them as a single batch. Records without a usable versionId are
// dropped from the operation set; the batch itself still succeeds.
func (uc *SyncUsecase) SyncVersions(ctx context.Context, req SyncVersionsRequest) (*SyncVersionsResult, error) {
	if len(req.Records) == 0 {
		return nil, errors.NewValidationError("Empty payload")
	}

	ops := make([]model.UpsertOperation, 0, len(req.Records))
	for _, record := range req.Records {
		id, ok := model.VersionID(record)
		if !ok {
			continue
		}
		ops = append(ops, model.UpsertOperation{Key: id, Document: record})
	}

	uc.logger.Infof("Syncing %d of %d version records into %q", len(ops), len(req.Records), req.Domain)

	if _, err := uc.repo.BulkUpsert(ctx, req.Domain, model.FieldVersionID, ops); err != nil {
		uc.logger.Error("Version sync failed", "domain", req.Domain, "error", err)
		return nil, errors.WrapError(err, "version sync failed")
	}

	uc.publish(ctx, EventSyncCompleted, map[string]interface{}{
		"domain": req.Domain,
		"count":  len(ops),
	})

	return &SyncVersionsResult{Domain: req.Domain, Count: len(ops)}, nil
}

// DeleteVersions removes the documents for the given versionIds. Empty ids
// are ignored; a request with no usable id is a client error.
func (uc *SyncUsecase) DeleteVersions(ctx context.Context, req DeleteVersionsRequest) (*DeleteVersionsResult, error) {
	keys := make([]string, 0, len(req.VersionIDs))
	for _, id := range req.VersionIDs {
		if id != "" {
			keys = append(keys, id)
		}
	}
	if len(keys) == 0 {
		return nil, errors.NewValidationError("Empty payload")
	}

	res, err := uc.repo.DeleteByKeys(ctx, req.Domain, model.FieldVersionID, keys)
	if err != nil {
		uc.logger.Error("Version delete failed", "domain", req.Domain, "error", err)
		return nil, errors.WrapError(err, "version delete failed")
	}

	uc.publish(ctx, EventDeleteCompleted, map[string]interface{}{
		"domain":  req.Domain,
		"deleted": res.DeletedCount,
	})

	return &DeleteVersionsResult{Domain: req.Domain, Deleted: res.DeletedCount}, nil
}

// publish emits a completion event without tying it to the request lifetime.
func (uc *SyncUsecase) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if uc.eventBus == nil {
		return
	}
	data["eventId"] = uuid.NewString()
	uc.eventBus.PublishAndForget(context.WithoutCancel(ctx), eventbus.NewEvent(eventType, data, "sync_usecase"))
}
