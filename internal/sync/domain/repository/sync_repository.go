package repository

import (
	"context"

	"membersync/internal/sync/domain/model"
)

// SyncRepository is the persistence gateway the sync engines write through.
// Implementations execute a batch of operations against a named collection
// and carry no business logic.
type SyncRepository interface {
	// BulkUpsert submits one insert-or-replace-by-key operation per entry as
	// a single batch write against the collection. keyField names the field
	// each operation's filter targets.
	BulkUpsert(ctx context.Context, collection, keyField string, ops []model.UpsertOperation) (*model.BulkResult, error)

	// DeleteByKeys deletes every document whose key field matches one of keys.
	DeleteByKeys(ctx context.Context, collection, keyField string, keys []string) (*model.DeleteResult, error)

	// DeleteAbsent deletes every document whose key field is NOT in keep.
	// This is the complement-delete used by snapshot reconciliation.
	DeleteAbsent(ctx context.Context, collection, keyField string, keep []string) (*model.DeleteResult, error)

	// Ping verifies store reachability.
	Ping(ctx context.Context) error
}
