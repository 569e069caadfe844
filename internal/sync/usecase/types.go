package usecase

import (
	"context"

	"membersync/internal/sync/domain/model"
)

// Event types published on the event bus after successful operations.
const (
	EventSyncCompleted      = "sync.completed"
	EventDeleteCompleted    = "delete.completed"
	EventReconcileCompleted = "reconcile.completed"
)

// SyncUsecaseInterface defines the sync operations exposed to the transport
// layer.
type SyncUsecaseInterface interface {
	SyncVersions(ctx context.Context, req SyncVersionsRequest) (*SyncVersionsResult, error)
	DeleteVersions(ctx context.Context, req DeleteVersionsRequest) (*DeleteVersionsResult, error)
	ReconcileMembers(ctx context.Context, req ReconcileMembersRequest) (*ReconcileMembersResult, error)
}

// SyncVersionsRequest carries one flat sync batch.
type SyncVersionsRequest struct {
	Domain  string
	Records []model.Document
}

// SyncVersionsResult reports how many upsert operations were submitted.
type SyncVersionsResult struct {
	Domain string
	Count  int
}

// DeleteVersionsRequest carries an explicit flat delete.
type DeleteVersionsRequest struct {
	Domain     string
	VersionIDs []string
}

// DeleteVersionsResult reports how many documents were removed.
type DeleteVersionsResult struct {
	Domain  string
	Deleted int64
}

// ReconcileMembersRequest carries one member snapshot batch.
type ReconcileMembersRequest struct {
	Collection string
	Records    []model.Document
}

// ReconcileMembersResult reports both phases of a reconciliation.
type ReconcileMembersResult struct {
	Collection string
	Upserted   int
	Deleted    int64
}
