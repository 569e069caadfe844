package mongodb

import (
	"context"
	"fmt"

	"membersync/internal/shared/logger"
	"membersync/internal/sync/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SyncRepository is the MongoDB implementation of the persistence gateway.
// One BulkUpsert call maps to one driver BulkWrite; deletes map to
// DeleteMany. The client is pooled and shared; each call leases a collection
// handle for its own duration and keeps no state across calls.
type SyncRepository struct {
	db     DatabaseInterface
	logger logger.Logger
}

// NewSyncRepository creates a repository over a database handle.
func NewSyncRepository(db DatabaseInterface, log logger.Logger) *SyncRepository {
	return &SyncRepository{
		db:     db,
		logger: log.WithComponent("sync_repository"),
	}
}

// NewSyncRepositoryWithDatabase wires the repository directly to a mongo
// driver database.
func NewSyncRepositoryWithDatabase(db *mongo.Database, log logger.Logger) *SyncRepository {
	return NewSyncRepository(NewMongoDatabaseAdapter(db), log)
}

// BulkUpsert submits every operation as a ReplaceOne-with-upsert in a single
// batch write. Replacement is whole-document: fields absent from the new
// document are removed from the stored one.
func (r *SyncRepository) BulkUpsert(ctx context.Context, collection, keyField string, ops []model.UpsertOperation) (*model.BulkResult, error) {
	if len(ops) == 0 {
		return &model.BulkResult{}, nil
	}

	models := make([]mongo.WriteModel, 0, len(ops))
	for _, op := range ops {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{keyField: op.Key}).
			SetReplacement(op.Document).
			SetUpsert(true))
	}

	res, err := r.db.Collection(collection).BulkWrite(ctx, models)
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"collection": collection,
			"operations": len(ops),
			"error":      err.Error(),
		}).Error("Bulk upsert failed")
		return nil, fmt.Errorf("bulk upsert against %q failed: %w", collection, err)
	}

	return &model.BulkResult{
		MatchedCount:  res.Matched(),
		UpsertedCount: res.Upserted(),
		ModifiedCount: res.Modified(),
	}, nil
}

// DeleteByKeys removes every document whose key field matches one of keys.
func (r *SyncRepository) DeleteByKeys(ctx context.Context, collection, keyField string, keys []string) (*model.DeleteResult, error) {
	if len(keys) == 0 {
		return &model.DeleteResult{}, nil
	}

	res, err := r.db.Collection(collection).DeleteMany(ctx, bson.M{keyField: bson.M{"$in": keys}})
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"collection": collection,
			"keys":       len(keys),
			"error":      err.Error(),
		}).Error("Delete by keys failed")
		return nil, fmt.Errorf("delete against %q failed: %w", collection, err)
	}

	return &model.DeleteResult{DeletedCount: res.Deleted()}, nil
}

// DeleteAbsent removes every document whose key field is not in keep. The
// caller is responsible for never passing an empty keep set unless it really
// means to empty the collection.
func (r *SyncRepository) DeleteAbsent(ctx context.Context, collection, keyField string, keep []string) (*model.DeleteResult, error) {
	res, err := r.db.Collection(collection).DeleteMany(ctx, bson.M{keyField: bson.M{"$nin": keep}})
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"collection": collection,
			"kept":       len(keep),
			"error":      err.Error(),
		}).Error("Reconciliation delete failed")
		return nil, fmt.Errorf("reconciliation delete against %q failed: %w", collection, err)
	}

	return &model.DeleteResult{DeletedCount: res.Deleted()}, nil
}

// Ping verifies store reachability.
func (r *SyncRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
