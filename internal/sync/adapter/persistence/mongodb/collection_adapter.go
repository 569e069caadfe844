package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Narrow interfaces over the MongoDB driver so the repository can be tested
// without a live store.

type DatabaseInterface interface {
	Collection(name string) CollectionInterface
	Ping(ctx context.Context) error
}

type CollectionInterface interface {
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (BulkWriteResultInterface, error)
	DeleteMany(ctx context.Context, filter interface{}) (DeleteResultInterface, error)
}

type BulkWriteResultInterface interface {
	Matched() int64
	Upserted() int64
	Modified() int64
}

type DeleteResultInterface interface {
	Deleted() int64
}

// Adapters making the mongo driver types satisfy the interfaces above.

type MongoDatabaseAdapter struct {
	db *mongo.Database
}

func NewMongoDatabaseAdapter(db *mongo.Database) *MongoDatabaseAdapter {
	return &MongoDatabaseAdapter{db: db}
}

func (m *MongoDatabaseAdapter) Collection(name string) CollectionInterface {
	return &MongoCollectionAdapter{col: m.db.Collection(name)}
}

func (m *MongoDatabaseAdapter) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

type MongoCollectionAdapter struct {
	col *mongo.Collection
}

func (m *MongoCollectionAdapter) BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (BulkWriteResultInterface, error) {
	res, err := m.col.BulkWrite(ctx, models, opts...)
	if err != nil {
		return nil, err
	}
	return &MongoBulkWriteResultAdapter{
		matched:  res.MatchedCount,
		upserted: res.UpsertedCount,
		modified: res.ModifiedCount,
	}, nil
}

func (m *MongoCollectionAdapter) DeleteMany(ctx context.Context, filter interface{}) (DeleteResultInterface, error) {
	res, err := m.col.DeleteMany(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &MongoDeleteResultAdapter{deleted: res.DeletedCount}, nil
}

// MongoBulkWriteResultAdapter wraps the batch write counters.
type MongoBulkWriteResultAdapter struct {
	matched  int64
	upserted int64
	modified int64
}

func (m *MongoBulkWriteResultAdapter) Matched() int64  { return m.matched }
func (m *MongoBulkWriteResultAdapter) Upserted() int64 { return m.upserted }
func (m *MongoBulkWriteResultAdapter) Modified() int64 { return m.modified }

// MongoDeleteResultAdapter wraps the deleted count.
type MongoDeleteResultAdapter struct {
	deleted int64
}

func (m *MongoDeleteResultAdapter) Deleted() int64 { return m.deleted }
