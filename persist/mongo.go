package persist

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSnapshotter stores each snapshot as a single document in a
// collection, keyed by _id. The whole blob is replaced on every save, so the
// wholesale-overwrite contract is unchanged even with a real database behind
// the port.
type MongoSnapshotter struct {
	collection *mongo.Collection
}

type snapshotDoc struct {
	ID        string    `bson:"_id"`
	Blob      []byte    `bson:"blob"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongoSnapshotter(collection *mongo.Collection) *MongoSnapshotter {
	return &MongoSnapshotter{collection: collection}
}

func (m *MongoSnapshotter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var doc snapshotDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Blob, true, nil
}

func (m *MongoSnapshotter) Save(ctx context.Context, key string, blob []byte) error {
	doc := snapshotDoc{ID: key, Blob: blob, UpdatedAt: time.Now()}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}
