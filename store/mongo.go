package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPersister keeps the store snapshot in a single document of the
// snapshots collection. ReplaceOne gives write-then-atomically-replace
// semantics: readers never observe a half-written snapshot.
type MongoPersister struct {
	coll *mongo.Collection
}

func NewMongoPersister(db *mongo.Database) *MongoPersister {
	return &MongoPersister{coll: db.Collection("snapshots")}
}

func (m *MongoPersister) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	err := m.coll.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *MongoPersister) Save(ctx context.Context, snap *Snapshot) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": snapshotID}, snap, opts)
	return err
}
