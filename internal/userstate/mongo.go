package userstate

import (
	"context"
	"errors"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/db"
	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSlot struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores each slot as one document whose _id is the slot key.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// OpenMongo connects to uri and makes sure the collection exists. The
// returned backend disconnects the client on Close.
func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoBackend, error) {
	client, err := db.ConnectMongoDB(ctx, uri)
	if err != nil {
		return nil, err
	}
	b, err := NewMongoBackend(ctx, client, database, collection)
	if err != nil {
		_ = db.DisconnectMongoDB(ctx, client)
		return nil, err
	}
	b.owned = true
	return b, nil
}

// NewMongoBackend uses an existing client, which the caller keeps ownership of.
func NewMongoBackend(ctx context.Context, client *mongo.Client, database, collection string) (*MongoBackend, error) {
	mdb := client.Database(database)
	if err := db.EnsureCollection(ctx, mdb, collection); err != nil {
		return nil, err
	}
	return &MongoBackend{client: client, coll: mdb.Collection(collection)}, nil
}

func (m *MongoBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var slot mongoSlot
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, eris.Wrapf(errs.ErrNotFound, "slot %s", key)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "load slot %s", key)
	}
	return slot.Value, nil
}

func (m *MongoBackend) Save(ctx context.Context, key string, data []byte) error {
	slot := mongoSlot{Key: key, Value: data, UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, slot, options.Replace().SetUpsert(true))
	if err != nil {
		return eris.Wrapf(err, "save slot %s", key)
	}
	return nil
}

func (m *MongoBackend) Close(ctx context.Context) error {
	if !m.owned {
		return nil
	}
	return db.DisconnectMongoDB(ctx, m.client)
}
