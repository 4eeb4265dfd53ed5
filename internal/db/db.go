package db

import (
	"context"
	"errors"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// codeNamespaceExists is returned by createCollection when the collection is already there.
const codeNamespaceExists = 48

func ConnectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, eris.Wrap(err, "mongo connect")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(ctxTimeout, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, eris.Wrap(err, "mongo ping")
	}

	logger.Info("Successfully connected to MongoDB!")
	return client, nil
}

func DisconnectMongoDB(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return eris.Wrap(err, "mongo disconnect")
	}
	logger.Info("Disconnected from MongoDB.")
	return nil
}

// EnsureCollection creates the collection unless it already exists.
func EnsureCollection(ctx context.Context, db *mongo.Database, name string) error {
	err := db.CreateCollection(ctx, name)
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists {
		return nil
	}
	return eris.Wrapf(err, "failed to create collection %s", name)
}
