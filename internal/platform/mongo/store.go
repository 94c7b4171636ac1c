package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Sakebul-islam/kola-server-side/internal/config"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
	"github.com/Sakebul-islam/kola-server-side/internal/redact"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// Store implements store.DocumentStore over a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Ensure Store implements store.DocumentStore interface
var _ store.DocumentStore = (*Store)(nil)

// Connect opens a client for cfg and verifies the deployment answers a ping
// within the configured connect timeout. If logger is nil, a default logger
// will be used.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "mongo_store"))

	timeout := time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		// Nested documents in inline extras decode as maps so they render as
		// JSON objects rather than key/value arrays.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.Name), logger: log}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info("connected to mongodb", slog.String("database", cfg.Name))
	return s, nil
}

// Collection implements store.DocumentStore.Collection.
func (s *Store) Collection(name string) store.Collection {
	return &collection{coll: s.db.Collection(name), name: name, logger: s.logger}
}

// Ping implements store.DocumentStore.Ping against the primary.
func (s *Store) Ping(ctx context.Context) error {
	return MapError(s.client.Ping(ctx, readpref.Primary()))
}

// Close implements store.DocumentStore.Close.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

type collection struct {
	coll   *mongo.Collection
	name   string
	logger *slog.Logger
}

var _ store.Collection = (*collection)(nil)

// fail logs err and wraps it with the collection and operation.
func (c *collection) fail(ctx context.Context, op string, err error) error {
	mapped := MapError(err)
	if !store.IsNotFoundError(mapped) {
		logger.FromContextOrDefault(ctx, c.logger).Error("mongodb operation failed",
			slog.String("collection", c.name),
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
	}
	return store.NewStoreError(c.name, op, mapped)
}

// Find implements store.Collection.Find.
func (c *collection) Find(ctx context.Context, q store.Query, results any) error {
	const op = "find"

	filter, err := translateFilter(q.Filter())
	if err != nil {
		return store.NewStoreError(c.name, op, err)
	}

	cursor, err := c.coll.Find(ctx, filter, findOptions(q))
	if err != nil {
		return c.fail(ctx, op, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return c.fail(ctx, op, err)
	}
	return nil
}

// FindOne implements store.Collection.FindOne.
func (c *collection) FindOne(ctx context.Context, f store.Filter, result any) error {
	const op = "findOne"

	filter, err := translateFilter(f)
	if err != nil {
		return store.NewStoreError(c.name, op, err)
	}

	if err := c.coll.FindOne(ctx, filter).Decode(result); err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return mapped
		}
		return c.fail(ctx, op, err)
	}
	return nil
}

// InsertOne implements store.Collection.InsertOne.
func (c *collection) InsertOne(ctx context.Context, doc any) (store.InsertResult, error) {
	const op = "insertOne"

	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return store.InsertResult{}, c.fail(ctx, op, err)
	}

	var id string
	switch v := res.InsertedID.(type) {
	case primitive.ObjectID:
		id = v.Hex()
	default:
		id = fmt.Sprint(v)
	}
	return store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// UpdateOne implements store.Collection.UpdateOne with a $set update.
func (c *collection) UpdateOne(ctx context.Context, f store.Filter, set map[string]any) (store.UpdateResult, error) {
	const op = "updateOne"

	filter, err := translateFilter(f)
	if err != nil {
		return store.UpdateResult{}, store.NewStoreError(c.name, op, err)
	}

	res, err := c.coll.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: bson.M(set)}})
	if err != nil {
		return store.UpdateResult{}, c.fail(ctx, op, err)
	}
	return store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteOne implements store.Collection.DeleteOne.
func (c *collection) DeleteOne(ctx context.Context, f store.Filter) (store.DeleteResult, error) {
	const op = "deleteOne"

	filter, err := translateFilter(f)
	if err != nil {
		return store.DeleteResult{}, store.NewStoreError(c.name, op, err)
	}

	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return store.DeleteResult{}, c.fail(ctx, op, err)
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
