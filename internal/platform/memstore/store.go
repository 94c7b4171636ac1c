package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// Store is an in-memory store.DocumentStore. The zero value is not usable;
// create one with New. A Store is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
	closed      bool
	logger      *slog.Logger
}

// Ensure Store implements store.DocumentStore interface
var _ store.DocumentStore = (*Store)(nil)

// New creates an empty store. If logger is nil, a default logger will be used.
func New(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		collections: make(map[string][]bson.M),
		logger:      log.With(slog.String("component", "memstore")),
	}
}

// Collection returns a handle on the named collection. Collections are
// created on first insert.
func (s *Store) Collection(name string) store.Collection {
	return &collection{store: s, name: name}
}

// Ping reports whether the store is open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// Close discards every document. Later operations fail with store.ErrClosed.
func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.collections = nil
	return nil
}

type collection struct {
	store *Store
	name  string
}

var _ store.Collection = (*collection)(nil)

func (c *collection) fail(op string, err error) error {
	return store.NewStoreError(c.name, op, err)
}

// ready checks the context and the store state. The caller holds the lock.
func (c *collection) ready(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return c.fail(op, err)
	}
	if c.store.closed {
		return c.fail(op, store.ErrClosed)
	}
	return nil
}

// Find implements store.Collection.Find.
func (c *collection) Find(ctx context.Context, q store.Query, results any) error {
	const op = "find"

	target := reflect.ValueOf(results)
	if target.Kind() != reflect.Pointer || target.Elem().Kind() != reflect.Slice {
		return c.fail(op, fmt.Errorf("%w: %T is not a pointer to a slice", store.ErrInvalidResult, results))
	}

	conds, err := compileFilter(q.Filter())
	if err != nil {
		return c.fail(op, err)
	}

	c.store.mu.RLock()
	if err := c.ready(ctx, op); err != nil {
		c.store.mu.RUnlock()
		return err
	}
	var matched []bson.M
	for _, doc := range c.store.collections[c.name] {
		if matches(doc, conds) {
			matched = append(matched, copyDocument(doc))
		}
	}
	c.store.mu.RUnlock()

	sortDocuments(matched, q.Sort())
	matched = window(matched, q.Skip(), q.Limit())

	slice := reflect.MakeSlice(target.Elem().Type(), 0, len(matched))
	elemType := slice.Type().Elem()
	for _, doc := range matched {
		elem := reflect.New(elemType)
		if err := decodeDocument(doc, elem.Interface()); err != nil {
			return c.fail(op, err)
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	target.Elem().Set(slice)

	logger.FromContextOrDefault(ctx, c.store.logger).Debug("find",
		slog.String("collection", c.name),
		slog.Int("matched", len(matched)))
	return nil
}

func window(docs []bson.M, skip, limit int64) []bson.M {
	if skip >= int64(len(docs)) {
		return nil
	}
	docs = docs[skip:]
	if limit > 0 && limit < int64(len(docs)) {
		docs = docs[:limit]
	}
	return docs
}

// FindOne implements store.Collection.FindOne.
func (c *collection) FindOne(ctx context.Context, f store.Filter, result any) error {
	const op = "findOne"

	conds, err := compileFilter(f)
	if err != nil {
		return c.fail(op, err)
	}

	c.store.mu.RLock()
	if err := c.ready(ctx, op); err != nil {
		c.store.mu.RUnlock()
		return err
	}
	_, doc := c.first(conds)
	if doc != nil {
		doc = copyDocument(doc)
	}
	c.store.mu.RUnlock()

	if doc == nil {
		return store.ErrNotFound
	}
	if err := decodeDocument(doc, result); err != nil {
		return c.fail(op, err)
	}
	return nil
}

// first returns the index and document of the first match, or -1 and nil.
// The caller holds the lock.
func (c *collection) first(conds []condition) (int, bson.M) {
	for i, doc := range c.store.collections[c.name] {
		if matches(doc, conds) {
			return i, doc
		}
	}
	return -1, nil
}

// InsertOne implements store.Collection.InsertOne. A missing or zero
// ObjectID _id is replaced with a new one.
func (c *collection) InsertOne(ctx context.Context, v any) (store.InsertResult, error) {
	const op = "insertOne"

	doc, err := toDocument(v)
	if err != nil {
		return store.InsertResult{}, c.fail(op, err)
	}
	switch id := doc[store.IDField].(type) {
	case nil:
		doc[store.IDField] = primitive.NewObjectID()
	case primitive.ObjectID:
		if id.IsZero() {
			doc[store.IDField] = primitive.NewObjectID()
		}
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.ready(ctx, op); err != nil {
		return store.InsertResult{}, err
	}
	for _, existing := range c.store.collections[c.name] {
		if equalValues(existing[store.IDField], doc[store.IDField]) {
			return store.InsertResult{}, c.fail(op, store.ErrDuplicate)
		}
	}
	c.store.collections[c.name] = append(c.store.collections[c.name], doc)

	return store.InsertResult{Acknowledged: true, InsertedID: idString(doc[store.IDField])}, nil
}

func idString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

// UpdateOne implements store.Collection.UpdateOne. The document counts as
// modified only when at least one field actually changes.
func (c *collection) UpdateOne(ctx context.Context, f store.Filter, set map[string]any) (store.UpdateResult, error) {
	const op = "updateOne"

	conds, err := compileFilter(f)
	if err != nil {
		return store.UpdateResult{}, c.fail(op, err)
	}
	update, err := toDocument(bson.M(set))
	if err != nil {
		return store.UpdateResult{}, c.fail(op, err)
	}
	if _, ok := update[store.IDField]; ok {
		return store.UpdateResult{}, c.fail(op, fmt.Errorf("%w: _id is immutable", store.ErrInvalidID))
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.ready(ctx, op); err != nil {
		return store.UpdateResult{}, err
	}

	_, doc := c.first(conds)
	if doc == nil {
		return store.UpdateResult{Acknowledged: true}, nil
	}

	var modified int64
	for k, v := range update {
		if old, ok := doc[k]; ok && equalValues(old, v) {
			continue
		}
		doc[k] = v
		modified = 1
	}
	return store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

// DeleteOne implements store.Collection.DeleteOne.
func (c *collection) DeleteOne(ctx context.Context, f store.Filter) (store.DeleteResult, error) {
	const op = "deleteOne"

	conds, err := compileFilter(f)
	if err != nil {
		return store.DeleteResult{}, c.fail(op, err)
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.ready(ctx, op); err != nil {
		return store.DeleteResult{}, err
	}

	i, _ := c.first(conds)
	if i < 0 {
		return store.DeleteResult{Acknowledged: true}, nil
	}
	docs := c.store.collections[c.name]
	c.store.collections[c.name] = append(docs[:i:i], docs[i+1:]...)
	return store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
