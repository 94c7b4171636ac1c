package store

import (
	"context"
)

// Collection names.
const (
	ListingsCollection = "foods"
	RequestsCollection = "requests"
)

// InsertResult acknowledges an insertion.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult acknowledges a partial update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult acknowledges a deletion.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is a set of schemaless documents. Documents are encoded from and
// decoded into BSON-tagged structs.
type Collection interface {
	// Find decodes every document matching q into results, which must be a
	// pointer to a slice. Sorting is applied before skip and limit.
	Find(ctx context.Context, q Query, results any) error

	// FindOne decodes the first document matching f into result.
	// Returns ErrNotFound when nothing matches.
	FindOne(ctx context.Context, f Filter, result any) error

	// InsertOne stores doc and returns the generated identifier.
	InsertOne(ctx context.Context, doc any) (InsertResult, error)

	// UpdateOne overwrites the given fields of the first document matching f,
	// leaving every other field untouched ($set semantics).
	UpdateOne(ctx context.Context, f Filter, set map[string]any) (UpdateResult, error)

	// DeleteOne removes the first document matching f.
	DeleteOne(ctx context.Context, f Filter) (DeleteResult, error)
}

// DocumentStore hands out collections over one shared connection.
type DocumentStore interface {
	Collection(name string) Collection

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
