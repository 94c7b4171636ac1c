package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the key of every document's identifier.
const IDField = "_id"

// ObjectID is a store-generated document identifier.
type ObjectID = primitive.ObjectID

// NilObjectID is the zero identifier. Documents inserted with it get a fresh
// one.
var NilObjectID = primitive.NilObjectID

// Operator is a comparison a Condition applies to a field.
type Operator int

const (
	// OpEq matches documents whose field equals the value exactly.
	OpEq Operator = iota
	// OpContainsFold matches string fields containing the value as a
	// literal, case-insensitive substring.
	OpContainsFold
)

// String returns the operator's name.
func (o Operator) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpContainsFold:
		return "containsFold"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Condition is a single field predicate.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Filter is a conjunction of conditions. The zero value matches every
// document. Filters are values: the builder methods return a new Filter and
// never modify the receiver.
type Filter struct {
	conds []Condition
}

// Eq returns a copy of f that additionally requires field == value.
func (f Filter) Eq(field string, value any) Filter {
	return f.with(Condition{Field: field, Op: OpEq, Value: value})
}

// ContainsFold returns a copy of f that additionally requires field to
// contain substr, ignoring case.
func (f Filter) ContainsFold(field, substr string) Filter {
	return f.with(Condition{Field: field, Op: OpContainsFold, Value: substr})
}

// Conditions returns a copy of the filter's conditions.
func (f Filter) Conditions() []Condition {
	out := make([]Condition, len(f.conds))
	copy(out, f.conds)
	return out
}

// IsEmpty reports whether f matches every document.
func (f Filter) IsEmpty() bool {
	return len(f.conds) == 0
}

func (f Filter) with(c Condition) Filter {
	conds := make([]Condition, len(f.conds), len(f.conds)+1)
	copy(conds, f.conds)
	return Filter{conds: append(conds, c)}
}

// ByID returns a filter matching the document with the given identifier.
func ByID(id ObjectID) Filter {
	return Filter{}.Eq(IDField, id)
}

// ParseID parses a hex document identifier.
func ParseID(hex string) (ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// Direction is a sort order.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// SortKey orders results by one field.
type SortKey struct {
	Field     string
	Direction Direction
}

// Query describes a multi-document read: a filter, an ordering, and a
// window. Like Filter it is an immutable value.
type Query struct {
	filter Filter
	sort   []SortKey
	skip   int64
	limit  int64
}

// NewQuery returns a query selecting the documents matched by f with no
// ordering and no window.
func NewQuery(f Filter) Query {
	return Query{filter: f}
}

// SortBy returns a copy of q with an additional sort key.
func (q Query) SortBy(field string, dir Direction) Query {
	sort := make([]SortKey, len(q.sort), len(q.sort)+1)
	copy(sort, q.sort)
	q.sort = append(sort, SortKey{Field: field, Direction: dir})
	return q
}

// WithSkip returns a copy of q that skips the first n matches. Negative
// values are treated as zero.
func (q Query) WithSkip(n int64) Query {
	if n < 0 {
		n = 0
	}
	q.skip = n
	return q
}

// WithLimit returns a copy of q returning at most n matches. Zero or
// negative means no limit.
func (q Query) WithLimit(n int64) Query {
	if n < 0 {
		n = 0
	}
	q.limit = n
	return q
}

// Filter returns the query's filter.
func (q Query) Filter() Filter { return q.filter }

// Sort returns a copy of the query's sort keys.
func (q Query) Sort() []SortKey {
	out := make([]SortKey, len(q.sort))
	copy(out, q.sort)
	return out
}

// Skip returns the number of matches skipped.
func (q Query) Skip() int64 { return q.skip }

// Limit returns the maximum number of matches returned; zero means no limit.
func (q Query) Limit() int64 { return q.limit }
