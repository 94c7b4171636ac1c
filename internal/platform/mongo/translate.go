package mongo

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// translateFilter builds the MongoDB query document for f. Conditions on
// distinct fields are combined in one document; repeated fields fall back to
// an explicit $and.
func translateFilter(f store.Filter) (bson.D, error) {
	conds := f.Conditions()
	clauses := make(bson.D, 0, len(conds))
	seen := make(map[string]bool, len(conds))
	repeated := false

	for _, c := range conds {
		var value any
		switch c.Op {
		case store.OpEq:
			value = c.Value
		case store.OpContainsFold:
			s, ok := c.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%s on %q needs a string, got %T", c.Op, c.Field, c.Value)
			}
			value = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		default:
			return nil, fmt.Errorf("unsupported operator %s", c.Op)
		}
		if seen[c.Field] {
			repeated = true
		}
		seen[c.Field] = true
		clauses = append(clauses, bson.E{Key: c.Field, Value: value})
	}

	if !repeated {
		return clauses, nil
	}
	and := make(bson.A, len(clauses))
	for i, e := range clauses {
		and[i] = bson.D{e}
	}
	return bson.D{{Key: "$and", Value: and}}, nil
}

// translateSort builds the sort document for keys, preserving their order.
func translateSort(keys []store.SortKey) bson.D {
	if len(keys) == 0 {
		return nil
	}
	sort := make(bson.D, len(keys))
	for i, k := range keys {
		sort[i] = bson.E{Key: k.Field, Value: int(k.Direction)}
	}
	return sort
}

// findOptions carries the sort and window of q.
func findOptions(q store.Query) *options.FindOptions {
	opts := options.Find()
	if sort := translateSort(q.Sort()); sort != nil {
		opts.SetSort(sort)
	}
	if q.Skip() > 0 {
		opts.SetSkip(q.Skip())
	}
	if q.Limit() > 0 {
		opts.SetLimit(q.Limit())
	}
	return opts
}
