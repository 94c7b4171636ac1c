package memstore

import (
	"bytes"
	"cmp"
	"reflect"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// condition is a store.Condition whose value has been normalized to its
// stored representation.
type condition struct {
	field string
	op    store.Operator
	value any
}

func compileFilter(f store.Filter) ([]condition, error) {
	conds := f.Conditions()
	out := make([]condition, 0, len(conds))
	for _, c := range conds {
		v, err := normalizeValue(c.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, condition{field: c.Field, op: c.Op, value: v})
	}
	return out, nil
}

func matches(doc bson.M, conds []condition) bool {
	for _, c := range conds {
		v, present := doc[c.field]
		switch c.op {
		case store.OpEq:
			if !present {
				// {field: null} also matches documents lacking the field.
				if c.value != nil {
					return false
				}
				continue
			}
			if !equalValues(v, c.value) {
				return false
			}
		case store.OpContainsFold:
			s, ok := v.(string)
			sub, _ := c.value.(string)
			if !ok || !strings.Contains(strings.ToLower(s), strings.ToLower(sub)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	if na, ok := asNumber(a); ok {
		nb, ok := asNumber(b)
		return ok && na == nb
	}
	return reflect.DeepEqual(a, b)
}

// sortDocuments orders docs by keys. Ties keep insertion order.
func sortDocuments(docs []bson.M, keys []store.SortKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(docs[i][k.Field], docs[j][k.Field])
			if c == 0 {
				continue
			}
			if k.Direction == store.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// typeRank follows MongoDB's cross-type comparison order.
func typeRank(v any) int {
	switch v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return 0
	case float64, float32, int, int32, int64, primitive.Decimal128:
		return 1
	case string, primitive.Symbol:
		return 2
	case bson.M, bson.D:
		return 3
	case bson.A:
		return 4
	case primitive.Binary, []byte:
		return 5
	case primitive.ObjectID:
		return 6
	case bool:
		return 7
	case primitive.DateTime:
		return 8
	case primitive.Timestamp:
		return 9
	default:
		return 10
	}
}

// compareValues returns -1, 0 or 1. Missing values sort as null.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 1:
		na, _ := asNumber(a)
		nb, _ := asNumber(b)
		return cmp.Compare(na, nb)
	case 2:
		return strings.Compare(asString(a), asString(b))
	case 6:
		ia, ib := a.(primitive.ObjectID), b.(primitive.ObjectID)
		return bytes.Compare(ia[:], ib[:])
	case 7:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case 8:
		return cmp.Compare(a.(primitive.DateTime), b.(primitive.DateTime))
	}
	return 0
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case primitive.Symbol:
		return string(s)
	}
	return ""
}
