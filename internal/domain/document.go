package domain

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// idField is the document identifier key. It is assigned by the store and is
// never taken from caller input.
const idField = "_id"

// Documents are decoded leniently: a known field whose value cannot be read
// as the expected type is left unset and the value is kept verbatim among
// the extra fields, so it is stored and rendered exactly as supplied.

// decodeJSONFields decodes a JSON object into its fields, dropping _id.
func decodeJSONFields(data []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	delete(fields, idField)
	return fields, nil
}

// decodeBSONFields decodes a stored document with nested documents as
// bson.M, the same shape the stores hand back for untyped results.
func decodeBSONFields(data []byte) (bson.M, error) {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return nil, err
	}
	dec.DefaultDocumentM()
	var fields bson.M
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// storedID extracts the identifier of a stored document.
func storedID(fields bson.M) primitive.ObjectID {
	switch id := fields[idField].(type) {
	case primitive.ObjectID:
		return id
	case string:
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			return oid
		}
	}
	return primitive.NilObjectID
}

// collectExtra keeps a value that no known field claimed.
func collectExtra(extra map[string]any, key string, v any) map[string]any {
	if extra == nil {
		extra = make(map[string]any)
	}
	extra[key] = v
	return extra
}

// encodeWithExtra renders extra and the known fields as one JSON object.
// Known fields win over extra keys of the same name.
func encodeWithExtra(extra map[string]any, known bson.D) ([]byte, error) {
	out := make(map[string]any, len(extra)+len(known))
	for k, v := range extra {
		out[k] = v
	}
	for _, e := range known {
		out[e.Key] = e.Value
	}
	return json.Marshal(out)
}

// encodeBSONWithExtra builds the stored form: _id when assigned, the known
// fields, then extra keys in sorted order.
func encodeBSONWithExtra(id primitive.ObjectID, known bson.D, extra map[string]any) ([]byte, error) {
	doc := make(bson.D, 0, 1+len(known)+len(extra))
	if !id.IsZero() {
		doc = append(doc, bson.E{Key: idField, Value: id})
	}
	doc = append(doc, known...)

	taken := make(map[string]bool, len(known)+1)
	taken[idField] = true
	for _, e := range known {
		taken[e.Key] = true
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !taken[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: extra[k]})
	}
	return bson.Marshal(doc)
}

// checkFieldName rejects keys the store would read as an operator or a
// nested path.
func checkFieldName(key string) error {
	if strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
		return NewValidationError(key, "is not a valid field name", ErrInvalidFieldName)
	}
	return nil
}

func checkFieldNames(fields map[string]any) error {
	for key := range fields {
		if err := checkFieldName(key); err != nil {
			return err
		}
	}
	return nil
}

// asText reads v as a string.
func asText(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asQuantity reads v as a finite number. Numeric strings and the integer and
// decimal BSON types are accepted.
func asQuantity(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asTimestamp reads v as a point in time.
func asTimestamp(v any) (Timestamp, bool) {
	ts, err := ParseTimestampValue(v)
	return ts, err == nil
}

// normalizeJSONValue converts json.Number leaves to float64 so they are
// stored as BSON doubles rather than strings.
func normalizeJSONValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeJSONValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeJSONValue(item)
		}
		return out
	default:
		return v
	}
}
