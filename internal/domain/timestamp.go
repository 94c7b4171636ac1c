package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// timestampLayouts lists the accepted input formats, most specific first.
// The short forms are what HTML date and datetime-local inputs submit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a point in time that tolerates the loose formats browser
// clients send. Documents store it as a native BSON datetime; JSON renders
// it as RFC 3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, normalized to UTC at millisecond precision (the
// resolution of a BSON datetime).
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// ParseTimestamp parses s using the accepted layouts. Zone-less inputs are
// interpreted as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// ParseTimestampValue converts a decoded JSON or BSON value (a string, a
// datetime or epoch milliseconds) into a Timestamp.
func ParseTimestampValue(v any) (Timestamp, error) {
	switch val := v.(type) {
	case string:
		return ParseTimestamp(val)
	case float64:
		return NewTimestamp(time.UnixMilli(int64(val))), nil
	case int64:
		return NewTimestamp(time.UnixMilli(val)), nil
	case int32:
		return NewTimestamp(time.UnixMilli(int64(val))), nil
	case primitive.DateTime:
		return NewTimestamp(val.Time()), nil
	case json.Number:
		ms, err := val.Int64()
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		return NewTimestamp(time.UnixMilli(ms)), nil
	case time.Time:
		return NewTimestamp(val), nil
	case Timestamp:
		return val, nil
	default:
		return Timestamp{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimestamp, v)
	}
}

// MarshalJSON renders the timestamp as RFC 3339, or null when unset.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts null, a string in any accepted layout, or epoch
// milliseconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	parsed, err := ParseTimestampValue(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
