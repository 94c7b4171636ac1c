package domain

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing field names as they appear in JSON and in stored documents.
const (
	FieldFoodName        = "foodName"
	FieldFoodQuantity    = "foodQuantity"
	FieldExpiredDateTime = "expiredDateTime"
	FieldDonatorEmail    = "donatorEmail"
)

// Listing is a food item offered by a donator. Besides the fields the
// application reasons about, a listing keeps every descriptive field the
// donator supplied (image, location, notes, ...) in Extra.
//
// A known field is set only when it was supplied in a readable form: empty
// strings and nil pointers are omitted when the listing is stored or
// rendered. A value that could not be read (an expiry of "next week", a
// quantity of "plenty") stays in Extra under its own key.
//
// DonatorEmail is fixed at creation and is the only ownership anchor for
// later mutations.
type Listing struct {
	ID              primitive.ObjectID
	FoodName        string
	FoodQuantity    *float64
	ExpiredDateTime *Timestamp
	DonatorEmail    string
	Extra           map[string]any
}

// Quantity returns a pointer to n, for building listings in code.
func Quantity(n float64) *float64 {
	return &n
}

// Expiry returns a pointer to ts, for building listings in code.
func Expiry(ts Timestamp) *Timestamp {
	return &ts
}

// known returns the set known fields. Expiry is a Timestamp when forJSON is
// true and a time.Time (a BSON datetime) otherwise.
func (l Listing) known(forJSON bool) bson.D {
	var d bson.D
	if l.FoodName != "" {
		d = append(d, bson.E{Key: FieldFoodName, Value: l.FoodName})
	}
	if l.FoodQuantity != nil {
		d = append(d, bson.E{Key: FieldFoodQuantity, Value: *l.FoodQuantity})
	}
	if l.ExpiredDateTime != nil && !l.ExpiredDateTime.IsZero() {
		if forJSON {
			d = append(d, bson.E{Key: FieldExpiredDateTime, Value: *l.ExpiredDateTime})
		} else {
			d = append(d, bson.E{Key: FieldExpiredDateTime, Value: l.ExpiredDateTime.UTC()})
		}
	}
	if l.DonatorEmail != "" {
		d = append(d, bson.E{Key: FieldDonatorEmail, Value: l.DonatorEmail})
	}
	return d
}

// assign routes each field to its known slot or to Extra.
func (l *Listing) assign(fields map[string]any) {
	for key, v := range fields {
		switch key {
		case idField:
			continue
		case FieldFoodName:
			if s, ok := asText(v); ok && s != "" {
				l.FoodName = s
				continue
			}
		case FieldFoodQuantity:
			if n, ok := asQuantity(v); ok {
				l.FoodQuantity = Quantity(n)
				continue
			}
		case FieldExpiredDateTime:
			if ts, ok := asTimestamp(v); ok && !ts.IsZero() {
				l.ExpiredDateTime = Expiry(ts)
				continue
			}
		case FieldDonatorEmail:
			if s, ok := asText(v); ok && s != "" {
				l.DonatorEmail = s
				continue
			}
		}
		l.Extra = collectExtra(l.Extra, key, v)
	}
}

// MarshalJSON flattens Extra alongside the known fields.
func (l Listing) MarshalJSON() ([]byte, error) {
	known := l.known(true)
	if !l.ID.IsZero() {
		known = append(known, bson.E{Key: idField, Value: l.ID.Hex()})
	}
	return encodeWithExtra(l.Extra, known)
}

// UnmarshalJSON decodes a caller-supplied listing. Any _id in the input is
// ignored; unknown fields land in Extra.
func (l *Listing) UnmarshalJSON(data []byte) error {
	fields, err := decodeJSONFields(data)
	if err != nil {
		return err
	}
	var decoded Listing
	decoded.assign(fields)
	*l = decoded
	return nil
}

// MarshalBSON writes the listing with Extra inline.
func (l Listing) MarshalBSON() ([]byte, error) {
	return encodeBSONWithExtra(l.ID, l.known(false), l.Extra)
}

// UnmarshalBSON reads a stored listing. Documents written by older clients
// may carry a quantity as a string or an integer, or an expiry that is not a
// date; these never fail the read.
func (l *Listing) UnmarshalBSON(data []byte) error {
	fields, err := decodeBSONFields(data)
	if err != nil {
		return err
	}
	decoded := Listing{ID: storedID(fields)}
	decoded.assign(fields)
	*l = decoded
	return nil
}

// Validate checks that every field name can be stored as a top-level key.
func (l *Listing) Validate() error {
	return checkFieldNames(l.Extra)
}

// NormalizeListingPatch turns a decoded JSON patch into the set of fields an
// owner may overwrite. The identifier and donatorEmail are dropped. A
// quantity or expiry that can be read is coerced to its stored type; any
// other value is stored as supplied. Field names that the store would treat
// as operators or nested paths are rejected, as is a patch with nothing
// writable left.
func NormalizeListingPatch(patch map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(patch))
	for key, value := range patch {
		if err := checkFieldName(key); err != nil {
			return nil, err
		}
		switch key {
		case idField, FieldDonatorEmail:
			continue
		case FieldFoodQuantity:
			if n, ok := asQuantity(value); ok {
				out[key] = n
				continue
			}
		case FieldExpiredDateTime:
			if ts, ok := asTimestamp(value); ok {
				out[key] = ts.UTC()
				continue
			}
		}
		out[key] = normalizeJSONValue(value)
	}
	if len(out) == 0 {
		return nil, NewValidationError("body", "has no updatable fields", ErrEmptyPatch)
	}
	return out, nil
}
