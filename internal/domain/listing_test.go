package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListingUnmarshalJSON(t *testing.T) {
	body := `{
		"_id": "ignored",
		"foodName": "Fried Rice",
		"foodQuantity": "4",
		"expiredDateTime": "2024-11-20T10:30",
		"donatorEmail": "donor@x.com",
		"pickupLocation": "Dhaka",
		"foodImage": "https://img.example/rice.png"
	}`

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(body), &l))

	assert.True(t, l.ID.IsZero(), "caller-supplied _id must be ignored")
	assert.Equal(t, "Fried Rice", l.FoodName)
	assert.Equal(t, Quantity(4), l.FoodQuantity)
	require.NotNil(t, l.ExpiredDateTime)
	assert.Equal(t, time.Date(2024, 11, 20, 10, 30, 0, 0, time.UTC), l.ExpiredDateTime.Time)
	assert.Equal(t, "donor@x.com", l.DonatorEmail)
	assert.Equal(t, map[string]any{
		"pickupLocation": "Dhaka",
		"foodImage":      "https://img.example/rice.png",
	}, l.Extra)
}

func TestListingUnmarshalJSONKeepsUnreadableValues(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		key   string
		value any
	}{
		{name: "quantity not numeric", body: `{"foodQuantity": "many"}`, key: "foodQuantity", value: "many"},
		{name: "name not a string", body: `{"foodName": 12}`, key: "foodName", value: 12.0},
		{name: "free-form date", body: `{"expiredDateTime": "11/20/2025 10:00 AM"}`, key: "expiredDateTime", value: "11/20/2025 10:00 AM"},
		{name: "empty date", body: `{"expiredDateTime": ""}`, key: "expiredDateTime", value: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var l Listing
			require.NoError(t, json.Unmarshal([]byte(tc.body), &l))
			assert.Nil(t, l.FoodQuantity)
			assert.Nil(t, l.ExpiredDateTime)
			assert.Empty(t, l.FoodName)
			assert.Equal(t, map[string]any{tc.key: tc.value}, l.Extra)

			data, err := json.Marshal(l)
			require.NoError(t, err)
			assert.JSONEq(t, tc.body, string(data))

			raw, err := bson.Marshal(l)
			require.NoError(t, err)
			var doc bson.M
			require.NoError(t, bson.Unmarshal(raw, &doc))
			assert.Equal(t, bson.M{tc.key: tc.value}, doc, "stored as supplied")
		})
	}
}

func TestListingOmitsUnsuppliedFields(t *testing.T) {
	l := Listing{FoodName: "only name"}

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"foodName":"only name"}`, string(data))

	raw, err := bson.Marshal(l)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, bson.M{"foodName": "only name"}, doc)

	zero := Listing{FoodQuantity: Quantity(0)}
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.JSONEq(t, `{"foodQuantity":0}`, string(data), "a supplied zero quantity is kept")
}

func TestListingUnmarshalBSONLegacyValues(t *testing.T) {
	expiry := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		doc        bson.M
		wantQty    *float64
		wantExpiry *Timestamp
		wantExtra  map[string]any
	}{
		{name: "numeric string quantity", doc: bson.M{"foodQuantity": "5"}, wantQty: Quantity(5)},
		{name: "int32 quantity", doc: bson.M{"foodQuantity": int32(3)}, wantQty: Quantity(3)},
		{name: "int64 quantity", doc: bson.M{"foodQuantity": int64(9)}, wantQty: Quantity(9)},
		{name: "word quantity", doc: bson.M{"foodQuantity": "plenty"}, wantExtra: map[string]any{"foodQuantity": "plenty"}},
		{name: "string expiry", doc: bson.M{"expiredDateTime": "2024-06-01T12:00"}, wantExpiry: Expiry(NewTimestamp(expiry))},
		{name: "datetime expiry", doc: bson.M{"expiredDateTime": primitive.NewDateTimeFromTime(expiry)}, wantExpiry: Expiry(NewTimestamp(expiry))},
		{name: "empty expiry", doc: bson.M{"expiredDateTime": ""}, wantExtra: map[string]any{"expiredDateTime": ""}},
		{name: "boolean expiry", doc: bson.M{"expiredDateTime": true}, wantExtra: map[string]any{"expiredDateTime": true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := bson.Marshal(tc.doc)
			require.NoError(t, err)

			var l Listing
			require.NoError(t, bson.Unmarshal(raw, &l))
			assert.Equal(t, tc.wantQty, l.FoodQuantity)
			assert.Equal(t, tc.wantExpiry, l.ExpiredDateTime)
			assert.Equal(t, tc.wantExtra, l.Extra)
		})
	}
}

func TestListingMarshalJSON(t *testing.T) {
	id := primitive.NewObjectID()
	l := Listing{
		ID:              id,
		FoodName:        "Noodles",
		FoodQuantity:    Quantity(2),
		ExpiredDateTime: Expiry(NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))),
		DonatorEmail:    "donor@x.com",
		Extra:           map[string]any{"notes": "spicy", "foodName": "shadowed"},
	}

	data, err := json.Marshal(l)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, id.Hex(), out["_id"])
	assert.Equal(t, "Noodles", out["foodName"], "known fields win over extras")
	assert.Equal(t, 2.0, out["foodQuantity"])
	assert.Equal(t, "2024-01-02T03:04:05Z", out["expiredDateTime"])
	assert.Equal(t, "spicy", out["notes"])
}

func TestListingBSONKeepsExtraFields(t *testing.T) {
	l := Listing{
		FoodName:        "Rice cake",
		FoodQuantity:    Quantity(3),
		ExpiredDateTime: Expiry(NewTimestamp(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))),
		DonatorEmail:    "donor@x.com",
		Extra:           map[string]any{"additionalNotes": "keep cool"},
	}

	raw, err := bson.Marshal(l)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "keep cool", doc["additionalNotes"])
	assert.IsType(t, primitive.DateTime(0), doc["expiredDateTime"], "timestamps are stored as BSON datetimes")
	_, hasID := doc["_id"]
	assert.False(t, hasID, "zero id is omitted so the store can assign one")

	var back Listing
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, l.FoodName, back.FoodName)
	assert.Equal(t, l.FoodQuantity, back.FoodQuantity)
	require.NotNil(t, back.ExpiredDateTime)
	assert.True(t, l.ExpiredDateTime.Equal(back.ExpiredDateTime.Time))
	assert.Equal(t, "keep cool", back.Extra["additionalNotes"])
}

func TestNormalizeListingPatch(t *testing.T) {
	tests := []struct {
		name      string
		patch     map[string]any
		want      map[string]any
		wantError bool
	}{
		{
			name: "immutable fields are dropped",
			patch: map[string]any{
				"_id":          "abc",
				"donatorEmail": "thief@x.com",
				"foodName":     "Biryani",
			},
			want: map[string]any{"foodName": "Biryani"},
		},
		{
			name: "known fields are coerced",
			patch: map[string]any{
				"foodQuantity":    json.Number("7"),
				"expiredDateTime": "2024-12-01",
			},
			want: map[string]any{
				"foodQuantity":    7.0,
				"expiredDateTime": time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "extra fields pass through",
			patch: map[string]any{"pickupLocation": "Gate 2"},
			want:  map[string]any{"pickupLocation": "Gate 2"},
		},
		{
			name:      "only immutable fields",
			patch:     map[string]any{"donatorEmail": "x@x.com"},
			wantError: true,
		},
		{
			name: "unreadable values are stored as supplied",
			patch: map[string]any{
				"foodQuantity":    "lots",
				"expiredDateTime": "next tuesday",
				"foodName":        json.Number("12"),
			},
			want: map[string]any{
				"foodQuantity":    "lots",
				"expiredDateTime": "next tuesday",
				"foodName":        12.0,
			},
		},
		{
			name:      "operator key",
			patch:     map[string]any{"$where": "1", "foodName": "x"},
			wantError: true,
		},
		{
			name:      "nested path key",
			patch:     map[string]any{"location.city": "Dhaka"},
			wantError: true,
		},
		{
			name:      "nested operator key",
			patch:     map[string]any{"a.$b": 1},
			wantError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeListingPatch(tc.patch)
			if tc.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestListingValidate(t *testing.T) {
	tests := []struct {
		name    string
		extra   map[string]any
		wantErr bool
	}{
		{name: "no extras"},
		{name: "plain extras", extra: map[string]any{"foodImage": "x", "pickup": map[string]any{"a.b": 1}}},
		{name: "operator key", extra: map[string]any{"$where": "1"}, wantErr: true},
		{name: "dotted key", extra: map[string]any{"pickup.city": "Dhaka"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := Listing{FoodName: "Rice", Extra: tc.extra}
			err := l.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFieldName)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
