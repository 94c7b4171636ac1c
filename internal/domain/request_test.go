package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRequestJSONRoundTrip(t *testing.T) {
	body := `{"foodId":"65a1","requestPersonEmail":"a@x.com","donatorEmail":"d@x.com","foodStatus":"pending","additionalNotes":"after 5pm"}`

	var r Request
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	assert.Equal(t, "65a1", r.FoodID)
	assert.Equal(t, "a@x.com", r.RequestPersonEmail)
	assert.Equal(t, "d@x.com", r.DonatorEmail)
	assert.Equal(t, "pending", r.FoodStatus)
	assert.Equal(t, "after 5pm", r.Extra["additionalNotes"])

	r.ID = primitive.NewObjectID()
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, r.ID.Hex(), out["_id"])
	assert.Equal(t, "after 5pm", out["additionalNotes"])
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{name: "valid", req: Request{FoodID: "f", RequestPersonEmail: "a@x.com"}},
		{name: "missing requester", req: Request{FoodID: "f"}, wantErr: true},
		{name: "missing food", req: Request{RequestPersonEmail: "a@x.com"}, wantErr: true},
		{
			name:    "operator field name",
			req:     Request{FoodID: "f", RequestPersonEmail: "a@x.com", Extra: map[string]any{"$inc": 1}},
			wantErr: true,
		},
		{
			name:    "dotted field name",
			req:     Request{FoodID: "f", RequestPersonEmail: "a@x.com", Extra: map[string]any{"pickup.time": "6pm"}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestOmitsEmptyFields(t *testing.T) {
	var r Request
	require.NoError(t, json.Unmarshal([]byte(`{"foodId":"65a1","requestPersonEmail":"a@x.com","foodStatus":7}`), &r))
	assert.Empty(t, r.FoodStatus)
	assert.Equal(t, map[string]any{"foodStatus": 7.0}, r.Extra)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"foodId":"65a1","requestPersonEmail":"a@x.com","foodStatus":7}`, string(data))

	raw, err := bson.Marshal(Request{FoodID: "65a1", RequestPersonEmail: "a@x.com"})
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, bson.M{"foodId": "65a1", "requestPersonEmail": "a@x.com"}, doc)
}
