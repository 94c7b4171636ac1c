package mongo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

func TestTranslateFilter(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()

	tests := []struct {
		name   string
		filter store.Filter
		want   bson.D
	}{
		{
			name:   "empty filter matches everything",
			filter: store.Filter{},
			want:   bson.D{},
		},
		{
			name:   "by id",
			filter: store.ByID(id),
			want:   bson.D{{Key: "_id", Value: id}},
		},
		{
			name:   "substring is escaped and case-insensitive",
			filter: store.Filter{}.ContainsFold("foodName", "rice (fried)."),
			want: bson.D{{Key: "foodName", Value: primitive.Regex{
				Pattern: `rice \(fried\)\.`,
				Options: "i",
			}}},
		},
		{
			name:   "distinct fields share one document",
			filter: store.Filter{}.ContainsFold("foodName", "rice").Eq("donatorEmail", "a@x.com"),
			want: bson.D{
				{Key: "foodName", Value: primitive.Regex{Pattern: "rice", Options: "i"}},
				{Key: "donatorEmail", Value: "a@x.com"},
			},
		},
		{
			name:   "repeated field uses $and",
			filter: store.Filter{}.Eq("foodStatus", "pending").Eq("foodStatus", "accepted"),
			want: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "foodStatus", Value: "pending"}},
				bson.D{{Key: "foodStatus", Value: "accepted"}},
			}}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := translateFilter(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindOptions(t *testing.T) {
	t.Parallel()

	q := store.NewQuery(store.Filter{}).
		SortBy("expiredDateTime", store.Descending).
		WithSkip(20).
		WithLimit(10)

	opts := findOptions(q)
	assert.Equal(t, bson.D{{Key: "expiredDateTime", Value: -1}}, opts.Sort)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)

	unbounded := findOptions(store.NewQuery(store.Filter{}))
	assert.Nil(t, unbounded.Sort)
	assert.Nil(t, unbounded.Skip)
	assert.Nil(t, unbounded.Limit, "a zero limit must not be sent")
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(mongo.ErrNoDocuments), store.ErrNotFound)
	assert.ErrorIs(t, MapError(fmt.Errorf("decode: %w", mongo.ErrNoDocuments)), store.ErrNotFound)
	assert.ErrorIs(t, MapError(mongo.ErrClientDisconnected), store.ErrClosed)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, MapError(dup), store.ErrDuplicate)

	other := errors.New("network unreachable")
	assert.Equal(t, other, MapError(other))
}
