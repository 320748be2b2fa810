package listings

import (
	"net/url"
	"testing"

	"github.com/mrchypark/shopclient/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializer_PayloadErrors(t *testing.T) {
	s := ProductsSerializer()(nil)

	testCases := []struct {
		name string
		raw  any
	}{
		{name: "wrong raw type", raw: 42},
		{name: "not json", raw: []byte("<html>")},
		{name: "missing key", raw: []byte(`{"collection_listing": {}}`)},
		{name: "null payload", raw: `{"product_listing": null}`},
		{name: "wrong shape", raw: []byte(`{"product_listing": []}`)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SerializeSingle(tc.raw, nil)
			var payloadErr *PayloadError
			require.ErrorAs(t, err, &payloadErr)
			assert.Equal(t, "product_listing", payloadErr.Key)
		})
	}

	_, err := s.SerializeCollection([]byte(`{"product_listings": {"a": 1}}`), nil)
	var payloadErr *PayloadError
	assert.ErrorAs(t, err, &payloadErr)
}

func TestSerializer_EmptyCollection(t *testing.T) {
	models, err := CollectionsSerializer()(nil).SerializeCollection([]byte(`{"collection_listings": []}`), nil)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestSerializer_CollectionModelsAreDistinct(t *testing.T) {
	models, err := ProductsSerializer()(nil).SerializeCollection(
		[]byte(`{"product_listings": [{"product_id": 1}, {"product_id": 2}]}`), nil)
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, int64(1), models[0].(*model.Product).ID)
	assert.Equal(t, int64(2), models[1].(*model.Product).ID)
	assert.NotSame(t, models[0], models[1])
}

func TestEncodeQuery(t *testing.T) {
	testCases := []struct {
		name  string
		query any
		want  url.Values
	}{
		{name: "nil", query: nil, want: nil},
		{name: "url values", query: url.Values{"page": {"1"}}, want: url.Values{"page": {"1"}}},
		{name: "string map", query: map[string]string{"handle": "mop"}, want: url.Values{"handle": {"mop"}}},
		{
			name:  "mixed map",
			query: map[string]any{"product_ids": []int64{1, 2, 3}, "limit": 50, "available": true},
			want:  url.Values{"product_ids": {"1,2,3"}, "limit": {"50"}, "available": {"true"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := EncodeQuery(map[string]any{"bad": map[string]int{}})
	var queryErr *QueryError
	assert.ErrorAs(t, err, &queryErr)

	_, err = EncodeQuery(map[string]any{"nil": nil})
	assert.ErrorAs(t, err, &queryErr)
}
