package model

import (
	"context"
	"testing"

	"github.com/mrchypark/shopclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records the last query and returns canned models.
type fakeClient struct {
	lastType  shopclient.ResourceType
	lastID    any
	lastQuery any
	one       any
	many      []any
}

func (f *fakeClient) Config() *shopclient.Config { return nil }

func (f *fakeClient) FetchAll(ctx context.Context, rt shopclient.ResourceType) ([]any, error) {
	f.lastType = rt
	return f.many, nil
}

func (f *fakeClient) FetchOne(ctx context.Context, rt shopclient.ResourceType, id any) (any, error) {
	f.lastType, f.lastID = rt, id
	return f.one, nil
}

func (f *fakeClient) FetchQuery(ctx context.Context, rt shopclient.ResourceType, query any) ([]any, error) {
	f.lastType, f.lastQuery = rt, query
	return f.many, nil
}

func TestCollection_Products(t *testing.T) {
	client := &fakeClient{many: []any{&Product{ID: 1}, &Product{ID: 2}}}
	c := &Collection{ID: 99}
	c.Bind(client)

	products, err := c.Products(context.Background())
	require.NoError(t, err)

	assert.Len(t, products, 2)
	assert.Equal(t, shopclient.ResourceProducts, client.lastType)
	assert.Equal(t, map[string]any{"collection_id": int64(99)}, client.lastQuery)
	assert.True(t, c.Client() == shopclient.Client(client))
}

func TestCollection_ProductsWrongModel(t *testing.T) {
	client := &fakeClient{many: []any{&Collection{}}}
	c := &Collection{ID: 1}
	c.Bind(client)

	_, err := c.Products(context.Background())
	assert.Error(t, err)
}

func TestDetachedModels(t *testing.T) {
	_, err := (&Collection{}).Products(context.Background())
	assert.ErrorIs(t, err, ErrDetached)

	_, err = (&Product{}).Reload(context.Background())
	assert.ErrorIs(t, err, ErrDetached)
}

func TestProduct_Reload(t *testing.T) {
	fresh := &Product{ID: 5, Title: "New title"}
	client := &fakeClient{one: fresh}
	p := &Product{ID: 5, Title: "Old title"}
	p.Bind(client)

	got, err := p.Reload(context.Background())
	require.NoError(t, err)
	assert.Same(t, fresh, got)
	assert.Equal(t, int64(5), client.lastID)
}

func TestProduct_Variant(t *testing.T) {
	p := &Product{Variants: []Variant{{ID: 10, Title: "Small"}, {ID: 11, Title: "Large"}}}

	v, ok := p.Variant(11)
	require.True(t, ok)
	assert.Equal(t, "Large", v.Title)

	_, ok = p.Variant(12)
	assert.False(t, ok)
}
