package shopclient

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constAdapter(raw any) AdapterFactory {
	return StaticAdapter(AdapterFuncs{
		Single:     func(context.Context, any) (any, error) { return raw, nil },
		Collection: func(context.Context, any) (any, error) { return raw, nil },
	})
}

func echoSerializer() SerializerFactory {
	return StaticSerializer(SerializerFuncs{
		Single:     func(raw any, _ Client) (any, error) { return raw, nil },
		Collection: func(raw any, _ Client) ([]any, error) { return []any{raw}, nil },
	})
}

// --- 등록 옵션 ---

func TestOptions_MapsRegisterEveryEntry(t *testing.T) {
	client, err := New(log.NewNopLogger(), newTestConfig(t),
		WithAdapters(map[ResourceType]AdapterFactory{
			ResourceProducts:    constAdapter("p"),
			ResourceCollections: constAdapter("c"),
		}),
		WithSerializers(map[ResourceType]SerializerFactory{
			ResourceProducts:    echoSerializer(),
			ResourceCollections: echoSerializer(),
		}),
	)
	require.NoError(t, err)
	assert.Len(t, client.Adapters(), 2)
	assert.Len(t, client.Serializers(), 2)

	m, err := client.FetchOne(context.Background(), ResourceCollections, 1)
	require.NoError(t, err)
	assert.Equal(t, "c", m)
}

func TestOptions_LaterRegistrationWins(t *testing.T) {
	client := newTestClient(t,
		WithResource(ResourceProducts, constAdapter("first"), echoSerializer()),
		WithAdapter(ResourceProducts, constAdapter("second")),
	)

	m, err := client.FetchOne(context.Background(), ResourceProducts, 1)
	require.NoError(t, err)
	assert.Equal(t, "second", m)
}

func TestOptions_MapWithNilFactoryFails(t *testing.T) {
	_, err := New(log.NewNopLogger(), newTestConfig(t),
		WithAdapters(map[ResourceType]AdapterFactory{ResourceProducts: nil}))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "adapter factory for products cannot be nil")
}

func TestCombine_StopsAtFirstError(t *testing.T) {
	applied := 0
	counting := func(o *options) error {
		applied++
		return nil
	}

	_, err := New(log.NewNopLogger(), newTestConfig(t), Combine(
		counting,
		WithSerializer("", echoSerializer()),
		counting,
	))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 1, applied)
}

// --- 런타임 등록 ---

func TestRegister_AtRuntime(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.FetchAll(ctx, "blogs")
	require.ErrorIs(t, err, ErrUnknownResourceType)

	require.NoError(t, client.RegisterAdapter("blogs", constAdapter("post")))
	require.NoError(t, client.RegisterSerializer("blogs", echoSerializer()))

	models, err := client.FetchAll(ctx, "blogs")
	require.NoError(t, err)
	assert.Equal(t, []any{"post"}, models)

	var cfgErr *ConfigError
	assert.ErrorAs(t, client.RegisterAdapter("blogs", nil), &cfgErr)
	assert.ErrorAs(t, client.RegisterSerializer("", echoSerializer()), &cfgErr)
}

func TestSetAdapters_NilClearsRegistry(t *testing.T) {
	client := newTestClient(t, WithResource(ResourceProducts, constAdapter("p"), echoSerializer()))

	client.SetAdapters(nil)
	assert.Empty(t, client.Adapters())
	assert.Len(t, client.Serializers(), 1)

	_, err := client.FetchAll(context.Background(), ResourceProducts)
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "adapter", lookupErr.Component)
}
