// Package shopclient fetches remote shop resources and turns the raw responses
// into consumer-facing models.
//
// A ShopClient holds one Config and two registries keyed by resource type: one
// of AdapterFactory, one of SerializerFactory. Each fetch builds a fresh Adapter
// for the resource type, asks it for raw data, and only when that succeeds builds
// a fresh Serializer to convert the data. The client passes itself to the
// serializer so that models can issue follow-up fetches.
//
//	cfg, _ := shopclient.NewConfig("buckets-o-stuff", "api-key", "channel-id")
//	tr, _ := transport.New(logger)
//	client, _ := shopclient.New(logger, cfg, listings.Register(tr))
//	products, err := client.FetchAll(ctx, shopclient.ResourceProducts)
package shopclient

import "context"

// ResourceType selects which Adapter and Serializer pair handles a call.
type ResourceType = string

// Resource types served by the bundled listings package.
const (
	ResourceProducts    ResourceType = "products"
	ResourceCollections ResourceType = "collections"
)

// Adapter retrieves raw, unserialized data for one resource type.
//
// Implementations own transport concerns: URL construction, authentication,
// timeouts and cancellation through ctx. The returned raw value is opaque to the
// ShopClient and handed unchanged to the matching Serializer.
type Adapter interface {
	// FetchSingle retrieves one resource by its identifier.
	FetchSingle(ctx context.Context, id any) (any, error)
	// FetchCollection retrieves a collection. A nil query means no filtering.
	FetchCollection(ctx context.Context, query any) (any, error)
}

// Serializer converts raw adapter output into models. It must not retain the
// Client beyond the models it builds.
type Serializer interface {
	SerializeSingle(raw any, client Client) (any, error)
	SerializeCollection(raw any, client Client) ([]any, error)
}

// AdapterFactory builds a fresh Adapter for a single call.
type AdapterFactory func(cfg *Config) Adapter

// SerializerFactory builds a fresh Serializer for a single call.
type SerializerFactory func(cfg *Config) Serializer

// Client is the read-only view of a ShopClient handed to serializers and kept by
// models for follow-up fetches. It does not expose the registries.
type Client interface {
	Config() *Config
	FetchAll(ctx context.Context, resourceType ResourceType) ([]any, error)
	FetchOne(ctx context.Context, resourceType ResourceType, id any) (any, error)
	FetchQuery(ctx context.Context, resourceType ResourceType, query any) ([]any, error)
}
