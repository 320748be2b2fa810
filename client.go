package shopclient

import (
	"context"
	"maps"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ShopClient is the resource-fetch orchestrator. For every call it resolves the
// adapter and serializer factories registered for the resource type, fetches raw
// data through a fresh Adapter, then converts it through a fresh Serializer.
//
// ShopClient performs no caching, retrying or error translation: whatever the
// adapter or serializer returns is what the caller gets.
type ShopClient struct {
	config *Config
	logger log.Logger

	mu          sync.RWMutex
	adapters    map[ResourceType]AdapterFactory
	serializers map[ResourceType]SerializerFactory
}

// 컴파일 타임에 ShopClient가 Client 인터페이스를 만족하는지 확인합니다.
var _ Client = (*ShopClient)(nil)

// New builds a ShopClient around cfg. The pointer is retained as-is and passed
// to every factory.
func New(logger log.Logger, cfg *Config, opts ...Option) (*ShopClient, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if cfg == nil {
		return nil, &ConfigError{"config is required"}
	}

	o := options{
		adapters:    make(map[ResourceType]AdapterFactory),
		serializers: make(map[ResourceType]SerializerFactory),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	c := &ShopClient{
		config:      cfg,
		logger:      logger,
		adapters:    o.adapters,
		serializers: o.serializers,
	}

	level.Debug(logger).Log("msg", "shop client initialized", "domain", cfg.Domain(), "resources", len(o.adapters))
	return c, nil
}

// Config returns the exact Config the client was built with.
func (c *ShopClient) Config() *Config {
	return c.config
}

// FetchAll fetches the whole collection of a resource type.
func (c *ShopClient) FetchAll(ctx context.Context, resourceType ResourceType) ([]any, error) {
	af, sf, err := c.resolve(resourceType)
	if err != nil {
		return nil, err
	}

	level.Debug(c.logger).Log("msg", "fetching collection", "resource", resourceType)
	raw, err := af(c.config).FetchCollection(ctx, nil)
	if err != nil {
		return nil, err
	}
	return sf(c.config).SerializeCollection(raw, c)
}

// FetchOne fetches a single resource. id is passed to the adapter unchanged.
func (c *ShopClient) FetchOne(ctx context.Context, resourceType ResourceType, id any) (any, error) {
	af, sf, err := c.resolve(resourceType)
	if err != nil {
		return nil, err
	}

	level.Debug(c.logger).Log("msg", "fetching single", "resource", resourceType, "id", id)
	raw, err := af(c.config).FetchSingle(ctx, id)
	if err != nil {
		return nil, err
	}
	return sf(c.config).SerializeSingle(raw, c)
}

// FetchQuery fetches a filtered collection. query is forwarded verbatim; its
// shape is defined by the adapter of the resource type.
func (c *ShopClient) FetchQuery(ctx context.Context, resourceType ResourceType, query any) ([]any, error) {
	af, sf, err := c.resolve(resourceType)
	if err != nil {
		return nil, err
	}

	level.Debug(c.logger).Log("msg", "fetching query", "resource", resourceType)
	raw, err := af(c.config).FetchCollection(ctx, query)
	if err != nil {
		return nil, err
	}
	return sf(c.config).SerializeCollection(raw, c)
}

// Adapters returns a copy of the adapter registry.
func (c *ShopClient) Adapters() map[ResourceType]AdapterFactory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.adapters)
}

// Serializers returns a copy of the serializer registry.
func (c *ShopClient) Serializers() map[ResourceType]SerializerFactory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.serializers)
}

// SetAdapters replaces the whole adapter registry. Calls started afterwards use
// the new entries; calls already past lookup are unaffected.
func (c *ShopClient) SetAdapters(adapters map[ResourceType]AdapterFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adapters = maps.Clone(adapters)
	if c.adapters == nil {
		c.adapters = make(map[ResourceType]AdapterFactory)
	}
}

// SetSerializers replaces the whole serializer registry.
func (c *ShopClient) SetSerializers(serializers map[ResourceType]SerializerFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serializers = maps.Clone(serializers)
	if c.serializers == nil {
		c.serializers = make(map[ResourceType]SerializerFactory)
	}
}

// RegisterAdapter adds or replaces a single adapter factory.
func (c *ShopClient) RegisterAdapter(resourceType ResourceType, factory AdapterFactory) error {
	if resourceType == "" {
		return &ConfigError{"resource type cannot be empty"}
	}
	if factory == nil {
		return &ConfigError{"adapter factory for " + resourceType + " cannot be nil"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adapters[resourceType] = factory
	return nil
}

// RegisterSerializer adds or replaces a single serializer factory.
func (c *ShopClient) RegisterSerializer(resourceType ResourceType, factory SerializerFactory) error {
	if resourceType == "" {
		return &ConfigError{"resource type cannot be empty"}
	}
	if factory == nil {
		return &ConfigError{"serializer factory for " + resourceType + " cannot be nil"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serializers[resourceType] = factory
	return nil
}

// resolve looks both factories up from the current registries. Nothing is
// constructed here, so an unknown type fails before any work starts.
func (c *ShopClient) resolve(resourceType ResourceType) (AdapterFactory, SerializerFactory, error) {
	c.mu.RLock()
	af, hasAdapter := c.adapters[resourceType]
	sf, hasSerializer := c.serializers[resourceType]
	c.mu.RUnlock()

	if !hasAdapter || af == nil {
		return nil, nil, &LookupError{ResourceType: resourceType, Component: "adapter"}
	}
	if !hasSerializer || sf == nil {
		return nil, nil, &LookupError{ResourceType: resourceType, Component: "serializer"}
	}
	return af, sf, nil
}
