package shopclient

// options collects the registries supplied to New.
type options struct {
	adapters    map[ResourceType]AdapterFactory
	serializers map[ResourceType]SerializerFactory
}

// Option configures a ShopClient.
type Option func(o *options) error

// WithAdapter registers the adapter factory for a resource type.
func WithAdapter(resourceType ResourceType, factory AdapterFactory) Option {
	return func(o *options) error {
		if resourceType == "" {
			return &ConfigError{"resource type cannot be empty"}
		}
		if factory == nil {
			return &ConfigError{"adapter factory for " + resourceType + " cannot be nil"}
		}
		o.adapters[resourceType] = factory
		return nil
	}
}

// WithSerializer registers the serializer factory for a resource type.
func WithSerializer(resourceType ResourceType, factory SerializerFactory) Option {
	return func(o *options) error {
		if resourceType == "" {
			return &ConfigError{"resource type cannot be empty"}
		}
		if factory == nil {
			return &ConfigError{"serializer factory for " + resourceType + " cannot be nil"}
		}
		o.serializers[resourceType] = factory
		return nil
	}
}

// WithResource registers both halves of a resource type at once.
func WithResource(resourceType ResourceType, adapter AdapterFactory, serializer SerializerFactory) Option {
	return func(o *options) error {
		if err := WithAdapter(resourceType, adapter)(o); err != nil {
			return err
		}
		return WithSerializer(resourceType, serializer)(o)
	}
}

// WithAdapters registers every entry of the given map.
func WithAdapters(adapters map[ResourceType]AdapterFactory) Option {
	return func(o *options) error {
		for rt, f := range adapters {
			if err := WithAdapter(rt, f)(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithSerializers registers every entry of the given map.
func WithSerializers(serializers map[ResourceType]SerializerFactory) Option {
	return func(o *options) error {
		for rt, f := range serializers {
			if err := WithSerializer(rt, f)(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// validate checks that the registries pair up: a type with an adapter but no
// serializer (or the reverse) could never complete a call.
func (o *options) validate() error {
	for rt := range o.adapters {
		if _, ok := o.serializers[rt]; !ok {
			return &ConfigError{"resource type " + rt + " has an adapter but no serializer"}
		}
	}
	for rt := range o.serializers {
		if _, ok := o.adapters[rt]; !ok {
			return &ConfigError{"resource type " + rt + " has a serializer but no adapter"}
		}
	}
	return nil
}

// Combine groups several options into one, applied in order.
func Combine(opts ...Option) Option {
	return func(o *options) error {
		for _, opt := range opts {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}
