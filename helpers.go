package shopclient

import "context"

// --- Adapter / Serializer helpers ---

// AdapterFuncs adapts plain functions into an Adapter. A nil function makes the
// corresponding method return ErrNotSupported.
type AdapterFuncs struct {
	Single     func(ctx context.Context, id any) (any, error)
	Collection func(ctx context.Context, query any) (any, error)
}

var _ Adapter = AdapterFuncs{}

// FetchSingle calls Single.
func (a AdapterFuncs) FetchSingle(ctx context.Context, id any) (any, error) {
	if a.Single == nil {
		return nil, ErrNotSupported
	}
	return a.Single(ctx, id)
}

// FetchCollection calls Collection.
func (a AdapterFuncs) FetchCollection(ctx context.Context, query any) (any, error) {
	if a.Collection == nil {
		return nil, ErrNotSupported
	}
	return a.Collection(ctx, query)
}

// SerializerFuncs adapts plain functions into a Serializer.
type SerializerFuncs struct {
	Single     func(raw any, client Client) (any, error)
	Collection func(raw any, client Client) ([]any, error)
}

var _ Serializer = SerializerFuncs{}

// SerializeSingle calls Single.
func (s SerializerFuncs) SerializeSingle(raw any, client Client) (any, error) {
	if s.Single == nil {
		return nil, ErrNotSupported
	}
	return s.Single(raw, client)
}

// SerializeCollection calls Collection.
func (s SerializerFuncs) SerializeCollection(raw any, client Client) ([]any, error) {
	if s.Collection == nil {
		return nil, ErrNotSupported
	}
	return s.Collection(raw, client)
}

// StaticAdapter returns a factory that ignores the Config and always yields a.
// Useful when the adapter carries its own connection settings.
func StaticAdapter(a Adapter) AdapterFactory {
	return func(*Config) Adapter { return a }
}

// StaticSerializer returns a factory that always yields s.
func StaticSerializer(s Serializer) SerializerFactory {
	return func(*Config) Serializer { return s }
}
