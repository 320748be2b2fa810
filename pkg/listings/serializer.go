package listings

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mrchypark/shopclient"
	"github.com/mrchypark/shopclient/pkg/model"
)

// PayloadError is returned when a raw response cannot be turned into models.
type PayloadError struct {
	Key string
	Err error
}

func (e *PayloadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("listings: payload has no %q", e.Key)
	}
	return fmt.Sprintf("listings: decode %q: %v", e.Key, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// binder is implemented by the pointer types of the models.
type binder[T any] interface {
	*T
	Bind(client shopclient.Client)
}

// Serializer decodes listings payloads into models of type T.
type Serializer[T any, PT binder[T]] struct {
	resource resource
}

// ProductsSerializer returns the factory of the products serializer.
func ProductsSerializer() shopclient.SerializerFactory {
	return func(*shopclient.Config) shopclient.Serializer {
		return &Serializer[model.Product, *model.Product]{resource: productListings}
	}
}

// CollectionsSerializer returns the factory of the collections serializer.
func CollectionsSerializer() shopclient.SerializerFactory {
	return func(*shopclient.Config) shopclient.Serializer {
		return &Serializer[model.Collection, *model.Collection]{resource: collectionListings}
	}
}

// SerializeSingle decodes {"<single key>": {...}} into one bound model.
func (s *Serializer[T, PT]) SerializeSingle(raw any, client shopclient.Client) (any, error) {
	payload, err := s.field(raw, s.resource.singleKey)
	if err != nil {
		return nil, err
	}

	var m T
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, &PayloadError{Key: s.resource.singleKey, Err: err}
	}
	p := PT(&m)
	p.Bind(client)
	return p, nil
}

// SerializeCollection decodes {"<collection key>": [...]} into bound models.
func (s *Serializer[T, PT]) SerializeCollection(raw any, client shopclient.Client) ([]any, error) {
	payload, err := s.field(raw, s.resource.collectionKey)
	if err != nil {
		return nil, err
	}

	var list []T
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, &PayloadError{Key: s.resource.collectionKey, Err: err}
	}

	out := make([]any, len(list))
	for i := range list {
		p := PT(&list[i])
		p.Bind(client)
		out[i] = p
	}
	return out, nil
}

// field extracts one top-level key of the JSON envelope.
func (s *Serializer[T, PT]) field(raw any, key string) (json.RawMessage, error) {
	var data []byte
	switch v := raw.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, &PayloadError{Key: key, Err: fmt.Errorf("unsupported raw type %T", raw)}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &PayloadError{Key: key, Err: err}
	}
	payload, ok := envelope[key]
	if !ok || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil, &PayloadError{Key: key}
	}
	return payload, nil
}
