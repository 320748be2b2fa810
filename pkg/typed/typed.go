// Package typed provides type-safe access on top of shopclient.Client.
package typed

import (
	"context"
	"fmt"

	"github.com/mrchypark/shopclient"
)

// TypeError is returned when a serializer produced a model of an unexpected type.
type TypeError struct {
	ResourceType shopclient.ResourceType
	Want         string
	Got          any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("typed: resource %q produced %T, want %s", e.ResourceType, e.Got, e.Want)
}

// Resource binds a client to one resource type whose models are of type T.
type Resource[T any] struct {
	client       shopclient.Client
	resourceType shopclient.ResourceType
}

// New creates a type-safe view of resourceType on client.
func New[T any](client shopclient.Client, resourceType shopclient.ResourceType) *Resource[T] {
	return &Resource[T]{
		client:       client,
		resourceType: resourceType,
	}
}

// All fetches every model of the resource type.
func (r *Resource[T]) All(ctx context.Context) ([]T, error) {
	models, err := r.client.FetchAll(ctx, r.resourceType)
	if err != nil {
		return nil, err
	}
	return r.convertAll(models)
}

// One fetches a single model.
func (r *Resource[T]) One(ctx context.Context, id any) (T, error) {
	var zero T

	model, err := r.client.FetchOne(ctx, r.resourceType, id)
	if err != nil {
		return zero, err
	}
	return r.convert(model)
}

// Query fetches the models matching query.
func (r *Resource[T]) Query(ctx context.Context, query any) ([]T, error) {
	models, err := r.client.FetchQuery(ctx, r.resourceType, query)
	if err != nil {
		return nil, err
	}
	return r.convertAll(models)
}

// OneOrDefault is like One but returns defaultValue on any error.
func (r *Resource[T]) OneOrDefault(ctx context.Context, id any, defaultValue T) T {
	value, err := r.One(ctx, id)
	if err != nil {
		return defaultValue
	}
	return value
}

func (r *Resource[T]) convert(model any) (T, error) {
	value, ok := model.(T)
	if !ok {
		var zero T
		return zero, &TypeError{ResourceType: r.resourceType, Want: fmt.Sprintf("%T", zero), Got: model}
	}
	return value, nil
}

func (r *Resource[T]) convertAll(models []any) ([]T, error) {
	out := make([]T, 0, len(models))
	for _, m := range models {
		v, err := r.convert(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
