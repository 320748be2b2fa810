package shopclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownResourceType is matched (via errors.Is) by every *LookupError.
	ErrUnknownResourceType = errors.New("shopclient: unknown resource type")

	// ErrNotSupported is returned by AdapterFuncs and SerializerFuncs when the
	// requested operation has no function configured.
	ErrNotSupported = errors.New("shopclient: operation not supported")
)

// LookupError reports a resource type missing from one of the registries.
// It is returned before any adapter or serializer is constructed.
type LookupError struct {
	ResourceType ResourceType
	// Component is "adapter" or "serializer", naming the registry that had no entry.
	Component string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("shopclient: no %s registered for resource type %q", e.Component, e.ResourceType)
}

// Is makes errors.Is(err, ErrUnknownResourceType) true for any LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrUnknownResourceType
}

// ConfigError is returned when a Config or a client option is invalid.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("shopclient: configuration error: %s", e.Message)
}
