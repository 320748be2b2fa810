// Package store defines the response stores used by the HTTP transport to keep
// ETag-validated copies of listing payloads.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no stored entry.
var ErrNotFound = errors.New("store: entry not found")

// Entry is a stored response body with the validator it was served with.
type Entry struct {
	ETag     string    `json:"etag"`
	Body     []byte    `json:"body"`
	StoredAt time.Time `json:"stored_at"`
}

// Size returns the number of bytes the entry accounts for in capacity-bound stores.
func (e *Entry) Size() int64 {
	return int64(len(e.Body) + len(e.ETag))
}

// Store persists entries by key. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the entry for key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Entry, error)
	// Set stores e under key, replacing any previous entry.
	Set(ctx context.Context, key string, e *Entry) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// EvictionPolicy decides which keys a capacity-bound store drops.
// Implementations are not required to be thread-safe; the store serializes access.
type EvictionPolicy interface {
	// Touch marks key as recently accessed.
	Touch(key string)
	// Add records a new or replaced key and its size.
	Add(key string, size int64)
	// Remove forgets key after an explicit delete.
	Remove(key string)
	// Evict chooses keys to drop. It returns nil when nothing is tracked.
	Evict() []string
}

type nullEvictionPolicy struct{}

func (nullEvictionPolicy) Touch(string)      {}
func (nullEvictionPolicy) Add(string, int64) {}
func (nullEvictionPolicy) Remove(string)     {}
func (nullEvictionPolicy) Evict() []string   { return nil }

// NewNullEvictionPolicy returns a policy that never evicts.
func NewNullEvictionPolicy() EvictionPolicy {
	return nullEvictionPolicy{}
}
