// Package memstore provides a thread-safe, in-memory implementation of store.Store
// bounded by the total size of the stored entries.
package memstore

import (
	"context"
	"sync"

	"github.com/mrchypark/shopclient/pkg/store"
)

// MemStore keeps entries in a map and drops entries chosen by its eviction
// policy once the byte capacity is exceeded.
type MemStore struct {
	mu          sync.Mutex
	data        map[string]*store.Entry
	capacity    int64
	currentSize int64
	policy      store.EvictionPolicy
}

// New creates an empty store. A capacity of 0 or less means unbounded; a nil
// policy never evicts.
func New(capacity int64, policy store.EvictionPolicy) *MemStore {
	if policy == nil {
		policy = store.NewNullEvictionPolicy()
	}
	return &MemStore{
		data:     make(map[string]*store.Entry),
		capacity: capacity,
		policy:   policy,
	}
}

// 컴파일 타임에 MemStore가 store.Store 인터페이스를 만족하는지 확인합니다.
var _ store.Store = (*MemStore)(nil)

// Get returns a copy of the stored entry.
func (ms *MemStore) Get(_ context.Context, key string) (*store.Entry, error) {
	ms.mu.Lock() // policy.Touch mutates policy state.
	defer ms.mu.Unlock()

	e, ok := ms.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	ms.policy.Touch(key)

	return cloneEntry(e), nil
}

// Set stores a copy of e and evicts until the store fits its capacity.
func (ms *MemStore) Set(_ context.Context, key string, e *store.Entry) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if old, ok := ms.data[key]; ok {
		ms.currentSize -= old.Size()
	}

	stored := cloneEntry(e)
	ms.data[key] = stored
	ms.currentSize += stored.Size()
	ms.policy.Add(key, stored.Size())

	for ms.capacity > 0 && ms.currentSize > ms.capacity {
		victims := ms.policy.Evict()
		if len(victims) == 0 {
			break
		}
		for _, victim := range victims {
			if old, ok := ms.data[victim]; ok {
				ms.currentSize -= old.Size()
				delete(ms.data, victim)
			}
		}
	}
	return nil
}

// Delete removes key.
func (ms *MemStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if old, ok := ms.data[key]; ok {
		ms.currentSize -= old.Size()
		delete(ms.data, key)
		ms.policy.Remove(key)
	}
	return nil
}

// Len returns the number of stored entries.
func (ms *MemStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.data)
}

// Size returns the accounted size of all entries in bytes.
func (ms *MemStore) Size() int64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.currentSize
}

// cloneEntry keeps callers from mutating stored bodies.
func cloneEntry(e *store.Entry) *store.Entry {
	body := make([]byte, len(e.Body))
	copy(body, e.Body)
	return &store.Entry{ETag: e.ETag, Body: body, StoredAt: e.StoredAt}
}
