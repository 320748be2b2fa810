// Package policy provides implementations of the store.EvictionPolicy interface.
package policy

import (
	"container/list"

	"github.com/mrchypark/shopclient/pkg/store"
)

// tracked is one response key known to the policy.
type tracked struct {
	key  string
	size int64
}

// LRUPolicy evicts the response that was stored or served least recently.
// It also keeps the byte total of what it tracks so stores can report usage
// without a second bookkeeping pass.
//
// Not safe for concurrent use; the owning store serializes access.
type LRUPolicy struct {
	order *list.List // front = most recent
	index map[string]*list.Element
	bytes int64
}

// NewLRU creates an empty LRU policy.
func NewLRU() store.EvictionPolicy {
	return &LRUPolicy{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

// 컴파일 타임에 LRUPolicy가 EvictionPolicy 인터페이스를 만족하는지 확인합니다.
var _ store.EvictionPolicy = (*LRUPolicy)(nil)

// Touch marks key as just served.
func (p *LRUPolicy) Touch(key string) {
	if e, ok := p.index[key]; ok {
		p.order.MoveToFront(e)
	}
}

// Add starts tracking key, or refreshes it and its size when already tracked.
func (p *LRUPolicy) Add(key string, size int64) {
	if e, ok := p.index[key]; ok {
		t := e.Value.(*tracked)
		p.bytes += size - t.size
		t.size = size
		p.order.MoveToFront(e)
		return
	}
	p.index[key] = p.order.PushFront(&tracked{key: key, size: size})
	p.bytes += size
}

// Remove stops tracking key.
func (p *LRUPolicy) Remove(key string) {
	if e, ok := p.index[key]; ok {
		p.drop(e)
	}
}

// Evict drops the oldest key and returns it, or nil when nothing is tracked.
func (p *LRUPolicy) Evict() []string {
	e := p.order.Back()
	if e == nil {
		return nil
	}
	return []string{p.drop(e).key}
}

// Len reports how many keys are tracked.
func (p *LRUPolicy) Len() int {
	return p.order.Len()
}

// Bytes reports the summed size of the tracked keys.
func (p *LRUPolicy) Bytes() int64 {
	return p.bytes
}

func (p *LRUPolicy) drop(e *list.Element) *tracked {
	t := p.order.Remove(e).(*tracked)
	delete(p.index, t.key)
	p.bytes -= t.size
	return t
}
