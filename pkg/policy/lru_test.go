package policy

import (
	"testing"
)

// TestLRU_EvictsOldestResponse checks eviction order after plain adds.
func TestLRU_EvictsOldestResponse(t *testing.T) {
	p := NewLRU().(*LRUPolicy)

	p.Add("product_listings", 10)
	p.Add("product_listings/1", 20)
	p.Add("collection_listings", 30)

	// 현재 상태 (최신 -> 오래된 순): collection_listings, product_listings/1, product_listings
	for _, want := range []string{"product_listings", "product_listings/1", "collection_listings"} {
		evicted := p.Evict()
		if len(evicted) != 1 || evicted[0] != want {
			t.Fatalf("Expected to evict %s, but got %v", want, evicted)
		}
	}

	if p.Len() != 0 || len(p.index) != 0 || p.Bytes() != 0 {
		t.Error("Policy should be empty after evicting all items")
	}
}

// TestLRU_TouchProtectsRecentlyServed checks that a touched key survives.
func TestLRU_TouchProtectsRecentlyServed(t *testing.T) {
	p := NewLRU().(*LRUPolicy)

	p.Add("a", 1)
	p.Add("b", 1)
	p.Add("c", 1)
	p.Touch("a")

	evicted := p.Evict()
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("Expected b to be evicted after a was touched, but got %v", evicted)
	}
}

// TestLRU_ReAddUpdatesSize checks that replacing an entry refreshes it.
func TestLRU_ReAddUpdatesSize(t *testing.T) {
	p := NewLRU().(*LRUPolicy)

	p.Add("a", 10)
	p.Add("b", 20)
	p.Add("a", 100)

	evicted := p.Evict()
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("Expected b to be evicted, but got %v", evicted)
	}
	if entry := p.index["a"].Value.(*tracked); entry.size != 100 {
		t.Errorf("Expected size of a to be 100, but got %d", entry.size)
	}
	if p.Bytes() != 100 {
		t.Errorf("Expected 100 tracked bytes after evicting b, but got %d", p.Bytes())
	}
}

// TestLRU_EmptyAndMissingKeys must not panic.
func TestLRU_EmptyAndMissingKeys(t *testing.T) {
	p := NewLRU().(*LRUPolicy)

	if evicted := p.Evict(); evicted != nil {
		t.Errorf("Evict on an empty policy should return nil, but got %v", evicted)
	}

	p.Touch("missing")
	p.Remove("missing")

	p.Add("a", 1)
	p.Remove("a")
	if evicted := p.Evict(); evicted != nil {
		t.Errorf("Evict after removing the only item should return nil, but got %v", evicted)
	}
}

// TestLRU_BytesFollowAddsAndRemoves checks the running byte total.
func TestLRU_BytesFollowAddsAndRemoves(t *testing.T) {
	p := NewLRU().(*LRUPolicy)

	p.Add("a", 10)
	p.Add("b", 20)
	if p.Bytes() != 30 {
		t.Fatalf("Expected 30 bytes, but got %d", p.Bytes())
	}

	p.Add("a", 5)
	p.Remove("b")
	if p.Bytes() != 5 || p.Len() != 1 {
		t.Errorf("Expected 5 bytes in 1 key, but got %d bytes in %d keys", p.Bytes(), p.Len())
	}
}
