package cache

import (
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Cache Tests
// =============================================================================

func TestCache_GetOrCreate(t *testing.T) {
	c := New[string, int](0)

	calls := 0
	create := func() int { calls++; return 42 }

	if got := c.GetOrCreate("a", create); got != 42 {
		t.Errorf("GetOrCreate() = %d, want 42", got)
	}
	if got := c.GetOrCreate("a", create); got != 42 {
		t.Errorf("second GetOrCreate() = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() hits=%d misses=%d, want 1 and 1", st.Hits, st.Misses)
	}
	if st.HitRate != 0.5 {
		t.Errorf("Stats().HitRate = %v, want 0.5", st.HitRate)
	}
}

func TestCache_Get(t *testing.T) {
	c := New[int, string](0)
	if _, ok := c.Get(1); ok {
		t.Error("Get() on empty cache returned ok")
	}
	c.GetOrCreate(1, func() string { return "one" })
	if v, ok := c.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v, want one, true", v, ok)
	}
}

func TestCache_Eviction(t *testing.T) {
	c := New[int, int](2)
	c.GetOrCreate(1, func() int { return 1 })
	c.GetOrCreate(2, func() int { return 2 })

	// Touch 1 so that 2 becomes the oldest.
	c.Get(1)
	c.GetOrCreate(3, func() int { return 3 })

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(2); ok {
		t.Error("key 2 should have been evicted")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("key 1 should still be cached")
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Stats().Evictions = %d, want 1", got)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int, int](0)
	for i := range 10 {
		c.GetOrCreate(i, func() int { return i })
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", c.Len())
	}
	c.GetOrCreate(3, func() int { return 3 })
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_ConcurrentGetOrCreate(t *testing.T) {
	c := New[int, *int](0)
	var created atomic.Int32

	var wg sync.WaitGroup
	results := make([]*int, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.GetOrCreate(7, func() *int {
				created.Add(1)
				v := 7
				return &v
			})
		}()
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("create called %d times, want 1", created.Load())
	}
	for i, r := range results {
		if r != results[0] {
			t.Errorf("result %d is a different instance", i)
		}
	}
}

// =============================================================================
// lruList Tests
// =============================================================================

func TestLRUList_Order(t *testing.T) {
	var l lruList[int]
	n1 := l.pushFront(1)
	l.pushFront(2)
	l.pushFront(3)

	l.touch(n1)

	want := []int{2, 3, 1}
	for _, w := range want {
		got, ok := l.popOldest()
		if !ok || got != w {
			t.Fatalf("popOldest() = %d, %v, want %d", got, ok, w)
		}
	}
	if l.len != 0 {
		t.Errorf("len = %d, want 0", l.len)
	}
	if _, ok := l.popOldest(); ok {
		t.Error("popOldest() on empty list returned ok")
	}
}
