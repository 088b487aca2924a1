package blend

import (
	"github.com/gogpu/fuse/internal/cache"
	"github.com/gogpu/fuse/value"
)

// poolKey identifies one operation in a Pool.
type poolKey struct {
	kind  value.Kind
	mode  Mode
	reset bool
}

// Pool reuses operations across blenders. Requests for the same kind, mode
// and reset flag return the same *Operation.
//
// A Pool is owned by whoever runs the blends, typically one processor run,
// and is safe for concurrent use. Construction happens under the pool lock.
type Pool struct {
	ops *cache.Cache[poolKey, *Operation]
}

// NewPool creates an empty pool that keeps every operation.
func NewPool() *Pool {
	return NewPoolWithCapacity(0)
}

// NewPoolWithCapacity creates a pool holding at most n operations. Past
// that, the least recently used operation is dropped and rebuilt on its
// next Get; instances handed out earlier stay usable. n <= 0 means
// unlimited.
func NewPoolWithCapacity(n int) *Pool {
	return &Pool{ops: cache.New[poolKey, *Operation](n)}
}

// Get returns the operation for (k, m, resetForMulti), building it on first
// use. It returns nil for unknown kinds; nil results are not cached.
func (p *Pool) Get(k value.Kind, m Mode, resetForMulti bool) *Operation {
	if !k.IsValid() {
		return nil
	}
	key := poolKey{kind: k, mode: m, reset: resetForMulti}
	return p.ops.GetOrCreate(key, func() *Operation {
		return NewOperation(k, m, resetForMulti)
	})
}

// Len returns the number of cached operations.
func (p *Pool) Len() int { return p.ops.Len() }

// PoolStats reports how often a Pool reused an operation.
type PoolStats struct {
	Operations int
	Capacity   int
	Hits       uint64
	Misses     uint64
	Evictions  uint64
}

// Stats returns the pool counters.
func (p *Pool) Stats() PoolStats {
	s := p.ops.Stats()
	return PoolStats{
		Operations: s.Len,
		Capacity:   s.Capacity,
		Hits:       s.Hits,
		Misses:     s.Misses,
		Evictions:  s.Evictions,
	}
}

// Clear drops every cached operation.
func (p *Pool) Clear() { p.ops.Clear() }
