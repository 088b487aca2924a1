// Package cache provides the mutex-guarded store behind the blend
// operation pool.
//
//	c := cache.New[key, *Operation](0)
//	op := c.GetOrCreate(k, func() *Operation { return build(k) })
//
// Values are created at most once per key while they stay cached. A
// positive soft limit evicts the least recently used entries.
package cache
