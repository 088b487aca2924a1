package parallel

import (
	"math/bits"
	"sync/atomic"
)

// Flags is an atomic bitmap of validity flags, one bit per entity.
//
// Entities start valid. Invalidate only ever moves a flag from valid to
// invalid, so concurrent writers racing on one entity agree on the final
// state and need no lock.
//
// Grow must not run concurrently with any other method.
type Flags struct {
	words []atomic.Uint64 // set bit = invalid
	n     int
}

// NewFlags creates flags for n valid entities.
func NewFlags(n int) *Flags {
	f := &Flags{}
	f.Grow(n)
	return f
}

// Len returns the number of tracked entities.
func (f *Flags) Len() int { return f.n }

// Grow extends the bitmap to n entities. New entities are valid.
func (f *Flags) Grow(n int) {
	if n <= f.n {
		return
	}
	need := (n + 63) / 64
	if need > len(f.words) {
		words := make([]atomic.Uint64, need)
		for i := range f.words {
			words[i].Store(f.words[i].Load())
		}
		f.words = words
	}
	f.n = n
}

// Invalidate marks entity i invalid and reports whether this call changed
// it. Out of range indices are ignored.
func (f *Flags) Invalidate(i int) bool {
	if i < 0 || i >= f.n {
		return false
	}
	bit := uint64(1) << (i & 63)
	return f.words[i/64].Or(bit)&bit == 0
}

// IsValid reports whether entity i is valid. Out of range indices are
// invalid.
func (f *Flags) IsValid(i int) bool {
	if i < 0 || i >= f.n {
		return false
	}
	return f.words[i/64].Load()&(1<<(i&63)) == 0
}

// InvalidCount returns the number of invalid entities.
func (f *Flags) InvalidCount() int {
	count := 0
	for i := range f.words {
		count += bits.OnesCount64(f.words[i].Load())
	}
	return count
}

// ValidCount returns the number of valid entities.
func (f *Flags) ValidCount() int { return f.n - f.InvalidCount() }

// Snapshot returns a copy of the current flags.
func (f *Flags) Snapshot() *Flags {
	c := &Flags{words: make([]atomic.Uint64, len(f.words)), n: f.n}
	for i := range f.words {
		c.words[i].Store(f.words[i].Load())
	}
	return c
}

// ForEachValid calls fn for every valid entity in index order.
func (f *Flags) ForEachValid(fn func(i int)) {
	for w := range f.words {
		word := ^f.words[w].Load()
		for word != 0 {
			b := bits.TrailingZeros64(word)
			i := w*64 + b
			if i >= f.n {
				return
			}
			fn(i)
			word &^= 1 << b
		}
	}
}
