package points

import "github.com/gogpu/fuse/value"

// Attribute stores the values of one named attribute.
//
// Set on distinct indices may run concurrently. Resizing may not.
type Attribute struct {
	id      Identity
	def     value.Value
	values  []value.Value
	written []bool
}

func newAttribute(id Identity, def value.Value, n int) *Attribute {
	if def == nil {
		def = value.Default(id.Kind)
	}
	if id.Domain == DomainData {
		n = 1
	}
	return &Attribute{
		id:      id,
		def:     def,
		values:  make([]value.Value, n),
		written: make([]bool, n),
	}
}

// Identity returns the attribute identity.
func (a *Attribute) Identity() Identity { return a.id }

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.id.Name }

// Kind returns the kind of the attribute values.
func (a *Attribute) Kind() value.Kind { return a.id.Kind }

// Default returns the value of entries that were never set.
func (a *Attribute) Default() value.Value { return a.def }

// Len returns the number of entries.
func (a *Attribute) Len() int { return len(a.values) }

func (a *Attribute) slot(i int) int {
	if a.id.Domain == DomainData {
		return 0
	}
	return i
}

// Get returns the value at index i, or the default when unset. Data-domain
// attributes ignore i.
func (a *Attribute) Get(i int) value.Value {
	i = a.slot(i)
	if i < 0 || i >= len(a.values) || !a.written[i] {
		return a.def
	}
	return a.values[i]
}

// Has reports whether index i was explicitly set.
func (a *Attribute) Has(i int) bool {
	i = a.slot(i)
	return i >= 0 && i < len(a.written) && a.written[i]
}

// Set stores v at index i. Values of another kind are rejected.
func (a *Attribute) Set(i int, v value.Value) bool {
	i = a.slot(i)
	if i < 0 || i >= len(a.values) || v == nil || v.Kind() != a.id.Kind {
		return false
	}
	a.values[i] = v
	a.written[i] = true
	return true
}

func (a *Attribute) grow(n int) {
	if a.id.Domain == DomainData || n <= len(a.values) {
		return
	}
	a.values = append(a.values, make([]value.Value, n-len(a.values))...)
	a.written = append(a.written, make([]bool, n-len(a.written))...)
}
