package points

import (
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Element addresses one point of one source collection.
type Element struct {
	Source int
	Index  int
}

// WeightedPoint is an element with its contribution weight.
type WeightedPoint struct {
	Element
	Weight float64
}

// UnionMetadata maps every fused entry to the source elements it was built
// from, in insertion order.
//
// Entries are appended while fusing, which is single-threaded. Once fusing
// is over the metadata is read-only and can be shared between goroutines.
type UnionMetadata struct {
	entries [][]Element
	sources [][]int
}

// NewUnionMetadata creates empty metadata.
func NewUnionMetadata() *UnionMetadata { return &UnionMetadata{} }

// NewEntry starts a new entry from e and returns its index.
func (m *UnionMetadata) NewEntry(e Element) int {
	m.entries = append(m.entries, []Element{e})
	m.sources = append(m.sources, []int{e.Source})
	return len(m.entries) - 1
}

// Append adds e to entry i.
func (m *UnionMetadata) Append(i int, e Element) {
	m.entries[i] = append(m.entries[i], e)
	if pos, found := slices.BinarySearch(m.sources[i], e.Source); !found {
		m.sources[i] = slices.Insert(m.sources[i], pos, e.Source)
	}
}

// Len returns the number of entries.
func (m *UnionMetadata) Len() int { return len(m.entries) }

// Entry returns the elements of entry i. The slice must not be modified.
func (m *UnionMetadata) Entry(i int) []Element { return m.entries[i] }

// Size returns the number of elements in entry i.
func (m *UnionMetadata) Size(i int) int { return len(m.entries[i]) }

// Sources returns the sorted distinct sources of entry i.
func (m *UnionMetadata) Sources(i int) []int { return m.sources[i] }

// Centroid returns the weighted average position of the elements of entry
// i. A nil weights slice weighs every element equally.
func (m *UnionMetadata) Centroid(i int, sources []*Collection, weights []float64) v3.Vec {
	var sum v3.Vec
	total := 0.0
	for j, e := range m.entries[i] {
		w := 1.0
		if weights != nil {
			w = weights[j]
		}
		sum = sum.Add(sources[e.Source].Position(e.Index).MulScalar(w))
		total += w
	}
	if total == 0 {
		return sum
	}
	return sum.MulScalar(1 / total)
}

// SourcesOverlap reports whether two sorted source sets share a source.
func SourcesOverlap(a, b []int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}
