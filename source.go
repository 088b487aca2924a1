package fuse

import (
	"fmt"

	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/points"
)

// Source is one input graph: points, edges between them and optional
// per-edge data.
type Source struct {
	Vtx   *points.Collection
	Edges []graph.Link

	// EdgeData holds one point per edge carrying edge attributes. It may
	// be nil.
	EdgeData *points.Collection
}

// validate checks that every edge links existing, distinct points.
func (s Source) validate(index int) error {
	if s.Vtx == nil {
		return fmt.Errorf("%w: source %d has no points", ErrInvalidSource, index)
	}
	if s.EdgeData != nil && s.EdgeData.Len() != len(s.Edges) {
		return fmt.Errorf("%w: source %d has %d edges but %d edge points",
			ErrInvalidSource, index, len(s.Edges), s.EdgeData.Len())
	}
	n := s.Vtx.Len()
	for i, e := range s.Edges {
		if e.Start < 0 || e.End < 0 || e.Start >= n || e.End >= n {
			return fmt.Errorf("%w: source %d edge %d links %d-%d outside %d points",
				ErrInvalidSource, index, i, e.Start, e.End, n)
		}
	}
	return nil
}

// edgeData returns s.EdgeData, or default edge points when it is nil.
func (s Source) edgeData() *points.Collection {
	if s.EdgeData != nil {
		return s.EdgeData
	}
	return points.NewCollection(len(s.Edges))
}
