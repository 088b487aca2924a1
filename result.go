package fuse

import (
	"github.com/oklog/ulid/v2"

	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/points"
)

// Stats counts what a run did.
type Stats struct {
	Sources      int
	InputPoints  int
	InputEdges   int
	UnionNodes   int
	UnionEdges   int
	DroppedEdges int

	// PointEdgeSplits is the number of edges split by nodes lying on them.
	PointEdgeSplits int
	// Crossings is the number of crossing edge pairs, CrossingNodes the
	// number of nodes they created after merging coincident ones.
	Crossings     int
	CrossingNodes int

	Clusters int
}

// Result is the output of a run.
type Result struct {
	RunID ulid.ULID

	// Vtx holds the nodes of every cluster.
	Vtx *points.Collection
	// Clusters hold edges whose links index Vtx.
	Clusters []*graph.Cluster

	// Warnings lists non-fatal issues, such as an empty output.
	Warnings []string
	Stats    Stats
}

// AsSource returns the result as a single source, so that it can be fused
// again with other graphs.
func (r *Result) AsSource() (Source, error) {
	src := Source{Vtx: r.Vtx}
	edges := make([]*points.Collection, 0, len(r.Clusters))
	for _, c := range r.Clusters {
		src.Edges = append(src.Edges, c.Links...)
		edges = append(edges, c.Edges)
	}
	data, err := points.Concat(edges...)
	if err != nil {
		return Source{}, err
	}
	src.EdgeData = data
	return src, nil
}
