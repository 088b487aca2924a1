package graph

import (
	"fmt"
	"math"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/gogpu/fuse/internal/spatial"
	"github.com/gogpu/fuse/points"
)

// FuseMethod selects how points are matched to existing union nodes.
type FuseMethod uint8

const (
	// FuseNearest merges a point into the closest node whose first point
	// lies within tolerance.
	FuseNearest FuseMethod = iota
	// FuseVoxel merges points falling into the same grid cell of size
	// tolerance.
	FuseVoxel
)

// String returns the method name.
func (m FuseMethod) String() string {
	switch m {
	case FuseNearest:
		return "Nearest"
	case FuseVoxel:
		return "Voxel"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m FuseMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FuseMethod) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "nearest", "":
		*m = FuseNearest
	case "voxel":
		*m = FuseVoxel
	default:
		return fmt.Errorf("graph: unknown fuse method %q", text)
	}
	return nil
}

// UnionNode is one fused output point. Its contributors live in the
// NodesUnion entry of the same index.
type UnionNode struct {
	Index  int
	Center v3.Vec

	anchor v3.Vec
}

// UnionGraph fuses points and edges of several sources. Insertion is
// single-threaded.
type UnionGraph struct {
	Nodes      []*UnionNode
	Links      []Link
	NodesUnion *points.UnionMetadata
	EdgesUnion *points.UnionMetadata

	method    FuseMethod
	tolerance float64

	index   *spatial.Index
	voxels  map[[3]int64]int
	placed  map[points.Element]int
	edges   map[uint64]int
	dropped int
}

// NewUnionGraph creates an empty union graph. A tolerance of zero or less
// only merges points at identical positions.
func NewUnionGraph(method FuseMethod, tolerance float64) *UnionGraph {
	return &UnionGraph{
		NodesUnion: points.NewUnionMetadata(),
		EdgesUnion: points.NewUnionMetadata(),
		method:     method,
		tolerance:  max(tolerance, 0),
		index:      spatial.New(),
		voxels:     make(map[[3]int64]int),
		placed:     make(map[points.Element]int),
		edges:      make(map[uint64]int),
	}
}

// InsertPoint fuses point index of source, located at pos, and returns its
// node. Inserting the same point twice returns the same node without
// recording it again.
func (u *UnionGraph) InsertPoint(pos v3.Vec, source, index int) int {
	e := points.Element{Source: source, Index: index}
	if n, ok := u.placed[e]; ok {
		return n
	}

	n, found := u.find(pos)
	if found {
		u.NodesUnion.Append(n, e)
	} else {
		n = u.NodesUnion.NewEntry(e)
		u.Nodes = append(u.Nodes, &UnionNode{Index: n, Center: pos, anchor: pos})
		u.register(n, pos)
	}
	u.placed[e] = n
	return n
}

func (u *UnionGraph) find(pos v3.Vec) (int, bool) {
	if u.method == FuseVoxel {
		n, ok := u.voxels[u.cell(pos)]
		return n, ok
	}
	return u.index.NearestPoint(pos, u.tolerance, func(id int) v3.Vec { return u.Nodes[id].anchor })
}

func (u *UnionGraph) register(n int, pos v3.Vec) {
	if u.method == FuseVoxel {
		u.voxels[u.cell(pos)] = n
		return
	}
	u.index.InsertPoint(n, pos, 0)
}

func (u *UnionGraph) cell(pos v3.Vec) [3]int64 {
	if u.tolerance == 0 {
		return [3]int64{
			int64(math.Float64bits(pos.X)),
			int64(math.Float64bits(pos.Y)),
			int64(math.Float64bits(pos.Z)),
		}
	}
	return [3]int64{
		int64(math.Floor(pos.X / u.tolerance)),
		int64(math.Floor(pos.Y / u.tolerance)),
		int64(math.Floor(pos.Z / u.tolerance)),
	}
}

// InsertEdge fuses edge edgeIndex of source, linking points link.Start and
// link.End of src. It returns the union edge and whether it was created.
// Edges whose endpoints fuse into one node are dropped with -1.
func (u *UnionGraph) InsertEdge(src *points.Collection, source, edgeIndex int, link Link) (int, bool) {
	a := u.InsertPoint(src.Position(link.Start), source, link.Start)
	b := u.InsertPoint(src.Position(link.End), source, link.End)
	if a == b {
		u.dropped++
		return -1, false
	}

	e := points.Element{Source: source, Index: edgeIndex}
	key := edgeKey(a, b)
	if i, ok := u.edges[key]; ok {
		u.EdgesUnion.Append(i, e)
		u.dropped++
		return i, false
	}

	i := u.EdgesUnion.NewEntry(e)
	u.edges[key] = i
	u.Links = append(u.Links, Link{Start: a, End: b})
	return i, true
}

// Collapse moves every node to the average position of its contributors
// and returns how many inserted edges were dropped as duplicates or
// collapsed to a point.
func (u *UnionGraph) Collapse(sources []*points.Collection) int {
	for _, n := range u.Nodes {
		n.Center = u.NodesUnion.Centroid(n.Index, sources, nil)
	}
	return u.dropped
}

// Graph builds a graph over the union nodes and edges. Node and edge
// metadata record union sizes; edge roots are union edge indices.
func (u *UnionGraph) Graph() *Graph {
	g := New(len(u.Nodes))
	for i := range u.Nodes {
		if size := u.NodesUnion.Size(i); size > 1 {
			g.NodeMeta(i).UnionSize = size
		}
	}
	for i, l := range u.Links {
		e, _ := g.InsertEdge(l.Start, l.End, i)
		if size := u.EdgesUnion.Size(i); size > 1 {
			g.EdgeMeta(e, i).UnionSize = size
		}
	}
	return g
}
