package graph

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/gogpu/fuse/internal/geom"
	"github.com/gogpu/fuse/internal/parallel"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/value"
)

// ErrNoClusters is reported when no subgraph survives compilation.
var ErrNoClusters = errors.New("graph: could not build any clusters")

// Attributes written by the builder.
const (
	AttrVtxEndpoint   = "VtxEndpoint"
	AttrEdgeEndpoints = "EdgeEndpoints"
	AttrIsUnion       = "IsUnion"
	AttrUnionSize     = "UnionSize"
	AttrIsIntersector = "IsIntersector"
	AttrIsCrossing    = "IsCrossing"
	AttrIsSubEdge     = "IsSubEdge"
)

// ReservedAttributes returns the names of every attribute the builder
// writes. They are recomputed on each compile and should not be blended.
func ReservedAttributes() []string {
	return []string{
		AttrVtxEndpoint, AttrEdgeEndpoints,
		AttrIsUnion, AttrUnionSize,
		AttrIsIntersector, AttrIsCrossing, AttrIsSubEdge,
	}
}

// BuilderSettings configures compilation.
type BuilderSettings struct {
	Limits Limits `yaml:"limits"`

	// WriteUnionFlags adds IsUnion and UnionSize to nodes and edges.
	WriteUnionFlags bool `yaml:"write_union_flags"`
	// WriteIntersectionFlags adds IsIntersector and IsCrossing to nodes and
	// IsSubEdge to edges.
	WriteIntersectionFlags bool `yaml:"write_intersection_flags"`
}

// Cluster is one compiled subgraph. Each edge is a point located at the
// middle of the edge; Links holds its endpoints as vertex indices.
type Cluster struct {
	Edges *points.Collection
	Links []Link
}

// Builder compiles a graph into a vertex collection and edge clusters.
type Builder struct {
	Graph *Graph

	// NodeData holds node points, addressed by Node.PointIndex.
	NodeData *points.Collection
	// EdgeData optionally holds edge points, addressed by Edge.RootIndex.
	EdgeData *points.Collection

	Settings BuilderSettings

	// OnCompilationEnd runs once compilation finished or failed.
	OnCompilationEnd func(b *Builder, success bool)

	Vtx      *points.Collection
	Clusters []*Cluster
	Err      error

	remap []int
}

// NewBuilder creates a builder for g whose nodes are stored in nodeData.
func NewBuilder(g *Graph, nodeData *points.Collection, settings BuilderSettings) *Builder {
	return &Builder{Graph: g, NodeData: nodeData, Settings: settings}
}

// Compile builds the output collections. It returns false, with Err set to
// ErrNoClusters, when no subgraph is left.
func (b *Builder) Compile() bool {
	if !b.prepare() {
		b.end(false)
		return false
	}
	for i := range b.Clusters {
		b.Clusters[i] = b.compileCluster(b.Graph.SubGraphs[i])
	}
	b.end(true)
	return true
}

// CompileAsync compiles on s, one cluster per scope. OnCompilationEnd is
// not called when s is canceled before compilation ends.
func (b *Builder) CompileAsync(s *parallel.Scheduler) {
	s.Launch(func(context.Context) error {
		if !b.prepare() {
			b.end(false)
			return nil
		}
		s.StartSubLoops(len(b.Clusters), 1, func(sc parallel.Scope) {
			for i := sc.Start; i < sc.End; i++ {
				b.Clusters[i] = b.compileCluster(b.Graph.SubGraphs[i])
			}
		}, func() { b.end(true) })
		return nil
	})
}

func (b *Builder) end(success bool) {
	if b.OnCompilationEnd != nil {
		b.OnCompilationEnd(b, success)
	}
}

// prepare builds subgraphs and the vertex collection.
func (b *Builder) prepare() bool {
	g := b.Graph
	g.BuildSubGraphs(b.Settings.Limits)
	if len(g.SubGraphs) == 0 {
		b.Err = ErrNoClusters
		b.Vtx = points.NewCollection(0)
		b.Clusters = nil
		return false
	}
	b.Err = nil

	var nodes []int
	for _, sg := range g.SubGraphs {
		nodes = append(nodes, sg.Nodes...)
	}
	slices.SortFunc(nodes, func(x, y int) int {
		px := b.NodeData.Position(g.Nodes[x].PointIndex)
		py := b.NodeData.Position(g.Nodes[y].PointIndex)
		return cmp.Or(
			cmp.Compare(px.X, py.X),
			cmp.Compare(px.Y, py.Y),
			cmp.Compare(px.Z, py.Z),
			cmp.Compare(x, y),
		)
	})

	b.remap = make([]int, len(g.Nodes))
	for i := range b.remap {
		b.remap[i] = -1
	}
	for i, n := range nodes {
		b.remap[n] = i
	}

	vtx := points.NewCollection(len(nodes))
	vtx.AddTags(b.NodeData.Tags...)
	from := make([]int, len(nodes))
	for i, n := range nodes {
		from[i] = g.Nodes[n].PointIndex
		vtx.Points[i] = b.NodeData.Points[from[i]]
	}
	copyAttributes(vtx, b.NodeData, from)

	endpoint := mustAttribute(vtx, pickIdentity(AttrVtxEndpoint, value.KindInt64))
	for i, n := range nodes {
		endpoint.Set(i, value.Int64(H64(uint32(i), uint32(g.ValidDegree(n)))))
	}

	if b.Settings.WriteUnionFlags {
		isUnion := mustAttribute(vtx, pickIdentity(AttrIsUnion, value.KindBool))
		size := mustAttribute(vtx, pickIdentity(AttrUnionSize, value.KindInt32))
		for i, n := range nodes {
			s := 1
			if m := g.FindNodeMeta(n); m != nil && m.UnionSize > 0 {
				s = m.UnionSize
			}
			isUnion.Set(i, value.Bool(s > 1))
			size.Set(i, value.Int32(s))
		}
	}
	if b.Settings.WriteIntersectionFlags {
		intersector := mustAttribute(vtx, pickIdentity(AttrIsIntersector, value.KindBool))
		crossing := mustAttribute(vtx, pickIdentity(AttrIsCrossing, value.KindBool))
		for i, n := range nodes {
			m := g.FindNodeMeta(n)
			intersector.Set(i, value.Bool(m != nil && m.IsIntersector()))
			crossing.Set(i, value.Bool(m != nil && m.IsCrossing()))
		}
	}

	b.Vtx = vtx
	b.Clusters = make([]*Cluster, len(g.SubGraphs))
	return true
}

// compileCluster writes the edges of sg. It only reads shared state.
func (b *Builder) compileCluster(sg *SubGraph) *Cluster {
	g := b.Graph
	edges := points.NewCollection(len(sg.Edges))
	c := &Cluster{Edges: edges, Links: make([]Link, len(sg.Edges))}

	roots := make([]int, len(sg.Edges))
	for i, ei := range sg.Edges {
		e := &g.Edges[ei]
		roots[i] = -1
		if b.EdgeData != nil && e.RootIndex >= 0 && e.RootIndex < b.EdgeData.Len() {
			roots[i] = e.RootIndex
			edges.Points[i] = b.EdgeData.Points[e.RootIndex]
		}
		s, t := b.remap[e.Start], b.remap[e.End]
		c.Links[i] = Link{Start: s, End: t}
		edges.Points[i].Position = value.Vector(geom.Lerp(b.Vtx.Position(s), b.Vtx.Position(t), 0.5))
	}
	if b.EdgeData != nil {
		edges.AddTags(b.EdgeData.Tags...)
		copyAttributes(edges, b.EdgeData, roots)
	}

	endpoints := mustAttribute(edges, pickIdentity(AttrEdgeEndpoints, value.KindInt64))
	for i, l := range c.Links {
		endpoints.Set(i, value.Int64(H64U(uint32(l.Start), uint32(l.End))))
	}

	if b.Settings.WriteUnionFlags {
		isUnion := mustAttribute(edges, pickIdentity(AttrIsUnion, value.KindBool))
		size := mustAttribute(edges, pickIdentity(AttrUnionSize, value.KindInt32))
		for i, ei := range sg.Edges {
			s := 1
			if m := g.FindEdgeMeta(ei); m != nil && m.UnionSize > 0 {
				s = m.UnionSize
			}
			isUnion.Set(i, value.Bool(s > 1))
			size.Set(i, value.Int32(s))
		}
	}
	if b.Settings.WriteIntersectionFlags {
		sub := mustAttribute(edges, pickIdentity(AttrIsSubEdge, value.KindBool))
		for i, ei := range sg.Edges {
			m := g.FindEdgeMeta(ei)
			sub.Set(i, value.Bool(m != nil && m.IsSubEdge()))
		}
	}
	return c
}

// copyAttributes copies the attributes of src into dst, point i of dst
// reading point from[i] of src. Negative entries are skipped, and so are
// attributes the builder writes itself.
func copyAttributes(dst, src *points.Collection, from []int) {
	reserved := ReservedAttributes()
	for _, a := range src.Attributes() {
		if slices.Contains(reserved, a.Name()) {
			continue
		}
		out, err := dst.AddAttribute(a.Identity(), a.Default())
		if err != nil {
			continue
		}
		if a.Identity().Domain == points.DomainData {
			if a.Has(0) {
				out.Set(0, a.Get(0))
			}
			continue
		}
		for i, j := range from {
			if j >= 0 && a.Has(j) {
				out.Set(i, a.Get(j))
			}
		}
	}
}

func pickIdentity(name string, k value.Kind) points.Identity {
	id := points.NewIdentity(name, k)
	id.AllowsInterpolation = false
	return id
}

// mustAttribute declares an attribute the builder owns. Reserved names are
// never copied from inputs, so the declaration cannot conflict.
func mustAttribute(c *points.Collection, id points.Identity) *points.Attribute {
	a, err := c.AddAttribute(id, nil)
	if err != nil {
		panic(err)
	}
	return a
}
