package graph

import (
	"slices"

	"github.com/gogpu/fuse/internal/parallel"
)

// Link is an edge between two node indices.
type Link struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Other returns the endpoint of l that is not node, assuming l touches it.
func (l Link) Other(node int) int {
	if l.Start == node {
		return l.End
	}
	return l.Start
}

// NodeLink is one adjacency of a node: the neighbor and the connecting edge.
type NodeLink struct {
	Node int
	Edge int
}

// Node is a graph vertex. PointIndex addresses the point that carries its
// position and attributes.
type Node struct {
	Index      int
	PointIndex int
	Links      []NodeLink
}

// EdgeTo returns the index of the edge linking n to other, or -1.
func (n *Node) EdgeTo(other int) int {
	for _, l := range n.Links {
		if l.Node == other {
			return l.Edge
		}
	}
	return -1
}

// Edge is an undirected graph edge. RootIndex is the input edge whose
// attributes it carries; it is -1 for edges not derived from an input edge.
type Edge struct {
	Index     int
	Start     int
	End       int
	RootIndex int
}

// Link returns the endpoints of e.
func (e *Edge) Link() Link { return Link{Start: e.Start, End: e.End} }

// Other returns the endpoint of e that is not node.
func (e *Edge) Other(node int) int { return e.Link().Other(node) }

// Graph is a node and edge container. Edges are unique per node pair.
type Graph struct {
	Nodes []Node
	Edges []Edge

	nodeValid *parallel.Flags
	edgeValid *parallel.Flags
	unique    map[uint64]int

	nodeMeta map[int]*NodeMetadata
	edgeMeta map[int]*EdgeMetadata

	SubGraphs []*SubGraph
}

// New creates a graph with n nodes and no edges.
func New(n int) *Graph {
	g := &Graph{
		nodeValid: parallel.NewFlags(0),
		edgeValid: parallel.NewFlags(0),
		unique:    make(map[uint64]int),
		nodeMeta:  make(map[int]*NodeMetadata),
		edgeMeta:  make(map[int]*EdgeMetadata),
	}
	g.AddNodes(n)
	return g
}

// AddNodes appends n nodes and returns the index of the first one. Each
// new node uses the point with its own index.
func (g *Graph) AddNodes(n int) int {
	start := len(g.Nodes)
	for i := start; i < start+n; i++ {
		g.Nodes = append(g.Nodes, Node{Index: i, PointIndex: i})
	}
	g.nodeValid.Grow(len(g.Nodes))
	return start
}

// InsertEdge links nodes a and b. It returns the index of the edge between
// them and whether it was created by this call. Self loops are rejected
// with -1.
func (g *Graph) InsertEdge(a, b, root int) (int, bool) {
	if a == b || a < 0 || b < 0 || a >= len(g.Nodes) || b >= len(g.Nodes) {
		return -1, false
	}
	key := edgeKey(a, b)
	if i, ok := g.unique[key]; ok {
		return i, false
	}

	i := len(g.Edges)
	g.Edges = append(g.Edges, Edge{Index: i, Start: a, End: b, RootIndex: root})
	g.unique[key] = i
	g.edgeValid.Grow(len(g.Edges))

	g.Nodes[a].Links = append(g.Nodes[a].Links, NodeLink{Node: b, Edge: i})
	g.Nodes[b].Links = append(g.Nodes[b].Links, NodeLink{Node: a, Edge: i})
	return i, true
}

// InsertEdges inserts every link with the given root and returns how many
// edges were created.
func (g *Graph) InsertEdges(links []Link, root int) int {
	n := 0
	for _, l := range links {
		if _, ok := g.InsertEdge(l.Start, l.End, root); ok {
			n++
		}
	}
	return n
}

// FindEdge returns the index of the edge between a and b.
func (g *Graph) FindEdge(a, b int) (int, bool) {
	i, ok := g.unique[edgeKey(a, b)]
	return i, ok
}

// InvalidateEdge marks edge i invalid and reports whether it was valid.
// Safe for concurrent use.
func (g *Graph) InvalidateEdge(i int) bool { return g.edgeValid.Invalidate(i) }

// InvalidateNode marks node i invalid and reports whether it was valid.
// Safe for concurrent use.
func (g *Graph) InvalidateNode(i int) bool { return g.nodeValid.Invalidate(i) }

// IsEdgeValid reports whether edge i is valid.
func (g *Graph) IsEdgeValid(i int) bool { return g.edgeValid.IsValid(i) }

// IsNodeValid reports whether node i is valid.
func (g *Graph) IsNodeValid(i int) bool { return g.nodeValid.IsValid(i) }

// EdgeValidity returns a copy of the edge flags, unaffected by later
// invalidations.
func (g *Graph) EdgeValidity() *parallel.Flags { return g.edgeValid.Snapshot() }

// NumValidEdges returns the number of valid edges.
func (g *Graph) NumValidEdges() int { return g.edgeValid.ValidCount() }

// NodeMeta returns the metadata of node i, creating it when missing. Not
// safe for concurrent use.
func (g *Graph) NodeMeta(i int) *NodeMetadata {
	m, ok := g.nodeMeta[i]
	if !ok {
		m = &NodeMetadata{Index: i}
		g.nodeMeta[i] = m
	}
	return m
}

// FindNodeMeta returns the metadata of node i, or nil.
func (g *Graph) FindNodeMeta(i int) *NodeMetadata { return g.nodeMeta[i] }

// EdgeMeta returns the metadata of edge i, creating it with root when
// missing. A negative root means the edge is its own root. Not safe for
// concurrent use.
func (g *Graph) EdgeMeta(i, root int) *EdgeMetadata {
	m, ok := g.edgeMeta[i]
	if !ok {
		if root < 0 {
			root = i
		}
		m = &EdgeMetadata{Index: i, RootIndex: root}
		g.edgeMeta[i] = m
	}
	return m
}

// FindEdgeMeta returns the metadata of edge i, or nil.
func (g *Graph) FindEdgeMeta(i int) *EdgeMetadata { return g.edgeMeta[i] }

// SubGraph is a connected cluster of valid nodes and edges. Both index
// lists are sorted.
type SubGraph struct {
	Nodes []int
	Edges []int
}

// Limits bound the size of subgraphs kept by BuildSubGraphs. Zero fields
// are unbounded.
type Limits struct {
	MinNodes int `yaml:"min_nodes"`
	MaxNodes int `yaml:"max_nodes"`
	MinEdges int `yaml:"min_edges"`
	MaxEdges int `yaml:"max_edges"`
}

// Allows reports whether a subgraph of the given size is kept.
func (l Limits) Allows(nodes, edges int) bool {
	switch {
	case l.MinNodes > 0 && nodes < l.MinNodes,
		l.MaxNodes > 0 && nodes > l.MaxNodes,
		l.MinEdges > 0 && edges < l.MinEdges,
		l.MaxEdges > 0 && edges > l.MaxEdges:
		return false
	}
	return true
}

// BuildSubGraphs splits the valid part of the graph into connected
// subgraphs and stores them in SubGraphs. Nodes without valid edges are
// invalidated. Subgraphs outside limits are invalidated and dropped.
func (g *Graph) BuildSubGraphs(limits Limits) {
	g.SubGraphs = g.SubGraphs[:0]

	visitedNodes := make([]bool, len(g.Nodes))
	visitedEdges := make([]bool, len(g.Edges))
	var stack []int

	for i := range g.Nodes {
		if visitedNodes[i] {
			continue
		}
		if !g.IsNodeValid(i) || len(g.Nodes[i].Links) == 0 {
			g.InvalidateNode(i)
			continue
		}

		sg := &SubGraph{}
		stack = append(stack[:0], i)
		visitedNodes[i] = true

		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			sg.Nodes = append(sg.Nodes, n)

			for _, l := range g.Nodes[n].Links {
				if visitedEdges[l.Edge] {
					continue
				}
				visitedEdges[l.Edge] = true
				if !g.IsEdgeValid(l.Edge) || !g.IsNodeValid(l.Node) {
					continue
				}
				sg.Edges = append(sg.Edges, l.Edge)
				if !visitedNodes[l.Node] {
					visitedNodes[l.Node] = true
					stack = append(stack, l.Node)
				}
			}
		}

		if len(sg.Edges) == 0 {
			g.InvalidateNode(i)
			continue
		}
		if !limits.Allows(len(sg.Nodes), len(sg.Edges)) {
			for _, n := range sg.Nodes {
				g.InvalidateNode(n)
			}
			for _, e := range sg.Edges {
				g.InvalidateEdge(e)
			}
			continue
		}

		slices.Sort(sg.Nodes)
		slices.Sort(sg.Edges)
		g.SubGraphs = append(g.SubGraphs, sg)
	}
}

// ValidDegree returns the number of valid edges of node i.
func (g *Graph) ValidDegree(i int) int {
	n := 0
	for _, l := range g.Nodes[i].Links {
		if g.IsEdgeValid(l.Edge) && g.IsNodeValid(l.Node) {
			n++
		}
	}
	return n
}
