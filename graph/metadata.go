package graph

// IntersectionType records which refinement created a node or edge.
type IntersectionType uint8

const (
	IntersectionNone IntersectionType = iota
	IntersectionPointEdge
	IntersectionEdgeEdge
)

// String returns the intersection type name.
func (t IntersectionType) String() string {
	switch t {
	case IntersectionNone:
		return "None"
	case IntersectionPointEdge:
		return "PointEdge"
	case IntersectionEdgeEdge:
		return "EdgeEdge"
	default:
		return "Unknown"
	}
}

// NodeMetadata describes how a node came to be.
type NodeMetadata struct {
	Index     int
	Type      IntersectionType
	UnionSize int
}

// IsUnion reports whether more than one input point was fused into the node.
func (m *NodeMetadata) IsUnion() bool { return m.UnionSize > 1 }

// IsIntersector reports whether the node split an edge it lies on.
func (m *NodeMetadata) IsIntersector() bool { return m.Type == IntersectionPointEdge }

// IsCrossing reports whether the node was created at an edge crossing.
func (m *NodeMetadata) IsCrossing() bool { return m.Type == IntersectionEdgeEdge }

// EdgeMetadata describes how an edge came to be. RootIndex is the edge it
// was split from, or its own index.
type EdgeMetadata struct {
	Index     int
	RootIndex int
	Type      IntersectionType
	UnionSize int
}

// IsUnion reports whether more than one input edge was fused into the edge.
func (m *EdgeMetadata) IsUnion() bool { return m.UnionSize > 1 }

// IsSubEdge reports whether the edge was split from another one.
func (m *EdgeMetadata) IsSubEdge() bool { return m.Type != IntersectionNone }
