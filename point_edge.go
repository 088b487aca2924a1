package fuse

import (
	"cmp"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/internal/geom"
	"github.com/gogpu/fuse/internal/parallel"
	"github.com/gogpu/fuse/internal/spatial"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/value"
)

// pointEdgeSplit is a node found on an edge.
type pointEdgeSplit struct {
	node int
	time float64 // squared distance to the edge start, over the squared length
	at   v3.Vec  // closest point on the edge
}

// findPointEdge splits every valid edge at the nodes lying on it, then
// calls next.
//
// Candidates are searched in parallel, one result slot per edge. Splits are
// applied sequentially, in edge order, once the search is done.
func (r *run) findPointEdge(next func()) {
	r.setState(StateProcessingPointEdgeIntersections)
	g := r.graph
	cfg := r.settings.PointEdge
	tol := max(cfg.Tolerance, 0)
	tol2 := tol * tol

	idx := spatial.New()
	for i := range g.Nodes {
		if g.IsNodeValid(i) {
			idx.InsertPoint(i, r.nodePos(i), tol)
		}
	}

	splits := make([][]pointEdgeSplit, len(g.Edges))
	r.sched.StartSubLoops(len(g.Edges), r.settings.ChunkSize, func(sc parallel.Scope) {
		for i := sc.Start; i < sc.End; i++ {
			if !g.IsEdgeValid(i) {
				continue
			}
			e := &g.Edges[i]
			a, b := r.nodePos(e.Start), r.nodePos(e.End)
			l2 := geom.Dist2(a, b)
			if l2 == 0 {
				continue
			}

			var found []pointEdgeSplit
			for _, n := range idx.Query(geom.BoxOf(a, b).Expand(tol)) {
				if n == e.Start || n == e.End {
					continue
				}
				if !cfg.EnableSelfIntersection && points.SourcesOverlap(r.nodeSources(n), r.edgeSources(e.RootIndex)) {
					continue
				}
				p := r.nodePos(n)
				c, t := geom.ClosestOnSegment(p, a, b)
				if t <= 0 || t >= 1 || geom.Dist2(p, c) >= tol2 {
					continue
				}
				found = append(found, pointEdgeSplit{node: n, time: geom.Dist2(a, c) / l2, at: c})
			}
			slices.SortFunc(found, func(x, y pointEdgeSplit) int {
				return cmp.Or(cmp.Compare(x.time, y.time), cmp.Compare(x.node, y.node))
			})
			splits[i] = found
		}
	}, func() {
		r.joinPointEdge(splits)
		next()
	})
}

func (r *run) joinPointEdge(splits [][]pointEdgeSplit) {
	g := r.graph
	chain := make([]graph.Link, 0, 8)
	for i, found := range splits {
		if len(found) == 0 {
			continue
		}
		e := g.Edges[i]
		g.InvalidateEdge(i)

		chain = chain[:0]
		prev := e.Start
		for _, sp := range found {
			chain = append(chain, graph.Link{Start: prev, End: sp.node})
			prev = sp.node

			g.NodeMeta(sp.node).Type = graph.IntersectionPointEdge
			if r.settings.PointEdge.SnapOnEdge {
				r.vtx.Points[g.Nodes[sp.node].PointIndex].Position = value.Vector(sp.at)
			}
		}
		chain = append(chain, graph.Link{Start: prev, End: e.End})
		r.insertChain(chain, e.RootIndex, graph.IntersectionPointEdge)
		r.result.Stats.PointEdgeSplits++
	}
	r.log.Debug("fuse: point/edge done", "splits", r.result.Stats.PointEdgeSplits)
}

// insertChain inserts links as sub-edges of root. Edges that already
// existed keep their metadata.
func (r *run) insertChain(links []graph.Link, root int, typ graph.IntersectionType) {
	for _, l := range links {
		if i, created := r.graph.InsertEdge(l.Start, l.End, root); created {
			m := r.graph.EdgeMeta(i, root)
			m.Type = typ
			if size := r.union.EdgesUnion.Size(root); size > 1 {
				m.UnionSize = size
			}
		}
	}
}
