package fuse

import (
	"cmp"
	"maps"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/internal/geom"
	"github.com/gogpu/fuse/internal/parallel"
	"github.com/gogpu/fuse/internal/spatial"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/union"
	"github.com/gogpu/fuse/value"
)

// crossing is a pair of edges passing within tolerance of each other.
// ta and tb are the crossing parameters along a and b.
type crossing struct {
	a, b   int
	ta, tb float64
	center v3.Vec
}

type edgeCut struct {
	node int
	time float64
}

// findEdgeEdge splits crossing edges at a shared new node, then calls next.
//
// Edges are tested against a snapshot of edge validity, so edges created
// by earlier passes are left alone and invalidation during the search
// cannot race. Crossings closer than the tolerance share one node.
func (r *run) findEdgeEdge(next func()) {
	r.setState(StateProcessingEdgeEdgeIntersections)
	g := r.graph
	cfg := r.settings.EdgeEdge
	tol := max(cfg.Tolerance, 0)
	tol2 := tol * tol

	valid := g.EdgeValidity()
	n := len(g.Edges)

	idx := spatial.New()
	valid.ForEachValid(func(i int) {
		e := &g.Edges[i]
		idx.InsertBox(i, geom.BoxOf(r.nodePos(e.Start), r.nodePos(e.End)), tol)
	})

	scratch := make([][]crossing, r.sched.ScopeCount(n, r.settings.ChunkSize))
	r.sched.StartSubLoops(n, r.settings.ChunkSize, func(sc parallel.Scope) {
		var found []crossing
		for i := sc.Start; i < sc.End; i++ {
			if !valid.IsValid(i) {
				continue
			}
			e := &g.Edges[i]
			a1, b1 := r.nodePos(e.Start), r.nodePos(e.End)

			for _, j := range idx.Query(geom.BoxOf(a1, b1).Expand(tol)) {
				if j <= i || !valid.IsValid(j) {
					continue
				}
				f := &g.Edges[j]
				if e.Start == f.Start || e.Start == f.End || e.End == f.Start || e.End == f.End {
					continue
				}
				a2, b2 := r.nodePos(f.Start), r.nodePos(f.End)
				if !cfg.allowsAngle(geom.LineAngle(b1.Sub(a1), b2.Sub(a2))) {
					continue
				}
				if !cfg.EnableSelfIntersection && points.SourcesOverlap(r.edgeSources(e.RootIndex), r.edgeSources(f.RootIndex)) {
					continue
				}
				c1, s, c2, t := geom.SegmentClosest(a1, b1, a2, b2)
				if s <= 0 || s >= 1 || t <= 0 || t >= 1 || geom.Dist2(c1, c2) >= tol2 {
					continue
				}
				found = append(found, crossing{a: i, b: j, ta: s, tb: t, center: geom.Lerp(c1, c2, 0.5)})
			}
		}
		scratch[sc.Index] = found
	}, func() {
		r.joinEdgeEdge(slices.Concat(scratch...), next)
	})
}

// joinEdgeEdge creates crossing nodes, splits the crossed edges and blends
// the new nodes.
func (r *run) joinEdgeEdge(all []crossing, next func()) {
	if len(all) == 0 {
		r.log.Debug("fuse: edge/edge found no crossing")
		next()
		return
	}
	slices.SortFunc(all, func(x, y crossing) int {
		return cmp.Or(cmp.Compare(x.a, y.a), cmp.Compare(x.b, y.b))
	})

	g := r.graph
	tol := max(r.settings.EdgeEdge.Tolerance, 0)

	// Merge crossings sharing a location.
	merged := spatial.New()
	var centers []v3.Vec
	var owners []int // first crossing of each center
	slot := make([]int, len(all))
	for k, c := range all {
		id, ok := merged.NearestPoint(c.center, tol, func(id int) v3.Vec { return centers[id] })
		if !ok {
			id = len(centers)
			centers = append(centers, c.center)
			owners = append(owners, k)
			merged.InsertPoint(id, c.center, 0)
		}
		slot[k] = id
	}

	first := g.AddNodes(len(centers))
	if start := r.vtx.AddPoints(len(centers)); start != first {
		r.cancel("crossing nodes out of sync with points", nil)
		return
	}
	for id := range centers {
		g.NodeMeta(first + id).Type = graph.IntersectionEdgeEdge
	}

	cuts := make(map[int][]edgeCut)
	for k, c := range all {
		node := first + slot[k]
		cuts[c.a] = append(cuts[c.a], edgeCut{node: node, time: c.ta})
		cuts[c.b] = append(cuts[c.b], edgeCut{node: node, time: c.tb})
	}

	chain := make([]graph.Link, 0, 8)
	for _, i := range slices.Sorted(maps.Keys(cuts)) {
		cs := cuts[i]
		slices.SortFunc(cs, func(x, y edgeCut) int {
			return cmp.Or(cmp.Compare(x.time, y.time), cmp.Compare(x.node, y.node))
		})

		e := g.Edges[i]
		g.InvalidateEdge(i)

		chain = chain[:0]
		prev := e.Start
		seen := make(map[int]bool, len(cs))
		for _, c := range cs {
			if seen[c.node] {
				continue
			}
			seen[c.node] = true
			chain = append(chain, graph.Link{Start: prev, End: c.node})
			prev = c.node
		}
		chain = append(chain, graph.Link{Start: prev, End: e.End})
		r.insertChain(chain, e.RootIndex, graph.IntersectionEdgeEdge)
	}

	r.result.Stats.Crossings = len(all)
	r.result.Stats.CrossingNodes = len(centers)
	r.log.Debug("fuse: edge/edge done", "crossings", len(all), "nodes", len(centers))

	r.blendCrossings(first, centers, func(id int) crossing { return all[owners[id]] }, next)
}

// blendCrossings interpolates the attributes of crossing nodes from the
// endpoints of the edges that created them.
func (r *run) blendCrossings(first int, centers []v3.Vec, owner func(id int) crossing, next func()) {
	g := r.graph

	details := r.settings.Blending
	details.SourceMarkers = false
	details.Weighting = union.WeightUniform

	// Data-domain values were merged with the nodes already.
	ignore := r.ignored()
	for _, a := range r.vtx.Attributes() {
		if id := a.Identity(); id.Domain == points.DomainData {
			ignore = append(ignore, id.Name)
		}
	}

	b := union.NewBlender(r.pool, details)
	b.AddSources([]*points.Collection{r.vtx}, ignore...)
	if err := b.Init(r.vtx, nil); err != nil {
		r.cancel("could not initialize crossing blending", err)
		return
	}

	r.sched.StartSubLoops(len(centers), r.settings.ChunkSize, func(sc parallel.Scope) {
		weighted := make([]points.WeightedPoint, 4)
		for id := sc.Start; id < sc.End; id++ {
			c := owner(id)
			ea, eb := &g.Edges[c.a], &g.Edges[c.b]
			weighted[0] = weightedNode(g, ea.Start, 1-c.ta)
			weighted[1] = weightedNode(g, ea.End, c.ta)
			weighted[2] = weightedNode(g, eb.Start, 1-c.tb)
			weighted[3] = weightedNode(g, eb.End, c.tb)

			pt := g.Nodes[first+id].PointIndex
			b.Blend(pt, weighted)
			r.vtx.Points[pt].Position = value.Vector(centers[id])
		}
	}, next)
}

func weightedNode(g *graph.Graph, node int, w float64) points.WeightedPoint {
	return points.WeightedPoint{
		Element: points.Element{Source: 0, Index: g.Nodes[node].PointIndex},
		Weight:  w,
	}
}
