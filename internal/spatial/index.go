// Package spatial provides a 3D R-tree index over integer ids.
package spatial

import (
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/gogpu/fuse/internal/geom"
)

// minPad keeps every stored box non-degenerate: rtreego treats touching
// boxes as disjoint.
const minPad = 1e-9

const (
	dims        = 3
	minChildren = 25
	maxChildren = 50
)

type item struct {
	id   int
	rect rtreego.Rect
}

func (it *item) Bounds() rtreego.Rect { return it.rect }

// Index stores boxes keyed by id. It is not safe for concurrent writes;
// concurrent queries on an index that is no longer modified are fine.
type Index struct {
	tree *rtreego.Rtree
	n    int
}

// New returns an empty index.
func New() *Index {
	return &Index{tree: rtreego.NewTree(dims, minChildren, maxChildren)}
}

// Len returns the number of stored entries.
func (x *Index) Len() int { return x.n }

// InsertPoint stores p grown by pad under id.
func (x *Index) InsertPoint(id int, p v3.Vec, pad float64) {
	x.InsertBox(id, geom.BoxOf(p), pad)
}

// InsertBox stores b grown by pad under id.
func (x *Index) InsertBox(id int, b geom.Box, pad float64) {
	x.tree.Insert(&item{id: id, rect: rect(b.Expand(max(pad, minPad)))})
	x.n++
}

// Query returns the ids of every entry overlapping b, in ascending order.
func (x *Index) Query(b geom.Box) []int {
	hits := x.tree.SearchIntersect(rect(b.Expand(minPad)))
	ids := make([]int, len(hits))
	for i, h := range hits {
		ids[i] = h.(*item).id
	}
	slices.Sort(ids)
	return ids
}

// NearestPoint returns the id closest to p among those within tol of it,
// the lowest id on ties. Positions are resolved through pos since stored
// boxes may be padded.
func (x *Index) NearestPoint(p v3.Vec, tol float64, pos func(id int) v3.Vec) (int, bool) {
	tol2 := tol * tol
	best, found := 0, false
	bestD := 0.0
	for _, id := range x.Query(geom.BoxOf(p).Expand(tol)) {
		d := geom.Dist2(p, pos(id))
		if d > tol2 {
			continue
		}
		if !found || d < bestD {
			best, bestD, found = id, d, true
		}
	}
	return best, found
}

func rect(b geom.Box) rtreego.Rect {
	r, err := rtreego.NewRectFromPoints(
		rtreego.Point{b.Min.X, b.Min.Y, b.Min.Z},
		rtreego.Point{b.Max.X, b.Max.Y, b.Max.Z},
	)
	if err != nil {
		// Only reachable on a dimension mismatch, which rect never produces.
		panic(err)
	}
	return r
}
