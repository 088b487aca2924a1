package spatial

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/fuse/internal/geom"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func TestIndex_Query(t *testing.T) {
	x := New()
	pts := []v3.Vec{vec(0, 0, 0), vec(5, 0, 0), vec(0, 5, 0), vec(5, 5, 5)}
	for i, p := range pts {
		x.InsertPoint(i, p, 0)
	}
	require.Equal(t, 4, x.Len())

	got := x.Query(geom.BoxOf(vec(-1, -1, -1), vec(6, 1, 1)))
	assert.Equal(t, []int{0, 1}, got)

	assert.Empty(t, x.Query(geom.BoxOf(vec(2, 2, 2), vec(3, 3, 3))))
}

func TestIndex_QueryTouchingDegenerate(t *testing.T) {
	x := New()
	x.InsertPoint(7, vec(1, 1, 1), 0)

	// A zero volume query exactly on a zero volume entry still hits.
	assert.Equal(t, []int{7}, x.Query(geom.BoxOf(vec(1, 1, 1))))
}

func TestIndex_InsertBox(t *testing.T) {
	x := New()
	x.InsertBox(3, geom.BoxOf(vec(0, 0, 0), vec(10, 0, 0)), 0.5)

	assert.Equal(t, []int{3}, x.Query(geom.BoxOf(vec(5, 0.4, 0))))
	assert.Empty(t, x.Query(geom.BoxOf(vec(5, 2, 0))))
}

func TestIndex_NearestPoint(t *testing.T) {
	pts := []v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0.2, 0, 0)}
	x := New()
	for i, p := range pts {
		x.InsertPoint(i, p, 0)
	}
	pos := func(id int) v3.Vec { return pts[id] }

	id, ok := x.NearestPoint(vec(0.15, 0, 0), 0.1, pos)
	require.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = x.NearestPoint(vec(0.5, 0, 0), 0.1, pos)
	assert.False(t, ok)
}

func TestIndex_NearestPointPrefersClosest(t *testing.T) {
	pts := []v3.Vec{vec(0, 0, 0), vec(0.25, 0, 0), vec(0.2, 0, 0), vec(0.5, 0, 0)}
	x := New()
	for i, p := range pts {
		x.InsertPoint(i, p, 0)
	}
	pos := func(id int) v3.Vec { return pts[id] }

	// Every point is within tol; id 2 is closest although id 0 is lower.
	id, ok := x.NearestPoint(vec(0.21, 0, 0), 1, pos)
	require.True(t, ok)
	assert.Equal(t, 2, id)

	// 0.25 and 0.5 sit at the same distance from 0.375.
	id, ok = x.NearestPoint(vec(0.375, 0, 0), 1, pos)
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestIndex_ManyEntries(t *testing.T) {
	x := New()
	for i := range 200 {
		x.InsertPoint(i, vec(float64(i), 0, 0), 0)
	}
	got := x.Query(geom.BoxOf(vec(99.5, -1, -1), vec(102.5, 1, 1)))
	assert.Equal(t, []int{100, 101, 102}, got)
}
