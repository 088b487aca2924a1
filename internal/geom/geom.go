// Package geom provides the segment queries used by intersection search.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const epsilon = 1e-12

// Dist2 returns the squared distance between a and b.
func Dist2(a, b v3.Vec) float64 {
	return a.Sub(b).Length2()
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b v3.Vec, t float64) v3.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// ClosestOnSegment returns the point of segment [a, b] closest to p and its
// parameter t in [0, 1]. A degenerate segment returns a.
func ClosestOnSegment(p, a, b v3.Vec) (v3.Vec, float64) {
	ab := b.Sub(a)
	l2 := ab.Length2()
	if l2 <= epsilon {
		return a, 0
	}
	t := clamp01(p.Sub(a).Dot(ab) / l2)
	return Lerp(a, b, t), t
}

// SegmentClosest returns the closest points between segments [p1, q1] and
// [p2, q2] with their parameters along each segment. Parallel segments
// resolve to the start of the first one.
func SegmentClosest(p1, q1, p2, q2 v3.Vec) (c1 v3.Vec, s float64, c2 v3.Vec, t float64) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	switch {
	case a <= epsilon && e <= epsilon:
		return p1, 0, p2, 0
	case a <= epsilon:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= epsilon {
			s = clamp01(-c / a)
			break
		}
		b := d1.Dot(d2)
		if denom := a*e - b*b; denom > epsilon {
			s = clamp01((b*f - c*e) / denom)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp01(-c / a)
		} else if t > 1 {
			t = 1
			s = clamp01((b - c) / a)
		}
	}
	return Lerp(p1, q1, s), s, Lerp(p2, q2, t), t
}

// LineAngle returns the angle in degrees, in [0, 90], between the lines
// carrying directions d1 and d2.
func LineAngle(d1, d2 v3.Vec) float64 {
	l := d1.Length() * d2.Length()
	if l <= epsilon {
		return 0
	}
	c := math.Abs(d1.Dot(d2)) / l
	return math.Acos(min(c, 1)) * 180 / math.Pi
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

// Box is an axis aligned bounding box.
type Box struct {
	Min, Max v3.Vec
}

// BoxOf returns the smallest box containing every point.
func BoxOf(first v3.Vec, rest ...v3.Vec) Box {
	b := Box{Min: first, Max: first}
	for _, p := range rest {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Expand grows the box by d on every side.
func (b Box) Expand(d float64) Box {
	pad := v3.Vec{X: d, Y: d, Z: d}
	return Box{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Center returns the middle of the box.
func (b Box) Center() v3.Vec {
	return Lerp(b.Min, b.Max, 0.5)
}
