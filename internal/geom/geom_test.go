package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func near(a, b v3.Vec) bool { return Dist2(a, b) < 1e-18 }

func TestClosestOnSegment(t *testing.T) {
	a, b := vec(0, 0, 0), vec(10, 0, 0)

	tests := []struct {
		name  string
		p     v3.Vec
		want  v3.Vec
		wantT float64
	}{
		{"middle", vec(5, 3, 0), vec(5, 0, 0), 0.5},
		{"before start", vec(-2, 1, 0), vec(0, 0, 0), 0},
		{"after end", vec(12, -1, 0), vec(10, 0, 0), 1},
		{"on segment", vec(2.5, 0, 0), vec(2.5, 0, 0), 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotT := ClosestOnSegment(tt.p, a, b)
			if !near(got, tt.want) || math.Abs(gotT-tt.wantT) > 1e-12 {
				t.Errorf("ClosestOnSegment(%v) = %v, %v, want %v, %v", tt.p, got, gotT, tt.want, tt.wantT)
			}
		})
	}

	if got, tt := ClosestOnSegment(vec(1, 1, 1), a, a); got != a || tt != 0 {
		t.Errorf("degenerate segment = %v, %v, want start, 0", got, tt)
	}
}

func TestSegmentClosest_Crossing(t *testing.T) {
	c1, s, c2, u := SegmentClosest(vec(-1, 0, 0), vec(1, 0, 0), vec(0, -1, 0.1), vec(0, 1, 0.1))

	if !near(c1, vec(0, 0, 0)) || !near(c2, vec(0, 0, 0.1)) {
		t.Errorf("closest points = %v, %v, want origin and (0,0,0.1)", c1, c2)
	}
	if math.Abs(s-0.5) > 1e-12 || math.Abs(u-0.5) > 1e-12 {
		t.Errorf("params = %v, %v, want 0.5, 0.5", s, u)
	}
}

func TestSegmentClosest_Disjoint(t *testing.T) {
	// The second segment stops short of the first one's line.
	_, s, c2, u := SegmentClosest(vec(0, 0, 0), vec(4, 0, 0), vec(2, 1, 0), vec(2, 5, 0))
	if u != 0 || !near(c2, vec(2, 1, 0)) {
		t.Errorf("second closest = %v at %v, want its start", c2, u)
	}
	if math.Abs(s-0.5) > 1e-12 {
		t.Errorf("s = %v, want 0.5", s)
	}
}

func TestSegmentClosest_Parallel(t *testing.T) {
	c1, s, _, _ := SegmentClosest(vec(0, 0, 0), vec(4, 0, 0), vec(0, 1, 0), vec(4, 1, 0))
	if s != 0 || c1 != vec(0, 0, 0) {
		t.Errorf("parallel = %v at %v, want first start", c1, s)
	}
}

func TestLineAngle(t *testing.T) {
	tests := []struct {
		d1, d2 v3.Vec
		want   float64
	}{
		{vec(1, 0, 0), vec(0, 1, 0), 90},
		{vec(1, 0, 0), vec(-3, 0, 0), 0},
		{vec(1, 0, 0), vec(1, 1, 0), 45},
		{vec(0, 0, 0), vec(1, 1, 0), 0},
	}
	for _, tt := range tests {
		if got := LineAngle(tt.d1, tt.d2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LineAngle(%v, %v) = %v, want %v", tt.d1, tt.d2, got, tt.want)
		}
	}
}

func TestBox(t *testing.T) {
	b := BoxOf(vec(1, 5, 0), vec(-1, 2, 3))
	if b.Min != vec(-1, 2, 0) || b.Max != vec(1, 5, 3) {
		t.Errorf("BoxOf() = %+v", b)
	}
	e := b.Expand(1)
	if e.Min != vec(-2, 1, -1) || e.Max != vec(2, 6, 4) {
		t.Errorf("Expand(1) = %+v", e)
	}
	if c := b.Center(); c != vec(0, 3.5, 1.5) {
		t.Errorf("Center() = %v", c)
	}
}
