package value

import "math"

// lanes converts a component-wise kind to and from up to four float64
// lanes. All arithmetic on vectors and rotators runs lane by lane.
type lanes[T Value] struct {
	n     int
	split func(T) [4]float64
	join  func([4]float64) T
}

func (l lanes[T]) zip(f func(x, y float64) float64) func(a, b T) T {
	return func(a, b T) T {
		x, y := l.split(a), l.split(b)
		var out [4]float64
		for i := range l.n {
			out[i] = f(x[i], y[i])
		}
		return l.join(out)
	}
}

func (l lanes[T]) zipW(f func(x, y, w float64) float64) func(a, b T, w float64) T {
	return func(a, b T, w float64) T {
		x, y := l.split(a), l.split(b)
		var out [4]float64
		for i := range l.n {
			out[i] = f(x[i], y[i], w)
		}
		return l.join(out)
	}
}

func (l lanes[T]) each(f func(x, s float64) float64) func(a T, s float64) T {
	return func(a T, s float64) T {
		x := l.split(a)
		var out [4]float64
		for i := range l.n {
			out[i] = f(x[i], s)
		}
		return l.join(out)
	}
}

func laneUMin(x, y float64) float64 {
	if math.Abs(x) > math.Abs(y) {
		return y
	}
	return x
}

func laneUMax(x, y float64) float64 {
	if math.Abs(x) < math.Abs(y) {
		return y
	}
	return x
}

func laneModCW(x, y float64) float64 {
	if y == 0 {
		return x
	}
	return math.Mod(x, y)
}

// componentOps builds a table applying scalar arithmetic to every lane.
func componentOps[T Value](l lanes[T]) typed[T] {
	return typed[T]{
		add:   l.zip(func(x, y float64) float64 { return x + y }),
		sub:   l.zip(func(x, y float64) float64 { return x - y }),
		mult:  l.zip(func(x, y float64) float64 { return x * y }),
		min:   l.zip(math.Min),
		max:   l.zip(math.Max),
		umin:  l.zip(laneUMin),
		umax:  l.zip(laneUMax),
		amin:  l.zip(func(x, y float64) float64 { return math.Min(math.Abs(x), math.Abs(y)) }),
		amax:  l.zip(func(x, y float64) float64 { return math.Max(math.Abs(x), math.Abs(y)) }),
		avg:   l.zip(func(x, y float64) float64 { return (x + y) / 2 }),
		hash:  l.zip(func(x, y float64) float64 { return float64(hashCombine(hashFloat(x), hashFloat(y))) }),
		uhash: l.zip(func(x, y float64) float64 { return float64(hashUnordered(hashFloat(x), hashFloat(y))) }),
		modCW: l.zip(laneModCW),
		lerp:  l.zipW(func(x, y, w float64) float64 { return x + (y-x)*w }),
		wadd:  l.zipW(func(x, y, w float64) float64 { return x + y*w }),
		wsub:  l.zipW(func(x, y, w float64) float64 { return x - y*w }),
		div:   l.each(func(x, s float64) float64 { return x / s }),
		mod:   l.each(math.Mod),
		toDouble: func(a T) float64 {
			return l.split(a)[0]
		},
	}
}

func vector2Ops() typed[Vector2] {
	return componentOps(lanes[Vector2]{
		n:     2,
		split: func(v Vector2) [4]float64 { return [4]float64{v.X, v.Y} },
		join:  func(c [4]float64) Vector2 { return Vector2{X: c[0], Y: c[1]} },
	})
}

func vectorOps() typed[Vector] {
	return componentOps(lanes[Vector]{
		n:     3,
		split: func(v Vector) [4]float64 { return [4]float64{v.X, v.Y, v.Z} },
		join:  func(c [4]float64) Vector { return Vector{X: c[0], Y: c[1], Z: c[2]} },
	})
}

func vector4Ops() typed[Vector4] {
	return componentOps(lanes[Vector4]{
		n:     4,
		split: func(v Vector4) [4]float64 { return [4]float64(v) },
		join:  func(c [4]float64) Vector4 { return Vector4(c) },
	})
}

func rotatorOps() typed[Rotator] {
	return componentOps(lanes[Rotator]{
		n:     3,
		split: func(r Rotator) [4]float64 { return [4]float64{r.Pitch, r.Yaw, r.Roll} },
		join:  func(c [4]float64) Rotator { return Rotator{Pitch: c[0], Yaw: c[1], Roll: c[2]} },
	})
}

// quaternionOps runs quaternion arithmetic through Euler angles, except
// for multiplication (composition) and interpolation (slerp).
func quaternionOps(rot typed[Rotator]) typed[Quaternion] {
	via := func(f func(a, b Rotator) Rotator) func(a, b Quaternion) Quaternion {
		return func(a, b Quaternion) Quaternion {
			return f(a.Rotator(), b.Rotator()).Quaternion()
		}
	}
	viaW := func(f func(a, b Rotator, w float64) Rotator) func(a, b Quaternion, w float64) Quaternion {
		return func(a, b Quaternion, w float64) Quaternion {
			return f(a.Rotator(), b.Rotator(), w).Quaternion()
		}
	}
	viaS := func(f func(a Rotator, s float64) Rotator) func(a Quaternion, s float64) Quaternion {
		return func(a Quaternion, s float64) Quaternion {
			return f(a.Rotator(), s).Quaternion()
		}
	}

	return typed[Quaternion]{
		add:   via(rot.add),
		sub:   via(rot.sub),
		mult:  func(a, b Quaternion) Quaternion { return a.Mul(b).Normalized() },
		min:   via(rot.min),
		max:   via(rot.max),
		umin:  via(rot.umin),
		umax:  via(rot.umax),
		amin:  via(rot.amin),
		amax:  via(rot.amax),
		avg:   via(rot.avg),
		hash:  via(rot.hash),
		uhash: via(rot.uhash),
		modCW: via(rot.modCW),
		lerp:  Slerp,
		wadd:  viaW(rot.wadd),
		wsub:  viaW(rot.wsub),
		div:   viaS(rot.div),
		mod:   viaS(rot.mod),
		toDouble: func(q Quaternion) float64 {
			return q.Rotator().Pitch
		},
	}
}

// transformOps applies rotation arithmetic to the rotation and vector
// arithmetic to location and scale.
func transformOps(q typed[Quaternion], v typed[Vector]) typed[Transform] {
	bin := func(qf func(a, b Quaternion) Quaternion, vf func(a, b Vector) Vector) func(a, b Transform) Transform {
		return func(a, b Transform) Transform {
			return Transform{
				Rotation: qf(a.Rotation, b.Rotation),
				Location: vf(a.Location, b.Location),
				Scale:    vf(a.Scale, b.Scale),
			}
		}
	}
	binW := func(qf func(a, b Quaternion, w float64) Quaternion, vf func(a, b Vector, w float64) Vector) func(a, b Transform, w float64) Transform {
		return func(a, b Transform, w float64) Transform {
			return Transform{
				Rotation: qf(a.Rotation, b.Rotation, w),
				Location: vf(a.Location, b.Location, w),
				Scale:    vf(a.Scale, b.Scale, w),
			}
		}
	}
	scl := func(qf func(a Quaternion, s float64) Quaternion, vf func(a Vector, s float64) Vector) func(a Transform, s float64) Transform {
		return func(a Transform, s float64) Transform {
			return Transform{
				Rotation: qf(a.Rotation, s).Normalized(),
				Location: vf(a.Location, s),
				Scale:    vf(a.Scale, s),
			}
		}
	}

	return typed[Transform]{
		add:   bin(q.add, v.add),
		sub:   bin(q.sub, v.sub),
		mult:  bin(q.mult, v.mult),
		min:   bin(q.min, v.min),
		max:   bin(q.max, v.max),
		umin:  bin(q.umin, v.umin),
		umax:  bin(q.umax, v.umax),
		amin:  bin(q.amin, v.amin),
		amax:  bin(q.amax, v.amax),
		avg:   bin(q.avg, v.avg),
		hash:  bin(q.hash, v.hash),
		uhash: bin(q.uhash, v.uhash),
		modCW: bin(q.modCW, v.modCW),
		lerp:  binW(q.lerp, v.lerp),
		wadd:  binW(q.wadd, v.wadd),
		wsub:  binW(q.wsub, v.wsub),
		div:   scl(q.div, v.div),
		mod:   scl(q.mod, v.mod),
		toDouble: func(t Transform) float64 {
			return t.Location.X
		},
	}
}
