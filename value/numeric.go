package value

import "math"

// number constrains the scalar kinds.
type number interface {
	Value
	~int32 | ~int64 | ~float32 | ~float64
}

func abs[T number](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// numericOps builds the table for a scalar kind. Integer kinds truncate
// toward zero whenever an intermediate result is fractional.
func numericOps[T number]() typed[T] {
	f := func(a T) float64 { return float64(a) }

	return typed[T]{
		add:  func(a, b T) T { return a + b },
		sub:  func(a, b T) T { return a - b },
		mult: func(a, b T) T { return a * b },
		min:  func(a, b T) T { return min(a, b) },
		max:  func(a, b T) T { return max(a, b) },
		umin: func(a, b T) T {
			if abs(a) > abs(b) {
				return b
			}
			return a
		},
		umax: func(a, b T) T {
			if abs(a) < abs(b) {
				return b
			}
			return a
		},
		amin: func(a, b T) T { return min(abs(a), abs(b)) },
		amax: func(a, b T) T { return max(abs(a), abs(b)) },
		avg:  func(a, b T) T { return T((f(a) + f(b)) / 2) },
		hash: func(a, b T) T {
			return T(hashCombine(hashFloat(f(a)), hashFloat(f(b))))
		},
		uhash: func(a, b T) T {
			return T(hashUnordered(hashFloat(f(a)), hashFloat(f(b))))
		},
		modCW: func(a, b T) T {
			if b == 0 {
				return a
			}
			return T(math.Mod(f(a), f(b)))
		},
		lerp:     func(a, b T, w float64) T { return T(f(a) + (f(b)-f(a))*w) },
		wadd:     func(a, b T, w float64) T { return T(f(a) + f(b)*w) },
		wsub:     func(a, b T, w float64) T { return T(f(a) - f(b)*w) },
		div:      func(a T, s float64) T { return T(f(a) / s) },
		mod:      func(a T, s float64) T { return T(math.Mod(f(a), s)) },
		toDouble: f,
	}
}

// boolOps treats booleans as a lattice: additive modes are OR,
// multiplicative modes are AND.
func boolOps() typed[Bool] {
	or := func(a, b Bool) Bool { return a || b }
	and := func(a, b Bool) Bool { return a && b }
	keep := func(a Bool, _ float64) Bool { return a }

	return typed[Bool]{
		add:   or,
		sub:   func(a, b Bool) Bool { return a && !b },
		mult:  and,
		min:   and,
		max:   or,
		umin:  and,
		umax:  or,
		amin:  and,
		amax:  or,
		avg:   or,
		hash:  or,
		uhash: or,
		modCW: func(a, _ Bool) Bool { return a },
		lerp: func(a, b Bool, w float64) Bool {
			if w < 0.5 {
				return a
			}
			return b
		},
		wadd: func(a, b Bool, w float64) Bool { return a || (b && w > 0) },
		wsub: func(a, b Bool, w float64) Bool { return a && !(b && w > 0) },
		div:  keep,
		mod:  keep,
		toDouble: func(a Bool) float64 {
			if a {
				return 1
			}
			return 0
		},
	}
}
