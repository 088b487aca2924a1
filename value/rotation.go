package value

import "math"

const (
	degToRadHalf = math.Pi / 360
	radToDeg     = 180 / math.Pi

	// Gimbal lock threshold for quaternion to Euler conversion.
	singularityThreshold = 0.4999995
)

// Quaternion converts the rotator to a quaternion.
func (r Rotator) Quaternion() Quaternion {
	sp, cp := math.Sincos(r.Pitch * degToRadHalf)
	sy, cy := math.Sincos(r.Yaw * degToRadHalf)
	sr, cr := math.Sincos(r.Roll * degToRadHalf)

	return Quaternion{
		X: cr*sp*sy - sr*cp*cy,
		Y: -cr*sp*cy - sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

// Rotator converts the quaternion to Euler angles in degrees.
func (q Quaternion) Rotator() Rotator {
	test := q.Z*q.X - q.W*q.Y
	yawY := 2 * (q.W*q.Z + q.X*q.Y)
	yawX := 1 - 2*(q.Y*q.Y+q.Z*q.Z)

	var r Rotator
	switch {
	case test < -singularityThreshold:
		r.Pitch = -90
		r.Yaw = math.Atan2(yawY, yawX) * radToDeg
		r.Roll = normalizeAxis(-r.Yaw - 2*math.Atan2(q.X, q.W)*radToDeg)
	case test > singularityThreshold:
		r.Pitch = 90
		r.Yaw = math.Atan2(yawY, yawX) * radToDeg
		r.Roll = normalizeAxis(r.Yaw - 2*math.Atan2(q.X, q.W)*radToDeg)
	default:
		r.Pitch = math.Asin(2*test) * radToDeg
		r.Yaw = math.Atan2(yawY, yawX) * radToDeg
		r.Roll = math.Atan2(-2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y)) * radToDeg
	}
	return r
}

// normalizeAxis wraps an angle into (-180, 180].
func normalizeAxis(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a > 180 {
		a -= 360
	}
	return a
}

// Dot returns the four-component dot product.
func (q Quaternion) Dot(o Quaternion) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalized returns q scaled to unit length, or identity when q is
// degenerate.
func (q Quaternion) Normalized() Quaternion {
	sq := q.Dot(q)
	if sq < 1e-8 {
		return IdentityQuaternion
	}
	inv := 1 / math.Sqrt(sq)
	return Quaternion{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Mul returns the rotation q applied after o.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Slerp interpolates along the shortest arc from a to b and normalizes the
// result.
func Slerp(a, b Quaternion, t float64) Quaternion {
	raw := a.Dot(b)
	cosom := math.Abs(raw)

	var s0, s1 float64
	if cosom < 0.9999 {
		omega := math.Acos(cosom)
		inv := 1 / math.Sin(omega)
		s0 = math.Sin((1-t)*omega) * inv
		s1 = math.Sin(t*omega) * inv
	} else {
		s0 = 1 - t
		s1 = t
	}
	if raw < 0 {
		s1 = -s1
	}

	return Quaternion{
		X: s0*a.X + s1*b.X,
		Y: s0*a.Y + s1*b.Y,
		Z: s0*a.Z + s1*b.Z,
		W: s0*a.W + s1*b.W,
	}.Normalized()
}
