package points

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/gogpu/fuse/value"
)

// Point holds the built-in fields every point carries.
type Point struct {
	Position  value.Vector
	Rotation  value.Quaternion
	Scale     value.Vector
	Density   float64
	Color     value.Vector4
	Steepness float64
	Seed      int32
}

// DefaultPoint returns a point at the origin with identity rotation, unit
// scale, full density and white color.
func DefaultPoint() Point {
	return Point{
		Rotation:  value.IdentityQuaternion,
		Scale:     value.NewVector(1, 1, 1),
		Density:   1,
		Color:     value.NewVector4(1, 1, 1, 1),
		Steepness: 0.5,
	}
}

// At returns a default point at pos.
func At(pos v3.Vec) Point {
	p := DefaultPoint()
	p.Position = value.Vector(pos)
	return p
}

// Pos returns the point position as an sdfx vector.
func (p Point) Pos() v3.Vec { return p.Position.Vec() }
