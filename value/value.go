package value

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"golang.org/x/image/math/f64"
	"golang.org/x/text/cases"
)

// Value is a closed tagged variant over the supported kinds.
// Only the concrete types declared in this package implement it.
type Value interface {
	Kind() Kind
	isValue()
}

// Concrete value types.
type (
	Bool           bool
	Int32          int32
	Int64          int64
	Float          float32
	Double         float64
	Vector2        v2.Vec
	Vector         v3.Vec
	Vector4        f64.Vec4
	String         string
	Name           string
	SoftObjectPath string
	SoftClassPath  string
)

// Quaternion is a rotation stored as (X, Y, Z, W).
type Quaternion struct {
	X, Y, Z, W float64
}

// Rotator is a rotation stored as Euler angles in degrees.
type Rotator struct {
	Pitch, Yaw, Roll float64
}

// Transform is a rotation, a location and a per-axis scale.
type Transform struct {
	Rotation Quaternion
	Location Vector
	Scale    Vector
}

func (Bool) Kind() Kind           { return KindBool }
func (Int32) Kind() Kind          { return KindInt32 }
func (Int64) Kind() Kind          { return KindInt64 }
func (Float) Kind() Kind          { return KindFloat }
func (Double) Kind() Kind         { return KindDouble }
func (Vector2) Kind() Kind        { return KindVector2 }
func (Vector) Kind() Kind         { return KindVector }
func (Vector4) Kind() Kind        { return KindVector4 }
func (Quaternion) Kind() Kind     { return KindQuaternion }
func (Rotator) Kind() Kind        { return KindRotator }
func (Transform) Kind() Kind      { return KindTransform }
func (String) Kind() Kind         { return KindString }
func (Name) Kind() Kind           { return KindName }
func (SoftObjectPath) Kind() Kind { return KindSoftObjectPath }
func (SoftClassPath) Kind() Kind  { return KindSoftClassPath }

func (Bool) isValue()           {}
func (Int32) isValue()          {}
func (Int64) isValue()          {}
func (Float) isValue()          {}
func (Double) isValue()         {}
func (Vector2) isValue()        {}
func (Vector) isValue()         {}
func (Vector4) isValue()        {}
func (Quaternion) isValue()     {}
func (Rotator) isValue()        {}
func (Transform) isValue()      {}
func (String) isValue()         {}
func (Name) isValue()           {}
func (SoftObjectPath) isValue() {}
func (SoftClassPath) isValue()  {}

// NewVector2 returns a Vector2.
func NewVector2(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

// NewVector returns a Vector.
func NewVector(x, y, z float64) Vector { return Vector{X: x, Y: y, Z: z} }

// NewVector4 returns a Vector4.
func NewVector4(x, y, z, w float64) Vector4 { return Vector4{x, y, z, w} }

// Vec returns v as an sdfx vector.
func (v Vector) Vec() v3.Vec { return v3.Vec(v) }

// IdentityQuaternion is the rotation that leaves vectors unchanged.
var IdentityQuaternion = Quaternion{W: 1}

// IdentityTransform has no rotation, no translation and unit scale.
var IdentityTransform = Transform{
	Rotation: IdentityQuaternion,
	Scale:    Vector{X: 1, Y: 1, Z: 1},
}

// Default returns the value an attribute of kind k holds when nothing was
// written to it. Transforms default to identity. Unknown kinds return nil.
func Default(k Kind) Value {
	if k == KindTransform {
		return IdentityTransform
	}
	return Zero(k)
}

// Zero returns the additive identity of kind k, used to reset accumulators.
// Unlike Default, a zero Transform has zero scale so that sums of transforms
// stay sums.
func Zero(k Kind) Value {
	switch k {
	case KindBool:
		return Bool(false)
	case KindInt32:
		return Int32(0)
	case KindInt64:
		return Int64(0)
	case KindFloat:
		return Float(0)
	case KindDouble:
		return Double(0)
	case KindVector2:
		return Vector2{}
	case KindVector:
		return Vector{}
	case KindVector4:
		return Vector4{}
	case KindQuaternion:
		return IdentityQuaternion
	case KindRotator:
		return Rotator{}
	case KindTransform:
		return Transform{Rotation: IdentityQuaternion}
	case KindString:
		return String("")
	case KindName:
		return Name("")
	case KindSoftObjectPath:
		return SoftObjectPath("")
	case KindSoftClassPath:
		return SoftClassPath("")
	default:
		return nil
	}
}

// Fold returns the case-folded form of a name, used for comparisons.
// A Caser is stateful, so each call builds its own.
func (n Name) Fold() string { return cases.Fold().String(string(n)) }

// EqualFold reports whether two names are equal ignoring case.
func (n Name) EqualFold(other Name) bool { return n.Fold() == other.Fold() }

// NearlyEqual reports whether a and b have the same kind and their
// components differ by at most tol. Quaternions q and -q are equal.
// Names compare case-insensitively.
func NearlyEqual(a, b Value, tol float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Name:
		return av.EqualFold(b.(Name))
	case Quaternion:
		bv := b.(Quaternion)
		return quatNear(av, bv, tol) || quatNear(av, Quaternion{-bv.X, -bv.Y, -bv.Z, -bv.W}, tol)
	case Transform:
		bv := b.(Transform)
		return NearlyEqual(av.Rotation, bv.Rotation, tol) &&
			NearlyEqual(av.Location, bv.Location, tol) &&
			NearlyEqual(av.Scale, bv.Scale, tol)
	}
	if a.Kind().IsText() || a.Kind() == KindBool {
		return a == b
	}
	ca, n := components(a)
	cb, _ := components(b)
	for i := range n {
		if math.Abs(ca[i]-cb[i]) > tol {
			return false
		}
	}
	return true
}

func quatNear(a, b Quaternion, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol && math.Abs(a.W-b.W) <= tol
}

// components flattens numeric values into up to four float64 components.
func components(v Value) ([4]float64, int) {
	switch x := v.(type) {
	case Int32:
		return [4]float64{float64(x)}, 1
	case Int64:
		return [4]float64{float64(x)}, 1
	case Float:
		return [4]float64{float64(x)}, 1
	case Double:
		return [4]float64{float64(x)}, 1
	case Vector2:
		return [4]float64{x.X, x.Y}, 2
	case Vector:
		return [4]float64{x.X, x.Y, x.Z}, 3
	case Vector4:
		return [4]float64(x), 4
	case Rotator:
		return [4]float64{x.Pitch, x.Yaw, x.Roll}, 3
	case Quaternion:
		return [4]float64{x.X, x.Y, x.Z, x.W}, 4
	default:
		return [4]float64{}, 0
	}
}
