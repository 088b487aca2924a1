package value

// BinaryFunc combines two values of the same kind.
type BinaryFunc func(a, b Value) Value

// WeightedFunc combines two values of the same kind under a weight.
type WeightedFunc func(a, b Value, w float64) Value

// ScalarFunc applies a scalar operand to a value.
type ScalarFunc func(a Value, s float64) Value

// Ops is the arithmetic table of one kind. Every function expects operands
// of that kind and panics otherwise.
//
// Div and Mod return their operand unchanged when the scalar is zero.
type Ops struct {
	Kind Kind

	Add          BinaryFunc
	Sub          BinaryFunc
	Mult         BinaryFunc
	Min          BinaryFunc
	Max          BinaryFunc
	UnsignedMin  BinaryFunc // operand with the smaller magnitude
	UnsignedMax  BinaryFunc // operand with the larger magnitude
	AbsoluteMin  BinaryFunc // min(|a|, |b|)
	AbsoluteMax  BinaryFunc // max(|a|, |b|)
	Average      BinaryFunc
	Hash         BinaryFunc
	UnsignedHash BinaryFunc // order independent
	ModCW        BinaryFunc // component-wise modulo

	Lerp        WeightedFunc
	WeightedAdd WeightedFunc // a + b*w
	WeightedSub WeightedFunc // a - b*w

	Div ScalarFunc
	Mod ScalarFunc

	// ToDouble converts a value to a scalar: X for vectors, Pitch for
	// rotations, 0 or 1 for booleans, a parsed number for text.
	ToDouble func(Value) float64
}

// typed is the kind-specific form of Ops before type erasure.
type typed[T Value] struct {
	add, sub, mult   func(a, b T) T
	min, max         func(a, b T) T
	umin, umax       func(a, b T) T
	amin, amax       func(a, b T) T
	avg, hash, uhash func(a, b T) T
	modCW            func(a, b T) T
	lerp, wadd, wsub func(a, b T, w float64) T
	div, mod         func(a T, s float64) T
	toDouble         func(a T) float64
}

func (t typed[T]) erase(k Kind) *Ops {
	return &Ops{
		Kind:         k,
		Add:          binary(t.add),
		Sub:          binary(t.sub),
		Mult:         binary(t.mult),
		Min:          binary(t.min),
		Max:          binary(t.max),
		UnsignedMin:  binary(t.umin),
		UnsignedMax:  binary(t.umax),
		AbsoluteMin:  binary(t.amin),
		AbsoluteMax:  binary(t.amax),
		Average:      binary(t.avg),
		Hash:         binary(t.hash),
		UnsignedHash: binary(t.uhash),
		ModCW:        binary(t.modCW),
		Lerp:         weighted(t.lerp),
		WeightedAdd:  weighted(t.wadd),
		WeightedSub:  weighted(t.wsub),
		Div:          scalar(t.div),
		Mod:          scalar(t.mod),
		ToDouble:     func(a Value) float64 { return t.toDouble(a.(T)) },
	}
}

func binary[T Value](f func(a, b T) T) BinaryFunc {
	return func(a, b Value) Value { return f(a.(T), b.(T)) }
}

func weighted[T Value](f func(a, b T, w float64) T) WeightedFunc {
	return func(a, b Value, w float64) Value { return f(a.(T), b.(T), w) }
}

func scalar[T Value](f func(a T, s float64) T) ScalarFunc {
	return func(a Value, s float64) Value {
		if s == 0 {
			return a
		}
		return f(a.(T), s)
	}
}

// tables holds one Ops per kind. Blend modes select functions out of these
// tables, so the number of tables grows with kinds, not kinds times modes.
var tables [kindCount]*Ops

func init() {
	rot := rotatorOps()
	vec := vectorOps()
	quat := quaternionOps(rot)

	tables[KindBool] = boolOps().erase(KindBool)
	tables[KindInt32] = numericOps[Int32]().erase(KindInt32)
	tables[KindInt64] = numericOps[Int64]().erase(KindInt64)
	tables[KindFloat] = numericOps[Float]().erase(KindFloat)
	tables[KindDouble] = numericOps[Double]().erase(KindDouble)
	tables[KindVector2] = vector2Ops().erase(KindVector2)
	tables[KindVector] = vec.erase(KindVector)
	tables[KindVector4] = vector4Ops().erase(KindVector4)
	tables[KindQuaternion] = quat.erase(KindQuaternion)
	tables[KindRotator] = rot.erase(KindRotator)
	tables[KindTransform] = transformOps(quat, vec).erase(KindTransform)
	tables[KindString] = textOps[String](stringPolicy).erase(KindString)
	tables[KindName] = textOps[Name](namePolicy).erase(KindName)
	tables[KindSoftObjectPath] = textOps[SoftObjectPath](pathPolicy).erase(KindSoftObjectPath)
	tables[KindSoftClassPath] = textOps[SoftClassPath](pathPolicy).erase(KindSoftClassPath)
}

// For returns the operation table of kind k, or nil for unknown kinds.
func For(k Kind) *Ops {
	if !k.IsValid() {
		return nil
	}
	return tables[k]
}
