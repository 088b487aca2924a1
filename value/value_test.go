package value

import (
	"math"
	"testing"
)

// samples returns a non-trivial value for every kind.
func samples() map[Kind]Value {
	rot := Rotator{Pitch: 10, Yaw: 20, Roll: 30}
	return map[Kind]Value{
		KindBool:           Bool(true),
		KindInt32:          Int32(7),
		KindInt64:          Int64(-42),
		KindFloat:          Float(1.5),
		KindDouble:         Double(3.25),
		KindVector2:        NewVector2(1, 2),
		KindVector:         NewVector(1, 2, 3),
		KindVector4:        NewVector4(1, 2, 3, 4),
		KindQuaternion:     rot.Quaternion(),
		KindRotator:        rot,
		KindTransform:      Transform{Rotation: rot.Quaternion(), Location: NewVector(4, 5, 6), Scale: NewVector(1, 2, 1)},
		KindString:         String("hello"),
		KindName:           Name("Foo"),
		KindSoftObjectPath: SoftObjectPath("/Game/Mesh.Mesh"),
		KindSoftClassPath:  SoftClassPath("/Script/Engine.Actor"),
	}
}

// =============================================================================
// Kind Tests
// =============================================================================

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "Unknown"},
		{KindBool, "Bool"},
		{KindVector4, "Vector4"},
		{KindSoftClassPath, "SoftClassPath"},
		{Kind(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", k.String(), got, err, k)
		}
	}

	if got, err := ParseKind("quaternion"); err != nil || got != KindQuaternion {
		t.Errorf("ParseKind(quaternion) = %v, %v, want Quaternion", got, err)
	}
	if _, err := ParseKind("Matrix"); err == nil {
		t.Error("ParseKind(Matrix) expected error")
	}
	if _, err := ParseKind("Unknown"); err == nil {
		t.Error("ParseKind(Unknown) expected error")
	}
}

func TestKind_UnmarshalText(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("vector2")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if k != KindVector2 {
		t.Errorf("UnmarshalText() = %v, want Vector2", k)
	}
	text, _ := k.MarshalText()
	if string(text) != "Vector2" {
		t.Errorf("MarshalText() = %q, want Vector2", text)
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 15 {
		t.Fatalf("len(Kinds()) = %d, want 15", len(kinds))
	}
	for _, k := range kinds {
		if For(k) == nil {
			t.Errorf("For(%v) = nil", k)
		}
		if For(k).Kind != k {
			t.Errorf("For(%v).Kind = %v", k, For(k).Kind)
		}
		if Zero(k) == nil || Zero(k).Kind() != k {
			t.Errorf("Zero(%v) = %v", k, Zero(k))
		}
		if Default(k) == nil || Default(k).Kind() != k {
			t.Errorf("Default(%v) = %v", k, Default(k))
		}
	}
	if For(KindUnknown) != nil {
		t.Error("For(KindUnknown) should be nil")
	}
	if Zero(KindUnknown) != nil {
		t.Error("Zero(KindUnknown) should be nil")
	}
}

func TestDefault_Transform(t *testing.T) {
	if got := Default(KindTransform); got != IdentityTransform {
		t.Errorf("Default(Transform) = %v, want identity", got)
	}
	if got := Zero(KindTransform).(Transform); got.Scale != (Vector{}) {
		t.Errorf("Zero(Transform).Scale = %v, want zero", got.Scale)
	}
}

// =============================================================================
// Ops Tests
// =============================================================================

func TestOps_LerpSameValue(t *testing.T) {
	for k, v := range samples() {
		got := For(k).Lerp(v, v, 0.5)
		if !NearlyEqual(got, v, 1e-9) {
			t.Errorf("%v: Lerp(A, A, 0.5) = %v, want %v", k, got, v)
		}
	}
}

func TestOps_AverageSameValue(t *testing.T) {
	for k, v := range samples() {
		got := For(k).Average(v, v)
		if !NearlyEqual(got, v, 1e-9) {
			t.Errorf("%v: Average(A, A) = %v, want %v", k, got, v)
		}
	}
}

func TestOps_Numeric(t *testing.T) {
	d := For(KindDouble)
	i := For(KindInt32)

	tests := []struct {
		name string
		got  Value
		want Value
	}{
		{"Add", d.Add(Double(1), Double(2)), Double(3)},
		{"Sub", d.Sub(Double(1), Double(2)), Double(-1)},
		{"Mult", d.Mult(Double(3), Double(2)), Double(6)},
		{"Min", d.Min(Double(3), Double(2)), Double(2)},
		{"Max", d.Max(Double(3), Double(2)), Double(3)},
		{"UnsignedMin", d.UnsignedMin(Double(-1), Double(2)), Double(-1)},
		{"UnsignedMax", d.UnsignedMax(Double(-3), Double(2)), Double(-3)},
		{"AbsoluteMin", d.AbsoluteMin(Double(-1), Double(2)), Double(1)},
		{"AbsoluteMax", d.AbsoluteMax(Double(-3), Double(2)), Double(3)},
		{"Average", d.Average(Double(1), Double(3)), Double(2)},
		{"Lerp", d.Lerp(Double(0), Double(10), 0.25), Double(2.5)},
		{"WeightedAdd", d.WeightedAdd(Double(1), Double(4), 0.5), Double(3)},
		{"WeightedSub", d.WeightedSub(Double(1), Double(4), 0.5), Double(-1)},
		{"Div", d.Div(Double(9), 3), Double(3)},
		{"DivZero", d.Div(Double(9), 0), Double(9)},
		{"Mod", d.Mod(Double(7), 4), Double(3)},
		{"IntAverage", i.Average(Int32(1), Int32(2)), Int32(1)},
		{"IntLerp", i.Lerp(Int32(0), Int32(10), 0.55), Int32(5)},
		{"IntModCWZero", i.ModCW(Int32(7), Int32(0)), Int32(7)},
		{"IntModCW", i.ModCW(Int32(7), Int32(3)), Int32(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestOps_UnsignedHash(t *testing.T) {
	for _, k := range []Kind{KindInt64, KindDouble, KindVector, KindString, KindName} {
		v := samples()[k]
		w := For(k).Add(v, v)
		ops := For(k)
		if a, b := ops.UnsignedHash(v, w), ops.UnsignedHash(w, v); a != b {
			t.Errorf("%v: UnsignedHash not symmetric: %v != %v", k, a, b)
		}
		if a, b := ops.Hash(v, w), ops.Hash(v, w); a != b {
			t.Errorf("%v: Hash not deterministic: %v != %v", k, a, b)
		}
	}
}

func TestOps_Bool(t *testing.T) {
	b := For(KindBool)
	tests := []struct {
		name string
		got  Value
		want Bool
	}{
		{"Add", b.Add(Bool(false), Bool(true)), true},
		{"Mult", b.Mult(Bool(false), Bool(true)), false},
		{"Sub", b.Sub(Bool(true), Bool(true)), false},
		{"Min", b.Min(Bool(true), Bool(false)), false},
		{"Max", b.Max(Bool(true), Bool(false)), true},
		{"LerpLow", b.Lerp(Bool(false), Bool(true), 0.3), false},
		{"LerpHigh", b.Lerp(Bool(false), Bool(true), 0.5), true},
		{"Div", b.Div(Bool(true), 2), true},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if got := b.ToDouble(Bool(true)); got != 1 {
		t.Errorf("ToDouble(true) = %v, want 1", got)
	}
}

func TestOps_Vector(t *testing.T) {
	v := For(KindVector)

	if got := v.Add(NewVector(1, 2, 3), NewVector(1, 1, 1)); got != NewVector(2, 3, 4) {
		t.Errorf("Add() = %v, want (2,3,4)", got)
	}
	if got := v.Min(NewVector(1, 5, 3), NewVector(2, 1, 3)); got != NewVector(1, 1, 3) {
		t.Errorf("Min() = %v, want (1,1,3)", got)
	}
	if got := v.Div(NewVector(2, 4, 6), 2); got != NewVector(1, 2, 3) {
		t.Errorf("Div() = %v, want (1,2,3)", got)
	}
	if got := v.ModCW(NewVector(5, 7, 9), NewVector(2, 0, 4)); got != NewVector(1, 7, 1) {
		t.Errorf("ModCW() = %v, want (1,7,1)", got)
	}
	if got := v.ToDouble(NewVector(8, 1, 1)); got != 8 {
		t.Errorf("ToDouble() = %v, want 8", got)
	}
	if got := For(KindVector4).Average(NewVector4(0, 0, 0, 0), NewVector4(2, 4, 6, 8)); got != NewVector4(1, 2, 3, 4) {
		t.Errorf("Vector4 Average() = %v, want (1,2,3,4)", got)
	}
}

func TestOps_Text(t *testing.T) {
	s := For(KindString)
	n := For(KindName)
	p := For(KindSoftObjectPath)

	tests := []struct {
		name string
		got  Value
		want Value
	}{
		{"StringAdd", s.Add(String("ab"), String("cd")), String("abcd")},
		{"StringSub", s.Sub(String("abcab"), String("ab")), String("c")},
		{"StringMinByLength", s.Min(String("abc"), String("zz")), String("zz")},
		{"StringMaxByLength", s.Max(String("abc"), String("zz")), String("abc")},
		{"StringAverageSame", s.Average(String("a"), String("a")), String("a")},
		{"StringAverage", s.Average(String("a"), String("b")), String("a|b")},
		{"StringLerp", s.Lerp(String("a"), String("b"), 0.7), String("b")},
		{"StringWeightedAddLow", s.WeightedAdd(String("a"), String("b"), 0.2), String("a")},
		{"NameAverageFold", n.Average(Name("Foo"), Name("foo")), Name("Foo")},
		{"NameAverage", n.Average(Name("Foo"), Name("Bar")), Name("Foo_Bar")},
		{"PathAdd", p.Add(SoftObjectPath("/a"), SoftObjectPath("/b")), SoftObjectPath("/b")},
		{"PathSub", p.Sub(SoftObjectPath("/a"), SoftObjectPath("/b")), SoftObjectPath("/a")},
		{"PathMult", p.Mult(SoftObjectPath("/b"), SoftObjectPath("/a")), SoftObjectPath("/b")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}

	if got := s.ToDouble(String(" 2.5 ")); got != 2.5 {
		t.Errorf("ToDouble(2.5) = %v, want 2.5", got)
	}
	if got := s.ToDouble(String("abc")); got != 0 {
		t.Errorf("ToDouble(abc) = %v, want 0", got)
	}
}

func TestString_NFC(t *testing.T) {
	// A trailing combining acute accent composes with the preceding "e".
	got := For(KindString).Add(String("cafe"), String("\u0301"))
	if got != String("caf\u00e9") {
		t.Errorf("Add() = %q, want NFC composed", got)
	}
}

// =============================================================================
// Rotation Tests
// =============================================================================

func TestRotator_QuaternionRoundTrip(t *testing.T) {
	tests := []Rotator{
		{},
		{Pitch: 10, Yaw: 20, Roll: 30},
		{Pitch: -45, Yaw: 170, Roll: -60},
		{Pitch: 0, Yaw: 90, Roll: 0},
	}
	for _, r := range tests {
		got := r.Quaternion().Rotator()
		if !NearlyEqual(got, r, 1e-6) {
			t.Errorf("Rotator(%v).Quaternion().Rotator() = %v", r, got)
		}
	}
}

func TestQuaternion_Normalized(t *testing.T) {
	q := Quaternion{X: 0, Y: 0, Z: 0, W: 2}.Normalized()
	if q != IdentityQuaternion {
		t.Errorf("Normalized() = %v, want identity", q)
	}
	if got := (Quaternion{}).Normalized(); got != IdentityQuaternion {
		t.Errorf("degenerate Normalized() = %v, want identity", got)
	}
}

func TestSlerp(t *testing.T) {
	a := IdentityQuaternion
	b := Rotator{Yaw: 90}.Quaternion()

	mid := Slerp(a, b, 0.5).Rotator()
	if math.Abs(mid.Yaw-45) > 1e-6 {
		t.Errorf("Slerp(0, 90, 0.5).Yaw = %v, want 45", mid.Yaw)
	}
	if got := Slerp(a, b, 1); !NearlyEqual(got, b, 1e-9) {
		t.Errorf("Slerp(a, b, 1) = %v, want %v", got, b)
	}
}

func TestNearlyEqual(t *testing.T) {
	q := Rotator{Yaw: 30}.Quaternion()
	neg := Quaternion{-q.X, -q.Y, -q.Z, -q.W}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same double", Double(1), Double(1 + 1e-12), true},
		{"different double", Double(1), Double(1.1), false},
		{"different kinds", Double(1), Float(1), false},
		{"negated quaternion", q, neg, true},
		{"name fold", Name("ABC"), Name("abc"), true},
		{"string case", String("ABC"), String("abc"), false},
		{"both nil", nil, nil, true},
		{"one nil", Double(0), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b, 1e-9); got != tt.want {
				t.Errorf("NearlyEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
