package value

import (
	"fmt"
	"strings"
)

// Kind identifies the underlying type of a Value.
type Kind uint8

const (
	// KindUnknown is the zero Kind. No operations exist for it.
	KindUnknown Kind = iota

	KindBool
	KindInt32
	KindInt64
	KindFloat
	KindDouble
	KindVector2
	KindVector
	KindVector4
	KindQuaternion
	KindRotator
	KindTransform
	KindString
	KindName
	KindSoftObjectPath
	KindSoftClassPath

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:        "Unknown",
	KindBool:           "Bool",
	KindInt32:          "Int32",
	KindInt64:          "Int64",
	KindFloat:          "Float",
	KindDouble:         "Double",
	KindVector2:        "Vector2",
	KindVector:         "Vector",
	KindVector4:        "Vector4",
	KindQuaternion:     "Quaternion",
	KindRotator:        "Rotator",
	KindTransform:      "Transform",
	KindString:         "String",
	KindName:           "Name",
	KindSoftObjectPath: "SoftObjectPath",
	KindSoftClassPath:  "SoftClassPath",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// IsValid reports whether k is one of the supported value kinds.
func (k Kind) IsValid() bool {
	return k > KindUnknown && k < kindCount
}

// IsText reports whether values of this kind are strings, names or paths.
func (k Kind) IsText() bool {
	switch k {
	case KindString, KindName, KindSoftObjectPath, KindSoftClassPath:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether values of this kind are made of float
// components.
func (k Kind) IsNumeric() bool {
	return k.IsValid() && k != KindBool && !k.IsText()
}

// Summable reports whether Add on this kind is a component sum, so that
// repeated addition followed by a division yields a mean. Quaternions and
// transform rotations sum in rotator space and wrap at +-180 degrees.
func (k Kind) Summable() bool {
	return k.IsNumeric()
}

// Lerpable reports whether Lerp interpolates values of this kind.
// Non-lerpable kinds pick one operand by threshold instead.
func (k Kind) Lerpable() bool {
	return k.IsNumeric()
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindBool; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind returns the kind with the given name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k := KindBool; k < kindCount; k++ {
		if strings.EqualFold(kindNames[k], s) {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("value: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
