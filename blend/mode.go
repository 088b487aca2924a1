package blend

import (
	"fmt"
	"strings"
)

// Mode selects how a source value B combines into a target value A.
type Mode uint8

const (
	ModeNone             Mode = iota // Result: A
	ModeAverage                      // Result: (A+B)/2, sum then divide by count in multi blends
	ModeWeight                       // Result: A + B*W, divided by total weight in multi blends
	ModeMin                          // Result: min(A, B)
	ModeMax                          // Result: max(A, B)
	ModeCopyTarget                   // Result: A
	ModeCopySource                   // Result: B
	ModeAdd                          // Result: A + B
	ModeSubtract                     // Result: A - B
	ModeMultiply                     // Result: A * B
	ModeDivide                       // Result: A / double(B)
	ModeWeightedAdd                  // Result: A + B*W
	ModeWeightedSubtract             // Result: A - B*W
	ModeLerp                         // Result: A + (B-A)*W
	ModeUnsignedMin                  // Result: the operand with the smaller magnitude
	ModeUnsignedMax                  // Result: the operand with the larger magnitude
	ModeAbsoluteMin                  // Result: min(|A|, |B|)
	ModeAbsoluteMax                  // Result: max(|A|, |B|)
	ModeHash                         // Result: hash(A, B)
	ModeUnsignedHash                 // Result: hash(A, B), order independent
	ModeMod                          // Result: A mod double(B)
	ModeModCW                        // Result: A mod B, per component
	ModeWeightNormalize              // Result: A + B*W, divided by max(total weight, 1)

	// Reserved modes without defined semantics. Operations built for them
	// behave as ModeNone.
	ModeGeometricMean
	ModeHarmonicMean
	ModeRMS
	ModeStep

	modeCount
)

var modeNames = [modeCount]string{
	ModeNone:             "None",
	ModeAverage:          "Average",
	ModeWeight:           "Weight",
	ModeMin:              "Min",
	ModeMax:              "Max",
	ModeCopyTarget:       "CopyTarget",
	ModeCopySource:       "CopySource",
	ModeAdd:              "Add",
	ModeSubtract:         "Subtract",
	ModeMultiply:         "Multiply",
	ModeDivide:           "Divide",
	ModeWeightedAdd:      "WeightedAdd",
	ModeWeightedSubtract: "WeightedSubtract",
	ModeLerp:             "Lerp",
	ModeUnsignedMin:      "UnsignedMin",
	ModeUnsignedMax:      "UnsignedMax",
	ModeAbsoluteMin:      "AbsoluteMin",
	ModeAbsoluteMax:      "AbsoluteMax",
	ModeHash:             "Hash",
	ModeUnsignedHash:     "UnsignedHash",
	ModeMod:              "Mod",
	ModeModCW:            "ModCW",
	ModeWeightNormalize:  "WeightNormalize",
	ModeGeometricMean:    "GeometricMean",
	ModeHarmonicMean:     "HarmonicMean",
	ModeRMS:              "RMS",
	ModeStep:             "Step",
}

// String returns the mode name.
func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "Unknown"
}

// Supported reports whether operations built for m apply m itself rather
// than falling back to ModeNone.
func (m Mode) Supported() bool {
	return m < ModeGeometricMean
}

// RequiresWeight reports whether the result depends on the contribution
// weight, so callers can skip computing weights otherwise.
func (m Mode) RequiresWeight() bool {
	switch m {
	case ModeLerp, ModeWeight, ModeWeightedAdd, ModeWeightedSubtract, ModeWeightNormalize:
		return true
	default:
		return false
	}
}

// initWithSource reports whether the first contribution of a multi blend
// replaces the accumulator instead of combining with it.
func (m Mode) initWithSource() bool {
	switch m {
	case ModeMin, ModeMax, ModeUnsignedMin, ModeUnsignedMax,
		ModeAbsoluteMin, ModeAbsoluteMax, ModeHash:
		return true
	default:
		return false
	}
}

// considerOriginal reports whether the value already in the accumulator
// counts as one contribution unless the operation resets it.
func (m Mode) considerOriginal() bool {
	switch m {
	case ModeAverage, ModeAdd, ModeSubtract, ModeWeight,
		ModeWeightedAdd, ModeWeightedSubtract:
		return true
	default:
		return false
	}
}

// ParseMode returns the mode with the given name, ignoring case.
func ParseMode(s string) (Mode, error) {
	for m := ModeNone; m < modeCount; m++ {
		if strings.EqualFold(modeNames[m], s) {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("blend: unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
