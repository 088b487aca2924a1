package blend

import "github.com/gogpu/fuse/value"

// Stats tracks one multi blend: how many contributions were folded into the
// accumulator and their total weight.
//
// A negative Count means the accumulator is still waiting for its first
// contribution, which replaces it instead of being combined with it.
type Stats struct {
	Count       int
	TotalWeight float64
}

// FinalizeFunc normalizes an accumulator after a multi blend.
type FinalizeFunc func(acc value.Value, totalWeight float64, count int) value.Value

// Operation blends values of one kind under one mode.
//
// Operations are immutable and safe for concurrent use. The functions they
// apply are picked from the kind's value.Ops table when the operation is
// built, so no per-call dispatch on the mode happens.
type Operation struct {
	kind      value.Kind
	mode      Mode
	reset     bool
	seedFirst bool
	ops       *value.Ops

	blend      value.WeightedFunc
	accumulate value.WeightedFunc
	finalize   FinalizeFunc
}

// NewOperation builds an operation for kind k and mode m. It returns nil for
// unknown kinds. Modes without defined semantics fall back to ModeNone.
//
// resetForMulti makes BeginMulti clear the accumulator for modes that would
// otherwise count its current value as a contribution.
func NewOperation(k value.Kind, m Mode, resetForMulti bool) *Operation {
	ops := value.For(k)
	if ops == nil {
		return nil
	}

	effective := m
	if !m.Supported() {
		effective = ModeNone
	}

	op := &Operation{
		kind:     k,
		mode:     m,
		reset:    resetForMulti,
		ops:      ops,
		blend:    blendFunc(ops, effective),
		finalize: finalizeFunc(ops, effective),
	}
	op.accumulate = op.blend
	op.seedFirst = effective.initWithSource()
	if effective == ModeAverage {
		if k.Summable() {
			// Sum now, divide once in EndMulti.
			op.accumulate = ignoreWeight(ops.Add)
		} else if resetForMulti {
			// A zero accumulator would skew pairwise averages.
			op.seedFirst = true
		}
	}
	return op
}

// Kind returns the kind of values the operation accepts.
func (op *Operation) Kind() value.Kind { return op.kind }

// Mode returns the mode the operation was requested with.
func (op *Operation) Mode() Mode { return op.mode }

// ResetForMulti reports whether BeginMulti clears the accumulator.
func (op *Operation) ResetForMulti() bool { return op.reset }

// Default returns the value a fresh accumulator of the operation's kind holds.
func (op *Operation) Default() value.Value { return value.Default(op.kind) }

// Blend combines target a with source b under weight w.
func (op *Operation) Blend(a, b value.Value, w float64) value.Value {
	return op.blend(a, b, w)
}

// Accumulate folds src into acc. It equals Blend except for ModeAverage on
// summable kinds, which sums and leaves the division to EndMulti.
func (op *Operation) Accumulate(acc, src value.Value, w float64) value.Value {
	return op.accumulate(acc, src, w)
}

// BeginMulti prepares acc, the current target value, for a multi blend and
// returns the accumulator to fold contributions into.
func (op *Operation) BeginMulti(acc value.Value) (value.Value, Stats) {
	var st Stats
	switch {
	case op.seedFirst:
		st.Count = -1
	case op.mode.considerOriginal():
		if op.reset {
			acc = value.Zero(op.kind)
		} else {
			st.Count = 1
			st.TotalWeight = 1
		}
	}
	return acc, st
}

// MultiBlend folds one weighted contribution into acc and updates st.
func (op *Operation) MultiBlend(acc, src value.Value, w float64, st *Stats) value.Value {
	if st.Count < 0 {
		st.Count = 0
		acc = src
	} else {
		acc = op.accumulate(acc, src, w)
	}
	st.Count++
	st.TotalWeight += w
	return acc
}

// EndMulti finalizes acc. Nothing happens when no contribution was folded.
func (op *Operation) EndMulti(acc value.Value, totalWeight float64, count int) value.Value {
	if count == 0 {
		return acc
	}
	return op.finalize(acc, totalWeight, count)
}

// Div divides v by divisor. A zero divisor leaves v unchanged.
func (op *Operation) Div(v value.Value, divisor float64) value.Value {
	return op.ops.Div(v, divisor)
}

func ignoreWeight(f value.BinaryFunc) value.WeightedFunc {
	return func(a, b value.Value, _ float64) value.Value { return f(a, b) }
}

// blendFunc returns the pairwise function of mode m.
func blendFunc(ops *value.Ops, m Mode) value.WeightedFunc {
	switch m {
	case ModeAverage:
		return ignoreWeight(ops.Average)
	case ModeWeight, ModeWeightedAdd, ModeWeightNormalize:
		return ops.WeightedAdd
	case ModeWeightedSubtract:
		return ops.WeightedSub
	case ModeMin:
		return ignoreWeight(ops.Min)
	case ModeMax:
		return ignoreWeight(ops.Max)
	case ModeCopySource:
		return func(_, b value.Value, _ float64) value.Value { return b }
	case ModeAdd:
		return ignoreWeight(ops.Add)
	case ModeSubtract:
		return ignoreWeight(ops.Sub)
	case ModeMultiply:
		return ignoreWeight(ops.Mult)
	case ModeDivide:
		return func(a, b value.Value, _ float64) value.Value { return ops.Div(a, ops.ToDouble(b)) }
	case ModeLerp:
		return ops.Lerp
	case ModeUnsignedMin:
		return ignoreWeight(ops.UnsignedMin)
	case ModeUnsignedMax:
		return ignoreWeight(ops.UnsignedMax)
	case ModeAbsoluteMin:
		return ignoreWeight(ops.AbsoluteMin)
	case ModeAbsoluteMax:
		return ignoreWeight(ops.AbsoluteMax)
	case ModeHash:
		return ignoreWeight(ops.Hash)
	case ModeUnsignedHash:
		return ignoreWeight(ops.UnsignedHash)
	case ModeMod:
		return func(a, b value.Value, _ float64) value.Value { return ops.Mod(a, ops.ToDouble(b)) }
	case ModeModCW:
		return ignoreWeight(ops.ModCW)
	default:
		// ModeNone and ModeCopyTarget keep the target.
		return func(a, _ value.Value, _ float64) value.Value { return a }
	}
}

// finalizeFunc returns the normalization step of mode m.
func finalizeFunc(ops *value.Ops, m Mode) FinalizeFunc {
	switch m {
	case ModeAverage:
		if !ops.Kind.Summable() {
			// Pairwise averages of non-summable kinds are already means.
			return noop
		}
		return func(acc value.Value, _ float64, count int) value.Value {
			if count > 0 {
				return ops.Div(acc, float64(count))
			}
			return acc
		}
	case ModeWeight:
		return func(acc value.Value, total float64, _ int) value.Value {
			if total > 1 {
				return ops.Div(acc, total)
			}
			return acc
		}
	case ModeWeightNormalize:
		return func(acc value.Value, total float64, _ int) value.Value {
			return ops.Div(acc, max(total, 1))
		}
	default:
		return noop
	}
}

func noop(acc value.Value, _ float64, _ int) value.Value { return acc }
