// Package union merges attributes of several point collections into one.
//
// A Blender is set up once per output collection: AddSources collects the
// attributes of every source, Init creates them on the target, and then
// MergeSingle (or ComputeWeights followed by Blend) computes one output
// point from the source points fused into it.
//
// Each attribute is folded with the begin, accumulate and finalize protocol
// of package blend:
//
//	acc, st := op.BeginMulti(target)
//	for _, p := range contributors {
//		acc = op.MultiBlend(acc, p.Value, p.Weight, &st)
//	}
//	target = op.EndMulti(acc, st.TotalWeight, st.Count)
//
// Built-in point fields go through a PropertiesBlender that follows the same
// protocol.
//
// After Init, MergeSingle may be called concurrently for distinct output
// indices.
package union
