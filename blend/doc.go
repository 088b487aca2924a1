// Package blend resolves a value kind and a blend mode into an Operation.
//
// An Operation exposes the three functions every blend needs:
//
//   - Blend combines two values pairwise: out = f(a, b, w).
//   - Accumulate folds one contribution into an accumulator.
//   - EndMulti normalizes the accumulator once all contributions are in.
//
// Multi blends follow a begin/accumulate/finalize protocol:
//
//	acc, st := op.BeginMulti(current)
//	for _, c := range contributions {
//		acc = op.MultiBlend(acc, c.Value, c.Weight, &st)
//	}
//	acc = op.EndMulti(acc, st.TotalWeight, st.Count)
//
// Operations are built from the per-kind tables of package value, so the
// mode only selects which table entries an operation holds. A Pool shares
// operations between blenders of one run.
package blend
