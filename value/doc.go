// Package value defines the attribute values fuse can blend.
//
// A Value is a closed variant over fifteen kinds: booleans, 32 and 64 bit
// integers, single and double precision floats, 2, 3 and 4 component
// vectors, quaternions, rotators, transforms, strings, names and object
// paths.
//
// Arithmetic lives in one Ops table per kind, returned by For. A table holds
// every pairwise primitive the blend modes need (add, min, lerp, hash, ...),
// so a blend operation selects functions out of a table instead of being
// compiled once per kind and mode.
//
//	ops := value.For(value.KindVector)
//	mid := ops.Lerp(value.NewVector(0, 0, 0), value.NewVector(2, 2, 2), 0.5)
//
// Operands passed to an Ops function must be of the table's kind.
package value
