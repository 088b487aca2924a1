package value

import (
	"hash/fnv"
	"math"
)

// hashCombine mixes b into a.
func hashCombine(a, b uint32) uint32 {
	return a ^ (b + 0x9e3779b9 + (a << 6) + (a >> 2))
}

// hashUnordered combines two hashes so that the result does not depend on
// argument order.
func hashUnordered(a, b uint32) uint32 {
	if a > b {
		a, b = b, a
	}
	return hashCombine(a, b)
}

func hashFloat(x float64) uint32 {
	bits := math.Float64bits(x)
	return uint32(bits) ^ uint32(bits>>32)
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
