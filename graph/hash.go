package graph

// H64 packs two 32-bit indices into one key, a in the low half.
func H64(a, b uint32) uint64 {
	return uint64(a) | uint64(b)<<32
}

// H64U packs two indices into an order-independent key.
func H64U(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return H64(a, b)
}

// H64Split returns the two halves of a key built by H64.
func H64Split(h uint64) (a, b uint32) {
	return uint32(h), uint32(h >> 32)
}

// edgeKey returns the undirected key of the edge between nodes a and b.
func edgeKey(a, b int) uint64 {
	return H64U(uint32(a), uint32(b))
}
