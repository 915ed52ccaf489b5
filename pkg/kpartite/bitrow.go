package kpartite

import "math/bits"

const (
	bitsPerByte = 8
	byteMask    = bitsPerByte - 1
)

// bitrow is one byte-packed adjacency row: bit n is set when the owning node
// has an edge to node n of the target partition.
type bitrow []byte

// newBitrow allocates a row wide enough for n bits.
func newBitrow(n int) bitrow {
	return make(bitrow, (n+bitsPerByte-1)/bitsPerByte)
}

func (r bitrow) get(n int) bool {
	return (r[n/bitsPerByte]>>(n&byteMask))&0x1 == 1
}

func (r bitrow) set(n int) {
	r[n/bitsPerByte] |= 1 << (n & byteMask)
}

func (r bitrow) clear(n int) {
	r[n/bitsPerByte] &^= 1 << (n & byteMask)
}

// intersect writes the bitwise AND of a and b into dst.
// All three rows must have the same width.
func intersect(dst, a, b bitrow) {
	for i := range dst {
		dst[i] = a[i] & b[i]
	}
}

// popcount returns the number of set bits in the row.
func (r bitrow) popcount() int {
	total := 0
	for _, b := range r {
		total += bits.OnesCount8(b)
	}
	return total
}
