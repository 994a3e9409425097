package huffman

import (
	mathbits "math/bits"
)

// sentinelSize returns the number of leading bits of b that belong to the
// padding sentinel, i.e. the zero bits plus the terminating one bit.  It
// returns 0 if b holds no one bit.
func sentinelSize(b byte) uint {
	if b == 0 {
		return 0
	}
	return uint(mathbits.LeadingZeros8(b)) + 1
}

// paddingSize returns the number of sentinel bits that precede n data bits.
// The result is always in [1, 8].
func paddingSize(n uint64) uint {
	return uint(8 - n%8)
}
