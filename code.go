package huffman

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest Code that can be represented.  A tree over
// NumSymbols leaves is at most NumSymbols-1 levels deep, so every code fits.
const MaxCodeSize = 128

const codeWordBits = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant bit
	// of Bits[0] is the first bit; bits 64 and onward continue in Bits[1].
	// Bits beyond Size are always zero.
	Bits [2]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64 bits.
// The least significant bit of bits is the *last* bit in the sequence, so
// MakeCode(3, 0x1) is the code "001".
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= codeWordBits, "size %d > %d", size, codeWordBits)
	if size == 0 {
		return Code{}
	}
	bits &= ^uint64(0) >> (codeWordBits - size)
	return Code{Size: size, Bits: [2]uint64{bits << (codeWordBits - size), 0}}
}

// ParseCode parses a string of '0' and '1' characters.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is too long: %d bits > max %d", str, len(str), MaxCodeSize)
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid character %q in code %q", ch, str)
		}
	}
	return hc, nil
}

// Append returns a copy of this Code with one more bit at the end.  Any
// nonzero bit counts as 1.
func (hc Code) Append(bit uint) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "Code.Append: size %d already at max %d", hc.Size, MaxCodeSize)
	if bit != 0 {
		hc.Bits[hc.Size/codeWordBits] |= uint64(1) << (codeWordBits - 1 - hc.Size%codeWordBits)
	}
	hc.Size++
	return hc
}

// Bit returns the bit at index i, where 0 is the first bit.
func (hc Code) Bit(i byte) uint {
	assert.Assertf(i < hc.Size, "Code.Bit: index %d out of range [0, %d)", i, hc.Size)
	return uint(hc.Bits[i/codeWordBits]>>(codeWordBits-1-i%codeWordBits)) & 1
}

// HasPrefix returns true iff prefix is a prefix of this Code.  Every Code has
// itself and the empty Code as prefixes.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.truncate(prefix.Size) == prefix
}

func (hc Code) truncate(size byte) Code {
	out := Code{Size: size}
	for index := 0; index < len(hc.Bits); index++ {
		start := byte(index * codeWordBits)
		switch {
		case size <= start:
			// leave zero
		case size-start >= codeWordBits:
			out.Bits[index] = hc.Bits[index]
		default:
			out.Bits[index] = hc.Bits[index] &^ (^uint64(0) >> (size - start))
		}
	}
	return out
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var buf strings.Builder
	buf.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		buf.WriteByte('0' + byte(hc.Bit(i)))
	}
	return strconv.Quote(buf.String())
}

var _ fmt.Stringer = Code{}
