package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/icza/bitio"
)

const bitBufferWordBits = 64

// BitBuffer is a growable sequence of bits.  The zero value is empty and
// ready to use.
type BitBuffer struct {
	words []uint64
	size  uint64
}

// Grow ensures room for n more bits without reallocation.
func (bb *BitBuffer) Grow(n uint64) {
	need := int((bb.size + n + bitBufferWordBits - 1) / bitBufferWordBits)
	if need > cap(bb.words) {
		words := make([]uint64, len(bb.words), need)
		copy(words, bb.words)
		bb.words = words
	}
}

// Len returns the number of bits in the buffer.
func (bb *BitBuffer) Len() uint64 {
	return bb.size
}

// Bit returns the bit at index i, where 0 is the first bit.
func (bb *BitBuffer) Bit(i uint64) uint {
	return uint(bb.words[i/bitBufferWordBits]>>(bitBufferWordBits-1-i%bitBufferWordBits)) & 1
}

// AppendCode appends every bit of hc.
func (bb *BitBuffer) AppendCode(hc Code) {
	size := uint(hc.Size)
	for index := 0; size > 0; index++ {
		n := size
		if n > codeWordBits {
			n = codeWordBits
		}
		bb.appendWord(hc.Bits[index], n)
		size -= n
	}
}

// appendWord appends the first n bits of word, which must be left-aligned
// with every bit past n zero.
func (bb *BitBuffer) appendWord(word uint64, n uint) {
	offset := uint(bb.size % bitBufferWordBits)
	if offset == 0 {
		bb.words = append(bb.words, word)
	} else {
		bb.words[len(bb.words)-1] |= word >> offset
		if offset+n > bitBufferWordBits {
			bb.words = append(bb.words, word<<(bitBufferWordBits-offset))
		}
	}
	bb.size += uint64(n)
}

// String returns the bits as a quoted string of '0' and '1' characters.
func (bb *BitBuffer) String() string {
	var buf strings.Builder
	buf.Grow(int(bb.size))
	for i := uint64(0); i < bb.size; i++ {
		buf.WriteByte('0' + byte(bb.Bit(i)))
	}
	return fmt.Sprintf("%q", buf.String())
}

// PackedSize returns the number of bytes Pack writes for n data bits.
func PackedSize(n uint64) uint64 {
	return (n + uint64(paddingSize(n))) / 8
}

// Pack writes the bits of bb to w, MSB-first, behind a sentinel: P-1 zero bits
// and a single one bit, with P in [1, 8] chosen so the total is a whole number
// of bytes.  A buffer that is already byte-aligned still gets a full sentinel
// byte (0x01).  Nothing else is written.
func Pack(w io.Writer, bb *BitBuffer) error {
	bw := bitio.NewWriter(w)

	if err := bw.WriteBits(1, uint8(paddingSize(bb.size))); err != nil {
		return err
	}

	full := bb.size / bitBufferWordBits
	for index := uint64(0); index < full; index++ {
		if err := bw.WriteBits(bb.words[index], bitBufferWordBits); err != nil {
			return err
		}
	}
	if rem := uint8(bb.size % bitBufferWordBits); rem != 0 {
		if err := bw.WriteBits(bb.words[full]>>(bitBufferWordBits-rem), rem); err != nil {
			return err
		}
	}

	return bw.Close()
}

// PackBytes is Pack into a new byte slice.
func PackBytes(bb *BitBuffer) []byte {
	var buf bytes.Buffer
	buf.Grow(int(PackedSize(bb.size)))
	if err := Pack(&buf, bb); err != nil {
		panic(fmt.Errorf("BUG: bytes.Buffer write failed: %w", err))
	}
	return buf.Bytes()
}

// BitStream reads the data bits of a packed byte sequence, after the
// sentinel has been stripped.
type BitStream struct {
	br        *bitio.Reader
	remaining uint64
}

// Unpack locates the sentinel in the first byte of data and returns a
// BitStream positioned at the first data bit.  Data that is empty or whose
// first byte is zero has no sentinel and yields ErrMalformedBitstream.
func Unpack(data []byte) (*BitStream, error) {
	if len(data) == 0 {
		return nil, malformedf("no sentinel byte: input is empty")
	}

	skip := sentinelSize(data[0])
	if skip == 0 {
		return nil, malformedf("no sentinel bit in first byte")
	}

	br := bitio.NewReader(bytes.NewReader(data))
	if _, err := br.ReadBits(uint8(skip)); err != nil {
		return nil, malformedf("reading sentinel: %v", err)
	}

	return &BitStream{
		br:        br,
		remaining: uint64(len(data))*8 - uint64(skip),
	}, nil
}

// Remaining returns the number of data bits not yet read.
func (bs *BitStream) Remaining() uint64 {
	return bs.remaining
}

// ReadBit returns the next data bit, or io.EOF once every data bit is read.
func (bs *BitStream) ReadBit() (uint, error) {
	if bs.remaining == 0 {
		return 0, io.EOF
	}
	b, err := bs.br.ReadBool()
	if err != nil {
		return 0, err
	}
	bs.remaining--
	if b {
		return 1, nil
	}
	return 0, nil
}
