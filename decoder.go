package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Decoder walks a Huffman tree to turn data bits back into Symbols.
type Decoder struct {
	root *Node
}

// Init initializes this Decoder to walk the tree rooted at root.  The root
// must be an internal node.
func (d *Decoder) Init(root *Node) {
	assert.Assertf(root != nil, "Decoder.Init: nil root")
	assert.Assertf(!root.IsLeaf(), "Decoder.Init: root is a leaf")
	*d = Decoder{root: root}
}

// Decode consumes every remaining bit of bs, appending one byte to out for
// each leaf reached, and returns the extended slice.
//
// Starting at the root, a 0 bit moves to the left child and a 1 bit to the
// right child.  Reaching a leaf emits its Symbol and restarts at the root.
// The walk must end exactly at a leaf; bits that run out partway through a
// code yield ErrMalformedBitstream, along with the bytes decoded so far.
//
func (d Decoder) Decode(out []byte, bs *BitStream) ([]byte, error) {
	assert.Assertf(d.root != nil, "Decoder.Decode: not initialized")

	var consumed uint64
	walker := d.root
	for bs.Remaining() != 0 {
		bit, err := bs.ReadBit()
		if err != nil {
			return out, malformedf("reading data bit %d: %v", consumed, err)
		}
		consumed++

		next := walker.Child(bit)
		if next == nil {
			return out, malformedf("dead end at data bit %d", consumed-1)
		}
		walker = next

		if walker.IsLeaf() {
			out = append(out, byte(walker.symbol))
			walker = d.root
		}
	}

	if walker != d.root {
		return out, malformedf("data bits ran out partway through a code after %d bytes", len(out))
	}
	return out, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's tree to
// the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	if d.root == nil {
		buf.WriteString("\tnil\n")
	} else {
		fmt.Fprintf(&buf, "\tLeafCount() = %d\n", d.root.LeafCount())
		fmt.Fprintf(&buf, "\tInternalCount() = %d\n", d.root.InternalCount())
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
