package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder holds the encoding table derived from a Huffman tree: one Code per
// Symbol that appears as a leaf.  It is immutable once initialized.
type Encoder struct {
	codes   [NumSymbols]Code
	minSize byte
	maxSize byte
}

// Init initializes this Encoder from the tree rooted at root.  Descending to
// a left child appends a 0 bit and descending to a right child appends a 1
// bit; each leaf's Symbol gets the path that reaches it.
//
// The root must be an internal node, which BuildTree guarantees.
//
func (e *Encoder) Init(root *Node) {
	assert.Assertf(root != nil, "Encoder.Init: nil root")
	assert.Assertf(!root.IsLeaf(), "Encoder.Init: root is a leaf")

	// Walk the tree with an explicit stack.  stackItem.x tracks where we
	// are at each internal node:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		node *Node
		path Code
		x    byte
	}

	var codes [NumSymbols]Code
	var minSize, maxSize byte
	var hasMinMax bool

	stack := make([]stackItem, 0, NumSymbols)

	processChild := func(child *Node, path Code) {
		if !child.IsLeaf() {
			stack = append(stack, stackItem{node: child, path: path})
			return
		}

		size := path.Size
		codes[child.symbol] = path
		if !hasMinMax {
			hasMinMax = true
			minSize = size
			maxSize = size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}
	}

	stack = append(stack, stackItem{node: root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(top.node.left, top.path.Append(0))
		case 1:
			processChild(top.node.right, top.path.Append(1))
		case 2:
			stack[len(stack)-1] = stackItem{}
			stack = stack[:len(stack)-1]
		}
	}

	*e = Encoder{
		codes:   codes,
		minSize: minSize,
		maxSize: maxSize,
	}
}

// Encode returns the Code for a Symbol.  The second result is false if the
// Symbol has no code in this table.
func (e Encoder) Encode(symbol Symbol) (Code, bool) {
	if !symbol.IsValid() {
		return Code{}, false
	}
	hc := e.codes[symbol]
	return hc, hc.Size != 0
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// Len returns the number of Symbols that have a code.
func (e Encoder) Len() int {
	var n int
	for _, hc := range e.codes {
		if hc.Size != 0 {
			n++
		}
	}
	return n
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, 0 for Symbols without a code.
func (e Encoder) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		out[symbol] = e.codes[symbol].Size
	}
	return out
}

// EncodedSize returns the number of data bits needed to encode input
// described by f, or false if some counted Symbol has no code.
func (e Encoder) EncodedSize(f Frequencies) (uint64, bool) {
	var n uint64
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		count := f.Count(symbol)
		if count == 0 {
			continue
		}
		hc := e.codes[symbol]
		if hc.Size == 0 {
			return 0, false
		}
		n += count * uint64(hc.Size)
	}
	return n, true
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.  Symbols without a code are omitted.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if hc := e.codes[symbol]; hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%#v) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
