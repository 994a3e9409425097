package huffman

import (
	"bytes"
	"io"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffman")

// Codec is one encode/decode session.  Encode builds a fresh tree from its
// input and keeps it; Decode uses whatever tree the Codec holds.  A Codec is
// not safe for concurrent use.
type Codec struct {
	freqs   Frequencies
	sorted  []FrequencyEntry
	root    *Node
	encoder Encoder
	decoder Decoder
	stats   Stats
}

// Stats describes the most recent Encode or Decode.
type Stats struct {
	// InputBytes is the length of the input passed to the operation.
	InputBytes uint64

	// OutputBytes is the length of the produced output.
	OutputBytes uint64

	// DataBits is the number of code bits, excluding the sentinel.
	DataBits uint64

	// PaddingBits is the size of the sentinel, in [1, 8].
	PaddingBits uint64
}

// NewCodec returns a Codec whose tree is built from f, as if f had been
// produced by Analyze on the input that was encoded.
func NewCodec(f Frequencies) (*Codec, error) {
	c := new(Codec)
	if err := c.Init(f); err != nil {
		return nil, err
	}
	return c, nil
}

// Init (re)builds this Codec's tree from f.  Two Codecs initialized with
// equal Frequencies hold structurally identical trees.
func (c *Codec) Init(f Frequencies) error {
	if f.Total() == 0 {
		return ErrEmptyInput
	}

	sorted := f.Sorted()
	root := BuildTree(sorted)

	var e Encoder
	e.Init(root)

	var d Decoder
	d.Init(root)

	*c = Codec{
		freqs:   f,
		sorted:  sorted,
		root:    root,
		encoder: e,
		decoder: d,
	}
	return nil
}

// HasTree returns true iff this Codec holds a tree.
func (c *Codec) HasTree() bool {
	return c.root != nil
}

// Frequencies returns the counts the current tree was built from.
func (c *Codec) Frequencies() Frequencies {
	return c.freqs
}

// SortedList returns the sorted frequency list the current tree was built
// from.
func (c *Codec) SortedList() []FrequencyEntry {
	out := make([]FrequencyEntry, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// Root returns the root of the current tree, or nil.
func (c *Codec) Root() *Node {
	return c.root
}

// Encoder returns the encoding table of the current tree.
func (c *Codec) Encoder() Encoder {
	return c.encoder
}

// Stats returns statistics about the most recent operation.
func (c *Codec) Stats() Stats {
	return c.stats
}

// Encode builds a new tree from input, replacing any tree this Codec holds,
// and returns the packed codes of input in order.  Every byte of input must
// be in [0, MaxSymbol]; otherwise Encode fails with an *InvalidCharacterError
// before touching the current tree.  Empty input fails with ErrEmptyInput.
func (c *Codec) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodeTo(&buf, input); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo is Encode writing to w.
func (c *Codec) EncodeTo(w io.Writer, input []byte) error {
	f, err := Analyze(input)
	if err != nil {
		return err
	}
	if err := c.Init(f); err != nil {
		return err
	}

	n, ok := c.encoder.EncodedSize(f)
	if !ok {
		panic("BUG: tree is missing a code for an analyzed symbol")
	}

	var bb BitBuffer
	bb.Grow(n)
	for _, ch := range input {
		hc, _ := c.encoder.Encode(Symbol(ch))
		bb.AppendCode(hc)
	}

	c.stats = Stats{
		InputBytes:  uint64(len(input)),
		OutputBytes: PackedSize(bb.Len()),
		DataBits:    bb.Len(),
		PaddingBits: uint64(paddingSize(bb.Len())),
	}
	log.Debugf("encoding %d bytes as %d data bits + %d sentinel bits", c.stats.InputBytes, c.stats.DataBits, c.stats.PaddingBits)

	return Pack(w, &bb)
}

// Decode recovers the original bytes from encoded using the tree this Codec
// holds.  It fails with ErrNoTree if there is none, and with
// ErrMalformedBitstream if encoded does not walk the tree cleanly.
func (c *Codec) Decode(encoded []byte) ([]byte, error) {
	if c.root == nil {
		return nil, ErrNoTree
	}

	bs, err := Unpack(encoded)
	if err != nil {
		return nil, err
	}

	dataBits := bs.Remaining()
	out, err := c.decoder.Decode(make([]byte, 0, len(encoded)*2), bs)
	if err != nil {
		return nil, err
	}

	c.stats = Stats{
		InputBytes:  uint64(len(encoded)),
		OutputBytes: uint64(len(out)),
		DataBits:    dataBits,
		PaddingBits: uint64(len(encoded))*8 - dataBits,
	}
	log.Debugf("decoded %d data bits into %d bytes", c.stats.DataBits, c.stats.OutputBytes)
	return out, nil
}
