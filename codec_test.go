package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

const (
	randSeed   = 0x5a025ca11825a5e7
	iterations = 50
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(randSeed))
}

// randomInput returns length bytes drawn from alphabetSize distinct symbols,
// skewed so that the symbols get unequal counts.
func randomInput(rng *rand.Rand, alphabetSize int, length int) []byte {
	alphabet := rng.Perm(NumSymbols)[:alphabetSize]
	out := make([]byte, length)
	for i := range out {
		k := rng.Intn(rng.Intn(alphabetSize) + 1)
		out[i] = byte(alphabet[k])
	}
	return out
}

func TestCodec_Example(t *testing.T) {
	var c Codec
	encoded, err := c.Encode([]byte("AAAAB"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if expect := []byte{0x3e}; !bytes.Equal(expect, encoded) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, encoded)
	}

	expectStats := Stats{InputBytes: 5, OutputBytes: 1, DataBits: 5, PaddingBits: 3}
	if actual := c.Stats(); actual != expectStats {
		t.Errorf("wrong stats:\n\texpect: %+v\n\tactual: %+v", expectStats, actual)
	}

	decoded, err := c.Decode([]byte{0x3e})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if expect := "AAAAB"; string(decoded) != expect {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", expect, decoded)
	}
}

func TestCodec_Encode(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect []byte
	}

	testData := [...]testRow{
		// B="0" A="1"; 8 data bits get a whole sentinel byte
		{name: "byte aligned", input: "AAAAAAAB", expect: []byte{0x01, 0xfe}},
		// '{'="0" 'z'="1"
		{name: "single symbol", input: "zzz", expect: []byte{0x0f}},
		// 0="0" 127="1"
		{name: "single top symbol", input: "\x7f\x7f", expect: []byte{0x07}},
		// C="0" A="10" B="11"
		{name: "tie", input: "ABCC", expect: []byte{0x6c}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var c Codec
			encoded, err := c.Encode([]byte(row.input))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(row.expect, encoded) {
				t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", row.expect, encoded)
			}
			decoded, err := c.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if string(decoded) != row.input {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", row.input, decoded)
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := newTestRand()
	for iteration := 0; iteration < iterations; iteration++ {
		input := randomInput(rng, 1+rng.Intn(NumSymbols), 1+rng.Intn(20000))

		var c Codec
		encoded, err := c.Encode(input)
		if err != nil {
			t.Fatalf("iteration %d: Encode failed: %v", iteration, err)
		}
		decoded, err := c.Decode(encoded)
		if err != nil {
			t.Fatalf("iteration %d: Decode failed: %v", iteration, err)
		}
		if !bytes.Equal(input, decoded) {
			t.Errorf("iteration %d: round trip mismatch: %d bytes in, %d bytes out", iteration, len(input), len(decoded))
		}
	}
}

func TestCodec_RoundTripAllSymbols(t *testing.T) {
	input := make([]byte, 0, NumSymbols*(NumSymbols+1)/2)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		input = append(input, bytes.Repeat([]byte{byte(symbol)}, symbol+1)...)
	}

	var c Codec
	encoded, err := c.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if n := c.Encoder().Len(); n != NumSymbols {
		t.Errorf("expected %d codes, got %d", NumSymbols, n)
	}
	decoded, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(input, decoded) {
		t.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(input), len(decoded))
	}
}

func TestCodec_RebuiltTree(t *testing.T) {
	input := randomInput(newTestRand(), 40, 5000)

	var encoder Codec
	encoded, err := encoder.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	raw, err := encoder.Frequencies().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	var f Frequencies
	if err := f.UnmarshalJSON(raw); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}

	decoder, err := NewCodec(f)
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	decoded, err := decoder.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(input, decoded) {
		t.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(input), len(decoded))
	}
}

func TestCodec_Errors(t *testing.T) {
	var c Codec
	if _, err := c.Decode([]byte{0x3e}); err != ErrNoTree {
		t.Errorf("expected ErrNoTree, got %v", err)
	}
	if _, err := c.Encode(nil); err != ErrEmptyInput {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := NewCodec(Frequencies{}); err != ErrEmptyInput {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	if _, err := c.Encode([]byte("AAAAB")); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	root := c.Root()

	if _, err := c.Encode([]byte("AB\xc3")); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("expected ErrInvalidCharacter, got %v", err)
	}
	if c.Root() != root {
		t.Error("failed Encode replaced the tree")
	}

	for _, data := range [][]byte{nil, {0x00}, {0x00, 0x3e}} {
		if _, err := c.Decode(data); !errors.Is(err, ErrMalformedBitstream) {
			t.Errorf("%x: expected ErrMalformedBitstream, got %v", data, err)
		}
	}
}

func TestCodec_SortedList(t *testing.T) {
	var c Codec
	if _, err := c.Encode([]byte("bacab")); err != nil {
		t.Fatal(err)
	}
	list := c.SortedList()
	if len(list) != 3 || list[0].Symbol != 'c' {
		t.Fatalf("wrong list: %v", list)
	}
	list[0].Symbol = 'x'
	if c.SortedList()[0].Symbol != 'c' {
		t.Error("SortedList returned internal storage")
	}
}
