package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter matches any *InvalidCharacterError via errors.Is.
	ErrInvalidCharacter = errors.New("huffman: invalid character")

	// ErrEmptyInput is returned when asked to analyze or encode zero bytes.
	// There is no Huffman tree for an empty alphabet.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrMalformedBitstream is returned (wrapped) when encoded bytes cannot
	// be decoded with the current tree.
	ErrMalformedBitstream = errors.New("huffman: malformed bitstream")

	// ErrNoTree is returned by Codec.Decode when no tree has been built.
	ErrNoTree = errors.New("huffman: codec has no tree")

	// ErrInvalidTreeFile is returned (wrapped) when a tree file cannot be
	// turned back into Frequencies.
	ErrInvalidTreeFile = errors.New("huffman: invalid tree file")
)

// InvalidCharacterError reports an input byte outside of [0, MaxSymbol].
type InvalidCharacterError struct {
	Offset int64
	Value  byte
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("huffman: invalid character 0x%02x at offset %d: outside [0, %d]", e.Value, e.Offset, MaxSymbol)
}

// Is makes errors.Is(err, ErrInvalidCharacter) work.
func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// IOError reports a failure to open, read, write, or close a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("huffman: failed to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func malformedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedBitstream, fmt.Sprintf(format, args...))
}

var (
	_ error = (*InvalidCharacterError)(nil)
	_ error = (*IOError)(nil)
)
