package huffman

import (
	"strconv"
)

// Symbol represents a symbol in the 7-bit ASCII alphabet.  Negative symbols
// and symbols above MaxSymbol are not valid.
type Symbol int32

// NumSymbols is the size of the alphabet.
const NumSymbols = 128

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(NumSymbols - 1)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.  Internal tree nodes carry it.
const InvalidSymbol = Symbol(-1)

// IsValid returns true iff s is in [0, MaxSymbol].
func (s Symbol) IsValid() bool {
	return s >= 0 && s <= MaxSymbol
}

// GoString returns a character literal for printable symbols and the decimal
// value otherwise.
func (s Symbol) GoString() string {
	if s >= 0x20 && s < 0x7f {
		return strconv.QuoteRune(rune(s))
	}
	return strconv.Itoa(int(s))
}
