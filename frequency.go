package huffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// FrequencyEntry pairs a Symbol with its probability of occurrence.
type FrequencyEntry struct {
	// Symbol is InvalidSymbol only for entries describing internal tree
	// nodes; entries produced by Frequencies.Sorted always have one.
	Symbol Symbol

	// Probability is in [0, 1].
	Probability float64
}

// String returns a programmer-readable form of this entry.
func (fe FrequencyEntry) String() string {
	return fmt.Sprintf("{%d, %s}", fe.Symbol, formatProbability(fe.Probability))
}

var _ fmt.Stringer = FrequencyEntry{}

// Frequencies holds the number of occurrences of each Symbol in some input.
// The zero value describes an empty input.
type Frequencies struct {
	counts [NumSymbols]uint64
	total  uint64
}

// Analyze counts the symbols in data in a single pass.  Any byte above
// MaxSymbol aborts the analysis with an *InvalidCharacterError.  Empty data
// yields ErrEmptyInput.
func Analyze(data []byte) (Frequencies, error) {
	var f Frequencies
	for index, ch := range data {
		if Symbol(ch) > MaxSymbol {
			return Frequencies{}, &InvalidCharacterError{Offset: int64(index), Value: ch}
		}
		f.counts[ch]++
	}
	f.total = uint64(len(data))
	if f.total == 0 {
		return Frequencies{}, ErrEmptyInput
	}
	return f, nil
}

// MakeFrequencies constructs Frequencies from a count for each Symbol.  Any
// Symbol not represented in the list is assumed to have a count of 0.
func MakeFrequencies(counts []uint64) (Frequencies, error) {
	if len(counts) > NumSymbols {
		return Frequencies{}, fmt.Errorf("%d counts > %d symbols", len(counts), NumSymbols)
	}
	var f Frequencies
	for symbol, count := range counts {
		f.counts[symbol] = count
		f.total += count
	}
	if f.total == 0 {
		return Frequencies{}, ErrEmptyInput
	}
	return f, nil
}

// Count returns the number of occurrences of symbol.
func (f Frequencies) Count(symbol Symbol) uint64 {
	if !symbol.IsValid() {
		return 0
	}
	return f.counts[symbol]
}

// Total returns the total number of symbols counted.
func (f Frequencies) Total() uint64 {
	return f.total
}

// Distinct returns the number of symbols with a nonzero count.
func (f Frequencies) Distinct() int {
	var n int
	for _, count := range f.counts {
		if count != 0 {
			n++
		}
	}
	return n
}

// Probability returns Count(symbol) / Total(), or 0 if Total() is 0.
func (f Frequencies) Probability(symbol Symbol) float64 {
	if f.total == 0 {
		return 0
	}
	return float64(f.Count(symbol)) / float64(f.total)
}

// Sorted returns one entry per observed symbol, ordered by ascending
// probability and then by ascending symbol.
//
// If exactly one symbol was observed, a second entry with probability 0 is
// added for the next symbol up (wrapping MaxSymbol around to 0), since a tree
// with a single leaf cannot assign a code.  The result therefore has at least
// two entries for any non-empty input.
//
func (f Frequencies) Sorted() []FrequencyEntry {
	list := make(byProbability, 0, NumSymbols)
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if f.counts[symbol] != 0 {
			list = append(list, FrequencyEntry{symbol, f.Probability(symbol)})
		}
	}

	if len(list) == 1 {
		synthetic := list[0].Symbol + 1
		if list[0].Symbol == MaxSymbol {
			synthetic = 0
		}
		list = append(list, FrequencyEntry{synthetic, 0})
	}

	list.Sort()
	return list
}

// Dump writes a programmer-readable debugging dump of the sorted frequency
// list to the given writer.
func (f Frequencies) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Frequencies{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", f.total)
	for _, fe := range f.Sorted() {
		fmt.Fprintf(&buf, "\t%#v = %d / %s\n", fe.Symbol, f.Count(fe.Symbol), formatProbability(fe.Probability))
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type frequenciesJSON struct {
	Counts map[Symbol]uint64 `json:"counts"`
}

// MarshalJSON encodes the nonzero counts as {"counts":{"65":4,...}}.
func (f Frequencies) MarshalJSON() ([]byte, error) {
	raw := frequenciesJSON{Counts: make(map[Symbol]uint64, NumSymbols)}
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if count := f.counts[symbol]; count != 0 {
			raw.Counts[symbol] = count
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (f *Frequencies) UnmarshalJSON(data []byte) error {
	var raw frequenciesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTreeFile, err)
	}
	var tmp Frequencies
	for symbol, count := range raw.Counts {
		if !symbol.IsValid() {
			return fmt.Errorf("%w: symbol %d outside [0, %d]", ErrInvalidTreeFile, symbol, MaxSymbol)
		}
		tmp.counts[symbol] = count
		tmp.total += count
	}
	if tmp.total == 0 {
		return fmt.Errorf("%w: no symbols counted", ErrInvalidTreeFile)
	}
	*f = tmp
	return nil
}

var (
	_ json.Marshaler   = Frequencies{}
	_ json.Unmarshaler = (*Frequencies)(nil)
)

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

// type byProbability {{{

type byProbability []FrequencyEntry

func (list byProbability) Len() int {
	return len(list)
}

func (list byProbability) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byProbability) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Probability != b.Probability {
		return a.Probability < b.Probability
	}
	return a.Symbol < b.Symbol
}

func (list byProbability) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = byProbability(nil)

// }}}
