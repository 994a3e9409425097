package huffman

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestAnalyze(t *testing.T) {
	f, err := Analyze([]byte("AAAAB"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if f.Total() != 5 {
		t.Errorf("expected total 5, got %d", f.Total())
	}
	if f.Count('A') != 4 || f.Count('B') != 1 || f.Count('C') != 0 {
		t.Errorf("wrong counts: A=%d B=%d C=%d", f.Count('A'), f.Count('B'), f.Count('C'))
	}
	if f.Distinct() != 2 {
		t.Errorf("expected 2 distinct symbols, got %d", f.Distinct())
	}

	expect := []FrequencyEntry{{'B', 0.2}, {'A', 0.8}}
	if actual := f.Sorted(); !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong list:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}

func TestAnalyze_InvalidCharacter(t *testing.T) {
	_, err := Analyze([]byte("ab\x80c\xff"))
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("expected ErrInvalidCharacter, got %v", err)
	}

	var ice *InvalidCharacterError
	if !errors.As(err, &ice) {
		t.Fatalf("expected *InvalidCharacterError, got %T", err)
	}
	if ice.Offset != 2 || ice.Value != 0x80 {
		t.Errorf("expected offset 2 value 0x80, got offset %d value 0x%02x", ice.Offset, ice.Value)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	if _, err := Analyze(nil); err != ErrEmptyInput {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := MakeFrequencies([]uint64{0, 0}); err != ErrEmptyInput {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestFrequencies_Sorted(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect []FrequencyEntry
	}

	testData := [...]testRow{
		{
			name:   "ties by symbol",
			input:  "bacab",
			expect: []FrequencyEntry{{'c', 0.2}, {'a', 0.4}, {'b', 0.4}},
		},
		{
			name:   "single symbol",
			input:  "zzz",
			expect: []FrequencyEntry{{'{', 0}, {'z', 1}},
		},
		{
			name:   "single symbol at the top",
			input:  "\x7f",
			expect: []FrequencyEntry{{0, 0}, {MaxSymbol, 1}},
		},
		{
			name:   "single NUL",
			input:  "\x00\x00",
			expect: []FrequencyEntry{{1, 0}, {0, 1}},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			f, err := Analyze([]byte(row.input))
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if actual := f.Sorted(); !reflect.DeepEqual(row.expect, actual) {
				t.Errorf("wrong list:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
		})
	}
}

func TestFrequencies_ProbabilityMass(t *testing.T) {
	rng := newTestRand()
	for iteration := 0; iteration < iterations; iteration++ {
		input := randomInput(rng, 1+rng.Intn(NumSymbols), 1+rng.Intn(10000))
		f, err := Analyze(input)
		if err != nil {
			t.Fatalf("iteration %d: %v", iteration, err)
		}

		var sum float64
		list := f.Sorted()
		for i, fe := range list {
			sum += fe.Probability
			if i > 0 && !byProbability(list).Less(i-1, i) {
				t.Errorf("iteration %d: entries %v and %v out of order", iteration, list[i-1], fe)
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("iteration %d: probabilities sum to %v", iteration, sum)
		}
	}
}

func TestFrequencies_Dump(t *testing.T) {
	f, err := Analyze([]byte("AAAAB"))
	if err != nil {
		t.Fatal(err)
	}

	expectDump := strings.Join([]string{
		"Frequencies{\n",
		"\tTotal() = 5\n",
		"\t'B' = 1 / 0.2\n",
		"\t'A' = 4 / 0.8\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = f.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestFrequencies_MarshalJSON(t *testing.T) {
	f, err := Analyze([]byte("AAAAB"))
	if err != nil {
		t.Fatal(err)
	}

	raw, err := json.Marshal(f)
	if err != nil {
		t.Errorf("json.Marshal failed: %v", err)
	}
	expectJSON := `{"counts":{"65":4,"66":1}}`
	actualJSON := string(raw)
	if expectJSON != actualJSON {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectJSON, actualJSON)
	}
}

func TestFrequencies_UnmarshalJSON(t *testing.T) {
	var f Frequencies
	if err := json.Unmarshal([]byte(`{"counts":{"65":4,"66":1}}`), &f); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if f.Total() != 5 || f.Count('A') != 4 || f.Count('B') != 1 {
		t.Errorf("wrong counts: total=%d A=%d B=%d", f.Total(), f.Count('A'), f.Count('B'))
	}

	for _, raw := range []string{
		`{"counts":{"128":1}}`,
		`{"counts":{"-1":1}}`,
		`{"counts":{}}`,
		`{"counts":{"65":0}}`,
		`[1,2,3]`,
	} {
		var g Frequencies
		if err := g.UnmarshalJSON([]byte(raw)); !errors.Is(err, ErrInvalidTreeFile) {
			t.Errorf("%s: expected ErrInvalidTreeFile, got %v", raw, err)
		}
	}
}
