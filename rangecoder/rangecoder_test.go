package rangecoder

import (
	"errors"
	"math/rand"
	"testing"
)

func buildHist(symbols []int, alphabet int) []uint32 {
	h := make([]uint32, alphabet)
	for _, s := range symbols {
		h[s]++
	}
	return h
}

func TestDistributionNormalizationInvariants(t *testing.T) {
	hist := []uint32{1, 0, 5, 100, 0, 3}
	dist, err := NewDistribution(hist, DefaultTableSize)
	if err != nil {
		t.Fatalf("NewDistribution: %v", err)
	}
	var sum uint64
	for i, f := range dist.Frequencies() {
		sum += uint64(f)
		if hist[i] > 0 && f == 0 {
			t.Fatalf("symbol %d has positive raw count but zero normalized frequency", i)
		}
	}
	if sum != uint64(DefaultTableSize) {
		t.Fatalf("frequencies sum to %d, want %d", sum, DefaultTableSize)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabets := []int{1, 2, 5, 37, 256, 512}

	for _, a := range alphabets {
		hist := make([]uint32, a)
		for i := range hist {
			hist[i] = uint32(rng.Intn(50) + 1)
		}
		dist, err := NewDistribution(hist, DefaultTableSize)
		if err != nil {
			t.Fatalf("alphabet %d: NewDistribution: %v", a, err)
		}

		for _, n := range []int{0, 1, 17, 500} {
			symbols := make([]int, n)
			for i := range symbols {
				symbols[i] = rng.Intn(a)
			}

			encoded, err := Encode(symbols, dist)
			if err != nil {
				t.Fatalf("alphabet %d n %d: Encode: %v", a, n, err)
			}
			decoded, err := Decode(encoded, n, dist)
			if err != nil {
				t.Fatalf("alphabet %d n %d: Decode: %v", a, n, err)
			}
			if len(decoded) != len(symbols) {
				t.Fatalf("alphabet %d n %d: length mismatch", a, n)
			}
			for i := range symbols {
				if decoded[i] != symbols[i] {
					t.Fatalf("alphabet %d n %d: symbol %d mismatch: got %d want %d", a, n, i, decoded[i], symbols[i])
				}
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	hist := buildHist([]int{0, 1, 2, 1, 0, 3, 3, 3, 2}, 4)
	dist, err := NewDistribution(hist, DefaultTableSize)
	if err != nil {
		t.Fatal(err)
	}
	symbols := []int{3, 1, 0, 2, 3, 3, 1}

	a, err := Encode(symbols, dist)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(symbols, dist)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic output at byte %d", i)
		}
	}
}

func TestSymbolOutOfRange(t *testing.T) {
	hist := []uint32{1, 1, 1}
	dist, err := NewDistribution(hist, DefaultTableSize)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Encode([]int{0, 1, 3}, dist); !errors.Is(err, ErrSymbolOutOfRange) {
		t.Fatalf("expected ErrSymbolOutOfRange, got %v", err)
	}
}

func TestTruncatedDecode(t *testing.T) {
	hist := []uint32{1, 1}
	dist, err := NewDistribution(hist, DefaultTableSize)
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := Encode([]int{0, 1, 0, 1, 0, 1, 0, 1}, dist)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(encoded[2:], 8, dist); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, err := Decode(nil, 1, dist); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for empty input, got %v", err)
	}
}

func TestInvalidDistributionSumMismatch(t *testing.T) {
	if _, err := NewFromFrequencies([]uint32{10, 20}, DefaultTableSize); !errors.Is(err, ErrInvalidDistribution) {
		t.Fatalf("expected ErrInvalidDistribution, got %v", err)
	}
}

func TestSingleSymbolAlphabet(t *testing.T) {
	dist, err := NewDistribution([]uint32{9}, DefaultTableSize)
	if err != nil {
		t.Fatal(err)
	}
	symbols := []int{0, 0, 0, 0, 0}
	encoded, err := Encode(symbols, dist)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded, len(symbols), dist)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range decoded {
		if s != 0 {
			t.Fatalf("symbol %d: got %d want 0", i, s)
		}
	}
}
