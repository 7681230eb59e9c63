// Package rangecoder implements the adaptive-distribution range coder
// (an asymmetric numeral system) specified in spec.md §4.2: a 32-bit
// state register, byte-granular renormalization, and a table-driven
// normalized distribution shared between encoder and decoder.
//
// The design mirrors the table-driven, per-context state shape of the
// teacher's jpeg2000/mqc binary arithmetic coder (a single state byte
// per context, driven off a fixed probability table) generalized to a
// multi-symbol distribution with explicit frequency/cumulative tables,
// the way original_source's jxl-bitstream/ans.rs structures it.
package rangecoder

import "math"

// MaxAlphabet is the largest alphabet size this coder supports (spec.md §3).
const MaxAlphabet = 512

// DefaultTableSize is M, the fixed power-of-two total the normalized
// frequency table sums to. spec.md §3 allows 2^12 or 2^14, but this
// coder's state register (`codec.go`'s `x`) is a uint32 renormalized
// against a threshold of f[s]·(M<<8): with M=2^14 that threshold can
// reach 2^36 and overflow the register, so only M=2^12 is sound here.
// Every caller in this module uses DefaultTableSize; there is no
// larger-table option to select.
const DefaultTableSize = 1 << 12

// Distribution is a normalized frequency table over an alphabet of at
// most MaxAlphabet symbols, built once per sequence and shared by the
// encoder and decoder that process that sequence.
type Distribution struct {
	m       uint32
	freq    []uint32 // f[i], normalized frequency of symbol i
	cum     []uint32 // c[i] = sum_{j<i} f[j]
	reverse []int    // length m; reverse[slot] = symbol owning that slot
}

// TableSize returns M, the fixed total the frequencies sum to.
func (d *Distribution) TableSize() uint32 { return d.m }

// AlphabetSize returns the number of symbols in the distribution.
func (d *Distribution) AlphabetSize() int { return len(d.freq) }

// Frequencies returns the normalized frequency table, f[i] for each
// symbol i. The returned slice must not be mutated.
func (d *Distribution) Frequencies() []uint32 { return d.freq }

// NewDistribution normalizes a raw histogram into a Distribution with
// total M, following the algorithm in spec.md §4.2:
//
//  1. f[i] = round(h[i]*M/T)
//  2. any i with h[i]>0 and f[i]=0 is promoted to 1, deducting the unit
//     from the (then) largest entry
//  3. the residual M - Σf is added to or subtracted from the single
//     largest entry
//
// The postcondition Σf = M and (h[i]>0 ⇒ f[i]≥1) holds on success.
func NewDistribution(hist []uint32, m uint32) (*Distribution, error) {
	a := len(hist)
	if a == 0 || a > MaxAlphabet {
		return nil, ErrInvalidDistribution
	}

	freq, err := normalize(hist, m)
	if err != nil {
		return nil, err
	}
	return newFromFrequencies(freq, m)
}

// NewFromFrequencies builds a Distribution directly from an already
// normalized frequency table (used when the table itself was
// deserialized from a bitstream rather than derived from a histogram).
// The caller is responsible for ensuring Σfreq == m.
func NewFromFrequencies(freq []uint32, m uint32) (*Distribution, error) {
	if len(freq) == 0 || len(freq) > MaxAlphabet {
		return nil, ErrInvalidDistribution
	}
	var sum uint64
	for _, f := range freq {
		sum += uint64(f)
	}
	if sum != uint64(m) {
		return nil, ErrInvalidDistribution
	}
	return newFromFrequencies(freq, m)
}

func newFromFrequencies(freq []uint32, m uint32) (*Distribution, error) {
	cum := make([]uint32, len(freq))
	reverse := make([]int, m)
	var c uint32
	for i, f := range freq {
		cum[i] = c
		for k := uint32(0); k < f; k++ {
			reverse[c+k] = i
		}
		c += f
	}
	if c != m {
		return nil, ErrInvalidDistribution
	}
	return &Distribution{m: m, freq: freq, cum: cum, reverse: reverse}, nil
}

func normalize(hist []uint32, m uint32) ([]uint32, error) {
	a := len(hist)
	freq := make([]uint32, a)

	var total uint64
	for _, h := range hist {
		total += uint64(h)
	}

	if total == 0 {
		base := m / uint32(a)
		if base == 0 {
			return nil, ErrInvalidDistribution
		}
		for i := range freq {
			freq[i] = base
		}
		freq[0] += m - base*uint32(a)
		return freq, nil
	}

	for i, h := range hist {
		freq[i] = uint32(math.Round(float64(h) * float64(m) / float64(total)))
	}

	// (a) promote any symbol with a positive raw count but a zero
	// normalized frequency, deducting the unit from the largest entry.
	for i, h := range hist {
		if h > 0 && freq[i] == 0 {
			freq[i] = 1
			j := argmaxExcluding(freq, i)
			if j < 0 || freq[j] == 0 {
				return nil, ErrInvalidDistribution
			}
			freq[j]--
		}
	}

	// (b) correct the rounding residual against the single largest entry.
	var sum int64
	for _, f := range freq {
		sum += int64(f)
	}
	residual := int64(m) - sum
	if residual != 0 {
		j := argmaxExcluding(freq, -1)
		nv := int64(freq[j]) + residual
		if nv < 1 {
			return nil, ErrInvalidDistribution
		}
		freq[j] = uint32(nv)
	}

	return freq, nil
}

func argmaxExcluding(freq []uint32, exclude int) int {
	best := -1
	for i, f := range freq {
		if i == exclude {
			continue
		}
		if best == -1 || f > freq[best] {
			best = i
		}
	}
	return best
}
