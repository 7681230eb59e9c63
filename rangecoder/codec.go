package rangecoder

// renormShift is R in spec.md §4.2: the renormalization constant. It
// MUST be exactly 2^8 — the single most error-prone constant in the
// whole core, per the spec's own warning, since the renormalization
// threshold is f[s]·(M<<8), not f[s]·M or f[s]<<8 alone.
const renormShift = 8

// Encode range-codes symbols under dist, processing them in reverse
// order as required by the LIFO structure of the coder (spec.md §4.2).
// The returned byte stream is self-contained: its last four bytes are
// the final encoder state, and Decode consumes bytes from the end of
// the stream toward the beginning.
func Encode(symbols []int, dist *Distribution) ([]byte, error) {
	m := dist.m
	// The state lives in [M·M, M·M·2^8): that is the interval the
	// f[s]·(M<<8) renormalization threshold keeps it in, so the encoder
	// starts at its lower bound and Decode refills while x < M·M.
	x := m * m

	// emitted accumulates renormalization bytes in the order produced,
	// i.e. newest-symbol-first; Decode walks this slice from the tail.
	emitted := make([]byte, 0, len(symbols)/2+4)

	for i := len(symbols) - 1; i >= 0; i-- {
		s := symbols[i]
		if s < 0 || s >= len(dist.freq) {
			return nil, ErrSymbolOutOfRange
		}
		f := dist.freq[s]
		threshold := uint64(f) * (uint64(m) << renormShift)
		for uint64(x) >= threshold {
			emitted = append(emitted, byte(x))
			x >>= 8
		}
		x = (x/f)*m + (x % f) + dist.cum[s]
	}

	out := emitted
	out = append(out, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	return out, nil
}

// Decode recovers `count` symbols from data, which must have been
// produced by Encode against the same Distribution.
func Decode(data []byte, count int, dist *Distribution) ([]int, error) {
	if count == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	m := dist.m

	tail := len(data) - 4
	x := uint32(data[tail])<<24 | uint32(data[tail+1])<<16 | uint32(data[tail+2])<<8 | uint32(data[tail+3])

	readPos := tail // next renorm byte, if any, sits at readPos-1
	symbols := make([]int, count)

	for i := 0; i < count; i++ {
		slot := x % m
		s := dist.reverse[slot]
		symbols[i] = s

		x = dist.freq[s]*(x/m) + slot - dist.cum[s]

		for x < m*m {
			readPos--
			if readPos < 0 {
				return nil, ErrTruncated
			}
			x = (x << 8) | uint32(data[readPos])
		}
	}

	return symbols, nil
}
