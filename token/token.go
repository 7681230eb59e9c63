// Package token implements the range-extended token coder of
// spec.md §4.3: it splits an unsigned 32-bit value into a small
// entropy-coded token (alphabet ≤ 512, so the rangecoder's M-slot
// table stays cheap) and a raw-bits suffix, the same split the
// original codebase's HybridUint encoding uses
// (crates/jxl-bitstream/src/hybrid_uint.rs in original_source).
package token

import (
	"math/bits"

	"github.com/gojxl/jxlcore/bitio"
	"github.com/gojxl/jxlcore/rangecoder"
)

// DirectMax is the largest value encoded as a literal token with no
// raw-bits suffix.
const DirectMax = 255

// TokenBase is the first token value used for split (token, raw-bits)
// encoding of values > DirectMax.
const TokenBase = 256

// Alphabet is the number of distinct token symbols: 256 direct values
// plus one split token per bit-length from 9 up to 32.
const Alphabet = TokenBase + (32 - 8)

// Split returns the (token, rawBits, rawWidth) triple for v, per
// spec.md §3: values ≤ 255 map to token=v with no raw bits; larger
// values are split at their most significant bit.
func Split(v uint32) (tok uint32, raw uint32, width int) {
	if v <= DirectMax {
		return v, 0, 0
	}
	n := bits.Len32(v) - 1 // floor(log2(v))
	tok = TokenBase + uint32(n-8)
	width = n
	raw = v & ((uint32(1) << uint(n)) - 1)
	return tok, raw, width
}

// Join reconstructs v from a decoded token and its raw bits, the
// inverse of Split.
func Join(tok uint32, raw uint32) uint32 {
	if tok <= DirectMax {
		return tok
	}
	n := (tok - TokenBase) + 8
	return (uint32(1) << uint(n)) | raw
}

// Encode range-codes the token stream for values, then appends the raw
// bits stream in forward order, per spec.md §4.3: the two sub-streams
// are never interleaved byte-by-byte. Returns the entropy-coded token
// bytes and the bit-packed raw-bits bytes as two separate slices; the
// caller (frame assembler) records both lengths in the frame header.
func Encode(values []uint32, dist *rangecoder.Distribution) (tokenBytes []byte, rawBytes []byte, err error) {
	tokens := make([]int, len(values))
	w := bitio.NewWriter()

	for i, v := range values {
		tok, raw, width := Split(v)
		tokens[i] = int(tok)
		if width > 0 {
			if werr := w.Write(raw, width); werr != nil {
				return nil, nil, werr
			}
		}
	}
	w.FlushToByteBoundary()

	tokenBytes, err = rangecoder.Encode(tokens, dist)
	if err != nil {
		return nil, nil, err
	}
	return tokenBytes, w.Bytes(), nil
}

// Decode reverses Encode: it range-decodes `count` tokens from
// tokenBytes, then walks them in forward order reading raw bits from
// rawBytes for every token above DirectMax, reconstructing the
// original value sequence.
func Decode(tokenBytes []byte, rawBytes []byte, count int, dist *rangecoder.Distribution) ([]uint32, error) {
	tokens, err := rangecoder.Decode(tokenBytes, count, dist)
	if err != nil {
		return nil, err
	}

	r := bitio.NewReader(rawBytes)
	values := make([]uint32, count)
	for i, tok := range tokens {
		t := uint32(tok)
		if t <= DirectMax {
			values[i] = t
			continue
		}
		n := (t - TokenBase) + 8
		raw, rerr := r.Read(int(n))
		if rerr != nil {
			return nil, rerr
		}
		values[i] = Join(t, raw)
	}
	return values, nil
}

// Histogram builds a raw token-alphabet histogram over values, for use
// as input to rangecoder.NewDistribution.
func Histogram(values []uint32) []uint32 {
	hist := make([]uint32, Alphabet)
	for _, v := range values {
		tok, _, _ := Split(v)
		hist[tok]++
	}
	return hist
}
