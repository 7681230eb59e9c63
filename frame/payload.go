package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/gojxl/jxlcore/predict"
	"github.com/gojxl/jxlcore/rangecoder"
	"github.com/gojxl/jxlcore/token"
	"github.com/gojxl/jxlcore/transform"
)

// channelPayload is the normalized wire shape of spec.md §6's
// per-channel payload: "alphabet size A (16 bits), frequency table
// (A × 16 bits, each < M), symbol count N (32 bits), token-stream
// length L (32 bits), L bytes of token stream, then remaining bytes
// are raw bits". Frequencies is the distribution's normalized table
// (each entry at most the table total M, which equals M only when a
// single symbol is used), not a raw
// histogram, so the decoder rebuilds the identical Distribution with
// no renormalization step.
type channelPayload struct {
	Frequencies []uint32
	TokenBytes  []byte
	RawBytes    []byte
	Count       int
}

// marshalChannelPayload serializes p exactly per the §6 per-channel
// payload layout.
func marshalChannelPayload(p *channelPayload) []byte {
	buf := make([]byte, 0, 2+len(p.Frequencies)*2+8+len(p.TokenBytes)+len(p.RawBytes))

	var u16 [2]byte
	binary.BigEndian.PutUint16(u16[:], uint16(len(p.Frequencies)))
	buf = append(buf, u16[:]...)

	for _, f := range p.Frequencies {
		binary.BigEndian.PutUint16(u16[:], uint16(f))
		buf = append(buf, u16[:]...)
	}

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(p.Count))
	buf = append(buf, u32[:]...)

	binary.BigEndian.PutUint32(u32[:], uint32(len(p.TokenBytes)))
	buf = append(buf, u32[:]...)

	buf = append(buf, p.TokenBytes...)
	buf = append(buf, p.RawBytes...)
	return buf
}

// unmarshalChannelPayload reverses marshalChannelPayload. data must be
// exactly the payload slice recorded by its own length field in the
// frame header (the trailing raw-bits section has no explicit length
// of its own: "remaining bytes are raw bits until the payload length
// is exhausted").
func unmarshalChannelPayload(data []byte) (*channelPayload, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("frame: %w: channel payload shorter than alphabet-size field", ErrTruncated)
	}
	a := int(binary.BigEndian.Uint16(data[0:2]))
	pos := 2

	if len(data) < pos+a*2+8 {
		return nil, fmt.Errorf("frame: %w: channel payload shorter than frequency table + header fields", ErrTruncated)
	}
	freq := make([]uint32, a)
	for i := 0; i < a; i++ {
		freq[i] = uint32(binary.BigEndian.Uint16(data[pos : pos+2]))
		pos += 2
	}

	count := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4
	l := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4

	if len(data) < pos+l {
		return nil, fmt.Errorf("frame: %w: channel payload shorter than declared token-stream length", ErrTruncated)
	}
	tokenBytes := data[pos : pos+l]
	pos += l
	rawBytes := data[pos:]

	return &channelPayload{Frequencies: freq, TokenBytes: tokenBytes, RawBytes: rawBytes, Count: count}, nil
}

// encodeIntegerStream range-extended-token-encodes a signed 32-bit
// value stream (lossy DC diffs and AC coefficients): values are
// mapped to unsigned symbols via the same zigzag-on-integers scheme
// spec.md §4.6 defines for prediction residuals (predict.ZigzagSigned
// is reused as-is, since the mapping is generic to any signed-integer
// stream, not specific to prediction).
func encodeIntegerStream(values []int32) (*channelPayload, error) {
	symbols := make([]uint32, len(values))
	for i, v := range values {
		symbols[i] = predict.ZigzagSigned(v)
	}

	hist := token.Histogram(symbols)
	dist, err := rangecoder.NewDistribution(hist, rangecoder.DefaultTableSize)
	if err != nil {
		return nil, err
	}

	tokenBytes, rawBytes, err := token.Encode(symbols, dist)
	if err != nil {
		return nil, err
	}

	return &channelPayload{
		Frequencies: dist.Frequencies(),
		TokenBytes:  tokenBytes,
		RawBytes:    rawBytes,
		Count:       len(symbols),
	}, nil
}

// decodeIntegerStream reverses encodeIntegerStream.
func decodeIntegerStream(p *channelPayload) ([]int32, error) {
	dist, err := rangecoder.NewFromFrequencies(p.Frequencies, rangecoder.DefaultTableSize)
	if err != nil {
		return nil, err
	}
	symbols, err := token.Decode(p.TokenBytes, p.RawBytes, p.Count, dist)
	if err != nil {
		return nil, err
	}
	values := make([]int32, len(symbols))
	for i, s := range symbols {
		values[i] = predict.InverseZigzagSigned(s)
	}
	return values, nil
}

// encodeQuantMapPayload range-codes the per-block adaptive-quant scale
// levels under a distribution whose alphabet is exactly
// transform.ScaleLevelCount wide, per the Open Question decision
// recorded in DESIGN.md (spec.md §4.7 calls for "a single 16-symbol
// distribution"): every level is a direct token (§4.3, value ≤
// token.DirectMax) so RawBytes is always empty, but the same
// token.Encode/token.Decode machinery as every other channel payload
// is reused rather than hand-rolling a second entropy path.
func encodeQuantMapPayload(levels []int) (*channelPayload, error) {
	hist := make([]uint32, transform.ScaleLevelCount)
	symbols := make([]uint32, len(levels))
	for i, lvl := range levels {
		symbols[i] = uint32(lvl)
		hist[lvl]++
	}

	dist, err := rangecoder.NewDistribution(hist, rangecoder.DefaultTableSize)
	if err != nil {
		return nil, err
	}
	tokenBytes, rawBytes, err := token.Encode(symbols, dist)
	if err != nil {
		return nil, err
	}

	return &channelPayload{
		Frequencies: dist.Frequencies(),
		TokenBytes:  tokenBytes,
		RawBytes:    rawBytes,
		Count:       len(symbols),
	}, nil
}

// decodeQuantMapPayload reverses encodeQuantMapPayload.
func decodeQuantMapPayload(p *channelPayload) ([]int, error) {
	dist, err := rangecoder.NewFromFrequencies(p.Frequencies, rangecoder.DefaultTableSize)
	if err != nil {
		return nil, err
	}
	symbols, err := token.Decode(p.TokenBytes, p.RawBytes, p.Count, dist)
	if err != nil {
		return nil, err
	}
	levels := make([]int, len(symbols))
	for i, s := range symbols {
		levels[i] = int(s)
	}
	return levels, nil
}

// encodedChannelToPayload and payloadToEncodedChannel convert between
// predict.EncodedChannel (the lossless per-channel pipeline's own
// return/argument shape) and this package's wire-layout channelPayload.
// The two structs carry the same fields under different names; frame
// owns the wire format, predict owns the predictive pipeline, and
// keeping them as distinct types avoids predict importing frame's
// layout concerns (or vice versa).
func encodedChannelToPayload(enc *predict.EncodedChannel) *channelPayload {
	return &channelPayload{
		Frequencies: enc.Frequencies,
		TokenBytes:  enc.TokenBytes,
		RawBytes:    enc.RawBytes,
		Count:       enc.Count,
	}
}

func payloadToEncodedChannel(p *channelPayload) *predict.EncodedChannel {
	return &predict.EncodedChannel{
		Frequencies: p.Frequencies,
		TokenBytes:  p.TokenBytes,
		RawBytes:    p.RawBytes,
		Count:       p.Count,
	}
}
