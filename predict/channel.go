package predict

import (
	"github.com/gojxl/jxlcore/rangecoder"
	"github.com/gojxl/jxlcore/token"
)

// EncodedChannel is the wire-ready payload for one predictively-coded
// channel: the distribution's normalized frequency table (each entry
// at most the table total, so it fits the 16-bit wire field, and the
// decoder rebuilds the identical table with no renormalization step),
// plus the
// token-coder's two sub-streams.
type EncodedChannel struct {
	Frequencies []uint32
	TokenBytes  []byte
	RawBytes    []byte
	Count       int
}

// EncodeChannel runs the full lossless per-channel pipeline of
// spec.md §4.6: predict in raster order, zigzag-map the residuals to
// unsigned symbols, build one distribution for the channel (§4.3's
// "one distribution per channel is acceptable" choice), and
// range-code the resulting token stream. minS/maxS is the plane's own
// sample domain (see ResidualsForPlane); it is not necessarily
// [0, 2^bitDepth-1] for a chroma plane.
func EncodeChannel(plane []int32, width, height int, minS, maxS int32, p Predictor) (*EncodedChannel, error) {
	residuals := ResidualsForPlane(plane, width, height, minS, maxS, p)
	symbols := SymbolsForResiduals(residuals)

	hist := token.Histogram(symbols)
	dist, err := rangecoder.NewDistribution(hist, rangecoder.DefaultTableSize)
	if err != nil {
		return nil, err
	}

	tokBytes, rawBytes, err := token.Encode(symbols, dist)
	if err != nil {
		return nil, err
	}

	return &EncodedChannel{
		Frequencies: dist.Frequencies(),
		TokenBytes:  tokBytes,
		RawBytes:    rawBytes,
		Count:       len(symbols),
	}, nil
}

// DecodeChannel reverses EncodeChannel, reconstructing the sample
// plane from the coded payload. minS/maxS must match the domain used
// to encode it.
func DecodeChannel(enc *EncodedChannel, width, height int, minS, maxS int32, p Predictor) ([]int32, error) {
	dist, err := rangecoder.NewFromFrequencies(enc.Frequencies, rangecoder.DefaultTableSize)
	if err != nil {
		return nil, err
	}

	symbols, err := token.Decode(enc.TokenBytes, enc.RawBytes, enc.Count, dist)
	if err != nil {
		return nil, err
	}

	residuals := ResidualsForSymbols(symbols)
	return ReconstructPlane(residuals, width, height, minS, maxS, p)
}
