// Package predict implements the predictive integer pipeline of
// spec.md §4.6: a per-channel gradient predictor over a raster-scan
// plane, zigzag-on-integers residual mapping, and the token/rangecoder
// wiring that turns a residual stream into entropy-coded bytes.
package predict

// Predictor predicts a sample from its causal raster-scan neighbors.
// The gradient predictor is the sole production implementation; the
// interface exists so the left/top/average/Paeth variants the original
// codebase explored can be added later without touching the bitstream
// layout, which fixes the predictor choice rather than encoding it.
type Predictor interface {
	Predict(left, top, topLeft, minSample, maxSample int32) int32
}

// GradientPredictor implements P = clamp(L+T-TL, min, max), spec.md
// §4.6's normative predictor.
type GradientPredictor struct{}

func (GradientPredictor) Predict(left, top, topLeft, minSample, maxSample int32) int32 {
	return clamp(left+top-topLeft, minSample, maxSample)
}

// SampleBounds returns the [min, max] integer domain for a given bit
// depth, per spec.md §4.6 ("decoder uses this to size the integer
// domain and select min/max clamp bounds").
func SampleBounds(bitDepth int) (min, max int32) {
	return 0, int32(1<<uint(bitDepth)) - 1
}

// ChromaBounds returns the [-max, max] domain a Co/Cg plane produced
// by colorspace.ForwardYCoCg occupies at a given bit depth: Co = R-B
// and Cg = G-t are differences of two samples in [0, 2^bitDepth-1], so
// each is bounded in magnitude by max but legitimately negative, unlike
// a raw or luma sample.
func ChromaBounds(bitDepth int) (min, max int32) {
	m := int32(1<<uint(bitDepth)) - 1
	return -m, m
}
