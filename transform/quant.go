package transform

import "math"

// QualityScale computes f(q), the monotone decreasing quality-to-scale
// function of spec.md §4.4: f(90)=1.0, f(50)=2.0, f(100)=0.3, linear on
// each side of q=90. q is clamped to [1,100] first.
func QualityScale(q int) float64 {
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	fq := float64(q)
	if fq <= 90 {
		return 1.0 + (90-fq)/40.0
	}
	return 1.0 - 0.7*(fq-90)/10.0
}

// Quantize computes Q[i] = round(coeffs[i] / (tab[i] * scale * g)) for
// every coefficient, per spec.md §4.4 step 4. scale is f(q); g is the
// block's adaptive step-scale. A quotient that rounds to zero is left
// as zero.
func Quantize(coeffs Block, tab [BlockLen]int, scale, g float64) CoeffBlock {
	var out CoeffBlock
	for i := 0; i < BlockLen; i++ {
		step := float64(tab[i]) * scale * g
		out[i] = int16(clamp(math.Round(coeffs[i]/step), math.MinInt16, math.MaxInt16))
	}
	return out
}

// Dequantize reverses Quantize: coeffs[i] = Q[i] * tab[i] * scale * g.
func Dequantize(q CoeffBlock, tab [BlockLen]int, scale, g float64) Block {
	var out Block
	for i := 0; i < BlockLen; i++ {
		step := float64(tab[i]) * scale * g
		out[i] = float64(q[i]) * step
	}
	return out
}

// energyLowThreshold and energyHighThreshold bound the piecewise-linear
// complexity-to-scale mapping of spec.md §4.4 step 3. Their exact
// values are implementation-chosen tuning constants (spec.md §10 Open
// Questions); these reproduce flat regions coarsening and edges staying
// sharp at typical 8-bit pixel block magnitudes.
const (
	energyLowThreshold  = 8.0
	energyHighThreshold = 40.0
	scaleFlat           = 1.5
	scaleEdge           = 0.7
)

// BlockEnergy computes e = sqrt(mean(B̂[1:]²)), the local AC energy
// spec.md §4.4 step 3 uses to derive the adaptive-quant scale.
func BlockEnergy(coeffs Block) float64 {
	var sum float64
	for i := 1; i < BlockLen; i++ {
		sum += coeffs[i] * coeffs[i]
	}
	return math.Sqrt(sum / float64(BlockLen-1))
}

// AdaptiveScale maps AC energy e to the per-block step-scale g ∈
// [0.5, 2.0]: flat (low-energy) blocks get a coarser scale (1.5),
// high-energy edge blocks get a finer scale (0.7), with linear
// interpolation between the thresholds.
func AdaptiveScale(e float64) float64 {
	if e <= energyLowThreshold {
		return scaleFlat
	}
	if e >= energyHighThreshold {
		return scaleEdge
	}
	t := (e - energyLowThreshold) / (energyHighThreshold - energyLowThreshold)
	return scaleFlat + t*(scaleEdge-scaleFlat)
}

// ScaleLevelCount is the adaptive-quant map's alphabet size: spec.md
// §4.7 token-codes the map with "a single 16-symbol distribution", so
// g is discretized into exactly 16 levels rather than stored as an
// arbitrary byte, keeping every map symbol a direct token (§4.3) with
// no raw-bits suffix.
const ScaleLevelCount = 16

// EncodeScaleLevel quantizes g ∈ [0.5, 2.0] to one of ScaleLevelCount
// evenly spaced levels.
func EncodeScaleLevel(g float64) int {
	v := math.Round((g - 0.5) / 1.5 * float64(ScaleLevelCount-1))
	return int(clamp(v, 0, float64(ScaleLevelCount-1)))
}

// DecodeScaleLevel reverses EncodeScaleLevel.
func DecodeScaleLevel(level int) float64 {
	return 0.5 + float64(level)/float64(ScaleLevelCount-1)*1.5
}
