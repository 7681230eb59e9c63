package predict

// ZigzagSigned maps a signed residual to an unsigned symbol, per
// spec.md §4.6: r>=0 -> 2r, r<0 -> -2r-1.
func ZigzagSigned(r int32) uint32 {
	if r >= 0 {
		return uint32(r) * 2
	}
	return uint32(-r)*2 - 1
}

// InverseZigzagSigned reverses ZigzagSigned.
func InverseZigzagSigned(s uint32) int32 {
	if s%2 == 0 {
		return int32(s / 2)
	}
	return -int32((s + 1) / 2)
}

// neighbor returns the sample at (x,y) in plane, or 0 if that
// coordinate is off the top or left border, per spec.md §4.6's
// border-default rule.
func neighbor(plane []int32, width, x, y int) int32 {
	if x < 0 || y < 0 {
		return 0
	}
	return plane[y*width+x]
}

// ResidualsForPlane runs the gradient predictor in raster-scan order
// over plane (width×height, row-major) and returns the signed
// prediction residual at every pixel. minS/maxS bound the plane's own
// sample domain, which is [0, 2^bitDepth-1] for a raw or luma plane
// but symmetric around zero for a chroma plane produced by the
// reversible color transform (see ChromaBounds).
func ResidualsForPlane(plane []int32, width, height int, minS, maxS int32, p Predictor) []int32 {
	residuals := make([]int32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l := neighbor(plane, width, x-1, y)
			t := neighbor(plane, width, x, y-1)
			tl := neighbor(plane, width, x-1, y-1)
			pred := p.Predict(l, t, tl, minS, maxS)
			idx := y*width + x
			residuals[idx] = plane[idx] - pred
		}
	}
	return residuals
}

// ReconstructPlane reverses ResidualsForPlane: given the residual
// stream in the same raster-scan order, it rebuilds the sample plane,
// checking every reconstructed sample against [minS,maxS] and
// returning ErrOutOfRangeResidual on the first violation. minS/maxS
// must be the same domain ResidualsForPlane was run with.
func ReconstructPlane(residuals []int32, width, height int, minS, maxS int32, p Predictor) ([]int32, error) {
	plane := make([]int32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l := neighbor(plane, width, x-1, y)
			t := neighbor(plane, width, x, y-1)
			tl := neighbor(plane, width, x-1, y-1)
			pred := p.Predict(l, t, tl, minS, maxS)
			idx := y*width + x
			sample := pred + residuals[idx]
			if sample < minS || sample > maxS {
				return nil, ErrOutOfRangeResidual
			}
			plane[idx] = sample
		}
	}
	return plane, nil
}

// SymbolsForResiduals zigzag-maps a residual stream to the unsigned
// symbol stream the token coder operates on.
func SymbolsForResiduals(residuals []int32) []uint32 {
	symbols := make([]uint32, len(residuals))
	for i, r := range residuals {
		symbols[i] = ZigzagSigned(r)
	}
	return symbols
}

// ResidualsForSymbols reverses SymbolsForResiduals.
func ResidualsForSymbols(symbols []uint32) []int32 {
	residuals := make([]int32, len(symbols))
	for i, s := range symbols {
		residuals[i] = InverseZigzagSigned(s)
	}
	return residuals
}
