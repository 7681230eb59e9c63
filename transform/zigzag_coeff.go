package transform

// ZigzagCoeff permutes a raster-order quantized coefficient block
// through Π, the same permutation Zigzag applies to float blocks. It
// produces the frequency-ordered layout the frame assembler
// serializes: index 0 is DC, indices 1..63 are AC in increasing-
// frequency order.
func ZigzagCoeff(b CoeffBlock) CoeffBlock {
	var out CoeffBlock
	for i := 0; i < BlockLen; i++ {
		out[i] = b[zigzagPerm[i]]
	}
	return out
}

// InverseZigzagCoeff undoes ZigzagCoeff through Π⁻¹.
func InverseZigzagCoeff(b CoeffBlock) CoeffBlock {
	var out CoeffBlock
	for i := 0; i < BlockLen; i++ {
		out[i] = b[zigzagInverse[i]]
	}
	return out
}
