// Package transform implements the 8×8 separable block transform and
// quantization pipeline of spec.md §4.4: forward/inverse orthonormal
// DCT, the fixed zigzag scan permutation, the three per-channel
// quantization templates, the quality-to-scale function f(q), and the
// adaptive per-block step-scale derived from local AC energy.
package transform

// BlockSize is the block edge length; every block this package
// operates on is BlockSize×BlockSize.
const BlockSize = 8

// BlockLen is the number of samples in one block.
const BlockLen = BlockSize * BlockSize

// Block is a spatial- or frequency-domain 8×8 block stored in raster
// order: Block[row*8+col].
type Block [BlockLen]float64

// CoeffBlock is a quantized coefficient block, raster order, ready for
// zigzag traversal and token coding.
type CoeffBlock [BlockLen]int16

// zigzagDiagonal is the classic diagonal zigzag scan order: the raster
// index visited at each step of a top-left-to-bottom-right zigzag scan
// of an 8×8 grid.
var zigzagDiagonal = [BlockLen]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// zigzagPerm is Π: zigzagPerm[k] is the raster index visited at scan
// step k, so Π keeps the true DC coefficient (raster index 0) at
// frequency-order index 0 and orders the rest by increasing frequency,
// per spec.md §3. zigzagInverse is Π⁻¹, built separately rather than
// assumed equal to Π — a bijection only guarantees Π(Π⁻¹(i)) = i, not
// that Π is its own inverse, and the diagonal scan order is not an
// involution (pairing k with 63-k does not fix DC at 0).
var zigzagPerm = zigzagDiagonal
var zigzagInverse = buildInverse(zigzagDiagonal)

func buildInverse(order [BlockLen]int) [BlockLen]int {
	var inv [BlockLen]int
	for k := 0; k < BlockLen; k++ {
		inv[order[k]] = k
	}
	return inv
}

// Zigzag permutes a raster-order block into frequency-scan order
// through Π: Zigzag(b)[0] is always b's DC coefficient.
func Zigzag(b Block) Block {
	var out Block
	for i := 0; i < BlockLen; i++ {
		out[i] = b[zigzagPerm[i]]
	}
	return out
}

// InverseZigzag undoes Zigzag through Π⁻¹.
func InverseZigzag(b Block) Block {
	var out Block
	for i := 0; i < BlockLen; i++ {
		out[i] = b[zigzagInverse[i]]
	}
	return out
}

// Channel tags the three quantization templates are indexed by.
type Channel int

const (
	ChannelY Channel = iota
	ChannelX
	ChannelB
)

// quantTableY and quantTableChroma are the fixed perceptual
// quantization templates of spec.md §4.4: 64 strictly positive integer
// step sizes per channel, in raster order. Y follows the classic
// luminance template; X and B share the classic chrominance template,
// since this codec's X/B channels (after the opsin-style color
// transform, §4.5) carry chroma-like energy distributions similar to
// Cb/Cr.
var quantTableY = [BlockLen]int{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

var quantTableChroma = [BlockLen]int{
	17, 18, 24, 47, 99, 99, 99, 99,
	18, 21, 26, 66, 99, 99, 99, 99,
	24, 26, 56, 99, 99, 99, 99, 99,
	47, 66, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
}

// QuantTable returns the raw 64-entry template for ch.
func QuantTable(ch Channel) [BlockLen]int {
	switch ch {
	case ChannelY:
		return quantTableY
	case ChannelX, ChannelB:
		return quantTableChroma
	default:
		return quantTableY
	}
}

// ProgressivePasses is the fixed five-pass progressive coefficient
// schedule of spec.md §3: DC in pass 0, then four AC passes summing to
// the remaining 63 coefficients.
var ProgressivePasses = [5]int{1, 15, 16, 16, 16}
