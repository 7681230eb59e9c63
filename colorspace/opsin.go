// Package colorspace implements the two color transforms of spec.md
// §4.5: a lossy perceptual opsin-style transform (RGB-linear → Y,X,B)
// and a lossless reversible integer transform (RGB → Y,Co,Cg).
package colorspace

import "math"

// opsinMatrix and opsinBias are the fixed constants A and k of
// spec.md §4.5: hard-coded inputs the encoder and decoder must agree
// on bit-for-bit. They are not tuned per image.
var opsinMatrix = [3][3]float64{
	{0.300000, 0.622000, 0.078000},
	{0.230000, 0.692000, 0.078000},
	{0.243423, 0.204767, 0.551810},
}

var opsinBias = [3]float64{0.0037930734, 0.0037930734, 0.0037930734}

var opsinMatrixInv [3][3]float64

func init() {
	opsinMatrixInv = invert3x3(opsinMatrix)
}

func invert3x3(m [3][3]float64) [3][3]float64 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])

	inv := 1.0 / det
	var r [3][3]float64
	r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv
	r[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv
	r[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv
	r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv
	r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv
	r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv
	r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv
	r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv
	r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv
	return r
}

// LinearizeSRGB converts an sRGB-gamma-encoded sample in [0,1] to
// linear light, via the standard piecewise sRGB transfer function.
func LinearizeSRGB(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// EncodeSRGB is the inverse of LinearizeSRGB: linear light back to
// sRGB gamma-encoded.
func EncodeSRGB(c float64) float64 {
	if c < 0 {
		c = 0
	}
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func cbrt(v float64) float64 {
	if v < 0 {
		return -math.Cbrt(-v)
	}
	return math.Cbrt(v)
}

// ForwardOpsin maps a gamma-linearized (R,G,B) triple to (Y,X,B) per
// spec.md §4.5: L,M,S = A·(R,G,B) + k, then Y=cbrt(L), X=cbrt(L)-cbrt(M),
// B=cbrt(M)-cbrt(S).
func ForwardOpsin(r, g, b float64) (y, x, bOut float64) {
	l := opsinMatrix[0][0]*r + opsinMatrix[0][1]*g + opsinMatrix[0][2]*b + opsinBias[0]
	m := opsinMatrix[1][0]*r + opsinMatrix[1][1]*g + opsinMatrix[1][2]*b + opsinBias[1]
	s := opsinMatrix[2][0]*r + opsinMatrix[2][1]*g + opsinMatrix[2][2]*b + opsinBias[2]

	fl, fm, fs := cbrt(l), cbrt(m), cbrt(s)
	return fl, fl - fm, fm - fs
}

// InverseOpsin reverses ForwardOpsin, recovering gamma-linear (R,G,B).
func InverseOpsin(y, x, b float64) (r, g, bOut float64) {
	fl := y
	fm := y - x
	fs := fm - b

	l := fl*fl*fl - opsinBias[0]
	m := fm*fm*fm - opsinBias[1]
	s := fs*fs*fs - opsinBias[2]

	r = opsinMatrixInv[0][0]*l + opsinMatrixInv[0][1]*m + opsinMatrixInv[0][2]*s
	g = opsinMatrixInv[1][0]*l + opsinMatrixInv[1][1]*m + opsinMatrixInv[1][2]*s
	bOut = opsinMatrixInv[2][0]*l + opsinMatrixInv[2][1]*m + opsinMatrixInv[2][2]*s
	return r, g, bOut
}

// ForwardLossy applies the full lossy color path to an sRGB-encoded
// pixel buffer: sRGB → linear → opsin. channels must be 3 (RGB) or 4
// (RGBA, alpha passed through unchanged) per spec.md §4.5; 1-channel
// images are rejected here since the caller is expected to bypass the
// transform entirely for gray images.
func ForwardLossy(pixel []float64, channels int) ([]float64, error) {
	switch channels {
	case 3:
		r := LinearizeSRGB(pixel[0])
		g := LinearizeSRGB(pixel[1])
		b := LinearizeSRGB(pixel[2])
		y, x, bb := ForwardOpsin(r, g, b)
		return []float64{y, x, bb}, nil
	case 4:
		r := LinearizeSRGB(pixel[0])
		g := LinearizeSRGB(pixel[1])
		b := LinearizeSRGB(pixel[2])
		y, x, bb := ForwardOpsin(r, g, b)
		return []float64{y, x, bb, pixel[3]}, nil
	case 1:
		return nil, ErrUnsupportedColorSpace
	default:
		return nil, ErrUnsupportedColorSpace
	}
}

// InverseLossy reverses ForwardLossy.
func InverseLossy(pixel []float64, channels int) ([]float64, error) {
	switch channels {
	case 3:
		r, g, b := InverseOpsin(pixel[0], pixel[1], pixel[2])
		return []float64{EncodeSRGB(r), EncodeSRGB(g), EncodeSRGB(b)}, nil
	case 4:
		r, g, b := InverseOpsin(pixel[0], pixel[1], pixel[2])
		return []float64{EncodeSRGB(r), EncodeSRGB(g), EncodeSRGB(b), pixel[3]}, nil
	case 1:
		return nil, ErrUnsupportedColorSpace
	default:
		return nil, ErrUnsupportedColorSpace
	}
}
