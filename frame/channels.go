package frame

import (
	"math"

	"github.com/gojxl/jxlcore/colorspace"
	"github.com/gojxl/jxlcore/image"
	"github.com/gojxl/jxlcore/predict"
	"github.com/gojxl/jxlcore/transform"
)

// channelSampleBounds returns the integer domain the predictive
// pipeline must validate channel ch's reconstructed samples against.
// A gray plane (n==1) or the Y plane of a 3-channel YCoCg image (ch==0)
// is a true sample in [0, 2^bitDepth-1]; the Co/Cg planes colorspace.
// ForwardYCoCg produces are differences of two such samples and are
// legitimately negative, so they need the wider, symmetric domain
// predict.ChromaBounds returns.
func channelSampleBounds(ch, n, bitDepth int) (int32, int32) {
	if n == 1 || ch == 0 {
		return predict.SampleBounds(bitDepth)
	}
	return predict.ChromaBounds(bitDepth)
}

// mainChannelCount returns the number of channels the color transform
// and per-channel payload sections cover: 3 for RGB/RGBA (the color
// transform always operates on the first three channels), or 1 for
// gray. A fourth, RGBA channel is never a "main" channel — spec.md
// §4.7 step 4 and §6's dedicated alpha section both single it out.
func mainChannelCount(img *image.Image) int {
	if img.Channels == 4 {
		return 3
	}
	return img.Channels
}

func hasAlpha(img *image.Image) bool {
	return img.Channels == 4
}

// rawPlane extracts channel ch's samples into a width*height row-major
// float64 slice at native sample magnitude (0..MaxSample), unlike
// image.PlaneFloat which normalizes to [0,1].
func rawPlane(img *image.Image, ch int) []float64 {
	plane := make([]float64, img.Width*img.Height)
	for i := 0; i < img.Width*img.Height; i++ {
		plane[i] = img.Buffer[i*img.Channels+ch]
	}
	return plane
}

func setRawPlane(img *image.Image, ch int, plane []float64) {
	for i := 0; i < img.Width*img.Height; i++ {
		img.Buffer[i*img.Channels+ch] = plane[i]
	}
}

// lossyChannelMagnitudes builds the mainChannelCount() planes the
// block transform operates on, per spec.md §4.5/§4.7 step 3: for
// color images, sRGB samples are normalized to [0,1], passed through
// the opsin forward transform, then rescaled by MaxSample so the
// fixed quantization templates (tuned for 0..255-range JPEG-like
// energy) stay meaningful; gray images bypass the color transform
// entirely and keep native sample magnitude.
func lossyChannelMagnitudes(img *image.Image) ([][]float64, error) {
	n := mainChannelCount(img)
	planes := make([][]float64, n)
	for i := range planes {
		planes[i] = make([]float64, img.Width*img.Height)
	}

	if n == 1 {
		copy(planes[0], rawPlane(img, 0))
		return planes, nil
	}

	max := img.MaxSample()
	pixel := make([]float64, 3)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			for c := 0; c < 3; c++ {
				pixel[c] = img.At(x, y, c) / max
			}
			out, err := colorspace.ForwardLossy(pixel, 3)
			if err != nil {
				return nil, err
			}
			idx := y*img.Width + x
			for c := 0; c < 3; c++ {
				planes[c][idx] = out[c] * max
			}
		}
	}
	return planes, nil
}

// lossyInverseChannelMagnitudes reverses lossyChannelMagnitudes,
// writing the reconstructed samples back into img's main channels.
func lossyInverseChannelMagnitudes(img *image.Image, planes [][]float64) error {
	n := mainChannelCount(img)
	if n == 1 {
		clamped := make([]float64, len(planes[0]))
		maxS := img.MaxSample()
		for i, v := range planes[0] {
			clamped[i] = clampRound(v, 0, maxS)
		}
		setRawPlane(img, 0, clamped)
		return nil
	}

	max := img.MaxSample()
	pixel := make([]float64, 3)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			idx := y*img.Width + x
			for c := 0; c < 3; c++ {
				pixel[c] = planes[c][idx] / max
			}
			out, err := colorspace.InverseLossy(pixel, 3)
			if err != nil {
				return err
			}
			for c := 0; c < 3; c++ {
				img.Set(x, y, c, clampRound(out[c]*max, 0, max))
			}
		}
	}
	return nil
}

// losslessChannelPlanes builds the mainChannelCount() integer planes
// the predictive pipeline codes, per spec.md §4.6's reversible
// integer color transform.
func losslessChannelPlanes(img *image.Image) ([][]int32, error) {
	n := mainChannelCount(img)
	if n == 1 {
		return [][]int32{img.Plane(0)}, nil
	}

	r, g, b := img.Plane(0), img.Plane(1), img.Plane(2)
	planes := make([][]int32, 3)
	for i := range planes {
		planes[i] = make([]int32, img.Width*img.Height)
	}
	pixel := make([]int32, 3)
	for i := range r {
		pixel[0], pixel[1], pixel[2] = r[i], g[i], b[i]
		out, err := colorspace.ForwardLosslessPixel(pixel, 3)
		if err != nil {
			return nil, err
		}
		for c := 0; c < 3; c++ {
			planes[c][i] = out[c]
		}
	}
	return planes, nil
}

// losslessInverseChannelPlanes reverses losslessChannelPlanes.
func losslessInverseChannelPlanes(img *image.Image, planes [][]int32) error {
	n := mainChannelCount(img)
	if n == 1 {
		img.SetPlane(0, planes[0])
		return nil
	}

	pixel := make([]int32, 3)
	for i := range planes[0] {
		pixel[0], pixel[1], pixel[2] = planes[0][i], planes[1][i], planes[2][i]
		out, err := colorspace.InverseLosslessPixel(pixel, 3)
		if err != nil {
			return err
		}
		for c := 0; c < 3; c++ {
			img.Set(i%img.Width, i/img.Width, c, float64(out[c]))
		}
	}
	return nil
}

// lossyPassSchedule returns the zigzag-index ranges (as run lengths
// summing to 64) the coefficient stream is split into: the fixed
// five-pass progressive schedule of spec.md §3, or a single
// DC-then-rest-of-AC split when progressive mode is off. Either way
// index 0 (DC) is always its own leading pass, matching §4.7 step 3's
// "DC-all-channels first" ordering applied within one channel's value
// stream (see DESIGN.md for why §6's channel-major payload layout
// takes precedence over §4.7's cross-channel interleaving reading).
func lossyPassSchedule(progressive bool) []int {
	if progressive {
		return transform.ProgressivePasses[:]
	}
	return []int{1, transform.BlockLen - 1}
}

// coeffStreamForChannel concatenates one channel's quantized,
// zigzag-ordered coefficient blocks into the pass-ordered value
// stream encodeIntegerStream codes: every block's pass-0 (DC) value
// first in raster-block order, then every block's pass-1 coefficients
// in raster-block order, and so on.
func coeffStreamForChannel(blocks []transform.CoeffBlock, schedule []int) []int32 {
	values := make([]int32, 0, len(blocks)*transform.BlockLen)
	offset := 0
	for _, n := range schedule {
		for _, b := range blocks {
			for k := offset; k < offset+n; k++ {
				values = append(values, int32(b[k]))
			}
		}
		offset += n
	}
	return values
}

// coeffBlocksFromStream reverses coeffStreamForChannel.
func coeffBlocksFromStream(values []int32, blockCount int, schedule []int) []transform.CoeffBlock {
	blocks := make([]transform.CoeffBlock, blockCount)
	pos := 0
	offset := 0
	for _, n := range schedule {
		for bi := 0; bi < blockCount; bi++ {
			for k := offset; k < offset+n; k++ {
				blocks[bi][k] = int16(values[pos])
				pos++
			}
		}
		offset += n
	}
	return blocks
}

// deltaCodeDC replaces the leading blockCount entries of values — the
// per-block DC coefficients coeffStreamForChannel always places first,
// since schedule's first pass has length 1 — with their successive
// raster-order differences, per spec.md §4.4's "the DC coefficient is
// encoded separately as a difference from the previous block's DC in
// raster order (the first block's predecessor is 0)."
func deltaCodeDC(values []int32, blockCount int) {
	var prev int32
	for i := 0; i < blockCount; i++ {
		dc := values[i]
		values[i] = dc - prev
		prev = dc
	}
}

// undeltaCodeDC reverses deltaCodeDC.
func undeltaCodeDC(values []int32, blockCount int) {
	var prev int32
	for i := 0; i < blockCount; i++ {
		prev += values[i]
		values[i] = prev
	}
}

// clampRound rounds v to the nearest integer and clamps it to [lo, hi].
func clampRound(v, lo, hi float64) float64 {
	v = math.Round(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
