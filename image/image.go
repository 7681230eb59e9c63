// Package image is the pixel-grid data model of spec.md §3: a
// width×height grid of interleaved channel-major samples, plus the
// block/coefficient-block shapes the transform and predictive
// pipelines operate on.
package image

// MaxDimension is the largest width or height this model accepts
// (spec.md §7's BadDimensions bound).
const MaxDimension = 1 << 24

// SampleType distinguishes the two sample representations spec.md §3
// allows.
type SampleType int

const (
	SampleUint SampleType = iota
	SampleFloat32
)

// Image is the data model of spec.md §3: width, height, channel
// count, bit depth, sample type, and an interleaved channel-major
// buffer with no padding — buffer length is always exactly
// width*height*channels.
type Image struct {
	Width      int
	Height     int
	Channels   int
	BitDepth   int
	SampleType SampleType
	Buffer     []float64
}

// NewImage allocates a zero-filled Image, validating dimensions and
// channel count up front.
func NewImage(width, height, channels, bitDepth int, sampleType SampleType) (*Image, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, ErrBadDimensions
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return nil, ErrBadDimensions
	}
	img := &Image{
		Width:      width,
		Height:     height,
		Channels:   channels,
		BitDepth:   bitDepth,
		SampleType: sampleType,
		Buffer:     make([]float64, width*height*channels),
	}
	return img, nil
}

// Validate checks the buffer-length invariant of spec.md §3.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 || img.Width > MaxDimension || img.Height > MaxDimension {
		return ErrBadDimensions
	}
	if len(img.Buffer) != img.Width*img.Height*img.Channels {
		return ErrInvalidBuffer
	}
	return nil
}

// MaxSample returns the largest representable integer sample value
// for the image's bit depth (255 for 8-bit, 65535 for 16-bit).
func (img *Image) MaxSample() float64 {
	return float64(int(1)<<uint(img.BitDepth) - 1)
}

// At returns the sample at (x, y, channel).
func (img *Image) At(x, y, channel int) float64 {
	return img.Buffer[(y*img.Width+x)*img.Channels+channel]
}

// Set stores the sample at (x, y, channel).
func (img *Image) Set(x, y, channel int, v float64) {
	img.Buffer[(y*img.Width+x)*img.Channels+channel] = v
}

// Plane extracts one channel's samples into a width*height,
// row-major int32 slice, for the lossless integer pipeline.
func (img *Image) Plane(channel int) []int32 {
	plane := make([]int32, img.Width*img.Height)
	for i := 0; i < img.Width*img.Height; i++ {
		plane[i] = int32(img.Buffer[i*img.Channels+channel])
	}
	return plane
}

// SetPlane writes a width*height, row-major int32 slice back into one
// channel of the image buffer.
func (img *Image) SetPlane(channel int, plane []int32) {
	for i := 0; i < img.Width*img.Height; i++ {
		img.Buffer[i*img.Channels+channel] = float64(plane[i])
	}
}

// PlaneFloat extracts one channel's samples into a width*height,
// row-major float64 slice, normalized to [0,1] by the bit depth's
// maximum sample value, for the lossy opsin pipeline which expects
// sRGB-encoded input in that range.
func (img *Image) PlaneFloat(channel int) []float64 {
	plane := make([]float64, img.Width*img.Height)
	max := img.MaxSample()
	for i := 0; i < img.Width*img.Height; i++ {
		plane[i] = img.Buffer[i*img.Channels+channel] / max
	}
	return plane
}

// SetPlaneFloat writes a normalized [0,1] float64 plane back into one
// channel, scaling by the bit depth's maximum sample value.
func (img *Image) SetPlaneFloat(channel int, plane []float64) {
	max := img.MaxSample()
	for i := 0; i < img.Width*img.Height; i++ {
		img.Buffer[i*img.Channels+channel] = plane[i] * max
	}
}
