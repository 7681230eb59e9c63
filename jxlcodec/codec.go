// Package jxlcodec adapts the frame Assembler to the codec.Codec
// facade, the same shape the teacher's per-format packages (jpeg's
// baseline, lossless14sv1, ...) implement: a self-registering Codec
// type plus an Options type embedding codec.BaseOptions.
package jxlcodec

import (
	"encoding/binary"
	"fmt"

	"github.com/gojxl/jxlcore/codec"
	"github.com/gojxl/jxlcore/frame"
	"github.com/gojxl/jxlcore/image"
)

// UID is this codec's registry key alongside Name; jxlcore has no
// DICOM transfer-syntax UID of its own, so this is a media-type-style
// identifier instead.
const UID = "image/jxl"

// Name is the human-readable registry key.
const Name = "jxl"

// Options configures a jxlcodec.Codec.Encode call.
type Options struct {
	codec.BaseOptions

	// Lossless selects the predictive integer pipeline instead of the
	// block-transform path. When true, Quality (in BaseOptions) is
	// ignored.
	Lossless bool

	// Progressive selects the five-pass coefficient schedule, ignored
	// when Lossless is true.
	Progressive bool
}

// Validate validates the options, deferring to BaseOptions for the
// quality bound except in lossless mode where quality does not apply.
func (o *Options) Validate() error {
	if o.Lossless {
		return nil
	}
	return o.BaseOptions.Validate()
}

// Codec implements codec.Codec for this module's bitstream.
type Codec struct{}

// NewCodec returns a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode implements codec.Codec.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	opts := &Options{BaseOptions: codec.BaseOptions{Quality: 90}}
	if params.Options != nil {
		o, ok := params.Options.(*Options)
		if !ok {
			return nil, fmt.Errorf("jxlcodec: %w: options must be *jxlcodec.Options", codec.ErrInvalidParameter)
		}
		if err := o.Validate(); err != nil {
			return nil, err
		}
		opts = o
	}

	img, err := pixelDataToImage(params.PixelData, params.Width, params.Height, params.Components, params.BitDepth)
	if err != nil {
		return nil, err
	}

	return frame.Encode(img, frame.EncodeOptions{
		Lossless:    opts.Lossless,
		Quality:     opts.Quality,
		Progressive: opts.Progressive,
	})
}

// Decode implements codec.Codec.
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	img, err := frame.Decode(data, frame.DecodeOptions{})
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{
		PixelData:  imageToPixelData(img),
		Width:      img.Width,
		Height:     img.Height,
		Components: img.Channels,
		BitDepth:   img.BitDepth,
	}, nil
}

// UID implements codec.Codec.
func (c *Codec) UID() string { return UID }

// Name implements codec.Codec.
func (c *Codec) Name() string { return Name }

func init() {
	codec.Register(NewCodec())
}

// pixelDataToImage unpacks a raw channel-major pixel buffer (1 byte
// per sample for 8-bit, big-endian 2 bytes per sample for 16-bit)
// into an *image.Image.
func pixelDataToImage(data []byte, width, height, components, bitDepth int) (*image.Image, error) {
	img, err := image.NewImage(width, height, components, bitDepth, image.SampleUint)
	if err != nil {
		return nil, err
	}
	bytesPerSample := bitDepth / 8
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("jxlcodec: %w: bit depth %d not in {8,16}", codec.ErrInvalidParameter, bitDepth)
	}
	n := width * height * components
	if len(data) != n*bytesPerSample {
		return nil, fmt.Errorf("jxlcodec: %w: pixel data length %d, want %d", codec.ErrInvalidParameter, len(data), n*bytesPerSample)
	}
	for i := 0; i < n; i++ {
		if bytesPerSample == 1 {
			img.Buffer[i] = float64(data[i])
		} else {
			img.Buffer[i] = float64(binary.BigEndian.Uint16(data[i*2 : i*2+2]))
		}
	}
	return img, nil
}

// imageToPixelData reverses pixelDataToImage.
func imageToPixelData(img *image.Image) []byte {
	bytesPerSample := img.BitDepth / 8
	out := make([]byte, len(img.Buffer)*bytesPerSample)
	for i, v := range img.Buffer {
		if bytesPerSample == 1 {
			out[i] = byte(v)
		} else {
			binary.BigEndian.PutUint16(out[i*2:i*2+2], uint16(v))
		}
	}
	return out
}
