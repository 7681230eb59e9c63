package frame

import (
	"errors"

	"github.com/gojxl/jxlcore/bitio"
	"github.com/gojxl/jxlcore/colorspace"
	"github.com/gojxl/jxlcore/container"
	"github.com/gojxl/jxlcore/image"
	"github.com/gojxl/jxlcore/predict"
	"github.com/gojxl/jxlcore/rangecoder"
)

// ErrInternalInvariant signals any arithmetic or state-machine
// invariant broken in a way that is never expected on well-formed
// input; per spec.md §7 this halts the frame rather than attempting
// to continue past a bug.
var ErrInternalInvariant = errors.New("frame: internal invariant violated")

// The remaining taxonomy entries of spec.md §7 are each owned by the
// component that first detects them. The frame assembler re-exports
// the same sentinel values here so a caller can errors.Is against a
// single package instead of reaching into bitio/container/image/
// rangecoder/colorspace/predict directly; since these are the same
// underlying values (not copies), errors.Is against either package's
// name succeeds identically.
var (
	ErrTruncated             = container.ErrTruncated
	ErrBadSignature          = container.ErrBadSignature
	ErrBadDimensions         = image.ErrBadDimensions
	ErrInvalidDistribution   = rangecoder.ErrInvalidDistribution
	ErrSymbolOutOfRange      = rangecoder.ErrSymbolOutOfRange
	ErrOutOfRangeResidual    = predict.ErrOutOfRangeResidual
	ErrUnsupportedColorSpace = colorspace.ErrUnsupportedColorSpace
	ErrEndOfStream           = bitio.ErrEndOfStream
	ErrOverflow              = bitio.ErrOverflow
)
