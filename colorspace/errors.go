package colorspace

import "errors"

// ErrUnsupportedColorSpace is returned when a pixel's channel count is
// not one this package transforms: 3 (RGB) or 4 (RGBA, alpha passed
// through untransformed). Gray (1-channel) images bypass the color
// transform at the caller, so this package rejects 1 as well.
var ErrUnsupportedColorSpace = errors.New("colorspace: unsupported channel count")
