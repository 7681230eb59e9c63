package image

import "errors"

// ErrBadDimensions is returned when an image's width or height is
// zero or exceeds the 2^24 ceiling of spec.md §7.
var ErrBadDimensions = errors.New("image: bad dimensions")

// ErrInvalidBuffer is returned when a buffer's length does not match
// width*height*channels exactly (spec.md §3's no-padding invariant).
var ErrInvalidBuffer = errors.New("image: buffer length mismatch")
