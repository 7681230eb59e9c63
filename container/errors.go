package container

import "errors"

// ErrBadSignature is returned when the fixed 12-byte file signature
// does not match exactly.
var ErrBadSignature = errors.New("container: bad signature")

// ErrTruncated is returned when a box header or payload runs past the
// end of the available input.
var ErrTruncated = errors.New("container: truncated box")
