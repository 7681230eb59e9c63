package predict

import "errors"

// ErrOutOfRangeResidual is returned when a reconstructed sample would
// fall outside the plane's [minS, maxS] domain: [0, 2^bit-depth - 1]
// for a raw or luma plane, ChromaBounds for a chroma plane. Per spec.md §4.6 this indicates a
// corrupted bitstream and is always fatal, never swallowed.
var ErrOutOfRangeResidual = errors.New("predict: reconstructed sample out of range")
