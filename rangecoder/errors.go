package rangecoder

import "errors"

// ErrInvalidDistribution is returned when normalized frequencies do not
// sum to M, or a symbol with a positive raw count ends up with a zero
// normalized frequency.
var ErrInvalidDistribution = errors.New("rangecoder: invalid distribution")

// ErrSymbolOutOfRange is returned when a symbol index is >= the
// distribution's alphabet size during encoding.
var ErrSymbolOutOfRange = errors.New("rangecoder: symbol out of range")

// ErrTruncated is returned when the decoder exhausts its input before
// producing the expected number of symbols.
var ErrTruncated = errors.New("rangecoder: truncated input")
