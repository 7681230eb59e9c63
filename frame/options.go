package frame

import (
	"context"
	"fmt"
)

// EncodeOptions configures one EncodeFrame call. Spec.md §1 places
// the command-line surface and config parsing out of scope; the
// ambient equivalent this module carries is a plain options struct
// with a Validate method, the same shape as the teacher's
// codec.BaseOptions.
type EncodeOptions struct {
	// Lossless selects the predictive integer pipeline of §4.6. When
	// false, Quality and Progressive govern the block-transform path
	// of §4.4.
	Lossless bool

	// Quality is the 1..100 scalar of §4.4, ignored when Lossless is
	// true.
	Quality int

	// Progressive selects the five-pass coefficient schedule of §3,
	// ignored when Lossless is true.
	Progressive bool

	// Context is checked at channel boundaries and between container
	// boxes per spec.md §5. A nil Context is treated as
	// context.Background().
	Context context.Context
}

// Validate enforces range checks before any bit is written.
func (o EncodeOptions) Validate() error {
	if !o.Lossless && (o.Quality < 1 || o.Quality > 100) {
		return fmt.Errorf("frame: %w: quality %d out of [1,100]", ErrInternalInvariant, o.Quality)
	}
	return nil
}

func (o EncodeOptions) context() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}

// DecodeOptions configures one DecodeFrame call.
type DecodeOptions struct {
	// Context is checked at channel boundaries and between container
	// boxes per spec.md §5. A nil Context is treated as
	// context.Background().
	Context context.Context
}

func (o DecodeOptions) context() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}
