package predict

import "golang.org/x/exp/constraints"

// clamp restricts v to [lo, hi]. It is generic over the numeric type;
// here it bounds int32 predictions, and the transform package keeps an
// identical copy for its own coefficient and scale-level domains.
func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
