package transform

import "golang.org/x/exp/constraints"

// clamp restricts v to [lo, hi]. Generic so the same helper serves the
// int16 quantized-coefficient domain and the adaptive-scale level index
// without a copy per concrete type.
func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
