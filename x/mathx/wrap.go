package mathx

import "golang.org/x/exp/constraints"

// WrapDelta returns how far a free-running counter of width mask advanced
// from prev to now, assuming it wrapped at most once.
func WrapDelta[T constraints.Unsigned](prev, now, mask T) T {
	return (now - prev) & mask
}
