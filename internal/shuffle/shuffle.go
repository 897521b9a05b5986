// Package shuffle produces random permutations without touching the input.
package shuffle

import "math/rand/v2"

// Shuffle returns a shuffled copy of s using the global random source.
func Shuffle[T any](s []T) []T {
	return permute(s, rand.IntN)
}

// With returns a shuffled copy of s drawing from r.
func With[T any](r *rand.Rand, s []T) []T {
	return permute(s, r.IntN)
}

// permute runs a forward Fisher-Yates pass over a copy: element i swaps
// with a uniform j in [0, i].
func permute[T any](s []T, intN func(n int) int) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := 1; i < len(out); i++ {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
