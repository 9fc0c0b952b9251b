// Package rng builds the explicit random sources shared by the generator and
// its drivers, so every run can be replayed from a seed.
package rng

import (
	"math/rand/v2"
	"time"
)

// New creates a deterministic generator using the provided seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// TimeSeed returns a seed derived from the wall clock.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// Pick returns a uniformly random element of items. It panics on an empty slice.
func Pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Shuffled returns a shuffled copy of items, leaving the input untouched.
func Shuffled[T any](r *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
