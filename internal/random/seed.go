// Package random provides seed generation and the seeded generators used
// to pick random legal moves.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns seed unchanged, or a fresh crypto seed when seed is 0.
func ResolveSeed(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}

// NewRNG creates a deterministic generator for seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Pick returns a uniformly chosen element of items.
// It reports false when items is empty.
func Pick[T any](rng *rand.Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 || rng == nil {
		return zero, false
	}
	return items[rng.Intn(len(items))], true
}
