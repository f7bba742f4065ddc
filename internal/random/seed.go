// Package random provides match seed generation.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedFunc produces a fresh seed.
type SeedFunc func() (int64, error)

// NewSeed generates a random non-zero seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// Resolve returns seed unless it is zero, in which case gen supplies one.
func Resolve(seed int64, gen SeedFunc) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	if gen == nil {
		gen = NewSeed
	}
	return gen()
}
