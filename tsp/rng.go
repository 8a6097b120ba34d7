// Package tsp - seeded random streams for the metaheuristics.
//
// A run draws everything (start cities, ant moves, double-bridge cuts,
// acceptance tests) from one *rand.Rand built by rngFromSeed, so Options.Seed
// plus an iteration budget fully determines the result. A *rand.Rand is not
// safe for concurrent use; parallel trials get their own seed via DeriveSeed.
package tsp

import "math/rand"

// defaultRNGSeed replaces Options.Seed == 0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns the stream of one run. Seed 0 maps to defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed returns the seed of stream number stream under parent, using the
// SplitMix64 finalizer. Neighbouring (parent, stream) pairs give unrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	z := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return int64(z ^ (z >> 31))
}
