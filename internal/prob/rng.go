package prob

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the entropy feeding every outcome roll.
// A simulation must receive exactly one source and thread it through
// all resolvers; there is no package-level random state.

type RandomSource interface {
	Float64() float64 // [0, 1)
}

// crypto random: default when the caller does not care about replay
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// fall back to math/rand/v2
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG for regression tests and batch simulation.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a source whose Float64 stream is fully determined
// by seed. Same seed + same call order = same game.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
