package prob

import (
	"errors"
	"math"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// Roll performs one Bernoulli trial under p.
// p <= 0 => never, p >= 1 => always, otherwise rng.Float64() < p.
func Roll(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}

// MustRoll is Roll for probabilities the engine already clamped into a
// valid band. An out-of-range p here is a programming defect, not input.
func MustRoll(p float64, rng RandomSource) bool {
	hit, err := Roll(p, rng)
	if err != nil {
		panic(err)
	}
	return hit
}

// PickWeighted selects an index from weights proportionally to their
// values. Non-positive weights are skipped. Returns -1 when every
// weight is non-positive.
func PickWeighted(weights []float64, rng RandomSource) int {
	if rng == nil {
		rng = DefaultRNG()
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	target := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	// float accumulation may leave target just above acc
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
