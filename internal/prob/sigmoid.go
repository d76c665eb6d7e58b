package prob

import "math"

// Steepness is the shared slope of every sigmoid check in the engine,
// so that one composite point buys the same marginal probability in
// shooting, fielding and turnovers alike. Subsystems override only the
// base rate and the reference midpoint.
const Steepness = 0.08

// ReferenceMidpoint is the league-average composite used by absolute
// skill checks (free throws, errors) that have no direct opponent.
const ReferenceMidpoint = 50.0

// Band clamps a probability into a safety range so that no outcome is
// ever a deterministic 0% or 100%.
type Band struct {
	Min float64
	Max float64
}

// DefaultBand is the clamp applied by all engine checks unless a
// subsystem narrows it further.
var DefaultBand = Band{Min: 0.01, Max: 0.95}

// Clamp forces p into the band.
func (b Band) Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return b.Min
	}
	if p < b.Min {
		return b.Min
	}
	if p > b.Max {
		return b.Max
	}
	return p
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidProbability maps a composite differential onto a probability
// above baseRate: p = base + (1-base) * sigmoid(steepness * diff).
// The result is clamped into band before use as a Bernoulli parameter.
func SigmoidProbability(baseRate, diff, steepness float64, band Band) float64 {
	p := baseRate + (1-baseRate)*sigmoid(steepness*diff)
	return band.Clamp(p)
}

// CenteredProbability is the absolute-skill variant: the differential
// is taken against a fixed reference midpoint instead of an opponent
// composite (e.g. free throws centered on the league average).
func CenteredProbability(baseRate, composite, midpoint, steepness float64, band Band) float64 {
	return SigmoidProbability(baseRate, composite-midpoint, steepness, band)
}
