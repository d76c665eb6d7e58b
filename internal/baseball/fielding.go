package baseball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

const (
	baseErrorRate      = 0.015
	maxErrorRate       = 0.08
	baseDoublePlayRate = 0.40
)

// infield positions a ground ball can find, in rough frequency order.
var groundBallFielders = []Position{Shortstop, SecondBase, ThirdBase, FirstBase}
var groundBallShares = []float64{0.30, 0.27, 0.23, 0.20}

var outfieldFielders = []Position{CenterField, LeftField, RightField}
var outfieldShares = []float64{0.38, 0.32, 0.30}

// fieldingWeightsFor picks the position-specific weight table.
func fieldingWeightsFor(pos Position) prob.WeightTable {
	switch pos {
	case Catcher:
		return roster.CatcherFieldingWeights
	case LeftField, CenterField, RightField:
		return roster.OutfieldFieldingWeights
	default:
		return roster.InfieldFieldingWeights
	}
}

// fieldingComposite evaluates the defender at pos. A hole in the
// alignment plays like a well-below-average defender.
func fieldingComposite(defense map[Position]*roster.Player, pos Position) float64 {
	p := defense[pos]
	if p == nil {
		return 30
	}
	return prob.Composite(p.Attrs, fieldingWeightsFor(pos))
}

// errorProbability decreases with the defender composite; even elite
// defenders keep a floor above zero.
func errorProbability(comp float64) float64 {
	t := prob.SigmoidProbability(0, prob.ReferenceMidpoint-comp, prob.Steepness, prob.Band{Min: 0, Max: 1})
	floor := baseErrorRate * 0.2
	return floor + t*(maxErrorRate-floor)
}

// refineBallInPlay converts a raw in-play out into its fielded
// consequence: an error, a double play, or a fielder's choice. Hits
// and true outcomes (K, BB, HBP, HR) pass through untouched.
func refineBallInPlay(o Outcome, in AtBatInput, rng prob.RandomSource) Outcome {
	switch o {
	case OutcomeGroundout:
		pos := groundBallFielders[prob.PickWeighted(groundBallShares, rng)]
		comp := fieldingComposite(in.Defense, pos)
		if prob.MustRoll(errorProbability(comp), rng) {
			return OutcomeError
		}
		// runner on first with less than two outs opens the double play
		if in.Bases[0] != nil && in.Outs < 2 {
			dpProb := prob.SigmoidProbability(baseDoublePlayRate, comp-prob.ReferenceMidpoint,
				prob.Steepness, prob.Band{Min: 0.10, Max: 0.80})
			if prob.MustRoll(dpProb, rng) {
				return OutcomeDoublePlay
			}
			return OutcomeFieldersChoice
		}
		return o
	case OutcomeFlyout, OutcomeLineout:
		var pos Position
		if o == OutcomeFlyout {
			pos = outfieldFielders[prob.PickWeighted(outfieldShares, rng)]
		} else {
			pos = groundBallFielders[prob.PickWeighted(groundBallShares, rng)]
		}
		comp := fieldingComposite(in.Defense, pos)
		// line drives and flies become errors far less often than grounders
		if prob.MustRoll(errorProbability(comp)*0.4, rng) {
			return OutcomeError
		}
		return o
	default:
		return o
	}
}
