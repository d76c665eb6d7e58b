package baseball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// Fatigue model. A pitcher starts losing composite above
// fatigueThreshold pitches, faster the lower his stamina, and is
// flagged exhausted past exhaustedThreshold regardless of stamina.
const (
	fatigueThreshold   = 65
	exhaustedThreshold = 120
	fatigueRate        = 0.5
	maxFatiguePenalty  = 0.35
)

// platoonBonus is the composite bump a batter gets with the platoon
// advantage (opposite-hand pitcher; switch-hitters always have it).
const platoonBonus = 4.0

// Base outcome weights before skill adjustment, in Outcome order for
// the rollable subset. Error, fielders choice and double play are
// produced by fielding resolution, never rolled directly.
var baseOutcomeWeights = map[Outcome]float64{
	OutcomeStrikeout:  0.22,
	OutcomeWalk:       0.08,
	OutcomeHitByPitch: 0.01,
	OutcomeSingle:     0.14,
	OutcomeDouble:     0.045,
	OutcomeTriple:     0.004,
	OutcomeHomeRun:    0.031,
	OutcomeGroundout:  0.22,
	OutcomeFlyout:     0.13,
	OutcomeLineout:    0.05,
	OutcomePopup:      0.04,
}

var rollableOutcomes = []Outcome{
	OutcomeStrikeout, OutcomeWalk, OutcomeHitByPitch,
	OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun,
	OutcomeGroundout, OutcomeFlyout, OutcomeLineout, OutcomePopup,
}

// AtBatInput is the full situation handed to the at-bat engine.
type AtBatInput struct {
	Batter     *roster.Player
	Pitcher    *roster.Player
	Defense    map[Position]*roster.Player
	Bases      BaseState
	Outs       int
	Inning     int
	ScoreDiff  int // batting team minus fielding team
	PitchCount int // pitches thrown by Pitcher before this at-bat
}

// AtBatResult is one resolved confrontation.
type AtBatResult struct {
	Outcome   Outcome
	Pitches   int // pitches this at-bat, always in [3,12]
	Exhausted bool
}

type batterComposites struct {
	contact    float64
	power      float64
	discipline float64
}

type pitcherComposites struct {
	velocity float64
	control  float64
	movement float64
}

func computeBatter(b *roster.Player) batterComposites {
	return batterComposites{
		contact:    prob.Composite(b.Attrs, roster.BattingContactWeights),
		power:      prob.Composite(b.Attrs, roster.BattingPowerWeights),
		discipline: prob.Composite(b.Attrs, roster.BattingDisciplineWeights),
	}
}

func computePitcher(p *roster.Player) pitcherComposites {
	return pitcherComposites{
		velocity: prob.Composite(p.Attrs, roster.PitchingVelocityWeights),
		control:  prob.Composite(p.Attrs, roster.PitchingControlWeights),
		movement: prob.Composite(p.Attrs, roster.PitchingMovementWeights),
	}
}

// fatiguePenalty returns the multiplicative composite loss for a
// pitcher at the given pitch count. Higher stamina degrades slower.
func fatiguePenalty(pitchCount, stamina int) float64 {
	over := pitchCount - fatigueThreshold
	if over <= 0 {
		return 0
	}
	if stamina < 1 {
		stamina = 1
	}
	penalty := float64(over) * fatigueRate / float64(stamina)
	if penalty > maxFatiguePenalty {
		penalty = maxFatiguePenalty
	}
	return penalty
}

func (pc pitcherComposites) fatigued(pitchCount, stamina int) pitcherComposites {
	f := 1 - fatiguePenalty(pitchCount, stamina)
	return pitcherComposites{
		velocity: pc.velocity * f,
		control:  pc.control * f,
		movement: pc.movement * f,
	}
}

// platoonAdvantage is resolved from stable derived handedness, never
// re-rolled. Switch hitters always receive the advantage.
func platoonAdvantage(batter, pitcher *roster.Player) bool {
	bh := batter.Hand()
	if bh == roster.HandSwitch {
		return true
	}
	return bh != pitcher.Hand()
}

// skillFactor turns a composite differential into a multiplier in
// (0,2) centered at 1 for even matchups. It reuses the shared sigmoid
// so one composite point is worth the same everywhere.
func skillFactor(diff float64) float64 {
	return 2 * prob.SigmoidProbability(0, diff, prob.Steepness, prob.Band{Min: 0, Max: 1})
}

// ResolveAtBat rolls one batter/pitcher confrontation, including
// fielding refinement of balls in play. Baserunning consequences are
// applied by the caller.
func ResolveAtBat(in AtBatInput, rng prob.RandomSource) AtBatResult {
	bc := computeBatter(in.Batter)
	pc := computePitcher(in.Pitcher)

	stamina, _ := in.Pitcher.Attr(roster.AttrStamina)
	pc = pc.fatigued(in.PitchCount, stamina)

	if platoonAdvantage(in.Batter, in.Pitcher) {
		bc.contact += platoonBonus
		bc.power += platoonBonus
		bc.discipline += platoonBonus
	}

	stuff := (pc.velocity + pc.movement) / 2

	kFactor := skillFactor(stuff - bc.contact)
	walkFactor := skillFactor(bc.discipline - pc.control)
	hitFactor := skillFactor(bc.contact - (stuff+pc.control)/2)
	powerFactor := skillFactor(bc.power - prob.ReferenceMidpoint)

	weights := make([]float64, len(rollableOutcomes))
	for i, o := range rollableOutcomes {
		w := baseOutcomeWeights[o]
		switch o {
		case OutcomeStrikeout:
			w *= kFactor
		case OutcomeWalk:
			w *= walkFactor
		case OutcomeSingle:
			w *= hitFactor
		case OutcomeDouble:
			w *= hitFactor * (0.6 + 0.4*powerFactor)
		case OutcomeTriple:
			w *= hitFactor
		case OutcomeHomeRun:
			w *= hitFactor * powerFactor
		case OutcomeGroundout, OutcomeFlyout, OutcomeLineout, OutcomePopup:
			w *= 2 - hitFactor*0.8
		}
		weights[i] = w
	}

	outcome := rollableOutcomes[prob.PickWeighted(weights, rng)]
	outcome = refineBallInPlay(outcome, in, rng)

	pitches := rollPitchCount(bc.discipline, outcome, rng)

	return AtBatResult{
		Outcome:   outcome,
		Pitches:   pitches,
		Exhausted: in.PitchCount+pitches >= exhaustedThreshold,
	}
}

// rollPitchCount models at-bat length, bounded to [3,12]. Disciplined
// batters work deeper counts; walks and strikeouts run long.
func rollPitchCount(discipline float64, o Outcome, rng prob.RandomSource) int {
	perPitch := 0.30 + (discipline-50)/500
	switch o {
	case OutcomeWalk, OutcomeStrikeout:
		perPitch += 0.12
	}
	band := prob.Band{Min: 0.05, Max: 0.75}
	perPitch = band.Clamp(perPitch)

	pitches := 3
	for i := 0; i < 9; i++ {
		if prob.MustRoll(perPitch, rng) {
			pitches++
		}
	}
	if pitches > 12 {
		pitches = 12
	}
	return pitches
}
