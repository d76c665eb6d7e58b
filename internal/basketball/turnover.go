package basketball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// TurnoverHardCap bounds the per-possession turnover probability no
// matter how the modifiers stack.
const TurnoverHardCap = 0.12

const turnoverBaseRate = 0.10

// base type mix before situational reweighting
var turnoverTypeShares = map[TurnoverType]float64{
	TurnoverBadPass:       0.35,
	TurnoverLostBall:      0.27,
	TurnoverOffensiveFoul: 0.12,
	TurnoverShotClock:     0.10,
	TurnoverOther:         0.16,
}

var turnoverTypes = []TurnoverType{
	TurnoverBadPass, TurnoverLostBall, TurnoverOffensiveFoul,
	TurnoverShotClock, TurnoverOther,
}

// teamComposite averages one weight table over the five on the floor.
func teamComposite(players []*roster.Player, weights prob.WeightTable) float64 {
	var sum float64
	for _, p := range players {
		sum += prob.Composite(p.Attrs, weights)
	}
	return sum / float64(len(players))
}

// turnoverProbability applies pace and scheme modifiers on top of the
// handling-vs-pressure differential, then enforces the hard cap.
func turnoverProbability(in PossessionInput) float64 {
	p := turnoverBaseRate
	switch in.OffTactics.Pace {
	case PaceFast:
		p += 0.015 // transition basketball is sloppier
	case PaceSlow:
		p -= 0.010
	}
	if in.DefTactics.Scheme == Zone {
		p += 0.010
	}

	handling := teamComposite(in.Offense, roster.BallHandlingWeights)
	pressure := teamComposite(in.Defense, roster.StealWeights)
	swing := prob.SigmoidProbability(0, pressure-handling, prob.Steepness, prob.Band{Min: 0, Max: 1})
	p += (swing - 0.5) * 0.06

	return prob.Band{Min: 0.02, Max: TurnoverHardCap}.Clamp(p)
}

// rollTurnover decides whether the trip dies before a shot, charges
// the giveaway, and credits a steal where a defender earned it.
func rollTurnover(in PossessionInput, arena StatsArena, rng prob.RandomSource) (Event, bool) {
	if !prob.MustRoll(turnoverProbability(in), rng) {
		return Event{}, false
	}

	weights := make([]float64, len(turnoverTypes))
	for i, tt := range turnoverTypes {
		w := turnoverTypeShares[tt]
		if in.DefTactics.Scheme == Zone && tt == TurnoverBadPass {
			w *= 1.3 // passing lanes are the zone's whole point
		}
		if in.ClockSeconds < 6 && tt == TurnoverShotClock {
			w *= 2.5
		}
		weights[i] = w
	}
	tt := turnoverTypes[prob.PickWeighted(weights, rng)]

	handler := pickShooter(in.Offense, rng)
	arena.line(handler).Turnovers++
	if tt == TurnoverOffensiveFoul {
		arena.line(handler).PersonalFouls++
	}

	ev := Event{
		Kind: EventTurnover, Quarter: in.Quarter, Team: in.OffTeam,
		Player: handler.ID, Turnover: tt,
	}

	// live-ball giveaways can credit a steal
	if tt == TurnoverBadPass || tt == TurnoverLostBall {
		stealWeights := make([]float64, len(in.Defense))
		for i, d := range in.Defense {
			stealWeights[i] = prob.Composite(d.Attrs, roster.StealWeights)
		}
		thief := in.Defense[prob.PickWeighted(stealWeights, rng)]
		thiefComp := prob.Composite(thief.Attrs, roster.StealWeights)
		p := prob.SigmoidProbability(0.45, thiefComp-prob.ReferenceMidpoint,
			prob.Steepness, prob.DefaultBand)
		if prob.MustRoll(p, rng) {
			arena.line(thief).Steals++
			ev.Note = "steal:" + thief.ID
		}
	}
	return ev, true
}
