package basketball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// ReboundBlendTeamShare is how much of the offensive-rebound chance
// comes from relative team rebounding strength versus the shot-type
// and strategy base. Tunable; validated against the crash-the-glass
// statistical property, not a physical law.
const ReboundBlendTeamShare = 0.4

// DefenseReboundEdge is the fixed percentage advantage the defense
// holds on the glass before any blending.
const DefenseReboundEdge = 0.15

// base offensive share per shot type: the longer the miss, the longer
// the carom and the smaller the offense's chance
var offReboundBaseShare = map[ShotType]float64{
	ShotThree:         0.22,
	ShotLongMidrange:  0.25,
	ShotShortMidrange: 0.27,
	ShotLayup:         0.30,
	ShotDunk:          0.32,
}

// offensiveReboundProbability blends relative team strength with the
// shot-type base, applies the offense's glass strategy, then the
// defensive edge.
func offensiveReboundProbability(in PossessionInput, shot ShotType) float64 {
	offStrength := teamComposite(in.Offense, roster.ReboundWeights)
	defStrength := teamComposite(in.Defense, roster.ReboundWeights)
	teamShare := prob.SigmoidProbability(0, offStrength-defStrength,
		prob.Steepness, prob.Band{Min: 0, Max: 1})

	base := offReboundBaseShare[shot]
	switch in.OffTactics.Rebounding {
	case CrashTheGlass:
		base += 0.08
	case PreventTransition:
		base -= 0.08
	}

	p := ReboundBlendTeamShare*teamShare + (1-ReboundBlendTeamShare)*base
	p *= 1 - DefenseReboundEdge
	return prob.Band{Min: 0.02, Max: 0.55}.Clamp(p)
}

// resolveRebound decides which side secures the miss and which player
// gets the board.
func resolveRebound(in PossessionInput, shot ShotType,
	arena StatsArena, rng prob.RandomSource) (bool, *roster.Player) {
	offensive := prob.MustRoll(offensiveReboundProbability(in, shot), rng)

	side := in.Defense
	if offensive {
		side = in.Offense
	}
	weights := make([]float64, len(side))
	for i, p := range side {
		weights[i] = prob.Composite(p.Attrs, roster.ReboundWeights) + 5
	}
	rebounder := side[prob.PickWeighted(weights, rng)]

	line := arena.line(rebounder)
	line.Rebounds++
	if offensive {
		line.OffRebounds++
	}
	return offensive, rebounder
}
