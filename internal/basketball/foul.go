package basketball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// Team fouls of 5 or more in a quarter put the other side in the
// bonus; 6 personals disqualify a player for the rest of the game.
const (
	BonusThreshold   = 5
	FoulOutThreshold = 6
)

const nonShootingFoulRate = 0.045

// shooting foul base rate per contest tier
var shootingFoulBase = map[ContestTier]float64{
	WideOpen:         0.01,
	Contested:        0.06,
	HeavilyContested: 0.12,
}

// shot-type multiplier: nobody fouls a three, everybody fouls a dunk
var shootingFoulShotMultiplier = map[ShotType]float64{
	ShotThree:         0.3,
	ShotLongMidrange:  0.7,
	ShotShortMidrange: 0.9,
	ShotLayup:         1.5,
	ShotDunk:          1.8,
}

func shootingFoulProbability(shot ShotType, tier ContestTier) float64 {
	p := shootingFoulBase[tier] * shootingFoulShotMultiplier[shot]
	return prob.Band{Min: 0, Max: 0.35}.Clamp(p)
}

// rollNonShootingFoul is the flat action-based check away from the
// ball. In the bonus it sends the offense to the line for two.
func rollNonShootingFoul(in PossessionInput, arena StatsArena, rng prob.RandomSource) (Event, int, bool) {
	if !prob.MustRoll(nonShootingFoulRate, rng) {
		return Event{}, 0, false
	}

	// physical defenders reach more
	weights := make([]float64, len(in.Defense))
	for i, d := range in.Defense {
		s, _ := d.Attr(roster.AttrStrength)
		weights[i] = float64(s) + 20
	}
	fouler := in.Defense[prob.PickWeighted(weights, rng)]
	arena.line(fouler).PersonalFouls++

	ev := Event{
		Kind: EventFoul, Quarter: in.Quarter, Team: in.DefTeam,
		Player: fouler.ID, Note: "non_shooting",
	}

	fts := 0
	if in.DefTeamFouls+1 >= BonusThreshold {
		fts = 2
		ev.Note = "non_shooting_bonus"
	}
	return ev, fts, true
}
