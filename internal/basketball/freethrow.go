package basketball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// freeThrowPressure is the situational modifier applied on top of the
// shooter's centered-sigmoid make probability.
type freeThrowPressure int

const (
	freeThrowNone freeThrowPressure = iota
	freeThrowAndOne
	freeThrowBonusTrip
)

const (
	freeThrowBaseRate  = 0.5
	andOneBonus        = 0.04 // riding the momentum
	bonusTripPenalty   = 0.03 // cold trips to the line
	clutchPenalty      = 0.05
	clutchClockSeconds = 120
	clutchMaxScoreDiff = 5
)

var freeThrowBand = prob.Band{Min: 0.20, Max: 0.95}

// freeThrowProbability centers the sigmoid on the league-average
// composite, then applies additive pressure modifiers per attempt.
func freeThrowProbability(shooter *roster.Player, in PossessionInput, pressure freeThrowPressure) float64 {
	comp := prob.Composite(shooter.Attrs, roster.FreeThrowWeights)
	p := prob.CenteredProbability(freeThrowBaseRate, comp, prob.ReferenceMidpoint,
		prob.Steepness, prob.Band{Min: 0, Max: 1})

	switch pressure {
	case freeThrowAndOne:
		p += andOneBonus
	case freeThrowBonusTrip:
		p -= bonusTripPenalty
	}

	diff := in.ScoreDiff
	if diff < 0 {
		diff = -diff
	}
	if in.Quarter >= 4 && in.ClockSeconds <= clutchClockSeconds && diff <= clutchMaxScoreDiff {
		p -= clutchPenalty
	}
	return freeThrowBand.Clamp(p)
}

// resolveFreeThrows rolls each attempt independently.
func resolveFreeThrows(shooter *roster.Player, attempts int, in PossessionInput,
	pressure freeThrowPressure, arena StatsArena, rng prob.RandomSource) (int, []Event) {
	line := arena.line(shooter)
	made := 0
	events := make([]Event, 0, attempts)
	p := freeThrowProbability(shooter, in, pressure)
	for i := 0; i < attempts; i++ {
		line.FTA++
		hit := prob.MustRoll(p, rng)
		if hit {
			line.FTM++
			line.Points++
			made++
		}
		events = append(events, Event{
			Kind: EventFreeThrow, Quarter: in.Quarter, Team: in.OffTeam,
			Player: shooter.ID, Made: hit, Points: boolToInt(hit),
		})
	}
	return made, events
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
