package baseball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

const (
	stealBaseSuccessRate = 0.68
	extraBaseTakeRate    = 0.28
	sacFlyBaseRate       = 0.50
)

func runningComposite(p *roster.Player) float64 {
	return prob.Composite(p.Attrs, roster.BaserunningWeights)
}

// applyOutcome advances runners and the batter for one resolved
// at-bat, mutating bases in place. Returns runs scored on the play.
func applyOutcome(bases *BaseState, batter *roster.Player, o Outcome, outs int,
	defense map[Position]*roster.Player, rng prob.RandomSource) int {
	switch o {
	case OutcomeWalk, OutcomeHitByPitch, OutcomeError:
		return forceAdvance(bases, batter)
	case OutcomeSingle:
		return advanceOnHit(bases, batter, 1, defense, rng)
	case OutcomeDouble:
		return advanceOnHit(bases, batter, 2, defense, rng)
	case OutcomeTriple:
		return advanceOnHit(bases, batter, 3, defense, rng)
	case OutcomeHomeRun:
		runs := bases.RunnersOn() + 1
		*bases = BaseState{}
		return runs
	case OutcomeDoublePlay:
		// lead force removed along with the batter
		bases[0] = nil
		return 0
	case OutcomeFieldersChoice:
		// lead runner erased, batter reaches first
		clearLeadRunner(bases)
		bases[0] = batter
		return 0
	case OutcomeFlyout:
		// tag up from third with less than two outs
		if bases[2] != nil && outs < 2 {
			runner := runningComposite(bases[2])
			arm := fieldingComposite(defense, CenterField)
			p := prob.SigmoidProbability(sacFlyBaseRate, runner-arm, prob.Steepness, prob.DefaultBand)
			if prob.MustRoll(p, rng) {
				bases[2] = nil
				return 1
			}
		}
		return 0
	case OutcomeGroundout:
		// productive out: unforced runners move up behind the play
		if outs < 2 {
			if bases[2] != nil && bases[1] == nil && bases[0] == nil {
				// contact play from third is not automatic; hold the runner
				return 0
			}
			if bases[1] != nil && bases[2] == nil {
				bases[2] = bases[1]
				bases[1] = nil
			}
		}
		return 0
	default:
		return 0
	}
}

// forceAdvance walks the batter to first, pushing only forced runners.
func forceAdvance(bases *BaseState, batter *roster.Player) int {
	runs := 0
	if bases[0] != nil {
		if bases[1] != nil {
			if bases[2] != nil {
				runs++
			} else {
				bases[2] = bases[1]
			}
			bases[1] = bases[0]
		} else {
			bases[1] = bases[0]
		}
	}
	bases[0] = batter
	return runs
}

// advanceOnHit moves every runner by the hit's bases, with fast
// runners taking the extra base on singles against weak outfield arms.
func advanceOnHit(bases *BaseState, batter *roster.Player, hitBases int,
	defense map[Position]*roster.Player, rng prob.RandomSource) int {
	runs := 0
	arm := fieldingComposite(defense, CenterField)

	for i := 2; i >= 0; i-- {
		r := bases[i]
		if r == nil {
			continue
		}
		bases[i] = nil
		target := i + hitBases
		if target < 3 {
			// take the extra base: first-to-third on a single,
			// scoring from second, scoring from first on a double
			p := prob.SigmoidProbability(extraBaseTakeRate, runningComposite(r)-arm,
				prob.Steepness, prob.DefaultBand)
			if prob.MustRoll(p, rng) {
				target++
			}
		}
		if target >= 3 {
			runs++
			continue
		}
		bases[target] = r
	}

	switch hitBases {
	case 1:
		bases[0] = batter
	case 2:
		bases[1] = batter
	case 3:
		bases[2] = batter
	}
	return runs
}

func clearLeadRunner(bases *BaseState) {
	for i := 2; i >= 0; i-- {
		if bases[i] != nil {
			bases[i] = nil
			return
		}
	}
}

// StealResult reports one stolen-base attempt between pitches.
type StealResult struct {
	Attempted bool
	Success   bool
	Runner    *roster.Player
	FromBase  int // 0 = first, 1 = second
}

// AttemptSteal gives the lead-eligible runner a chance to go. Only
// first-to-second and second-to-third are modeled; attempts are rare
// unless the runner is genuinely fast.
func AttemptSteal(bases *BaseState, catcher *roster.Player, rng prob.RandomSource) StealResult {
	from := -1
	if bases[0] != nil && bases[1] == nil {
		from = 0
	} else if bases[1] != nil && bases[2] == nil {
		from = 1
	}
	if from < 0 {
		return StealResult{}
	}
	runner := bases[from]
	runComp := runningComposite(runner)

	attemptProb := 0.02 + (runComp-prob.ReferenceMidpoint)/400
	if from == 1 {
		attemptProb *= 0.4 // third base is stolen far less often
	}
	attemptProb = prob.Band{Min: 0.003, Max: 0.25}.Clamp(attemptProb)
	if !prob.MustRoll(attemptProb, rng) {
		return StealResult{}
	}

	arm := 30.0
	if catcher != nil {
		arm = prob.Composite(catcher.Attrs, roster.CatcherFieldingWeights)
	}
	successProb := prob.SigmoidProbability(stealBaseSuccessRate, runComp-arm,
		prob.Steepness, prob.DefaultBand)
	success := prob.MustRoll(successProb, rng)

	if success {
		bases[from+1] = runner
	}
	bases[from] = nil
	return StealResult{Attempted: true, Success: success, Runner: runner, FromBase: from}
}
