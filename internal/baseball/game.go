package baseball

import (
	"fmt"

	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// Rules are the orchestrator-level end conditions.
type Rules struct {
	MercyRule       bool
	MercyMargin     int // lead required, default 10
	MercyMinInning  int // earliest completed inning the rule applies, default 5
	MaxExtraInnings int // default 9 (game ends, possibly tied, after inning 18)
}

func (r Rules) withDefaults() Rules {
	if r.MercyMargin <= 0 {
		r.MercyMargin = 10
	}
	if r.MercyMinInning <= 0 {
		r.MercyMinInning = 5
	}
	if r.MaxExtraInnings <= 0 {
		r.MaxExtraInnings = 9
	}
	return r
}

const regulationInnings = 9

// BatterLine is one lineup slot of the box score.
type BatterLine struct {
	ID          string
	Name        string
	AtBats      int
	Hits        int
	HomeRuns    int
	RBI         int
	Walks       int
	Strikeouts  int
	StolenBases int
}

// PitcherLine is one pitcher's aggregated line. InningsPitched is
// derived from recorded outs in the conventional x.y notation.
type PitcherLine struct {
	ID             string
	Name           string
	Outs           int
	InningsPitched string
	Pitches        int
	Hits           int
	Runs           int
	Walks          int
	Strikeouts     int
}

// TeamBox aggregates one side of the game.
type TeamBox struct {
	Name       string
	Runs       int
	Hits       int
	Errors     int
	InningRuns []int
	Batting    []BatterLine
	Pitching   []PitcherLine
}

// Result is the complete outcome of one simulated game.
type Result struct {
	HomeScore int
	AwayScore int
	Winner    string // empty when the extra-innings cap leaves a tie
	Innings   int
	WalkOff   bool
	Mercy     bool
	Home      TeamBox
	Away      TeamBox
	Events    []Event
}

// teamState is the per-team mutable side of a game in progress.
type teamState struct {
	team    *Team
	pm      *PitcherManager
	batIdx  int
	runs    int
	hits    int
	errors  int // errors committed while fielding
	inning  []int
	batting map[string]*BatterLine
}

func newTeamState(t *Team) *teamState {
	ts := &teamState{
		team:    t,
		pm:      NewPitcherManager(t.StartingPitcher, t.Bullpen, t.Strategy),
		batting: make(map[string]*BatterLine),
	}
	for _, p := range t.Lineup {
		ts.batting[p.ID] = &BatterLine{ID: p.ID, Name: p.Name}
	}
	return ts
}

func (ts *teamState) nextBatter() *roster.Player {
	b := ts.team.Lineup[ts.batIdx]
	ts.batIdx = (ts.batIdx + 1) % len(ts.team.Lineup)
	return b
}

// Simulate plays one full game. Both teams are validated and cloned
// before any state is created; the caller's rosters are never touched.
func Simulate(home, away *Team, rules Rules, rng prob.RandomSource) (*Result, error) {
	if err := away.Validate(); err != nil {
		return nil, err
	}
	if err := home.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = prob.DefaultRNG()
	}
	rules = rules.withDefaults()

	g := &game{
		home:  newTeamState(home.Clone()),
		away:  newTeamState(away.Clone()),
		rules: rules,
		rng:   rng,
	}
	return g.play()
}

type game struct {
	home, away *teamState
	rules      Rules
	rng        prob.RandomSource
	events     []Event
	walkOff    bool
	mercy      bool
}

func (g *game) play() (*Result, error) {
	maxInnings := regulationInnings + g.rules.MaxExtraInnings
	inning := 1
	for ; inning <= maxInnings; inning++ {
		if err := g.playHalf(inning, TopHalf, g.away, g.home); err != nil {
			return nil, err
		}

		// home already ahead after the top of the 9th (or later):
		// the bottom half is never played
		if inning >= regulationInnings && g.home.runs > g.away.runs {
			g.home.inning = append(g.home.inning, 0)
			break
		}

		if err := g.playHalf(inning, BottomHalf, g.home, g.away); err != nil {
			return nil, err
		}
		if g.walkOff {
			break
		}
		if inning >= regulationInnings && g.home.runs != g.away.runs {
			break
		}
		if g.mercyTriggered(inning) {
			g.mercy = true
			break
		}
	}
	if inning > maxInnings {
		inning = maxInnings
	}

	res := &Result{
		HomeScore: g.home.runs,
		AwayScore: g.away.runs,
		Innings:   inning,
		WalkOff:   g.walkOff,
		Mercy:     g.mercy,
		Home:      g.box(g.home),
		Away:      g.box(g.away),
		Events:    g.events,
	}
	switch {
	case g.home.runs > g.away.runs:
		res.Winner = g.home.team.Name
	case g.away.runs > g.home.runs:
		res.Winner = g.away.team.Name
	}
	return res, nil
}

func (g *game) mercyTriggered(completedInning int) bool {
	if !g.rules.MercyRule || completedInning < g.rules.MercyMinInning {
		return false
	}
	diff := g.home.runs - g.away.runs
	if diff < 0 {
		diff = -diff
	}
	return diff >= g.rules.MercyMargin
}

// playHalf runs one half-inning to exactly three outs, except a
// walk-off in the home half of the 9th or later.
func (g *game) playHalf(inning int, half Half, batting, fielding *teamState) error {
	fielding.pm.StartInning()
	fielding.pm.FilterBullpen()

	var bases BaseState
	outs := 0
	catcher := fielding.team.Defense[Catcher]
	walkOffLive := half == BottomHalf && inning >= regulationInnings

	for outs < 3 {
		scoreDiffFielding := fielding.runs - batting.runs
		if reason := fielding.pm.ShouldSubstitute(inning, bases, scoreDiffFielding); reason != ReasonNone {
			next, err := fielding.pm.Substitute(reason, inning)
			if err != nil {
				return fmt.Errorf("substitute pitcher: %w", err)
			}
			g.events = append(g.events, Event{
				Kind: EventSubstitution, Inning: inning, Half: half, Outs: outs,
				Pitcher: next.ID, Note: reason.String(),
			})
		}
		pitcher := fielding.pm.Active

		if steal := AttemptSteal(&bases, catcher, g.rng); steal.Attempted {
			note := "caught_stealing"
			if steal.Success {
				note = "stolen_base"
				batting.batting[steal.Runner.ID].StolenBases++
			} else {
				outs++
				fielding.pm.RecordCaughtStealing()
			}
			g.events = append(g.events, Event{
				Kind: EventSteal, Inning: inning, Half: half, Outs: outs,
				Batter: steal.Runner.ID, Pitcher: pitcher.ID, Note: note,
			})
			if outs >= 3 {
				break
			}
		}

		batter := batting.nextBatter()
		res := ResolveAtBat(AtBatInput{
			Batter:     batter,
			Pitcher:    pitcher,
			Defense:    fielding.team.Defense,
			Bases:      bases,
			Outs:       outs,
			Inning:     inning,
			ScoreDiff:  batting.runs - fielding.runs,
			PitchCount: fielding.pm.PitchCount(),
		}, g.rng)

		outsBefore := outs
		outs += res.Outcome.Outs()
		runs := applyOutcome(&bases, batter, res.Outcome, outsBefore, fielding.team.Defense, g.rng)
		batting.runs += runs
		g.recordBatting(batting, batter, res.Outcome, runs)
		if res.Outcome == OutcomeError {
			fielding.errors++
		}
		fielding.pm.RecordAtBat(res, runs)

		g.events = append(g.events, Event{
			Kind: EventAtBat, Inning: inning, Half: half, Outs: outs,
			Batter: batter.ID, Pitcher: pitcher.ID, Outcome: res.Outcome, Runs: runs,
		})

		if walkOffLive && batting.runs > fielding.runs {
			g.walkOff = true
			break
		}
	}

	batting.inning = append(batting.inning, halfRuns(batting))
	return nil
}

// halfRuns reads runs scored this half from the running totals.
func halfRuns(ts *teamState) int {
	prior := 0
	for _, r := range ts.inning {
		prior += r
	}
	return ts.runs - prior
}

func (g *game) recordBatting(ts *teamState, batter *roster.Player, o Outcome, rbi int) {
	line := ts.batting[batter.ID]
	if line == nil {
		line = &BatterLine{ID: batter.ID, Name: batter.Name}
		ts.batting[batter.ID] = line
	}
	switch o {
	case OutcomeWalk, OutcomeHitByPitch:
		line.Walks++
	default:
		line.AtBats++
	}
	if o.IsHit() {
		line.Hits++
		ts.hits++
	}
	if o == OutcomeHomeRun {
		line.HomeRuns++
	}
	if o == OutcomeStrikeout {
		line.Strikeouts++
	}
	line.RBI += rbi
}

func (g *game) box(ts *teamState) TeamBox {
	box := TeamBox{
		Name:       ts.team.Name,
		Runs:       ts.runs,
		Hits:       ts.hits,
		Errors:     ts.errors,
		InningRuns: ts.inning,
	}
	for _, p := range ts.team.Lineup {
		box.Batting = append(box.Batting, *ts.batting[p.ID])
	}
	for _, p := range ts.pm.UsedPitchers() {
		l := ts.pm.line(p.ID)
		box.Pitching = append(box.Pitching, PitcherLine{
			ID:             p.ID,
			Name:           p.Name,
			Outs:           l.outsRecorded,
			InningsPitched: inningsPitched(l.outsRecorded),
			Pitches:        l.pitches,
			Hits:           l.hitsAllowed,
			Runs:           l.runsAllowed,
			Walks:          l.walksAllowed,
			Strikeouts:     l.strikeouts,
		})
	}
	return box
}

// inningsPitched renders outs in conventional x.y form (e.g. 20 outs
// is "6.2").
func inningsPitched(outs int) string {
	return fmt.Sprintf("%d.%d", outs/3, outs%3)
}
