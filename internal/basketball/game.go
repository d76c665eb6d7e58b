package basketball

import (
	"sort"

	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// Rules are the orchestrator-level period settings.
type Rules struct {
	QuarterMinutes  int // default 12
	OvertimeMinutes int // default 5
	MaxOvertimes    int // default 6; beyond it a tie stands
}

func (r Rules) withDefaults() Rules {
	if r.QuarterMinutes <= 0 {
		r.QuarterMinutes = 12
	}
	if r.OvertimeMinutes <= 0 {
		r.OvertimeMinutes = 5
	}
	if r.MaxOvertimes <= 0 {
		r.MaxOvertimes = 6
	}
	return r
}

const regulationQuarters = 4

// TeamBox aggregates one side's box score.
type TeamBox struct {
	Name      string
	Points    int
	Rebounds  int
	Turnovers int
	Fouls     int
	Players   []PlayerStats
}

// Result is one complete simulated game.
type Result struct {
	HomeScore    int
	AwayScore    int
	Winner       string // empty only when the overtime cap leaves a tie
	PeriodScores [][2]int
	Overtimes    int
	Home         TeamBox
	Away         TeamBox
	Events       []Event
}

type side struct {
	team      *Team
	onFloor   []*roster.Player
	teamFouls int
	score     int
	periods   []int
	targets   map[string]float64
}

func newSide(t *Team, totalMinutes float64) *side {
	s := &side{
		team:    t,
		onFloor: append([]*roster.Player(nil), t.Roster[:5]...),
		targets: make(map[string]float64, len(t.Roster)),
	}
	// equal split unless tactics say otherwise; five player-minutes
	// pass every game minute
	equal := totalMinutes * 5 / float64(len(t.Roster))
	for _, p := range t.Roster {
		if v, ok := t.Tactics.MinutesTargets[p.ID]; ok {
			s.targets[p.ID] = v
		} else {
			s.targets[p.ID] = equal
		}
	}
	return s
}

// rotate refreshes the five on the floor: eligible players with the
// largest remaining minutes deficit play. Fouled-out players sit
// unless the roster physically cannot field five without them.
func (s *side) rotate(arena StatsArena) {
	type cand struct {
		p       *roster.Player
		deficit float64
		out     bool
	}
	cands := make([]cand, 0, len(s.team.Roster))
	for _, p := range s.team.Roster {
		line := arena.line(p)
		cands = append(cands, cand{
			p:       p,
			deficit: s.targets[p.ID] - line.Minutes,
			out:     line.FouledOut,
		})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].out != cands[j].out {
			return !cands[i].out
		}
		return cands[i].deficit > cands[j].deficit
	})
	for i := 0; i < 5; i++ {
		s.onFloor[i] = cands[i].p
	}
}

// Simulate plays one full game, cloning both teams up front so the
// caller's rosters survive untouched.
func Simulate(home, away *Team, rules Rules, rng prob.RandomSource) (*Result, error) {
	if err := home.Validate(); err != nil {
		return nil, err
	}
	if err := away.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = prob.DefaultRNG()
	}
	rules = rules.withDefaults()

	totalMinutes := float64(rules.QuarterMinutes * regulationQuarters)
	h := newSide(home.Clone(), totalMinutes)
	a := newSide(away.Clone(), totalMinutes)

	arena := StatsArena{}
	for _, p := range h.team.Roster {
		arena.line(p)
	}
	for _, p := range a.team.Roster {
		arena.line(p)
	}

	var events []Event
	overtimes := 0

	for period := 1; ; period++ {
		if period > regulationQuarters {
			if h.score != a.score {
				break
			}
			if overtimes >= rules.MaxOvertimes {
				break
			}
			overtimes++
		}

		minutes := rules.QuarterMinutes
		if period > regulationQuarters {
			minutes = rules.OvertimeMinutes
		}

		// team fouls reset every period; personal fouls never do
		h.teamFouls = 0
		a.teamFouls = 0

		// alternate the opening possession each period
		offense, defense := h, a
		if period%2 == 0 {
			offense, defense = a, h
		}

		hBefore, aBefore := h.score, a.score
		clock := float64(minutes * 60)
		for clock > 0 {
			offense.rotate(arena)
			defense.rotate(arena)

			res := ResolvePossession(PossessionInput{
				Offense:      offense.onFloor,
				Defense:      defense.onFloor,
				OffTeam:      offense.team.Name,
				DefTeam:      defense.team.Name,
				OffTactics:   offense.team.Tactics,
				DefTactics:   defense.team.Tactics,
				Quarter:      period,
				ClockSeconds: clock,
				DefTeamFouls: defense.teamFouls,
				ScoreDiff:    offense.score - defense.score,
			}, arena, rng)

			offense.score += res.Points
			defense.teamFouls += res.DefFoulsAdded
			events = append(events, res.Events...)

			for _, floor := range [][]*roster.Player{offense.onFloor, defense.onFloor} {
				for _, p := range floor {
					line := arena.line(p)
					line.Minutes += res.Elapsed / 60
					if line.PersonalFouls >= FoulOutThreshold && !line.FouledOut {
						line.FouledOut = true
						events = append(events, Event{
							Kind: EventFoul, Quarter: period, Player: p.ID, Note: "fouled_out",
						})
					}
				}
			}

			clock -= res.Elapsed
			if res.Elapsed <= 0 {
				break
			}
			offense, defense = defense, offense
		}

		h.periods = append(h.periods, h.score-hBefore)
		a.periods = append(a.periods, a.score-aBefore)
	}

	res := &Result{
		HomeScore: h.score,
		AwayScore: a.score,
		Overtimes: overtimes,
		Home:      boxFor(h, arena),
		Away:      boxFor(a, arena),
		Events:    events,
	}
	for i := range h.periods {
		res.PeriodScores = append(res.PeriodScores, [2]int{h.periods[i], a.periods[i]})
	}
	switch {
	case h.score > a.score:
		res.Winner = h.team.Name
	case a.score > h.score:
		res.Winner = a.team.Name
	}
	return res, nil
}

func boxFor(s *side, arena StatsArena) TeamBox {
	box := TeamBox{Name: s.team.Name, Points: s.score}
	for _, p := range s.team.Roster {
		line := arena.line(p)
		box.Players = append(box.Players, *line)
		box.Rebounds += line.Rebounds
		box.Turnovers += line.Turnovers
		box.Fouls += line.PersonalFouls
	}
	return box
}
