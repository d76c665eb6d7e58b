package baseball

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dugoutlabs/gamesim/internal/roster"
)

// Position on the defensive alignment.
type Position string

const (
	Pitcher     Position = "P"
	Catcher     Position = "C"
	FirstBase   Position = "1B"
	SecondBase  Position = "2B"
	ThirdBase   Position = "3B"
	Shortstop   Position = "SS"
	LeftField   Position = "LF"
	CenterField Position = "CF"
	RightField  Position = "RF"
)

// Outcome is the closed at-bat taxonomy. Exhaustive switches over it
// are the contract between the at-bat engine and the orchestrator.
type Outcome int

const (
	OutcomeStrikeout Outcome = iota
	OutcomeWalk
	OutcomeHitByPitch
	OutcomeSingle
	OutcomeDouble
	OutcomeTriple
	OutcomeHomeRun
	OutcomeGroundout
	OutcomeFlyout
	OutcomeLineout
	OutcomePopup
	OutcomeError
	OutcomeFieldersChoice
	OutcomeDoublePlay
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStrikeout:
		return "strikeout"
	case OutcomeWalk:
		return "walk"
	case OutcomeHitByPitch:
		return "hit_by_pitch"
	case OutcomeSingle:
		return "single"
	case OutcomeDouble:
		return "double"
	case OutcomeTriple:
		return "triple"
	case OutcomeHomeRun:
		return "home_run"
	case OutcomeGroundout:
		return "groundout"
	case OutcomeFlyout:
		return "flyout"
	case OutcomeLineout:
		return "lineout"
	case OutcomePopup:
		return "popup"
	case OutcomeError:
		return "error"
	case OutcomeFieldersChoice:
		return "fielders_choice"
	case OutcomeDoublePlay:
		return "double_play"
	default:
		return "unknown"
	}
}

// IsHit reports whether the outcome counts as a base hit.
func (o Outcome) IsHit() bool {
	switch o {
	case OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun:
		return true
	}
	return false
}

// Outs returns how many outs the outcome records against the batting
// team, before baserunning consequences.
func (o Outcome) Outs() int {
	switch o {
	case OutcomeStrikeout, OutcomeGroundout, OutcomeFlyout, OutcomeLineout,
		OutcomePopup, OutcomeFieldersChoice:
		return 1
	case OutcomeDoublePlay:
		return 2
	}
	return 0
}

// Half of an inning.
type Half int

const (
	TopHalf Half = iota
	BottomHalf
)

func (h Half) String() string {
	if h == TopHalf {
		return "top"
	}
	return "bottom"
}

// BaseState holds the three occupancy slots. Index 0 is first base.
type BaseState [3]*roster.Player

// RunnersOn counts occupied bases.
func (b BaseState) RunnersOn() int {
	n := 0
	for _, r := range b {
		if r != nil {
			n++
		}
	}
	return n
}

// Loaded reports bases loaded.
func (b BaseState) Loaded() bool { return b.RunnersOn() == 3 }

// ScoringPosition reports a runner on second or third.
func (b BaseState) ScoringPosition() bool { return b[1] != nil || b[2] != nil }

// EventKind distinguishes entries in the ordered event stream.
type EventKind int

const (
	EventAtBat EventKind = iota
	EventSteal
	EventSubstitution
)

// Event is one entry of the game's ordered event stream, consumed by
// external narrative and statistics renderers.
type Event struct {
	Kind    EventKind
	Inning  int
	Half    Half
	Outs    int
	Batter  string
	Pitcher string
	Outcome Outcome
	Runs    int
	Note    string
}

// PitchingStrategy carries the tactical tunables the roster AI feeds
// into the pitcher manager. Zero values fall back to defaults.
type PitchingStrategy struct {
	StarterMaxPitchCount int
	BaseRopeStarter      int
	BaseRopeReliever     int
	QuickHook            bool
	LongLeash            bool
}

func (s PitchingStrategy) withDefaults() PitchingStrategy {
	if s.StarterMaxPitchCount <= 0 {
		s.StarterMaxPitchCount = 100
	}
	if s.BaseRopeStarter <= 0 {
		s.BaseRopeStarter = 4
	}
	if s.BaseRopeReliever <= 0 {
		s.BaseRopeReliever = 3
	}
	return s
}

// Team is the caller-supplied side of a game. The designated-hitter
// rule is enforced at setup: the pitcher never bats.
type Team struct {
	Name            string
	Lineup          []*roster.Player
	StartingPitcher *roster.Player
	Bullpen         []*roster.Player // ordered; closer, if present, last
	Defense         map[Position]*roster.Player
	Strategy        PitchingStrategy
}

var ErrInvalidTeam = errors.New("invalid baseball team")

// Validate checks the setup before any game state is created. All
// problems are reported at once.
func (t *Team) Validate() error {
	var errs []string
	if len(t.Lineup) != 9 {
		errs = append(errs, fmt.Sprintf("lineup must have exactly 9 batters, got %d", len(t.Lineup)))
	}
	seen := make(map[string]bool)
	for i, p := range t.Lineup {
		if p == nil {
			errs = append(errs, fmt.Sprintf("lineup slot %d is empty", i))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Sprintf("player %s appears twice in lineup", p.ID))
		}
		seen[p.ID] = true
	}
	if t.StartingPitcher == nil {
		errs = append(errs, "starting pitcher is required")
	} else if seen[t.StartingPitcher.ID] {
		errs = append(errs, "pitcher must not bat (designated hitter rule)")
	}
	if t.Defense[Catcher] == nil {
		errs = append(errs, "defensive alignment is missing a catcher")
	}
	for i, p := range t.Bullpen {
		if p == nil {
			errs = append(errs, fmt.Sprintf("bullpen slot %d is empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidTeam, t.Name, strings.Join(errs, "; "))
	}
	return nil
}

// Clone deep-copies the team so a game never mutates caller-owned
// rosters. Defense entries pointing at lineup players keep pointing at
// the cloned lineup players.
func (t *Team) Clone() *Team {
	clones := make(map[string]*roster.Player)
	cp := func(p *roster.Player) *roster.Player {
		if p == nil {
			return nil
		}
		if c, ok := clones[p.ID]; ok {
			return c
		}
		c := p.Clone()
		clones[p.ID] = c
		return c
	}
	out := &Team{
		Name:            t.Name,
		Lineup:          make([]*roster.Player, len(t.Lineup)),
		StartingPitcher: cp(t.StartingPitcher),
		Bullpen:         make([]*roster.Player, len(t.Bullpen)),
		Defense:         make(map[Position]*roster.Player, len(t.Defense)),
		Strategy:        t.Strategy,
	}
	for i, p := range t.Lineup {
		out.Lineup[i] = cp(p)
	}
	for i, p := range t.Bullpen {
		out.Bullpen[i] = cp(p)
	}
	for pos, p := range t.Defense {
		out.Defense[pos] = cp(p)
	}
	return out
}
