package basketball

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dugoutlabs/gamesim/internal/roster"
)

// ShotType is the closed shot taxonomy.
type ShotType int

const (
	ShotThree ShotType = iota
	ShotLongMidrange
	ShotShortMidrange
	ShotLayup
	ShotDunk
)

func (s ShotType) String() string {
	switch s {
	case ShotThree:
		return "three"
	case ShotLongMidrange:
		return "long_midrange"
	case ShotShortMidrange:
		return "short_midrange"
	case ShotLayup:
		return "layup"
	case ShotDunk:
		return "dunk"
	default:
		return "unknown"
	}
}

// Points the shot is worth when made.
func (s ShotType) Points() int {
	if s == ShotThree {
		return 3
	}
	return 2
}

// AtRim reports a layup or dunk.
func (s ShotType) AtRim() bool { return s == ShotLayup || s == ShotDunk }

// ContestTier is the discrete defender-distance model.
type ContestTier int

const (
	WideOpen ContestTier = iota
	Contested
	HeavilyContested
)

func (c ContestTier) String() string {
	switch c {
	case WideOpen:
		return "wide_open"
	case Contested:
		return "contested"
	case HeavilyContested:
		return "heavy"
	default:
		return "unknown"
	}
}

// TurnoverType is the closed turnover taxonomy.
type TurnoverType int

const (
	TurnoverBadPass TurnoverType = iota
	TurnoverLostBall
	TurnoverOffensiveFoul
	TurnoverShotClock
	TurnoverOther
)

func (t TurnoverType) String() string {
	switch t {
	case TurnoverBadPass:
		return "bad_pass"
	case TurnoverLostBall:
		return "lost_ball"
	case TurnoverOffensiveFoul:
		return "offensive_foul"
	case TurnoverShotClock:
		return "shot_clock"
	case TurnoverOther:
		return "other"
	default:
		return "unknown"
	}
}

// Pace preference from tactics.
type Pace int

const (
	PaceNormal Pace = iota
	PaceSlow
	PaceFast
)

// Scheme is the defensive scheme.
type Scheme int

const (
	ManToMan Scheme = iota
	Zone
)

// ReboundStrategy adjusts how hard a team chases its own misses.
type ReboundStrategy int

const (
	ReboundNormal ReboundStrategy = iota
	CrashTheGlass
	PreventTransition
)

// Tactics is the caller-supplied tactical configuration.
type Tactics struct {
	Pace           Pace
	Scheme         Scheme
	Rebounding     ReboundStrategy
	MinutesTargets map[string]float64 // player id -> target minutes; empty means equal split
}

// Team is one side of a basketball game.
type Team struct {
	Name    string
	Roster  []*roster.Player // first five are the starters
	Tactics Tactics
}

var ErrInvalidBasketballTeam = errors.New("invalid basketball team")

// Validate fails fast before any game state exists.
func (t *Team) Validate() error {
	var errs []string
	if len(t.Roster) < 5 {
		errs = append(errs, fmt.Sprintf("roster needs at least 5 players, got %d", len(t.Roster)))
	}
	seen := make(map[string]bool)
	for i, p := range t.Roster {
		if p == nil {
			errs = append(errs, fmt.Sprintf("roster slot %d is empty", i))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Sprintf("player %s appears twice", p.ID))
		}
		seen[p.ID] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidBasketballTeam, t.Name, strings.Join(errs, "; "))
	}
	return nil
}

// Clone deep-copies the team so simulations never alias caller state.
func (t *Team) Clone() *Team {
	out := &Team{Name: t.Name, Tactics: t.Tactics, Roster: make([]*roster.Player, len(t.Roster))}
	for i, p := range t.Roster {
		out.Roster[i] = p.Clone()
	}
	if t.Tactics.MinutesTargets != nil {
		out.Tactics.MinutesTargets = make(map[string]float64, len(t.Tactics.MinutesTargets))
		for k, v := range t.Tactics.MinutesTargets {
			out.Tactics.MinutesTargets[k] = v
		}
	}
	return out
}

// EventKind tags entries of the possession event stream.
type EventKind int

const (
	EventShot EventKind = iota
	EventRebound
	EventTurnover
	EventFoul
	EventFreeThrow
)

// Event is one entry of the ordered game event stream.
type Event struct {
	Kind     EventKind
	Quarter  int
	Team     string
	Player   string
	Shot     ShotType
	Tier     ContestTier
	Made     bool
	Blocked  bool
	Points   int
	Turnover TurnoverType
	Note     string
}

// PlayerStats is one arena entry of per-player mutable counters,
// keyed by player id for cheap snapshotting.
type PlayerStats struct {
	ID            string
	Name          string
	Minutes       float64
	Points        int
	FGA           int
	FGM           int
	ThreePA       int
	ThreePM       int
	FTA           int
	FTM           int
	Rebounds      int
	OffRebounds   int
	Turnovers     int
	Steals        int
	Blocks        int
	PersonalFouls int
	FouledOut     bool
}

// StatsArena holds every player's counters for one game.
type StatsArena map[string]*PlayerStats

func (a StatsArena) line(p *roster.Player) *PlayerStats {
	s, ok := a[p.ID]
	if !ok {
		s = &PlayerStats{ID: p.ID, Name: p.Name}
		a[p.ID] = s
	}
	return s
}
