package baseball

import (
	"errors"

	"github.com/dugoutlabs/gamesim/internal/roster"
)

// SubstitutionReason is the closed set of triggers, listed in the
// priority order ShouldSubstitute checks them.
type SubstitutionReason int

const (
	ReasonNone SubstitutionReason = iota
	ReasonPitchCount
	ReasonMeltdown
	ReasonBasesLoadedDamage
	ReasonRopeExceeded
	ReasonCloser
)

func (r SubstitutionReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonPitchCount:
		return "pitch_count"
	case ReasonMeltdown:
		return "meltdown"
	case ReasonBasesLoadedDamage:
		return "bases_loaded_damage"
	case ReasonRopeExceeded:
		return "rope_exceeded"
	case ReasonCloser:
		return "closer"
	default:
		return "unknown"
	}
}

const (
	meltdownHitsInning = 4
	minRope            = 1
	closerMinInning    = 9
	closerMaxLead      = 3
)

var ErrBullpenEmpty = errors.New("bullpen is empty")

// Bullpen is a double-ended queue of available relievers.
// Invariant: the closer, if the roster carries one, is reserved at
// the tail. Normal substitutions consume from the head, save
// situations from the tail.
type Bullpen struct {
	q []*roster.Player
}

func NewBullpen(pitchers []*roster.Player) *Bullpen {
	return &Bullpen{q: append([]*roster.Player(nil), pitchers...)}
}

func (b *Bullpen) Len() int { return len(b.q) }

// PopNext removes and returns the head reliever (FIFO order).
func (b *Bullpen) PopNext() (*roster.Player, error) {
	if len(b.q) == 0 {
		return nil, ErrBullpenEmpty
	}
	p := b.q[0]
	b.q = b.q[1:]
	return p, nil
}

// PopCloser removes and returns the tail reliever, conventionally the
// closer.
func (b *Bullpen) PopCloser() (*roster.Player, error) {
	if len(b.q) == 0 {
		return nil, ErrBullpenEmpty
	}
	p := b.q[len(b.q)-1]
	b.q = b.q[:len(b.q)-1]
	return p, nil
}

// Remaining filters out anyone in removed; the orchestrator applies it
// defensively so a removed pitcher can never re-enter through a stale
// queue reference.
func (b *Bullpen) Remaining(removed map[string]bool) []*roster.Player {
	out := make([]*roster.Player, 0, len(b.q))
	for _, p := range b.q {
		if !removed[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// pitcherLine is the per-pitcher mutable counters arena entry, keyed
// by player id rather than held on the player.
type pitcherLine struct {
	pitches       int
	outsRecorded  int
	hitsInning    int
	runsInning    int
	hitsAllowed   int
	runsAllowed   int
	walksAllowed  int
	strikeouts    int
	enteredInning int
	reliever      bool
	exhausted     bool
}

// PitcherManager owns the active pitcher, the bullpen and the
// permanent removed set for one team in one game.
type PitcherManager struct {
	Active   *roster.Player
	Bullpen  *Bullpen
	Strategy PitchingStrategy

	removed map[string]bool
	lines   map[string]*pitcherLine
	used    []*roster.Player
}

func NewPitcherManager(starter *roster.Player, bullpen []*roster.Player, s PitchingStrategy) *PitcherManager {
	pm := &PitcherManager{
		Active:   starter,
		Bullpen:  NewBullpen(bullpen),
		Strategy: s.withDefaults(),
		removed:  make(map[string]bool),
		lines:    make(map[string]*pitcherLine),
	}
	pm.lines[starter.ID] = &pitcherLine{enteredInning: 1}
	pm.used = []*roster.Player{starter}
	return pm
}

// UsedPitchers lists everyone who has pitched, in order of appearance.
func (pm *PitcherManager) UsedPitchers() []*roster.Player {
	return pm.used
}

func (pm *PitcherManager) line(id string) *pitcherLine {
	l, ok := pm.lines[id]
	if !ok {
		l = &pitcherLine{}
		pm.lines[id] = l
	}
	return l
}

// ActiveLine exposes the active pitcher's counters.
func (pm *PitcherManager) activeLine() *pitcherLine { return pm.line(pm.Active.ID) }

// PitchCount of the active pitcher.
func (pm *PitcherManager) PitchCount() int { return pm.activeLine().pitches }

// Removed reports whether the pitcher has been pulled this game.
// Membership is permanent: a removed pitcher can never re-enter.
func (pm *PitcherManager) Removed(id string) bool { return pm.removed[id] }

// RecordAtBat folds one resolved at-bat into the active pitcher's
// counters.
func (pm *PitcherManager) RecordAtBat(res AtBatResult, runsScored int) {
	l := pm.activeLine()
	l.pitches += res.Pitches
	if res.Exhausted {
		l.exhausted = true
	}
	l.outsRecorded += res.Outcome.Outs()
	l.runsInning += runsScored
	l.runsAllowed += runsScored
	if res.Outcome.IsHit() {
		l.hitsInning++
		l.hitsAllowed++
	}
	switch res.Outcome {
	case OutcomeWalk:
		l.walksAllowed++
	case OutcomeStrikeout:
		l.strikeouts++
	}
}

// RecordCaughtStealing credits the battery with an out on the bases.
func (pm *PitcherManager) RecordCaughtStealing() {
	pm.activeLine().outsRecorded++
}

// StartInning resets the per-inning damage counters.
func (pm *PitcherManager) StartInning() {
	l := pm.activeLine()
	l.hitsInning = 0
	l.runsInning = 0
}

// rope is the dynamic run tolerance for the active pitcher: how many
// runs in an inning the manager stomachs before going to the bullpen.
func (pm *PitcherManager) rope(inning int, bases BaseState, scoreDiff int) int {
	l := pm.activeLine()

	rope := pm.Strategy.BaseRopeStarter
	if l.reliever {
		rope = pm.Strategy.BaseRopeReliever
	}
	if pm.Strategy.QuickHook {
		rope--
	}
	if pm.Strategy.LongLeash {
		rope++
	}

	// deep pitch counts shorten the leash
	switch pc := l.pitches; {
	case pc > 90:
		rope -= 2
	case pc > 70:
		rope--
	}

	// late innings shorten it further
	switch {
	case inning >= 8:
		rope--
	case inning <= 3:
		rope++
	}

	if bases.RunnersOn() >= 2 {
		rope--
	}

	// close games get a shorter rope, blowouts a longer one
	if scoreDiff >= -2 && scoreDiff <= 2 {
		rope--
	} else if scoreDiff >= 5 {
		rope++
	}

	if rope < minRope {
		rope = minRope
	}
	return rope
}

// ShouldSubstitute checks the substitution triggers in priority order.
// scoreDiff is fielding team minus batting team.
func (pm *PitcherManager) ShouldSubstitute(inning int, bases BaseState, scoreDiff int) SubstitutionReason {
	if pm.Bullpen.Len() == 0 {
		return ReasonNone
	}
	l := pm.activeLine()

	// hard pitch-count cap applies to starters only; an exhausted
	// arm comes out whoever it belongs to
	if !l.reliever && l.pitches > pm.Strategy.StarterMaxPitchCount {
		return ReasonPitchCount
	}
	if l.exhausted {
		return ReasonPitchCount
	}
	if l.hitsInning >= meltdownHitsInning {
		return ReasonMeltdown
	}
	if bases.Loaded() && l.runsInning > 0 {
		return ReasonBasesLoadedDamage
	}
	if l.runsInning >= pm.rope(inning, bases, scoreDiff) {
		return ReasonRopeExceeded
	}
	if pm.shouldBringInCloser(inning, scoreDiff) {
		return ReasonCloser
	}
	return ReasonNone
}

// shouldBringInCloser detects a save situation: 9th or later, narrow
// lead, bullpen available, and the current arm is not already a
// reliever protecting it.
func (pm *PitcherManager) shouldBringInCloser(inning, scoreDiff int) bool {
	if inning < closerMinInning {
		return false
	}
	if scoreDiff < 1 || scoreDiff > closerMaxLead {
		return false
	}
	if pm.Bullpen.Len() == 0 {
		return false
	}
	return !pm.activeLine().reliever
}

// FilterBullpen drops any removed pitcher from the queue. The queue
// cannot normally contain one; the orchestrator calls this anyway to
// enforce the no-re-entry invariant defensively.
func (pm *PitcherManager) FilterBullpen() {
	pm.Bullpen = NewBullpen(pm.Bullpen.Remaining(pm.removed))
}

// Substitute executes the change for the given reason. Closer calls
// draw from the tail of the queue, everything else from the head. The
// outgoing pitcher joins the permanent removed set.
func (pm *PitcherManager) Substitute(reason SubstitutionReason, inning int) (*roster.Player, error) {
	var next *roster.Player
	var err error
	if reason == ReasonCloser {
		next, err = pm.Bullpen.PopCloser()
	} else {
		next, err = pm.Bullpen.PopNext()
	}
	if err != nil {
		return nil, err
	}

	pm.removed[pm.Active.ID] = true
	pm.Active = next
	pm.used = append(pm.used, next)
	l := pm.line(next.ID)
	l.reliever = true
	l.enteredInning = inning
	return next, nil
}
