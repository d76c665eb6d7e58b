package roster

import "hash/fnv"

// Attribute names. Every player carries the same 25 scores (0-100),
// grouped physical / mental / technical. The set is fixed: weight
// tables reference these names and skip anything a player is missing.
const (
	// physical
	AttrSpeed        = "speed"
	AttrAcceleration = "acceleration"
	AttrAgility      = "agility"
	AttrStrength     = "strength"
	AttrGripStrength = "grip_strength"
	AttrStamina      = "stamina"
	AttrHeight       = "height"
	AttrJumping      = "jumping"
	AttrReactions    = "reactions"

	// mental
	AttrComposure     = "composure"
	AttrBravery       = "bravery"
	AttrDetermination = "determination"
	AttrAnticipation  = "anticipation"
	AttrDecisions     = "decisions"
	AttrConcentration = "concentration"
	AttrTeamwork      = "teamwork"
	AttrWorkRate      = "work_rate"

	// technical
	AttrThrowAccuracy  = "throw_accuracy"
	AttrThrowPower     = "throw_power"
	AttrCatching       = "catching"
	AttrBattingContact = "batting_contact"
	AttrBattingPower   = "batting_power"
	AttrFinesse        = "finesse"
	AttrTechnique      = "technique"
	AttrVision         = "vision"
)

// AllAttributes lists every score a roster player is expected to carry.
var AllAttributes = []string{
	AttrSpeed, AttrAcceleration, AttrAgility, AttrStrength, AttrGripStrength,
	AttrStamina, AttrHeight, AttrJumping, AttrReactions,
	AttrComposure, AttrBravery, AttrDetermination, AttrAnticipation,
	AttrDecisions, AttrConcentration, AttrTeamwork, AttrWorkRate,
	AttrThrowAccuracy, AttrThrowPower, AttrCatching, AttrBattingContact,
	AttrBattingPower, AttrFinesse, AttrTechnique, AttrVision,
}

// Handedness of a player. Derived once from identity, never re-rolled.
type Handedness int

const (
	HandRight Handedness = iota
	HandLeft
	HandSwitch
)

func (h Handedness) String() string {
	switch h {
	case HandRight:
		return "R"
	case HandLeft:
		return "L"
	case HandSwitch:
		return "S"
	default:
		return "?"
	}
}

// Player is one roster entry. Attributes are immutable for the
// duration of a simulation run; the engine only reads them.
type Player struct {
	ID    string
	Name  string
	Attrs map[string]int
}

// Hand derives a stable handedness from the player id: roughly
// 60% right, 30% left, 10% switch. Stable across runs so that a
// platoon advantage is a property of the player, not of the seed.
func (p *Player) Hand() Handedness {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p.ID))
	switch v := h.Sum64() % 10; {
	case v < 6:
		return HandRight
	case v < 9:
		return HandLeft
	default:
		return HandSwitch
	}
}

// Attr returns the named score, clamped into [0,100]. Unknown names
// report ok=false so composites can exclude them from the weight sum.
func (p *Player) Attr(name string) (int, bool) {
	v, ok := p.Attrs[name]
	if !ok {
		return 0, false
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v, true
}

// NewUniformPlayer builds a player with every attribute at level.
// Handy for tests and synthetic benchmarks.
func NewUniformPlayer(id, name string, level int) *Player {
	attrs := make(map[string]int, len(AllAttributes))
	for _, a := range AllAttributes {
		attrs[a] = level
	}
	return &Player{ID: id, Name: name, Attrs: attrs}
}

// Clone returns an independent copy so orchestrators can hand rosters
// to parallel workers without aliasing.
func (p *Player) Clone() *Player {
	attrs := make(map[string]int, len(p.Attrs))
	for k, v := range p.Attrs {
		attrs[k] = v
	}
	return &Player{ID: p.ID, Name: p.Name, Attrs: attrs}
}
