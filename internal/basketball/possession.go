package basketball

import (
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

// Base make rates per shot type before skill and contest adjustment.
var baseMakeRate = map[ShotType]float64{
	ShotThree:         0.35,
	ShotLongMidrange:  0.40,
	ShotShortMidrange: 0.44,
	ShotLayup:         0.58,
	ShotDunk:          0.70,
}

// Contest penalty per tier, scaled further by the defender composite.
var contestPenalty = map[ContestTier]float64{
	WideOpen:         0,
	Contested:        0.09,
	HeavilyContested: 0.18,
}

// Base shot-type shares before tactics and tendencies.
var baseShotShares = map[ShotType]float64{
	ShotThree:         0.32,
	ShotLongMidrange:  0.10,
	ShotShortMidrange: 0.18,
	ShotLayup:         0.30,
	ShotDunk:          0.10,
}

var shotTypes = []ShotType{ShotThree, ShotLongMidrange, ShotShortMidrange, ShotLayup, ShotDunk}

const (
	blockBaseRate          = 0.07
	putbackHeightThreshold = 70
	maxSecondChances       = 3
)

// Possession length in seconds by pace, before clock truncation.
var possessionSeconds = map[Pace]float64{
	PaceSlow:   19,
	PaceNormal: 16,
	PaceFast:   13,
}

var usageWeights = prob.WeightTable{
	roster.AttrTechnique: 2,
	roster.AttrBravery:   1,
	roster.AttrVision:    1,
}

// PossessionInput is everything the resolver needs for one trip.
type PossessionInput struct {
	Offense      []*roster.Player // five on the floor
	Defense      []*roster.Player
	OffTeam      string
	DefTeam      string
	OffTactics   Tactics
	DefTactics   Tactics
	Quarter      int
	ClockSeconds float64 // remaining in the period
	DefTeamFouls int     // defense team fouls before this possession
	ScoreDiff    int     // offense minus defense
}

// PossessionResult is the resolved trip. Player counters land in the
// arena; this carries what the orchestrator needs to advance the game.
type PossessionResult struct {
	Points        int
	Elapsed       float64
	DefFoulsAdded int
	Events        []Event
}

func shooterComposite(p *roster.Player, shot ShotType) float64 {
	switch shot {
	case ShotThree:
		return prob.Composite(p.Attrs, roster.ThreePointWeights)
	case ShotLongMidrange, ShotShortMidrange:
		return prob.Composite(p.Attrs, roster.MidrangeWeights)
	case ShotLayup:
		return prob.Composite(p.Attrs, roster.LayupWeights)
	default:
		return prob.Composite(p.Attrs, roster.DunkWeights)
	}
}

func defenderComposite(p *roster.Player, shot ShotType) float64 {
	if shot.AtRim() {
		return prob.Composite(p.Attrs, roster.InteriorDefenseWeights)
	}
	return prob.Composite(p.Attrs, roster.PerimeterDefenseWeights)
}

// pickShooter weights the five on the floor by usage tendency.
func pickShooter(offense []*roster.Player, rng prob.RandomSource) *roster.Player {
	weights := make([]float64, len(offense))
	for i, p := range offense {
		weights[i] = prob.Composite(p.Attrs, usageWeights) + 10
	}
	return offense[prob.PickWeighted(weights, rng)]
}

// pickShotType builds the weighted shot mix for the shooter under the
// current tactics. Brave players force their way to the rim; zone
// defenses concede outside shots.
func pickShotType(shooter *roster.Player, offTactics, defTactics Tactics, rng prob.RandomSource) ShotType {
	bravery, _ := shooter.Attr(roster.AttrBravery)
	rimFactor := 0.7 + float64(bravery)/100*0.6 // 0.7..1.3

	weights := make([]float64, len(shotTypes))
	for i, st := range shotTypes {
		w := baseShotShares[st]
		if st.AtRim() {
			w *= rimFactor
		}
		switch offTactics.Pace {
		case PaceFast:
			if st.AtRim() || st == ShotThree {
				w *= 1.15
			}
		case PaceSlow:
			if st == ShotLongMidrange || st == ShotShortMidrange {
				w *= 1.2
			}
		}
		if defTactics.Scheme == Zone {
			// packed paint: outside shots up, rim attempts down
			if st == ShotThree || st == ShotLongMidrange {
				w *= 1.2
			}
			if st.AtRim() {
				w *= 0.8
			}
		}
		weights[i] = w
	}
	return shotTypes[prob.PickWeighted(weights, rng)]
}

// assignDefender picks the contesting defender: positional matchup in
// man-to-man, best-placed defender by shot location against a zone.
func assignDefender(shooter *roster.Player, in PossessionInput, shot ShotType) *roster.Player {
	if in.DefTactics.Scheme == ManToMan {
		for i, p := range in.Offense {
			if p == shooter && i < len(in.Defense) {
				return in.Defense[i]
			}
		}
		return in.Defense[0]
	}
	best := in.Defense[0]
	bestComp := defenderComposite(best, shot)
	for _, d := range in.Defense[1:] {
		if c := defenderComposite(d, shot); c > bestComp {
			best, bestComp = d, c
		}
	}
	return best
}

// contestTier rolls defender closeness. Better defenders close out
// more often; zones concede more open threes but wall off the rim.
func contestTier(defender *roster.Player, in PossessionInput, shot ShotType, rng prob.RandomSource) ContestTier {
	defComp := defenderComposite(defender, shot)
	heavy := 0.22 + (defComp-prob.ReferenceMidpoint)/250
	open := 0.28 - (defComp-prob.ReferenceMidpoint)/250
	if in.DefTactics.Scheme == Zone {
		if shot.AtRim() {
			heavy += 0.10
		} else if shot == ShotThree {
			open += 0.10
		}
	}
	clamp := prob.Band{Min: 0.05, Max: 0.60}
	heavy = clamp.Clamp(heavy)
	open = clamp.Clamp(open)
	switch prob.PickWeighted([]float64{open, 1 - open - heavy, heavy}, rng) {
	case 0:
		return WideOpen
	case 2:
		return HeavilyContested
	default:
		return Contested
	}
}

// shotSuccessProbability is the two-stage model: base rate by type
// shifted by the shooter composite, then a contest penalty scaled by
// tier and defender composite.
func shotSuccessProbability(shooter, defender *roster.Player, shot ShotType, tier ContestTier) float64 {
	sc := shooterComposite(shooter, shot)
	p := prob.SigmoidProbability(0, sc-prob.ReferenceMidpoint, prob.Steepness, prob.Band{Min: 0, Max: 1})
	base := baseMakeRate[shot]
	made := base + (p-0.5)*0.3 // shooter skill swings +-15 points of make rate

	penalty := contestPenalty[tier]
	if penalty > 0 {
		defFactor := 0.7 + defenderComposite(defender, shot)/100*0.6
		made -= penalty * defFactor
	}
	return prob.DefaultBand.Clamp(made)
}

// blockProbability applies only to contested attempts near the rim.
func blockProbability(defender *roster.Player, shot ShotType, tier ContestTier) float64 {
	if !shot.AtRim() || tier == WideOpen {
		return 0
	}
	defComp := prob.Composite(defender.Attrs, roster.InteriorDefenseWeights)
	p := prob.SigmoidProbability(blockBaseRate, defComp-prob.ReferenceMidpoint,
		prob.Steepness, prob.Band{Min: 0.01, Max: 0.25})
	if tier == HeavilyContested {
		p *= 1.5
	}
	return prob.Band{Min: 0, Max: 0.30}.Clamp(p)
}

// ResolvePossession plays one full offensive trip: potential turnover,
// a shot with contest/block/foul resolution, and the offensive-rebound
// loop with putbacks. Player counters accumulate into arena.
func ResolvePossession(in PossessionInput, arena StatsArena, rng prob.RandomSource) PossessionResult {
	res := PossessionResult{Elapsed: possessionSeconds[in.OffTactics.Pace]}
	if res.Elapsed > in.ClockSeconds {
		res.Elapsed = in.ClockSeconds
	}

	if ev, ok := rollTurnover(in, arena, rng); ok {
		res.Events = append(res.Events, ev)
		return res
	}

	// non-shooting foul before the shot goes up
	if ev, fts, ok := rollNonShootingFoul(in, arena, rng); ok {
		res.Events = append(res.Events, ev)
		res.DefFoulsAdded++
		if fts > 0 {
			shooter := pickShooter(in.Offense, rng)
			made, ftEvents := resolveFreeThrows(shooter, fts, in, freeThrowBonusTrip, arena, rng)
			res.Points += made
			res.Events = append(res.Events, ftEvents...)
			return res
		}
		// side out: play on
	}

	for chance := 0; chance <= maxSecondChances; chance++ {
		shooter := pickShooter(in.Offense, rng)
		shot := pickShotType(shooter, in.OffTactics, in.DefTactics, rng)
		if chance > 0 {
			// second chances restart from the reset shot clock,
			// usually close to the basket
			shot = ShotShortMidrange
		}
		madeIt, fouled := resolveShot(in, shooter, shot, &res, arena, rng)
		if madeIt || fouled {
			return res
		}

		// missed: rebound battle
		offReb, rebounder := resolveRebound(in, shot, arena, rng)
		rebEv := Event{Kind: EventRebound, Quarter: in.Quarter, Player: rebounder.ID}
		if offReb {
			rebEv.Team = in.OffTeam
			rebEv.Note = "offensive"
			res.Events = append(res.Events, rebEv)

			// putback: tall rebounders go straight back up
			if h, ok := rebounder.Attr(roster.AttrHeight); ok && h >= putbackHeightThreshold {
				made, pbEv := resolvePutback(in, rebounder, arena, rng)
				res.Events = append(res.Events, pbEv)
				if made {
					res.Points += 2
					return res
				}
				dOffReb, dRebounder := resolveRebound(in, ShotLayup, arena, rng)
				if !dOffReb {
					res.Events = append(res.Events, Event{Kind: EventRebound, Quarter: in.Quarter,
						Team: in.DefTeam, Player: dRebounder.ID, Note: "defensive"})
					return res
				}
			}
			continue
		}
		rebEv.Team = in.DefTeam
		rebEv.Note = "defensive"
		res.Events = append(res.Events, rebEv)
		return res
	}
	return res
}

// resolveShot runs foul, block and make checks for one attempt,
// appending its events to res. Returns (made, fouled).
func resolveShot(in PossessionInput, shooter *roster.Player, shot ShotType,
	res *PossessionResult, arena StatsArena, rng prob.RandomSource) (bool, bool) {
	defender := assignDefender(shooter, in, shot)
	tier := contestTier(defender, in, shot, rng)

	ev := Event{
		Kind: EventShot, Quarter: in.Quarter, Team: in.OffTeam,
		Player: shooter.ID, Shot: shot, Tier: tier,
	}
	line := arena.line(shooter)
	line.FGA++
	if shot == ShotThree {
		line.ThreePA++
	}

	fouled := prob.MustRoll(shootingFoulProbability(shot, tier), rng)

	blocked := false
	if !fouled {
		if prob.MustRoll(blockProbability(defender, shot, tier), rng) {
			blocked = true
			arena.line(defender).Blocks++
		}
	}

	made := false
	if !blocked {
		made = prob.MustRoll(shotSuccessProbability(shooter, defender, shot, tier), rng)
	}

	ev.Made = made
	ev.Blocked = blocked
	if made {
		pts := shot.Points()
		line.FGM++
		if shot == ShotThree {
			line.ThreePM++
		}
		line.Points += pts
		res.Points += pts
		ev.Points = pts
	}

	if fouled {
		ev.Note = "foul"
	}
	res.Events = append(res.Events, ev)

	if fouled {
		res.DefFoulsAdded++
		arena.line(defender).PersonalFouls++
		res.Events = append(res.Events, Event{
			Kind: EventFoul, Quarter: in.Quarter, Team: in.DefTeam,
			Player: defender.ID, Note: "shooting",
		})
		fts := shot.Points()
		pressure := freeThrowNone
		if made {
			fts = 1
			pressure = freeThrowAndOne
		}
		ftMade, ftEvents := resolveFreeThrows(shooter, fts, in, pressure, arena, rng)
		res.Points += ftMade
		res.Events = append(res.Events, ftEvents...)
	}
	return made, fouled
}

// resolvePutback is the immediate follow-up attempt after an
// offensive board, always a rim attempt under heavy traffic.
func resolvePutback(in PossessionInput, rebounder *roster.Player,
	arena StatsArena, rng prob.RandomSource) (bool, Event) {
	defender := assignDefender(rebounder, in, ShotLayup)
	p := shotSuccessProbability(rebounder, defender, ShotLayup, Contested)
	made := prob.MustRoll(p, rng)
	line := arena.line(rebounder)
	line.FGA++
	pts := 0
	if made {
		line.FGM++
		line.Points += 2
		pts = 2
	}
	return made, Event{
		Kind: EventShot, Quarter: in.Quarter, Team: in.OffTeam,
		Player: rebounder.ID, Shot: ShotLayup, Tier: Contested,
		Made: made, Points: pts, Note: "putback",
	}
}
