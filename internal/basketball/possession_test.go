package basketball

import (
	"fmt"
	"math"
	"testing"

	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

func testRoster(name string, level, size int) []*roster.Player {
	players := make([]*roster.Player, size)
	for i := range players {
		players[i] = roster.NewUniformPlayer(fmt.Sprintf("%s-%d", name, i), "Player", level)
	}
	return players
}

func testBasketballTeam(name string, level, size int) *Team {
	return &Team{Name: name, Roster: testRoster(name, level, size)}
}

func testInput(offLevel, defLevel int) PossessionInput {
	return PossessionInput{
		Offense:      testRoster("off", offLevel, 5),
		Defense:      testRoster("def", defLevel, 5),
		OffTeam:      "off",
		DefTeam:      "def",
		Quarter:      1,
		ClockSeconds: 720,
	}
}

func TestPossessionElapsedRespectsClockAndPace(t *testing.T) {
	rng := prob.NewSeededRNG(1)
	arena := StatsArena{}

	in := testInput(50, 50)
	res := ResolvePossession(in, arena, rng)
	if res.Elapsed != possessionSeconds[PaceNormal] {
		t.Fatalf("normal pace elapsed %v", res.Elapsed)
	}

	in.ClockSeconds = 7
	res = ResolvePossession(in, arena, rng)
	if res.Elapsed != 7 {
		t.Fatalf("truncated possession elapsed %v, want 7", res.Elapsed)
	}

	in.OffTactics.Pace = PaceFast
	in.ClockSeconds = 720
	res = ResolvePossession(in, arena, rng)
	if res.Elapsed != possessionSeconds[PaceFast] {
		t.Fatalf("fast pace elapsed %v", res.Elapsed)
	}
}

func TestPossessionPointsAreLegal(t *testing.T) {
	rng := prob.NewSeededRNG(7)
	arena := StatsArena{}
	in := testInput(60, 45)
	for i := 0; i < 2000; i++ {
		res := ResolvePossession(in, arena, rng)
		// worst legal case: and-one three plus a putback chain
		if res.Points < 0 || res.Points > 12 {
			t.Fatalf("possession %d produced %d points", i, res.Points)
		}
	}
}

func TestTurnoverRateStaysUnderHardCap(t *testing.T) {
	in := testInput(20, 90) // sloppy handlers against ballhawks
	in.OffTactics.Pace = PaceFast
	in.DefTactics.Scheme = Zone
	if p := turnoverProbability(in); p > TurnoverHardCap {
		t.Fatalf("turnover probability %v exceeds hard cap %v", p, TurnoverHardCap)
	}

	rng := prob.NewSeededRNG(11)
	arena := StatsArena{}
	turnovers := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		if _, ok := rollTurnover(in, arena, rng); ok {
			turnovers++
		}
	}
	rate := float64(turnovers) / trials
	if rate > TurnoverHardCap+0.01 {
		t.Fatalf("observed turnover rate %.4f exceeds hard cap", rate)
	}
}

func TestCrashTheGlassBeatsPreventTransition(t *testing.T) {
	crash := testInput(50, 50)
	crash.OffTactics.Rebounding = CrashTheGlass
	prevent := testInput(50, 50)
	prevent.OffTactics.Rebounding = PreventTransition

	for _, shot := range shotTypes {
		pc := offensiveReboundProbability(crash, shot)
		pp := offensiveReboundProbability(prevent, shot)
		if pc <= pp {
			t.Fatalf("%v: crash %.4f not above prevent %.4f", shot, pc, pp)
		}
	}
}

func TestBetterShootersMakeMoreShots(t *testing.T) {
	elite := roster.NewUniformPlayer("elite", "Elite", 90)
	poor := roster.NewUniformPlayer("poor", "Poor", 15)
	defender := roster.NewUniformPlayer("d", "Def", 50)
	for _, shot := range shotTypes {
		pe := shotSuccessProbability(elite, defender, shot, Contested)
		pp := shotSuccessProbability(poor, defender, shot, Contested)
		if pe <= pp {
			t.Fatalf("%v: elite %.4f not above poor %.4f", shot, pe, pp)
		}
	}
}

func TestContestTierOrdersMakeProbability(t *testing.T) {
	shooter := roster.NewUniformPlayer("s", "Shooter", 60)
	defender := roster.NewUniformPlayer("d", "Def", 60)
	for _, shot := range shotTypes {
		open := shotSuccessProbability(shooter, defender, shot, WideOpen)
		contested := shotSuccessProbability(shooter, defender, shot, Contested)
		heavy := shotSuccessProbability(shooter, defender, shot, HeavilyContested)
		if !(open > contested && contested > heavy) {
			t.Fatalf("%v: tiers not ordered: %.3f %.3f %.3f", shot, open, contested, heavy)
		}
	}
}

func TestBlocksOnlyHappenAtTheRim(t *testing.T) {
	defender := roster.NewUniformPlayer("d", "Def", 95)
	for _, shot := range []ShotType{ShotThree, ShotLongMidrange, ShotShortMidrange} {
		if p := blockProbability(defender, shot, HeavilyContested); p != 0 {
			t.Fatalf("%v: jumper block probability %v", shot, p)
		}
	}
	if p := blockProbability(defender, ShotDunk, WideOpen); p != 0 {
		t.Fatalf("uncontested dunk block probability %v", p)
	}
	if p := blockProbability(defender, ShotLayup, HeavilyContested); p <= 0 || p > 0.30 {
		t.Fatalf("rim block probability %v out of range", p)
	}
}

func TestBonusSendsNonShootingFoulsToTheLine(t *testing.T) {
	rng := prob.NewSeededRNG(5)
	arena := StatsArena{}

	in := testInput(50, 50)
	in.DefTeamFouls = BonusThreshold - 1 // this foul reaches the bonus
	sawBonus := false
	for i := 0; i < 5000 && !sawBonus; i++ {
		if ev, fts, ok := rollNonShootingFoul(in, arena, rng); ok {
			if fts != 2 {
				t.Fatalf("bonus foul awarded %d free throws", fts)
			}
			if ev.Note != "non_shooting_bonus" {
				t.Fatalf("bonus foul note %q", ev.Note)
			}
			sawBonus = true
		}
	}
	if !sawBonus {
		t.Fatalf("no non-shooting foul in 5000 trials")
	}

	in.DefTeamFouls = 0
	for i := 0; i < 5000; i++ {
		if _, fts, ok := rollNonShootingFoul(in, arena, rng); ok && fts != 0 {
			t.Fatalf("pre-bonus foul awarded %d free throws", fts)
		}
	}
}

func TestFreeThrowProbabilityModel(t *testing.T) {
	in := testInput(50, 50)
	shooter := roster.NewUniformPlayer("avg", "Avg", 50)
	p := freeThrowProbability(shooter, in, freeThrowNone)
	if math.Abs(p-0.75) > 0.02 {
		t.Fatalf("average shooter free throw %v, want about 0.75", p)
	}

	clutch := in
	clutch.Quarter = 4
	clutch.ClockSeconds = 30
	clutch.ScoreDiff = -2
	if pc := freeThrowProbability(shooter, clutch, freeThrowNone); pc >= p {
		t.Fatalf("clutch pressure did not lower free throws: %v vs %v", pc, p)
	}

	elite := roster.NewUniformPlayer("elite", "Elite", 95)
	if pe := freeThrowProbability(elite, in, freeThrowNone); pe <= p {
		t.Fatalf("elite shooter %v not above average %v", pe, p)
	}
}

func TestZoneShiftsShotMixOutside(t *testing.T) {
	shooter := roster.NewUniformPlayer("s", "Shooter", 50)
	rng := prob.NewSeededRNG(13)
	const trials = 30000
	count := func(def Tactics) int {
		threes := 0
		for i := 0; i < trials; i++ {
			if pickShotType(shooter, Tactics{}, def, rng) == ShotThree {
				threes++
			}
		}
		return threes
	}
	man := count(Tactics{Scheme: ManToMan})
	zone := count(Tactics{Scheme: Zone})
	if zone <= man {
		t.Fatalf("zone defense produced %d threes, man %d", zone, man)
	}
}
