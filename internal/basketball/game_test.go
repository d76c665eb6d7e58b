package basketball

import (
	"math"
	"strings"
	"testing"

	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

func TestValidateRejectsBadRosters(t *testing.T) {
	team := testBasketballTeam("short", 50, 4)
	err := team.Validate()
	if err == nil || !strings.Contains(err.Error(), "at least 5") {
		t.Fatalf("4-man roster must fail validation, got %v", err)
	}

	team = testBasketballTeam("dup", 50, 6)
	team.Roster[5] = team.Roster[0]
	if err := team.Validate(); err == nil || !strings.Contains(err.Error(), "twice") {
		t.Fatalf("duplicate player must fail validation, got %v", err)
	}
}

func teamMinutes(box TeamBox) float64 {
	total := 0.0
	for _, pl := range box.Players {
		total += pl.Minutes
	}
	return total
}

func TestRegulationMinutesSumToTeamTotal(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		res, err := Simulate(testBasketballTeam("home", 70, 9), testBasketballTeam("away", 35, 9),
			Rules{}, prob.NewSeededRNG(seed))
		if err != nil {
			t.Fatal(err)
		}
		want := 240.0 + float64(res.Overtimes)*5*5
		for _, box := range []TeamBox{res.Home, res.Away} {
			if got := teamMinutes(box); math.Abs(got-want) > 1e-6 {
				t.Fatalf("seed %d: %s player minutes sum %.6f, want %.6f", seed, box.Name, got, want)
			}
		}
	}
}

func TestFiveManRosterPlaysEveryMinute(t *testing.T) {
	res, err := Simulate(testBasketballTeam("home", 65, 5), testBasketballTeam("away", 40, 5),
		Rules{}, prob.NewSeededRNG(4))
	if err != nil {
		t.Fatal(err)
	}
	if res.Overtimes != 0 {
		t.Skip("overtime game; per-player 48-minute check does not apply")
	}
	for _, pl := range res.Home.Players {
		if math.Abs(pl.Minutes-48) > 1e-6 {
			t.Fatalf("five-man roster player %s logged %.4f minutes", pl.ID, pl.Minutes)
		}
	}
}

func TestDeepRotationSharesMinutes(t *testing.T) {
	res, err := Simulate(testBasketballTeam("home", 50, 10), testBasketballTeam("away", 50, 10),
		Rules{}, prob.NewSeededRNG(8))
	if err != nil {
		t.Fatal(err)
	}
	for _, pl := range res.Home.Players {
		if pl.Minutes == 0 {
			t.Fatalf("player %s never left the bench under equal targets", pl.ID)
		}
		if pl.Minutes > 40 {
			t.Fatalf("player %s logged %.1f minutes with a 10-man rotation", pl.ID, pl.Minutes)
		}
	}
}

func TestFoulOutCapsPersonalFouls(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		res, err := Simulate(testBasketballTeam("home", 50, 9), testBasketballTeam("away", 50, 9),
			Rules{}, prob.NewSeededRNG(seed))
		if err != nil {
			t.Fatal(err)
		}
		fouledOut := make(map[string]int)
		for _, ev := range res.Events {
			if ev.Kind == EventFoul && ev.Note == "fouled_out" {
				fouledOut[ev.Player]++
			}
		}
		for id, n := range fouledOut {
			if n > 1 {
				t.Fatalf("seed %d: player %s fouled out %d times", seed, id, n)
			}
		}
		for _, box := range []TeamBox{res.Home, res.Away} {
			for _, pl := range box.Players {
				// a reach-in and a shooting foul can land in the same
				// trip, so the disqualifying trip may overshoot by one
				if pl.PersonalFouls > FoulOutThreshold+1 {
					t.Fatalf("seed %d: benched player %s reached %d fouls", seed, pl.ID, pl.PersonalFouls)
				}
				if pl.FouledOut != (pl.PersonalFouls >= FoulOutThreshold) {
					t.Fatalf("seed %d: player %s foul-out flag inconsistent with %d fouls",
						seed, pl.ID, pl.PersonalFouls)
				}
			}
		}
	}
}

func TestPeriodScoresSumToFinal(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		res, err := Simulate(testBasketballTeam("home", 55, 8), testBasketballTeam("away", 45, 8),
			Rules{}, prob.NewSeededRNG(seed))
		if err != nil {
			t.Fatal(err)
		}
		if want := 4 + res.Overtimes; len(res.PeriodScores) != want {
			t.Fatalf("seed %d: %d period lines, want %d", seed, len(res.PeriodScores), want)
		}
		var home, away int
		for _, ps := range res.PeriodScores {
			home += ps[0]
			away += ps[1]
		}
		if home != res.HomeScore || away != res.AwayScore {
			t.Fatalf("seed %d: period scores %d-%d do not sum to final %d-%d",
				seed, home, away, res.HomeScore, res.AwayScore)
		}
	}
}

func TestWinnerMatchesFinalScore(t *testing.T) {
	for seed := uint64(0); seed < 15; seed++ {
		res, err := Simulate(testBasketballTeam("home", 55, 8), testBasketballTeam("away", 55, 8),
			Rules{}, prob.NewSeededRNG(seed))
		if err != nil {
			t.Fatal(err)
		}
		switch {
		case res.HomeScore > res.AwayScore && res.Winner != "home":
			t.Fatalf("seed %d: wrong winner %q", seed, res.Winner)
		case res.AwayScore > res.HomeScore && res.Winner != "away":
			t.Fatalf("seed %d: wrong winner %q", seed, res.Winner)
		case res.HomeScore == res.AwayScore && res.Winner != "":
			t.Fatalf("seed %d: tie reported winner %q", seed, res.Winner)
		}
		if res.HomeScore == res.AwayScore && res.Overtimes < (Rules{}).withDefaults().MaxOvertimes {
			t.Fatalf("seed %d: tie stood before the overtime cap", seed)
		}
	}
}

func TestBasketballDeterministicReplay(t *testing.T) {
	a, err := Simulate(testBasketballTeam("home", 60, 8), testBasketballTeam("away", 52, 8),
		Rules{}, prob.NewSeededRNG(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(testBasketballTeam("home", 60, 8), testBasketballTeam("away", 52, 8),
		Rules{}, prob.NewSeededRNG(99))
	if err != nil {
		t.Fatal(err)
	}
	if a.HomeScore != b.HomeScore || a.AwayScore != b.AwayScore || len(a.Events) != len(b.Events) {
		t.Fatalf("same seed produced %d-%d/%d events vs %d-%d/%d events",
			a.HomeScore, a.AwayScore, len(a.Events), b.HomeScore, b.AwayScore, len(b.Events))
	}
	for i := range a.Events {
		if a.Events[i] != b.Events[i] {
			t.Fatalf("event %d diverged: %+v vs %+v", i, a.Events[i], b.Events[i])
		}
	}
}

func TestSimulateLeavesCallerRosterUntouched(t *testing.T) {
	home := testBasketballTeam("home", 50, 8)
	away := testBasketballTeam("away", 50, 8)
	before := make(map[string]int)
	for _, p := range home.Roster {
		v, _ := p.Attr(roster.AttrStamina)
		before[p.ID] = v
	}
	if _, err := Simulate(home, away, Rules{}, prob.NewSeededRNG(3)); err != nil {
		t.Fatal(err)
	}
	for _, p := range home.Roster {
		if v, _ := p.Attr(roster.AttrStamina); v != before[p.ID] {
			t.Fatalf("caller roster attribute mutated for %s", p.ID)
		}
	}
}

func TestBetterTeamWinsMostGames(t *testing.T) {
	wins := 0
	const games = 40
	for seed := uint64(0); seed < games; seed++ {
		res, err := Simulate(testBasketballTeam("strong", 80, 8), testBasketballTeam("weak", 25, 8),
			Rules{}, prob.NewSeededRNG(seed))
		if err != nil {
			t.Fatal(err)
		}
		if res.Winner == "strong" {
			wins++
		}
	}
	if wins < games*3/4 {
		t.Fatalf("80-rated team won only %d of %d against a 25-rated team", wins, games)
	}
}
