package montecarlo

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/dugoutlabs/gamesim/internal/baseball"
	"github.com/dugoutlabs/gamesim/internal/basketball"
	"github.com/dugoutlabs/gamesim/internal/roster"
)

func baseballTeam(name string, level int) *baseball.Team {
	lineup := make([]*roster.Player, 9)
	defense := make(map[baseball.Position]*roster.Player)
	positions := []baseball.Position{baseball.Catcher, baseball.FirstBase, baseball.SecondBase,
		baseball.ThirdBase, baseball.Shortstop, baseball.LeftField, baseball.CenterField,
		baseball.RightField}
	for i := 0; i < 9; i++ {
		lineup[i] = roster.NewUniformPlayer(fmt.Sprintf("%s-b%d", name, i), "Batter", level)
		if i < len(positions) {
			defense[positions[i]] = lineup[i]
		}
	}
	bullpen := make([]*roster.Player, 4)
	for i := range bullpen {
		bullpen[i] = roster.NewUniformPlayer(fmt.Sprintf("%s-rp%d", name, i), "Reliever", level)
	}
	return &baseball.Team{
		Name:            name,
		Lineup:          lineup,
		StartingPitcher: roster.NewUniformPlayer(name+"-sp", "Starter", level),
		Bullpen:         bullpen,
		Defense:         defense,
	}
}

func basketballTeam(name string, level int) *basketball.Team {
	players := make([]*roster.Player, 8)
	for i := range players {
		players[i] = roster.NewUniformPlayer(fmt.Sprintf("%s-%d", name, i), "Player", level)
	}
	return &basketball.Team{Name: name, Roster: players}
}

func TestCalcStatsSmallSamples(t *testing.T) {
	s := calcStats(nil)
	if s.Mean != 0 || s.Samples != nil {
		t.Fatalf("empty input produced %+v", s)
	}

	s = calcStats([]int{4})
	if s.Mean != 4 || s.StdDev != 0 || s.P50 != 4 || s.P99 != 4 {
		t.Fatalf("single sample produced %+v", s)
	}

	s = calcStats([]int{1, 2, 3, 4, 5})
	if s.Mean != 3 {
		t.Fatalf("mean %v, want 3", s.Mean)
	}
	if math.Abs(s.Var-2) > 1e-9 {
		t.Fatalf("population variance %v, want 2", s.Var)
	}
	if s.P50 != 3 {
		t.Fatalf("median %v, want 3", s.P50)
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	home := baseballTeam("home", 55)
	away := baseballTeam("away", 50)
	serial, err := RunBaseball(home, away, baseball.Rules{}, Params{
		Trials: 30, Seed: 7, Workers: 1, Metric: MetricTotalScore,
	})
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := RunBaseball(home, away, baseball.Rules{}, Params{
		Trials: 30, Seed: 7, Workers: 4, Metric: MetricTotalScore,
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := range serial.Samples {
		if serial.Samples[i] != parallel.Samples[i] {
			t.Fatalf("trial %d differs by worker count: %d vs %d",
				i, serial.Samples[i], parallel.Samples[i])
		}
	}
	if serial.Mean != parallel.Mean || serial.P90 != parallel.P90 {
		t.Fatalf("summary stats differ: %+v vs %+v", serial, parallel)
	}
}

func TestHomeWinRateFavorsStrongerTeam(t *testing.T) {
	stats, err := RunBaseball(baseballTeam("strong", 80), baseballTeam("weak", 25),
		baseball.Rules{}, Params{Trials: 60, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Mean < 0.6 {
		t.Fatalf("80-rated home side won only %.0f%% of trials", stats.Mean*100)
	}
}

func TestRunBasketballMetrics(t *testing.T) {
	stats, err := RunBasketball(basketballTeam("home", 55), basketballTeam("away", 50),
		basketball.Rules{}, Params{Trials: 20, Seed: 3, Metric: MetricGameLength})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Mean < 4 {
		t.Fatalf("game length mean %v below regulation", stats.Mean)
	}
	if len(stats.Samples) != 20 {
		t.Fatalf("expected 20 samples, got %d", len(stats.Samples))
	}
}

func TestUnknownMetricFails(t *testing.T) {
	_, err := RunBaseball(baseballTeam("h", 50), baseballTeam("a", 50),
		baseball.Rules{}, Params{Trials: 5, Metric: "nope"})
	if !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("want ErrUnknownMetric, got %v", err)
	}
}

func TestInvalidTeamSurfacesSimulationError(t *testing.T) {
	bad := baseballTeam("bad", 50)
	bad.Lineup = bad.Lineup[:8]
	if _, err := RunBaseball(bad, baseballTeam("ok", 50), baseball.Rules{}, Params{Trials: 5}); err == nil {
		t.Fatalf("invalid team must fail the batch")
	}
}

func TestZeroTrialsReturnsEmptyStats(t *testing.T) {
	stats, err := RunBaseball(baseballTeam("h", 50), baseballTeam("a", 50),
		baseball.Rules{}, Params{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Mean != 0 || stats.Samples != nil {
		t.Fatalf("zero trials produced %+v", stats)
	}
}
