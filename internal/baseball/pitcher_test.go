package baseball

import (
	"errors"
	"testing"

	"github.com/dugoutlabs/gamesim/internal/roster"
)

func relievers(n int) []*roster.Player {
	out := make([]*roster.Player, n)
	for i := range out {
		out[i] = roster.NewUniformPlayer(
			"rp"+string(rune('1'+i)), "Reliever", 50)
	}
	return out
}

func TestBullpenDequeEnds(t *testing.T) {
	pen := NewBullpen(relievers(3))
	head, err := pen.PopNext()
	if err != nil || head.ID != "rp1" {
		t.Fatalf("PopNext should take the head, got %v err=%v", head, err)
	}
	tail, err := pen.PopCloser()
	if err != nil || tail.ID != "rp3" {
		t.Fatalf("PopCloser should take the tail, got %v err=%v", tail, err)
	}
	if pen.Len() != 1 {
		t.Fatalf("one reliever should remain, got %d", pen.Len())
	}
	pen.PopNext()
	if _, err := pen.PopNext(); !errors.Is(err, ErrBullpenEmpty) {
		t.Fatalf("empty bullpen must return ErrBullpenEmpty, got %v", err)
	}
}

func TestPitchCountCapTriggers(t *testing.T) {
	starter := roster.NewUniformPlayer("sp", "Starter", 60)
	pm := NewPitcherManager(starter, relievers(2), PitchingStrategy{StarterMaxPitchCount: 100})
	pm.activeLine().pitches = 105

	reason := pm.ShouldSubstitute(6, BaseState{}, 0)
	if reason != ReasonPitchCount {
		t.Fatalf("at 105 pitches with cap 100 expected pitch_count, got %s", reason)
	}
}

func TestPitchCountCapStartersOnly(t *testing.T) {
	starter := roster.NewUniformPlayer("sp", "Starter", 60)
	pm := NewPitcherManager(starter, relievers(2), PitchingStrategy{StarterMaxPitchCount: 100})
	if _, err := pm.Substitute(ReasonRopeExceeded, 5); err != nil {
		t.Fatal(err)
	}
	pm.activeLine().pitches = 105
	// blowout lead keeps the rope long enough to isolate the cap check
	if reason := pm.ShouldSubstitute(5, BaseState{}, 8); reason == ReasonPitchCount {
		t.Fatalf("hard cap must not apply to relievers")
	}
}

func TestMeltdownBeatsRope(t *testing.T) {
	pm := NewPitcherManager(roster.NewUniformPlayer("sp", "S", 60), relievers(2), PitchingStrategy{})
	l := pm.activeLine()
	l.hitsInning = meltdownHitsInning
	l.runsInning = 10
	if reason := pm.ShouldSubstitute(4, BaseState{}, 0); reason != ReasonMeltdown {
		t.Fatalf("meltdown should outrank rope, got %s", reason)
	}
}

func TestBasesLoadedDamage(t *testing.T) {
	pm := NewPitcherManager(roster.NewUniformPlayer("sp", "S", 60), relievers(2), PitchingStrategy{})
	pm.activeLine().runsInning = 1
	r := roster.NewUniformPlayer("x", "X", 50)
	loaded := BaseState{r, r, r}
	if reason := pm.ShouldSubstitute(4, loaded, 8); reason != ReasonBasesLoadedDamage {
		t.Fatalf("expected bases_loaded_damage, got %s", reason)
	}
}

func TestRopeExceeded(t *testing.T) {
	pm := NewPitcherManager(roster.NewUniformPlayer("sp", "S", 60), relievers(2),
		PitchingStrategy{BaseRopeStarter: 4, QuickHook: true})
	// inning 5, empty bases, close game: rope = 4 - 1 (hook) - 1 (close) = 2
	pm.activeLine().runsInning = 2
	if reason := pm.ShouldSubstitute(5, BaseState{}, 0); reason != ReasonRopeExceeded {
		t.Fatalf("expected rope_exceeded, got %s", reason)
	}
	pm2 := NewPitcherManager(roster.NewUniformPlayer("sp2", "S", 60), relievers(2),
		PitchingStrategy{BaseRopeStarter: 4, LongLeash: true})
	pm2.activeLine().runsInning = 2
	if reason := pm2.ShouldSubstitute(5, BaseState{}, 8); reason != ReasonNone {
		t.Fatalf("long leash in a blowout should tolerate 2 runs, got %s", reason)
	}
}

func TestRopeNeverBelowFloor(t *testing.T) {
	pm := NewPitcherManager(roster.NewUniformPlayer("sp", "S", 60), relievers(1),
		PitchingStrategy{BaseRopeStarter: 1, QuickHook: true})
	pm.activeLine().pitches = 95
	r := roster.NewUniformPlayer("x", "X", 50)
	if rope := pm.rope(9, BaseState{r, r, nil}, 0); rope < minRope {
		t.Fatalf("rope %d below floor", rope)
	}
}

func TestCloserSaveSituation(t *testing.T) {
	pm := NewPitcherManager(roster.NewUniformPlayer("sp", "Starter", 60), relievers(3), PitchingStrategy{})

	reason := pm.ShouldSubstitute(9, BaseState{}, 2)
	if reason != ReasonCloser {
		t.Fatalf("9th inning with a 2-run lead should call the closer, got %s", reason)
	}

	closer, err := pm.Substitute(reason, 9)
	if err != nil {
		t.Fatal(err)
	}
	if closer.ID != "rp3" {
		t.Fatalf("closer must come from the tail of the queue, got %s", closer.ID)
	}

	// an effective reliever already in does not get replaced again
	if reason := pm.ShouldSubstitute(9, BaseState{}, 2); reason == ReasonCloser {
		t.Fatalf("reliever protecting the lead must not trigger the closer again")
	}
}

func TestNoCloserOutsideSaveRange(t *testing.T) {
	pm := NewPitcherManager(roster.NewUniformPlayer("sp", "S", 60), relievers(3), PitchingStrategy{})
	if pm.shouldBringInCloser(8, 2) {
		t.Fatalf("no save situation before the 9th")
	}
	if pm.shouldBringInCloser(9, 0) {
		t.Fatalf("tied game is not a save situation")
	}
	if pm.shouldBringInCloser(9, closerMaxLead+1) {
		t.Fatalf("big lead is not a save situation")
	}
}

func TestRemovedSetIsPermanent(t *testing.T) {
	starter := roster.NewUniformPlayer("sp", "Starter", 60)
	pm := NewPitcherManager(starter, relievers(3), PitchingStrategy{})
	if _, err := pm.Substitute(ReasonRopeExceeded, 5); err != nil {
		t.Fatal(err)
	}
	if !pm.Removed("sp") {
		t.Fatalf("substituted starter must be in the removed set")
	}
	pm.FilterBullpen()
	for _, p := range pm.Bullpen.Remaining(map[string]bool{}) {
		if p.ID == "sp" {
			t.Fatalf("removed pitcher leaked back into the bullpen")
		}
	}
}

func TestSubstituteFailsOnEmptyBullpen(t *testing.T) {
	pm := NewPitcherManager(roster.NewUniformPlayer("sp", "S", 60), nil, PitchingStrategy{})
	if _, err := pm.Substitute(ReasonRopeExceeded, 5); !errors.Is(err, ErrBullpenEmpty) {
		t.Fatalf("expected ErrBullpenEmpty, got %v", err)
	}
	if reason := pm.ShouldSubstitute(9, BaseState{}, 2); reason != ReasonNone {
		t.Fatalf("no bullpen means no substitution, got %s", reason)
	}
}
