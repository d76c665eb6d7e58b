package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeLayer(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMergedLayerPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeLayer(t, filepath.Join(dir, "default.yaml"), `
version: base
baseball:
  mercy_rule: true
  mercy_margin: 10
  pitching:
    starter_max_pitch_count: 100
basketball:
  quarter_minutes: 12
`)
	writeLayer(t, filepath.Join(dir, "baseball.yaml"), `
version: sport
baseball:
  mercy_margin: 12
`)
	writeLayer(t, filepath.Join(dir, "baseball", "profiles", "playoffs.yaml"), `
baseball:
  mercy_rule: false
  pitching:
    quick_hook: true
`)

	l := NewLoader(dir)
	cfg, err := l.LoadMerged("baseball", "playoffs")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "sport" {
		t.Fatalf("version %q, want sport layer to win over default", cfg.Version)
	}
	bb := cfg.Baseball
	if bb == nil {
		t.Fatal("baseball section missing after merge")
	}
	if bb.MercyRule == nil || *bb.MercyRule {
		t.Fatalf("profile mercy_rule=false must override default true")
	}
	if bb.MercyMargin == nil || *bb.MercyMargin != 12 {
		t.Fatalf("sport mercy_margin=12 must override default 10")
	}
	if bb.Pitching == nil || bb.Pitching.StarterMaxPitchCount == nil || *bb.Pitching.StarterMaxPitchCount != 100 {
		t.Fatalf("default pitch count must survive the merge")
	}
	if bb.Pitching.QuickHook == nil || !*bb.Pitching.QuickHook {
		t.Fatalf("profile quick_hook must land in the merged pitching section")
	}

	rules, strat := cfg.BaseballRules()
	if rules.MercyRule || rules.MercyMargin != 12 {
		t.Fatalf("projected rules %+v", rules)
	}
	if strat.StarterMaxPitchCount != 100 || !strat.QuickHook {
		t.Fatalf("projected strategy %+v", strat)
	}
}

func TestLoadMergedDoesNotCorruptLowerLayers(t *testing.T) {
	dir := t.TempDir()
	writeLayer(t, filepath.Join(dir, "default.yaml"), `
baseball:
  mercy_margin: 10
`)
	writeLayer(t, filepath.Join(dir, "baseball.yaml"), `
baseball:
  mercy_margin: 15
`)

	l := NewLoader(dir)
	if _, err := l.LoadMerged("baseball", ""); err != nil {
		t.Fatal(err)
	}
	// basketball shares only the default layer; it must still see 10
	cfg, err := l.LoadMerged("basketball", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Baseball == nil || *cfg.Baseball.MercyMargin != 10 {
		t.Fatalf("default layer was mutated by an earlier merge")
	}
}

func TestCacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeLayer(t, path, "version: one\n")

	l := NewLoader(dir)
	cfg, err := l.LoadMerged("baseball", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "one" {
		t.Fatalf("version %q", cfg.Version)
	}

	writeLayer(t, path, "version: two\n")
	cfg, err = l.LoadMerged("baseball", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "one" {
		t.Fatalf("cache miss: loader re-read before invalidation")
	}

	l.Invalidate()
	cfg, err = l.LoadMerged("baseball", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "two" {
		t.Fatalf("invalidated loader still served %q", cfg.Version)
	}
}

func TestMissingLayersAreLegal(t *testing.T) {
	l := NewLoader(t.TempDir())
	cfg, err := l.LoadMerged("basketball", "fast")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Baseball != nil || cfg.Basketball != nil {
		t.Fatalf("empty directory produced %+v", cfg)
	}
	// zero config projects to zero rules, which pick up engine defaults
	if rules := cfg.BasketballRules(); rules.QuarterMinutes != 0 {
		t.Fatalf("projected %+v from empty config", rules)
	}
}

func TestValidateRawRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	writeLayer(t, filepath.Join(dir, "default.yaml"), `
baseball:
  mercy_margin: 0
basketball:
  quarter_minutes: -4
`)
	_, err := NewLoader(dir).LoadMerged("baseball", "")
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("want ErrInvalidTuning, got %v", err)
	}

	hook, leash := true, true
	err = ValidateRaw(RawTuning{Baseball: &BaseballCfg{
		Pitching: &PitchingCfg{QuickHook: &hook, LongLeash: &leash},
	}})
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("quick_hook with long_leash must fail, got %v", err)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeLayer(t, path, "version: one\n")

	changed := make(chan string, 1)
	w := NewWatcher([]string{path}, 10*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	// let the priming pass record the current mtime, then move it forward
	time.Sleep(50 * time.Millisecond)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != path {
			t.Fatalf("change reported for %q", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher never reported the modified file")
	}
}
