// Package tuning loads layered YAML rule overrides for the simulation
// engines: default → sport → profile, with an in-memory cache and a
// polling watcher for hot reload.
package tuning

import (
	"github.com/dugoutlabs/gamesim/internal/baseball"
	"github.com/dugoutlabs/gamesim/internal/basketball"
)

// RawTuning is one layer as loaded from YAML. Pointer fields
// distinguish "unset" from zero so layers merge cleanly.
type RawTuning struct {
	Version    string         `yaml:"version"`
	Baseball   *BaseballCfg   `yaml:"baseball,omitempty"`
	Basketball *BasketballCfg `yaml:"basketball,omitempty"`
	Notes      string         `yaml:"notes,omitempty"`
}

type BaseballCfg struct {
	MaxExtraInnings *int         `yaml:"max_extra_innings,omitempty"`
	MercyRule       *bool        `yaml:"mercy_rule,omitempty"`
	MercyMargin     *int         `yaml:"mercy_margin,omitempty"`
	MercyMinInning  *int         `yaml:"mercy_min_inning,omitempty"`
	Pitching        *PitchingCfg `yaml:"pitching,omitempty"`
}

type PitchingCfg struct {
	StarterMaxPitchCount *int  `yaml:"starter_max_pitch_count,omitempty"`
	BaseRopeStarter      *int  `yaml:"base_rope_starter,omitempty"`
	BaseRopeReliever     *int  `yaml:"base_rope_reliever,omitempty"`
	QuickHook            *bool `yaml:"quick_hook,omitempty"`
	LongLeash            *bool `yaml:"long_leash,omitempty"`
}

type BasketballCfg struct {
	QuarterMinutes  *int `yaml:"quarter_minutes,omitempty"`
	OvertimeMinutes *int `yaml:"overtime_minutes,omitempty"`
	MaxOvertimes    *int `yaml:"max_overtimes,omitempty"`
}

// BaseballRules projects the merged config onto engine rule structs.
// Unset fields stay zero and pick up the engine defaults.
func (t RawTuning) BaseballRules() (baseball.Rules, baseball.PitchingStrategy) {
	var rules baseball.Rules
	var strat baseball.PitchingStrategy
	cfg := t.Baseball
	if cfg == nil {
		return rules, strat
	}
	if cfg.MaxExtraInnings != nil {
		rules.MaxExtraInnings = *cfg.MaxExtraInnings
	}
	if cfg.MercyRule != nil {
		rules.MercyRule = *cfg.MercyRule
	}
	if cfg.MercyMargin != nil {
		rules.MercyMargin = *cfg.MercyMargin
	}
	if cfg.MercyMinInning != nil {
		rules.MercyMinInning = *cfg.MercyMinInning
	}
	if p := cfg.Pitching; p != nil {
		if p.StarterMaxPitchCount != nil {
			strat.StarterMaxPitchCount = *p.StarterMaxPitchCount
		}
		if p.BaseRopeStarter != nil {
			strat.BaseRopeStarter = *p.BaseRopeStarter
		}
		if p.BaseRopeReliever != nil {
			strat.BaseRopeReliever = *p.BaseRopeReliever
		}
		if p.QuickHook != nil {
			strat.QuickHook = *p.QuickHook
		}
		if p.LongLeash != nil {
			strat.LongLeash = *p.LongLeash
		}
	}
	return rules, strat
}

// BasketballRules projects the merged config onto basketball.Rules.
func (t RawTuning) BasketballRules() basketball.Rules {
	var rules basketball.Rules
	cfg := t.Basketball
	if cfg == nil {
		return rules
	}
	if cfg.QuarterMinutes != nil {
		rules.QuarterMinutes = *cfg.QuarterMinutes
	}
	if cfg.OvertimeMinutes != nil {
		rules.OvertimeMinutes = *cfg.OvertimeMinutes
	}
	if cfg.MaxOvertimes != nil {
		rules.MaxOvertimes = *cfg.MaxOvertimes
	}
	return rules
}
