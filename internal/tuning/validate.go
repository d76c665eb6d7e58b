package tuning

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTuning = errors.New("invalid tuning")

// ValidateRaw checks semantic constraints of a merged RawTuning.
func ValidateRaw(cfg RawTuning) error {
	var errs []string

	if bb := cfg.Baseball; bb != nil {
		if bb.MaxExtraInnings != nil && *bb.MaxExtraInnings < 0 {
			errs = append(errs, "baseball.max_extra_innings must be >= 0")
		}
		if bb.MercyMargin != nil && *bb.MercyMargin < 1 {
			errs = append(errs, "baseball.mercy_margin must be >= 1")
		}
		if bb.MercyMinInning != nil && *bb.MercyMinInning < 1 {
			errs = append(errs, "baseball.mercy_min_inning must be >= 1")
		}
		if p := bb.Pitching; p != nil {
			if p.StarterMaxPitchCount != nil && *p.StarterMaxPitchCount < 1 {
				errs = append(errs, "baseball.pitching.starter_max_pitch_count must be >= 1")
			}
			if p.BaseRopeStarter != nil && *p.BaseRopeStarter < 1 {
				errs = append(errs, "baseball.pitching.base_rope_starter must be >= 1")
			}
			if p.BaseRopeReliever != nil && *p.BaseRopeReliever < 1 {
				errs = append(errs, "baseball.pitching.base_rope_reliever must be >= 1")
			}
			if p.QuickHook != nil && p.LongLeash != nil && *p.QuickHook && *p.LongLeash {
				errs = append(errs, "baseball.pitching.quick_hook and long_leash are mutually exclusive")
			}
		}
	}

	if bk := cfg.Basketball; bk != nil {
		if bk.QuarterMinutes != nil && *bk.QuarterMinutes < 1 {
			errs = append(errs, "basketball.quarter_minutes must be >= 1")
		}
		if bk.OvertimeMinutes != nil && *bk.OvertimeMinutes < 1 {
			errs = append(errs, "basketball.overtime_minutes must be >= 1")
		}
		if bk.MaxOvertimes != nil && *bk.MaxOvertimes < 1 {
			errs = append(errs, "basketball.max_overtimes must be >= 1")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTuning, strings.Join(errs, "; "))
	}
	return nil
}
