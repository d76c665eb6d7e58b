package tuning

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/sport/profile files.
type Paths struct {
	BaseDir string // base directory, e.g. /opt/app/tuning
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) SportPath(sport string) string {
	return filepath.Join(p.BaseDir, sport+".yaml")
}
func (p Paths) ProfilePath(sport, profile string) string {
	return filepath.Join(p.BaseDir, sport, "profiles", profile+".yaml")
}

// Loader reads YAML tuning files and merges default → sport → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawTuning // key: "sport" or "sport/profile" or "$default"
}

// NewLoader creates a tuning loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawTuning),
	}
}

// WatchPaths lists the files the hot-reload watcher should poll for
// the given sport/profile pairs.
func (l *Loader) WatchPaths(sport, profile string) []string {
	paths := []string{l.paths.DefaultPath(), l.paths.SportPath(sport)}
	if profile != "" {
		paths = append(paths, l.paths.ProfilePath(sport, profile))
	}
	return paths
}

// LoadMerged loads and merges default → sport → profile (profile
// optional) and validates the result before returning it.
func (l *Loader) LoadMerged(sport, profile string) (RawTuning, error) {
	key := sport
	if profile != "" {
		key = sport + "/" + profile
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawTuning{}, fmt.Errorf("read default: %w", err)
	}
	sportCfg, err := readYAML(l.paths.SportPath(sport)) // sport file optional
	if err != nil {
		return RawTuning{}, fmt.Errorf("read %s: %w", sport, err)
	}
	var profileCfg RawTuning
	if profile != "" {
		profileCfg, err = readYAML(l.paths.ProfilePath(sport, profile)) // profile optional
		if err != nil {
			return RawTuning{}, fmt.Errorf("read %s/%s: %w", sport, profile, err)
		}
	}

	merged := mergeRaw(mergeRaw(defCfg, sportCfg), profileCfg)
	if err := ValidateRaw(merged); err != nil {
		return RawTuning{}, err
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.cache["$default"] = defCfg
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the cache. Call after hot reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawTuning)
}

// readYAML loads one layer. Missing files return zero cfg, no error.
func readYAML(path string) (RawTuning, error) {
	var cfg RawTuning
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawTuning{}, nil
		}
		return RawTuning{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawTuning{}, err
	}
	return cfg, nil
}

// mergeRaw deep-merges 'b' over 'a': set pointer fields in b win.
func mergeRaw(a, b RawTuning) RawTuning {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	switch {
	case out.Baseball == nil && b.Baseball != nil:
		c := *b.Baseball
		out.Baseball = &c
	case out.Baseball != nil && b.Baseball != nil:
		c := *out.Baseball
		out.Baseball = &c
		if b.Baseball.MaxExtraInnings != nil {
			out.Baseball.MaxExtraInnings = b.Baseball.MaxExtraInnings
		}
		if b.Baseball.MercyRule != nil {
			out.Baseball.MercyRule = b.Baseball.MercyRule
		}
		if b.Baseball.MercyMargin != nil {
			out.Baseball.MercyMargin = b.Baseball.MercyMargin
		}
		if b.Baseball.MercyMinInning != nil {
			out.Baseball.MercyMinInning = b.Baseball.MercyMinInning
		}
		switch {
		case out.Baseball.Pitching == nil && b.Baseball.Pitching != nil:
			c := *b.Baseball.Pitching
			out.Baseball.Pitching = &c
		case out.Baseball.Pitching != nil && b.Baseball.Pitching != nil:
			pc := *out.Baseball.Pitching
			out.Baseball.Pitching = &pc
			op, bp := out.Baseball.Pitching, b.Baseball.Pitching
			if bp.StarterMaxPitchCount != nil {
				op.StarterMaxPitchCount = bp.StarterMaxPitchCount
			}
			if bp.BaseRopeStarter != nil {
				op.BaseRopeStarter = bp.BaseRopeStarter
			}
			if bp.BaseRopeReliever != nil {
				op.BaseRopeReliever = bp.BaseRopeReliever
			}
			if bp.QuickHook != nil {
				op.QuickHook = bp.QuickHook
			}
			if bp.LongLeash != nil {
				op.LongLeash = bp.LongLeash
			}
		}
	}

	switch {
	case out.Basketball == nil && b.Basketball != nil:
		c := *b.Basketball
		out.Basketball = &c
	case out.Basketball != nil && b.Basketball != nil:
		c := *out.Basketball
		out.Basketball = &c
		if b.Basketball.QuarterMinutes != nil {
			out.Basketball.QuarterMinutes = b.Basketball.QuarterMinutes
		}
		if b.Basketball.OvertimeMinutes != nil {
			out.Basketball.OvertimeMinutes = b.Basketball.OvertimeMinutes
		}
		if b.Basketball.MaxOvertimes != nil {
			out.Basketball.MaxOvertimes = b.Basketball.MaxOvertimes
		}
	}

	return out
}
