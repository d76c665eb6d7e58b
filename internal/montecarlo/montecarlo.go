// Package montecarlo runs repeated seeded game simulations and
// summarizes one metric across trials.
package montecarlo

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/dugoutlabs/gamesim/internal/baseball"
	"github.com/dugoutlabs/gamesim/internal/basketball"
	"github.com/dugoutlabs/gamesim/internal/prob"
)

// Metric selects what the simulation measures per trial.
type Metric string

const (
	// 1 when the home side wins, 0 otherwise (ties count as losses).
	MetricHomeWin   Metric = "home_win"
	MetricHomeScore Metric = "home_score"
	MetricAwayScore Metric = "away_score"
	// Home score minus away score.
	MetricMargin     Metric = "margin"
	MetricTotalScore Metric = "total_score"
	// Innings for baseball, periods for basketball.
	MetricGameLength Metric = "game_length"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Params controls one batch run. Trial i always draws from the RNG
// seeded with Seed+i, so results do not depend on Workers.
type Params struct {
	Trials  int
	Seed    uint64
	Workers int    // <=0 means GOMAXPROCS
	Metric  Metric // empty means MetricHomeWin
}

func (p Params) withDefaults() Params {
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	if p.Metric == "" {
		p.Metric = MetricHomeWin
	}
	return p
}

// RunBaseball plays p.Trials independent baseball games and returns
// summary stats for the chosen metric. Each worker plays on its own
// roster copies so trials never share mutable state.
func RunBaseball(home, away *baseball.Team, rules baseball.Rules, p Params) (Stats, error) {
	p = p.withDefaults()
	extract, err := baseballMetric(p.Metric)
	if err != nil {
		return Stats{}, err
	}
	return runTrials(p, func(w int) (trialFunc, error) {
		h, a := home.Clone(), away.Clone()
		return func(i int) (int, error) {
			res, err := baseball.Simulate(h, a, rules, prob.NewSeededRNG(p.Seed+uint64(i)))
			if err != nil {
				return 0, err
			}
			return extract(res), nil
		}, nil
	})
}

// RunBasketball is the basketball counterpart of RunBaseball.
func RunBasketball(home, away *basketball.Team, rules basketball.Rules, p Params) (Stats, error) {
	p = p.withDefaults()
	extract, err := basketballMetric(p.Metric)
	if err != nil {
		return Stats{}, err
	}
	return runTrials(p, func(w int) (trialFunc, error) {
		h, a := home.Clone(), away.Clone()
		return func(i int) (int, error) {
			res, err := basketball.Simulate(h, a, rules, prob.NewSeededRNG(p.Seed+uint64(i)))
			if err != nil {
				return 0, err
			}
			return extract(res), nil
		}, nil
	})
}

type trialFunc func(i int) (int, error)

// runTrials fans trials out across p.Workers goroutines, striding the
// sample index so trial i lands in samples[i] regardless of worker
// count.
func runTrials(p Params, setup func(w int) (trialFunc, error)) (Stats, error) {
	if p.Trials <= 0 {
		return Stats{}, nil
	}
	workers := p.Workers
	if workers > p.Trials {
		workers = p.Trials
	}

	samples := make([]int, p.Trials)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			trial, err := setup(w)
			if err != nil {
				fail(err)
				return
			}
			for i := w; i < p.Trials; i += workers {
				v, err := trial(i)
				if err != nil {
					fail(err)
					return
				}
				samples[i] = v
			}
		}(w)
	}
	wg.Wait()

	if firstErr != nil {
		return Stats{}, firstErr
	}
	return calcStats(samples), nil
}

func baseballMetric(m Metric) (func(*baseball.Result) int, error) {
	switch m {
	case MetricHomeWin:
		return func(r *baseball.Result) int {
			if r.HomeScore > r.AwayScore {
				return 1
			}
			return 0
		}, nil
	case MetricHomeScore:
		return func(r *baseball.Result) int { return r.HomeScore }, nil
	case MetricAwayScore:
		return func(r *baseball.Result) int { return r.AwayScore }, nil
	case MetricMargin:
		return func(r *baseball.Result) int { return r.HomeScore - r.AwayScore }, nil
	case MetricTotalScore:
		return func(r *baseball.Result) int { return r.HomeScore + r.AwayScore }, nil
	case MetricGameLength:
		return func(r *baseball.Result) int { return r.Innings }, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMetric, m)
	}
}

func basketballMetric(m Metric) (func(*basketball.Result) int, error) {
	switch m {
	case MetricHomeWin:
		return func(r *basketball.Result) int {
			if r.HomeScore > r.AwayScore {
				return 1
			}
			return 0
		}, nil
	case MetricHomeScore:
		return func(r *basketball.Result) int { return r.HomeScore }, nil
	case MetricAwayScore:
		return func(r *basketball.Result) int { return r.AwayScore }, nil
	case MetricMargin:
		return func(r *basketball.Result) int { return r.HomeScore - r.AwayScore }, nil
	case MetricTotalScore:
		return func(r *basketball.Result) int { return r.HomeScore + r.AwayScore }, nil
	case MetricGameLength:
		return func(r *basketball.Result) int { return 4 + r.Overtimes }, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMetric, m)
	}
}
