package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dugoutlabs/gamesim/internal/baseball"
	"github.com/dugoutlabs/gamesim/internal/basketball"
	"github.com/dugoutlabs/gamesim/internal/montecarlo"
	"github.com/dugoutlabs/gamesim/internal/prob"
	"github.com/dugoutlabs/gamesim/internal/roster"
	"github.com/dugoutlabs/gamesim/internal/tuning"
)

type errResp struct {
	Err string `json:"err"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errResp{Err: err.Error()})
}

type playerPayload struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Attrs map[string]int `json:"attrs"`
}

func (p playerPayload) toPlayer() *roster.Player {
	return &roster.Player{ID: p.ID, Name: p.Name, Attrs: p.Attrs}
}

type strategyPayload struct {
	StarterMaxPitchCount int  `json:"starter_max_pitch_count,omitempty"`
	BaseRopeStarter      int  `json:"base_rope_starter,omitempty"`
	BaseRopeReliever     int  `json:"base_rope_reliever,omitempty"`
	QuickHook            bool `json:"quick_hook,omitempty"`
	LongLeash            bool `json:"long_leash,omitempty"`
}

type baseballTeamPayload struct {
	Name            string            `json:"name"`
	Lineup          []playerPayload   `json:"lineup"`
	StartingPitcher playerPayload     `json:"starting_pitcher"`
	Bullpen         []playerPayload   `json:"bullpen"`
	Defense         map[string]string `json:"defense"` // position -> lineup player id
	Strategy        *strategyPayload  `json:"strategy,omitempty"`
}

// toTeam materializes the payload, resolving defense entries against
// lineup ids so the team shares one object per player. defaultStrat
// applies when the payload carries no strategy of its own.
func (t baseballTeamPayload) toTeam(defaultStrat baseball.PitchingStrategy) (*baseball.Team, error) {
	team := &baseball.Team{
		Name:            t.Name,
		StartingPitcher: t.StartingPitcher.toPlayer(),
		Strategy:        defaultStrat,
	}
	byID := make(map[string]*roster.Player, len(t.Lineup))
	for _, p := range t.Lineup {
		pl := p.toPlayer()
		team.Lineup = append(team.Lineup, pl)
		byID[pl.ID] = pl
	}
	for _, p := range t.Bullpen {
		team.Bullpen = append(team.Bullpen, p.toPlayer())
	}
	if len(t.Defense) > 0 {
		team.Defense = make(map[baseball.Position]*roster.Player, len(t.Defense))
		for pos, id := range t.Defense {
			pl, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("team %q: defense at %s names unknown player %q", t.Name, pos, id)
			}
			team.Defense[baseball.Position(pos)] = pl
		}
	}
	if s := t.Strategy; s != nil {
		team.Strategy = baseball.PitchingStrategy{
			StarterMaxPitchCount: s.StarterMaxPitchCount,
			BaseRopeStarter:      s.BaseRopeStarter,
			BaseRopeReliever:     s.BaseRopeReliever,
			QuickHook:            s.QuickHook,
			LongLeash:            s.LongLeash,
		}
	}
	return team, nil
}

type tacticsPayload struct {
	Pace           string             `json:"pace,omitempty"`       // normal | slow | fast
	Scheme         string             `json:"scheme,omitempty"`     // man | zone
	Rebounding     string             `json:"rebounding,omitempty"` // normal | crash | prevent
	MinutesTargets map[string]float64 `json:"minutes_targets,omitempty"`
}

func (t tacticsPayload) toTactics() (basketball.Tactics, error) {
	out := basketball.Tactics{MinutesTargets: t.MinutesTargets}
	switch t.Pace {
	case "", "normal":
	case "slow":
		out.Pace = basketball.PaceSlow
	case "fast":
		out.Pace = basketball.PaceFast
	default:
		return out, fmt.Errorf("unknown pace %q", t.Pace)
	}
	switch t.Scheme {
	case "", "man":
	case "zone":
		out.Scheme = basketball.Zone
	default:
		return out, fmt.Errorf("unknown scheme %q", t.Scheme)
	}
	switch t.Rebounding {
	case "", "normal":
	case "crash":
		out.Rebounding = basketball.CrashTheGlass
	case "prevent":
		out.Rebounding = basketball.PreventTransition
	default:
		return out, fmt.Errorf("unknown rebounding strategy %q", t.Rebounding)
	}
	return out, nil
}

type basketballTeamPayload struct {
	Name    string          `json:"name"`
	Roster  []playerPayload `json:"roster"` // first five start
	Tactics *tacticsPayload `json:"tactics,omitempty"`
}

func (t basketballTeamPayload) toTeam() (*basketball.Team, error) {
	team := &basketball.Team{Name: t.Name}
	for _, p := range t.Roster {
		team.Roster = append(team.Roster, p.toPlayer())
	}
	if t.Tactics != nil {
		tac, err := t.Tactics.toTactics()
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", t.Name, err)
		}
		team.Tactics = tac
	}
	return team, nil
}

type baseballSimRequest struct {
	Home    baseballTeamPayload `json:"home"`
	Away    baseballTeamPayload `json:"away"`
	Seed    *uint64             `json:"seed,omitempty"`
	Profile string              `json:"profile,omitempty"`
}

type basketballSimRequest struct {
	Home    basketballTeamPayload `json:"home"`
	Away    basketballTeamPayload `json:"away"`
	Seed    *uint64               `json:"seed,omitempty"`
	Profile string                `json:"profile,omitempty"`
}

func rngFor(seed *uint64) prob.RandomSource {
	if seed == nil {
		return nil // engine falls back to the crypto source
	}
	return prob.NewSeededRNG(*seed)
}

func (s *server) baseballSetup(req baseballSimRequest) (*baseball.Team, *baseball.Team, baseball.Rules, error) {
	cfg, err := s.loader.LoadMerged("baseball", req.Profile)
	if err != nil {
		return nil, nil, baseball.Rules{}, err
	}
	rules, strat := cfg.BaseballRules()
	home, err := req.Home.toTeam(strat)
	if err != nil {
		return nil, nil, rules, err
	}
	away, err := req.Away.toTeam(strat)
	if err != nil {
		return nil, nil, rules, err
	}
	return home, away, rules, nil
}

func (s *server) basketballSetup(req basketballSimRequest) (*basketball.Team, *basketball.Team, basketball.Rules, error) {
	cfg, err := s.loader.LoadMerged("basketball", req.Profile)
	if err != nil {
		return nil, nil, basketball.Rules{}, err
	}
	home, err := req.Home.toTeam()
	if err != nil {
		return nil, nil, basketball.Rules{}, err
	}
	away, err := req.Away.toTeam()
	if err != nil {
		return nil, nil, basketball.Rules{}, err
	}
	return home, away, cfg.BasketballRules(), nil
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleBaseballSimulate(w http.ResponseWriter, r *http.Request) {
	var req baseballSimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	home, away, rules, err := s.baseballSetup(req)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	res, err := baseball.Simulate(home, away, rules, rngFor(req.Seed))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleBasketballSimulate(w http.ResponseWriter, r *http.Request) {
	var req basketballSimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	home, away, rules, err := s.basketballSetup(req)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	res, err := basketball.Simulate(home, away, rules, rngFor(req.Seed))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type baseballBatchRequest struct {
	Home    baseballTeamPayload `json:"home"`
	Away    baseballTeamPayload `json:"away"`
	Profile string              `json:"profile,omitempty"`
	Trials  int                 `json:"trials"`
	Seed    uint64              `json:"seed"`
	Workers int                 `json:"workers,omitempty"`
	Metric  string              `json:"metric,omitempty"`
}

type basketballBatchRequest struct {
	Home    basketballTeamPayload `json:"home"`
	Away    basketballTeamPayload `json:"away"`
	Profile string                `json:"profile,omitempty"`
	Trials  int                   `json:"trials"`
	Seed    uint64                `json:"seed"`
	Workers int                   `json:"workers,omitempty"`
	Metric  string                `json:"metric,omitempty"`
}

func (s *server) handleBaseballMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req baseballBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	home, away, rules, err := s.baseballSetup(baseballSimRequest{
		Home: req.Home, Away: req.Away, Profile: req.Profile,
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	stats, err := montecarlo.RunBaseball(home, away, rules, montecarlo.Params{
		Trials: req.Trials, Seed: req.Seed, Workers: req.Workers,
		Metric: montecarlo.Metric(req.Metric),
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleBasketballMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req basketballBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	home, away, rules, err := s.basketballSetup(basketballSimRequest{
		Home: req.Home, Away: req.Away, Profile: req.Profile,
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	stats, err := montecarlo.RunBasketball(home, away, rules, montecarlo.Params{
		Trials: req.Trials, Seed: req.Seed, Workers: req.Workers,
		Metric: montecarlo.Metric(req.Metric),
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleTuning(w http.ResponseWriter, r *http.Request) {
	sport := mux.Vars(r)["sport"]
	if sport != "baseball" && sport != "basketball" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("unknown sport %q", sport))
		return
	}
	cfg, err := s.loader.LoadMerged(sport, r.URL.Query().Get("profile"))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, tuning.ErrInvalidTuning) {
			code = http.StatusUnprocessableEntity
		}
		writeErr(w, code, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
