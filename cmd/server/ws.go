package main

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dugoutlabs/gamesim/internal/baseball"
	"github.com/dugoutlabs/gamesim/internal/basketball"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// streamMsg is one websocket frame: a sequence of "event" frames
// followed by a single "result" frame, or an "error" frame.
type streamMsg struct {
	Type   string `json:"type"` // event | result | error
	Seq    int    `json:"seq,omitempty"`
	Event  any    `json:"event,omitempty"`
	Result any    `json:"result,omitempty"`
	Err    string `json:"err,omitempty"`
}

func streamError(conn *websocket.Conn, err error) {
	_ = conn.WriteJSON(streamMsg{Type: "error", Err: err.Error()})
}

// baseballEventJSON renders the enum fields as strings for clients.
type baseballEventJSON struct {
	Kind    string `json:"kind"`
	Inning  int    `json:"inning"`
	Half    string `json:"half"`
	Outs    int    `json:"outs"`
	Batter  string `json:"batter,omitempty"`
	Pitcher string `json:"pitcher,omitempty"`
	Outcome string `json:"outcome,omitempty"`
	Runs    int    `json:"runs,omitempty"`
	Note    string `json:"note,omitempty"`
}

func renderBaseballEvent(ev baseball.Event) baseballEventJSON {
	out := baseballEventJSON{
		Inning: ev.Inning, Half: ev.Half.String(), Outs: ev.Outs,
		Batter: ev.Batter, Pitcher: ev.Pitcher, Runs: ev.Runs, Note: ev.Note,
	}
	switch ev.Kind {
	case baseball.EventAtBat:
		out.Kind = "at_bat"
		out.Outcome = ev.Outcome.String()
	case baseball.EventSteal:
		out.Kind = "steal"
	case baseball.EventSubstitution:
		out.Kind = "substitution"
	}
	return out
}

type basketballEventJSON struct {
	Kind     string `json:"kind"`
	Quarter  int    `json:"quarter"`
	Team     string `json:"team,omitempty"`
	Player   string `json:"player,omitempty"`
	Shot     string `json:"shot,omitempty"`
	Tier     string `json:"tier,omitempty"`
	Made     bool   `json:"made,omitempty"`
	Blocked  bool   `json:"blocked,omitempty"`
	Points   int    `json:"points,omitempty"`
	Turnover string `json:"turnover,omitempty"`
	Note     string `json:"note,omitempty"`
}

func renderBasketballEvent(ev basketball.Event) basketballEventJSON {
	out := basketballEventJSON{
		Quarter: ev.Quarter, Team: ev.Team, Player: ev.Player,
		Made: ev.Made, Blocked: ev.Blocked, Points: ev.Points, Note: ev.Note,
	}
	switch ev.Kind {
	case basketball.EventShot:
		out.Kind = "shot"
		out.Shot = ev.Shot.String()
		out.Tier = ev.Tier.String()
	case basketball.EventRebound:
		out.Kind = "rebound"
	case basketball.EventTurnover:
		out.Kind = "turnover"
		out.Turnover = ev.Turnover.String()
	case basketball.EventFoul:
		out.Kind = "foul"
	case basketball.EventFreeThrow:
		out.Kind = "free_throw"
	}
	return out
}

// handleBaseballStream upgrades, reads one simulation request, and
// streams the play-by-play followed by the final result.
func (s *server) handleBaseballStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	var req baseballSimRequest
	if err := conn.ReadJSON(&req); err != nil {
		streamError(conn, err)
		return
	}
	home, away, rules, err := s.baseballSetup(req)
	if err != nil {
		streamError(conn, err)
		return
	}
	res, err := baseball.Simulate(home, away, rules, rngFor(req.Seed))
	if err != nil {
		streamError(conn, err)
		return
	}
	for i, ev := range res.Events {
		if err := conn.WriteJSON(streamMsg{Type: "event", Seq: i, Event: renderBaseballEvent(ev)}); err != nil {
			return
		}
	}
	_ = conn.WriteJSON(streamMsg{Type: "result", Result: res})
}

func (s *server) handleBasketballStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	var req basketballSimRequest
	if err := conn.ReadJSON(&req); err != nil {
		streamError(conn, err)
		return
	}
	home, away, rules, err := s.basketballSetup(req)
	if err != nil {
		streamError(conn, err)
		return
	}
	res, err := basketball.Simulate(home, away, rules, rngFor(req.Seed))
	if err != nil {
		streamError(conn, err)
		return
	}
	for i, ev := range res.Events {
		if err := conn.WriteJSON(streamMsg{Type: "event", Seq: i, Event: renderBasketballEvent(ev)}); err != nil {
			return
		}
	}
	_ = conn.WriteJSON(streamMsg{Type: "result", Result: res})
}
