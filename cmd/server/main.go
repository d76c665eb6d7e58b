// Command server exposes the simulation engines over HTTP: one-shot
// game simulation, Monte Carlo batches, tuning inspection, and a
// websocket play-by-play stream.
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"

	"github.com/dugoutlabs/gamesim/internal/tuning"
)

// Config comes from the environment.
type Config struct {
	Addr          string        `env:"GAMESIM_ADDR" envDefault:":8080"`
	TuningDir     string        `env:"GAMESIM_TUNING_DIR" envDefault:"tuning"`
	WatchInterval time.Duration `env:"GAMESIM_WATCH_INTERVAL" envDefault:"2s"`
	WatchTuning   bool          `env:"GAMESIM_WATCH_TUNING" envDefault:"true"`
}

type server struct {
	cfg    Config
	loader *tuning.Loader
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	srv := &server{cfg: cfg, loader: tuning.NewLoader(cfg.TuningDir)}

	if cfg.WatchTuning {
		paths := append(srv.loader.WatchPaths("baseball", ""), srv.loader.WatchPaths("basketball", "")...)
		w := tuning.NewWatcher(paths, cfg.WatchInterval, func(path string) {
			log.Printf("tuning changed: %s, cache invalidated", path)
			srv.loader.Invalidate()
		})
		w.Start()
		defer w.Stop()
	}

	log.Printf("listening on %s ...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, srv.routes()))
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/baseball/simulate", s.handleBaseballSimulate).Methods(http.MethodPost)
	r.HandleFunc("/api/basketball/simulate", s.handleBasketballSimulate).Methods(http.MethodPost)
	r.HandleFunc("/api/baseball/montecarlo", s.handleBaseballMonteCarlo).Methods(http.MethodPost)
	r.HandleFunc("/api/basketball/montecarlo", s.handleBasketballMonteCarlo).Methods(http.MethodPost)
	r.HandleFunc("/api/tuning/{sport}", s.handleTuning).Methods(http.MethodGet)
	r.HandleFunc("/ws/baseball", s.handleBaseballStream)
	r.HandleFunc("/ws/basketball", s.handleBasketballStream)
	return r
}
