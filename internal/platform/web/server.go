// Package web serves the maze over HTTP: a websocket endpoint that runs one
// game per connection plus small JSON endpoints for scores and levels.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/logging"
	"github.com/vovakirdan/mazechase/internal/maze"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// Routes.
const (
	RouteWS     = "/ws"
	RouteScores = "/api/scores"
	RouteLevels = "/api/levels"
	RouteHealth = "/health"
)

// Config holds server settings.
type Config struct {
	Address  string
	TickRate int // 0 keeps the configured game rate
	Options  registry.Options
}

// Server wires the routes to per-connection sessions.
type Server struct {
	cfg      Config
	router   *way.Router
	upgrader websocket.Upgrader
	store    storage.Leaderboard
	logger   *log.Logger
	levels   []maze.LevelInfo
	tickRate int
	active   atomic.Int64
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer validates the game options once and builds the router. store may
// be nil; scores are then not kept.
func NewServer(cfg Config, store storage.Leaderboard, logger *log.Logger) (*Server, error) {
	probe, err := maze.NewFromOptions(cfg.Options)
	if err != nil {
		return nil, err
	}
	levels, err := maze.LoadLevels(cfg.Options.LevelsPath)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.Discard()
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = probe.TickRate()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:   cfg,
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:   logger,
		levels:   maze.DescribeLevels(levels),
		tickRate: tickRate,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", RouteWS, s.handleWebSocket)
	s.router.HandleFunc("GET", RouteScores, s.handleScores)
	s.router.HandleFunc("GET", RouteLevels, s.handleLevels)
	s.router.HandleFunc("GET", RouteHealth, s.handleHealth)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ActiveSessions reports how many websocket sessions are running.
func (s *Server) ActiveSessions() int {
	return int(s.active.Load())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server starting", "addr", s.cfg.Address, "tick_rate", s.tickRate)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close ends every running session.
func (s *Server) Close() {
	s.cancel()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.Options
	if lvl := r.URL.Query().Get("level"); lvl != "" {
		n, err := strconv.Atoi(lvl)
		if err != nil {
			http.Error(w, "level must be a number", http.StatusBadRequest)
			return
		}
		opts.StartLevel = n
	}

	game, err := maze.NewFromOptions(opts)
	if err != nil {
		s.logger.Error("could not create game", "error", err)
		http.Error(w, "could not create game", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	game.Reset(core.RuntimeConfig{TickRate: s.tickRate, Seed: time.Now().UnixNano()})

	logger := s.logger.With("session", id[:8])
	sess := newSession(id, conn, game, s.store, logger, s.tickRate)

	s.active.Add(1)
	logger.Info("session connected", "remote", r.RemoteAddr, "active", s.active.Load())

	go func() {
		defer func() {
			s.active.Add(-1)
			logger.Info("session disconnected", "active", s.active.Load())
		}()
		sess.Run(s.ctx, HelloPayload{SessionID: id, TickRate: s.tickRate, Levels: s.levels})
	}()
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorPayload{Message: "scores unavailable"})
		return
	}

	n := storage.MaxEntries
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorPayload{Message: "n must be a positive number"})
			return
		}
		n = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	scores, err := s.store.ListTop(ctx, maze.GameID, n)
	if err != nil {
		s.logger.Error("could not list scores", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorPayload{Message: "could not list scores"})
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, ScoresResponse{GameID: maze.GameID, Scores: scores})
}

func (s *Server) handleLevels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.levels)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.ActiveSessions(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
