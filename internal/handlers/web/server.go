package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// DefaultRequestTimeout bounds every request
const DefaultRequestTimeout = 5 * time.Second

// CheckFunc reports whether a dependency is reachable
type CheckFunc func(ctx context.Context) error

// Config holds the configuration for the HTTP server
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	Ledger ledger.Service

	// Checks are run by /health in addition to the ledger ping, keyed by name
	Checks map[string]CheckFunc

	// RequestTimeout defaults to DefaultRequestTimeout
	RequestTimeout time.Duration
}

// Server serves the keep-alive health probe and read-only leaderboards
type Server struct {
	r      *chi.Mux
	http   *http.Server
	ledger ledger.Service
	checks map[string]CheckFunc
}

// New constructs a Server and registers routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Ledger == nil {
		return nil, errors.New("ledger service cannot be nil")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	checks := make(map[string]CheckFunc, len(cfg.Checks)+1)
	for name, check := range cfg.Checks {
		checks[name] = check
	}
	checks["ledger"] = cfg.Ledger.Ping

	s := &Server{
		r:      chi.NewRouter(),
		ledger: cfg.Ledger,
		checks: checks,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "crocodile",
			"endpoints": []string{"/health", "/chats/{chatID}/leaderboard"},
		})
	})
	s.r.Get("/health", s.handleHealth)
	s.r.Get("/chats/{chatID}/leaderboard", s.handleLeaderboard)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
	})

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.r,
		ReadHeaderTimeout: timeout,
	}

	return s, nil
}

// Handler exposes the router (useful for tests)
func (s *Server) Handler() http.Handler { return s.r }

// Start serves until Shutdown is called
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("starting http server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res := healthResponse{OK: true, Checks: make(map[string]string, len(s.checks))}

	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			log.Warn().Err(err).Str("check", name).Msg("health check failed")
			res.OK = false
			res.Checks[name] = "unavailable"
			continue
		}
		res.Checks[name] = "ok"
	}

	status := http.StatusOK
	if !res.OK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, res)
}

type leaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Score       int64  `json:"score"`
	Coins       int64  `json:"coins"`
	XP          int64  `json:"xp"`
}

type leaderboardResponse struct {
	ChatID  string             `json:"chatId"`
	Entries []leaderboardEntry `json:"entries"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_limit"})
			return
		}
		limit = n
	}

	out, err := s.ledger.TopN(r.Context(), &ledger.TopNInput{ChatID: chatID, Limit: limit})
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_chat"})
			return
		}
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to load leaderboard")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "unavailable"})
		return
	}

	res := leaderboardResponse{ChatID: chatID, Entries: make([]leaderboardEntry, 0, len(out.Leaderboard.Entries))}
	for i, rec := range out.Leaderboard.Entries {
		res.Entries = append(res.Entries, leaderboardEntry{
			Rank:        i + 1,
			UserID:      rec.UserID,
			DisplayName: rec.DisplayName,
			Score:       rec.Score,
			Coins:       rec.Coins,
			XP:          rec.XP,
		})
	}

	writeJSON(w, http.StatusOK, res)
}

// jsonContentType sets a default JSON Content-Type header on all responses
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
