// internal/httpserver/server.go
//
// HTTP server wiring for the Birdle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (player cookie): /game, /game/guess, /game/practice, /settings, /stats, /share.
//   - Per-client rate limiting on state-changing routes.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Every game route runs for whoever holds the cookie; there are no accounts.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/birdle/internal/play"
	"github.com/robalobadob/birdle/internal/words"
)

// Options configures a Server.
type Options struct {
	Play           *play.Service
	Catalog        *words.Catalog
	Players        PlayerTokens
	ClientOrigin   string
	RateLimitRPS   int
	RateLimitBurst int
}

// Server bundles the router and the game service.
type Server struct {
	r       *chi.Mux
	play    *play.Service
	catalog *words.Catalog
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{r: chi.NewRouter(), play: opts.Play, catalog: opts.Catalog}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one log line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"birdle","endpoints":["/health","GET /game","POST /game/guess","POST /game/practice","POST /settings","GET /stats","GET /share"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.catalog.Counts()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	limiter := newIPLimiter(opts.RateLimitRPS, opts.RateLimitBurst)
	s.r.Group(func(r chi.Router) {
		r.Use(opts.Players.withPlayer)
		s.mountGame(r, limiter.middleware)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.r }

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	State   any    `json:"state,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeErrorState(w, status, code, message, nil)
}

func writeErrorState(w http.ResponseWriter, status int, code, message string, state any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code, Message: message, State: state})
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
