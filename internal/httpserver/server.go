// internal/httpserver/server.go
//
// HTTP wiring for the gamedle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/games".
//   - Per-game endpoints mounted under /games/{gameID} (see routes_game.go).
//   - Anonymous owner cookie so each browser gets its own progress/stats
//     slice of the shared persistence medium.
//
// There are no accounts: the owner cookie is the whole identity story.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/gamedle/server/internal/entity"
	"github.com/gamedle/server/internal/game"
	"github.com/gamedle/server/internal/stats"
	"github.com/gamedle/server/internal/store"
	"github.com/gamedle/server/internal/word"
)

// Game bundles one playable character variant: its config and loaded catalog.
type Game struct {
	Config  game.Config
	Catalog *entity.Catalog
}

// WordGame bundles the word variant: its config and loaded word list.
type WordGame struct {
	Config word.Config
	List   *word.List
}

// Server hosts the HTTP surface over the shared KV medium.
type Server struct {
	r      *chi.Mux
	kv     store.KV
	games  map[string]Game
	order  []string // stable listing order
	wordle *WordGame
	salt   string

	mu           sync.Mutex
	sessions     map[string]*game.Session // keyed owner|gameID|date
	wordSessions map[string]*word.Session // same keying
}

// New constructs a Server, installs middleware, and registers routes.
// wordle may be nil when the word variant is not configured.
func New(kv store.KV, games []Game, wordle *WordGame, dailySalt string) *Server {
	s := &Server{
		r:            chi.NewRouter(),
		kv:           kv,
		games:        make(map[string]Game, len(games)),
		wordle:       wordle,
		salt:         dailySalt,
		sessions:     make(map[string]*game.Session),
		wordSessions: make(map[string]*word.Session),
	}
	for _, g := range games {
		s.games[g.Config.ID] = g
		s.order = append(s.order, g.Config.ID)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"gamedle","endpoints":["/health","/games","POST /games/{id}/new","POST /games/{id}/guess"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/games", s.handleListGames)
	s.mountGameRoutes()
	if s.wordle != nil {
		s.mountWordRoutes()
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --------------------------- owner identity --------------------------------

const ownerCookieName = "gamedle_owner"

// ensureOwnerID returns the caller's stable anonymous id, minting a cookie
// on first contact. Progress and stats are scoped to this id.
func (s *Server) ensureOwnerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ownerCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ownerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
	return id
}

// ownerKV scopes the shared medium to one owner.
func (s *Server) ownerKV(ownerID string) store.KV {
	return store.Namespaced(s.kv, "owner:"+ownerID)
}

// evictStaleSessions drops cached sessions from earlier days so the table
// only ever holds today's active games. Callers hold s.mu.
func (s *Server) evictStaleSessions(today string) {
	suffix := "|" + today
	for k := range s.sessions {
		if !strings.HasSuffix(k, suffix) {
			delete(s.sessions, k)
		}
	}
	for k := range s.wordSessions {
		if !strings.HasSuffix(k, suffix) {
			delete(s.wordSessions, k)
		}
	}
}

// ------------------------------ listing ------------------------------------

// gameSummary is one row of GET /games: the sidebar data of a client UI.
type gameSummary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	MaxAttempts int            `json:"maxAttempts"`
	Entities    int            `json:"entities"`
	Today       *game.DayState `json:"today,omitempty"`
	Stats       stats.Stats    `json:"stats"`
}

// handleListGames reports every game with the caller's daily state and
// lifetime stats.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureOwnerID(w, r)
	kv := s.ownerKV(owner)
	reg := game.NewRegistry(kv, nil)
	st := stats.New(kv)

	out := make([]gameSummary, 0, len(s.order)+1)
	for _, id := range s.order {
		g := s.games[id]
		out = append(out, gameSummary{
			ID:          g.Config.ID,
			Name:        g.Config.Name,
			Description: g.Config.Description,
			MaxAttempts: g.Config.MaxAttempts,
			Entities:    g.Catalog.Len(),
			Today:       reg.Today(r.Context(), g.Config.ID),
			Stats:       st.Read(r.Context(), g.Config.ID),
		})
	}
	if s.wordle != nil {
		cfg := s.wordle.Config
		out = append(out, gameSummary{
			ID:          cfg.ID,
			Name:        cfg.Name,
			Description: cfg.Description,
			MaxAttempts: cfg.MaxAttempts,
			Entities:    s.wordle.List.Len(),
			Today:       reg.Today(r.Context(), cfg.ID),
			Stats:       st.Read(r.Context(), cfg.ID),
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}
