// internal/httpserver/routes_game.go
//
// Per-game HTTP routes, mounted under /games/{gameID}:
//   - POST /new      → start or resume today's session, returning its progress
//   - POST /guess    → submit a guess
//   - POST /again    → switch to free play with a fresh random target
//   - GET  /suggest  → name suggestions for a typed query
//   - GET  /stats    → the caller's lifetime stats for this game
//
// Sessions are held in memory for active play, keyed owner|game|date, and
// back themselves onto the persistent medium through the game package.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gamedle/server/internal/daily"
	"github.com/gamedle/server/internal/entity"
	"github.com/gamedle/server/internal/game"
	"github.com/gamedle/server/internal/progress"
	"github.com/gamedle/server/internal/stats"
)

// mountGameRoutes registers all /games/{gameID} routes.
func (s *Server) mountGameRoutes() {
	s.r.Route("/games/{gameID}", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/again", s.handlePlayAgain)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/stats", s.handleStats)
	})
}

// withSession resolves the game from the URL and the caller's session for
// today, creating and starting one if needed, then runs fn under the
// session lock. Requests are serialized per server; per-request work is
// small enough that one lock keeps session state consistent.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(sess *game.Session, g Game, owner string)) {
	g, ok := s.games[chi.URLParam(r, "gameID")]
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown_game", "no such game")
		return
	}
	owner := s.ensureOwnerID(w, r)
	key := owner + "|" + g.Config.ID + "|" + daily.DateKey(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, found := s.sessions[key]
	if !found {
		s.evictStaleSessions(daily.DateKey(time.Now()))
		kv := s.ownerKV(owner)
		sess = game.NewSession(g.Config, g.Catalog,
			progress.New(kv, nil), stats.New(kv), game.NewRegistry(kv, nil),
			game.Options{DailySalt: s.salt})
		sess.Start(r.Context())
		s.sessions[key] = sess
	}
	fn(sess, g, owner)
}

// ----------------------------- payloads ------------------------------------

// progressRes mirrors the "progress loaded" event: everything a client
// needs to render the board, and nothing that gives the target away.
type progressRes struct {
	GameID         string             `json:"gameId"`
	Date           string             `json:"date"`
	State          string             `json:"state"`
	CurrentAttempt int                `json:"currentAttempt"`
	MaxAttempts    int                `json:"maxAttempts"`
	Attempts       []game.GuessResult `json:"attempts"`
	FreePlay       bool               `json:"freePlay,omitempty"`
}

type guessReq struct {
	Guess string `json:"guess"`
}

type guessRes struct {
	Result         game.GuessResult `json:"result"`
	State          string           `json:"state"`
	CurrentAttempt int              `json:"currentAttempt"`
	MaxAttempts    int              `json:"maxAttempts"`
	Completed      *completionRes   `json:"completed,omitempty"`
}

// completionRes is the "game completed" event: result-screen data.
type completionRes struct {
	Won       bool           `json:"won"`
	Attempts  int            `json:"attempts"`
	Target    renderedEntity `json:"target"`
	LastGuess renderedEntity `json:"lastGuess"`
	Stats     stats.Stats    `json:"stats"`
}

// renderedEntity is an entity with every attribute formatted for display.
type renderedEntity struct {
	Name   string            `json:"name"`
	Image  string            `json:"image,omitempty"`
	Fields map[string]string `json:"fields"`
}

func renderEntity(schema entity.Schema, e *entity.Entity) renderedEntity {
	out := renderedEntity{Name: e.Name, Image: e.Image, Fields: make(map[string]string, len(schema))}
	for _, f := range schema {
		out.Fields[f.Key] = entity.Display(f, e.Fields[f.Key])
	}
	return out
}

func sessionProgress(sess *game.Session) progressRes {
	attempts := sess.Attempts()
	if attempts == nil {
		attempts = []game.GuessResult{}
	}
	return progressRes{
		GameID:         sess.Config().ID,
		Date:           daily.DateKey(time.Now()),
		State:          sess.State().String(),
		CurrentAttempt: sess.CurrentAttempt(),
		MaxAttempts:    sess.Config().MaxAttempts,
		Attempts:       attempts,
		FreePlay:       sess.FreePlay(),
	}
}

// ------------------------------ handlers -----------------------------------

// handleNewGame starts or resumes today's session and returns its progress.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session, g Game, owner string) {
		_ = json.NewEncoder(w).Encode(sessionProgress(sess))
	})
}

// handleGuess submits one guess and returns the evaluated row plus, on a
// terminal outcome, the completion payload.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}
	s.withSession(w, r, func(sess *game.Session, g Game, owner string) {
		res, out, err := sess.Submit(r.Context(), req.Guess)
		if err != nil {
			writeGuessErr(w, err, g.Config.EntityLabel)
			return
		}
		resp := guessRes{
			Result:         res,
			State:          sess.State().String(),
			CurrentAttempt: sess.CurrentAttempt(),
			MaxAttempts:    g.Config.MaxAttempts,
		}
		if !out.ShouldContinue {
			resp.Completed = &completionRes{
				Won:       out.Won,
				Attempts:  sess.CurrentAttempt(),
				Target:    renderEntity(g.Config.Schema, sess.Target()),
				LastGuess: renderedEntity{Name: res.Name.Value, Image: res.Image},
				Stats:     stats.New(s.ownerKV(owner)).Read(r.Context(), g.Config.ID),
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
}

// handlePlayAgain switches the session to free play and returns the fresh
// board. The daily round's result stays on record.
func (s *Server) handlePlayAgain(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session, g Game, owner string) {
		sess.PlayAgain()
		_ = json.NewEncoder(w).Encode(sessionProgress(sess))
	})
}

// suggestion is one typed-query match.
type suggestion struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

const maxSuggestions = 20

// handleSuggest returns name suggestions for ?q=, excluding names already
// guessed in today's session when one exists. Purely a read: typing must
// never create or persist game state.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	g, ok := s.games[chi.URLParam(r, "gameID")]
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown_game", "no such game")
		return
	}
	owner := s.ensureOwnerID(w, r)

	var excluded []string
	s.mu.Lock()
	if sess, found := s.sessions[owner+"|"+g.Config.ID+"|"+daily.DateKey(time.Now())]; found {
		for _, a := range sess.Attempts() {
			excluded = append(excluded, a.Name.Value)
		}
	}
	s.mu.Unlock()

	matches := g.Catalog.Filter(r.URL.Query().Get("q"), excluded)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	out := make([]suggestion, 0, len(matches))
	for _, e := range matches {
		out = append(out, suggestion{Name: e.Name, Image: e.Image})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleStats returns the caller's lifetime stats for one game.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	g, ok := s.games[chi.URLParam(r, "gameID")]
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown_game", "no such game")
		return
	}
	owner := s.ensureOwnerID(w, r)
	st := stats.New(s.ownerKV(owner)).Read(r.Context(), g.Config.ID)
	_ = json.NewEncoder(w).Encode(st)
}

// ------------------------------ errors -------------------------------------

// writeGuessErr maps validation sentinels to inline, user-visible messages.
// None of these mutate game state.
func writeGuessErr(w http.ResponseWriter, err error, entityLabel string) {
	switch {
	case errors.Is(err, game.ErrEmptyGuess):
		writeErr(w, http.StatusBadRequest, "empty_guess", "please enter a name")
	case errors.Is(err, game.ErrAlreadyGuessed):
		writeErr(w, http.StatusConflict, "already_guessed", "you already guessed that "+entityLabel+", try another")
	case errors.Is(err, game.ErrNotFound):
		writeErr(w, http.StatusNotFound, "unknown_"+entityLabel, entityLabel+" not found, try another name")
	case errors.Is(err, game.ErrGameOver):
		writeErr(w, http.StatusConflict, "game_over", "today's game is finished, come back tomorrow")
	default:
		writeErr(w, http.StatusInternalServerError, "internal", "unexpected error")
	}
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
