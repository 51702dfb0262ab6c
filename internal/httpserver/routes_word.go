// internal/httpserver/routes_word.go
//
// Routes for the word variant, mounted under /games/wordle (static paths
// take precedence over the /games/{gameID} character-game routes). Same
// session lifecycle as the character games; the guess model is per-letter
// marks instead of attribute rows.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gamedle/server/internal/daily"
	"github.com/gamedle/server/internal/game"
	"github.com/gamedle/server/internal/progress"
	"github.com/gamedle/server/internal/stats"
	"github.com/gamedle/server/internal/word"
)

// mountWordRoutes registers all /games/<wordle id> routes.
func (s *Server) mountWordRoutes() {
	s.r.Route("/games/"+s.wordle.Config.ID, func(r chi.Router) {
		r.Post("/new", s.handleWordNew)
		r.Post("/guess", s.handleWordGuess)
		r.Post("/again", s.handleWordPlayAgain)
		r.Get("/stats", s.handleWordStats)
	})
}

// withWordSession resolves the caller's word session for today, creating
// and starting one if needed, then runs fn under the session lock.
func (s *Server) withWordSession(w http.ResponseWriter, r *http.Request, fn func(sess *word.Session, owner string)) {
	owner := s.ensureOwnerID(w, r)
	today := daily.DateKey(time.Now())
	key := owner + "|" + s.wordle.Config.ID + "|" + today

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, found := s.wordSessions[key]
	if !found {
		s.evictStaleSessions(today)
		kv := s.ownerKV(owner)
		sess = word.NewSession(s.wordle.Config, s.wordle.List,
			progress.New(kv, nil), stats.New(kv), game.NewRegistry(kv, nil),
			word.Options{DailySalt: s.salt})
		sess.Start(r.Context())
		s.wordSessions[key] = sess
	}
	fn(sess, owner)
}

// wordProgressRes mirrors progressRes for the word game: board state only,
// never the answer.
type wordProgressRes struct {
	GameID         string     `json:"gameId"`
	Date           string     `json:"date"`
	State          string     `json:"state"`
	CurrentAttempt int        `json:"currentAttempt"`
	MaxAttempts    int        `json:"maxAttempts"`
	WordLength     int        `json:"wordLength"`
	Rows           []word.Row `json:"rows"`
	FreePlay       bool       `json:"freePlay,omitempty"`
}

type wordGuessRes struct {
	Row            word.Row           `json:"row"`
	State          string             `json:"state"`
	CurrentAttempt int                `json:"currentAttempt"`
	MaxAttempts    int                `json:"maxAttempts"`
	Completed      *wordCompletionRes `json:"completed,omitempty"`
}

type wordCompletionRes struct {
	Won      bool        `json:"won"`
	Attempts int         `json:"attempts"`
	Answer   string      `json:"answer"`
	Stats    stats.Stats `json:"stats"`
}

func wordProgress(sess *word.Session) wordProgressRes {
	rows := sess.Rows()
	if rows == nil {
		rows = []word.Row{}
	}
	return wordProgressRes{
		GameID:         sess.Config().ID,
		Date:           daily.DateKey(time.Now()),
		State:          sess.State().String(),
		CurrentAttempt: sess.CurrentAttempt(),
		MaxAttempts:    sess.Config().MaxAttempts,
		WordLength:     sess.Config().WordLength,
		Rows:           rows,
		FreePlay:       sess.FreePlay(),
	}
}

func (s *Server) handleWordNew(w http.ResponseWriter, r *http.Request) {
	s.withWordSession(w, r, func(sess *word.Session, owner string) {
		_ = json.NewEncoder(w).Encode(wordProgress(sess))
	})
}

func (s *Server) handleWordGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}
	s.withWordSession(w, r, func(sess *word.Session, owner string) {
		row, out, err := sess.Submit(r.Context(), req.Guess)
		if err != nil {
			writeWordErr(w, err, sess.Config().WordLength)
			return
		}
		resp := wordGuessRes{
			Row:            row,
			State:          sess.State().String(),
			CurrentAttempt: sess.CurrentAttempt(),
			MaxAttempts:    sess.Config().MaxAttempts,
		}
		if !out.ShouldContinue {
			resp.Completed = &wordCompletionRes{
				Won:      out.Won,
				Attempts: sess.CurrentAttempt(),
				Answer:   sess.Answer(),
				Stats:    stats.New(s.ownerKV(owner)).Read(r.Context(), sess.Config().ID),
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
}

func (s *Server) handleWordPlayAgain(w http.ResponseWriter, r *http.Request) {
	s.withWordSession(w, r, func(sess *word.Session, owner string) {
		sess.PlayAgain()
		_ = json.NewEncoder(w).Encode(wordProgress(sess))
	})
}

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureOwnerID(w, r)
	st := stats.New(s.ownerKV(owner)).Read(r.Context(), s.wordle.Config.ID)
	_ = json.NewEncoder(w).Encode(st)
}

// writeWordErr maps the word-game sentinels to inline messages.
func writeWordErr(w http.ResponseWriter, err error, wordLength int) {
	switch {
	case errors.Is(err, word.ErrEmptyGuess):
		writeErr(w, http.StatusBadRequest, "empty_guess", "please enter a word")
	case errors.Is(err, word.ErrNotAWord):
		writeErr(w, http.StatusBadRequest, "not_a_word", "guesses must be a "+strconv.Itoa(wordLength)+"-letter word")
	case errors.Is(err, word.ErrNotInList):
		writeErr(w, http.StatusBadRequest, "not_in_list", "that word is not in the list")
	case errors.Is(err, word.ErrGameOver):
		writeErr(w, http.StatusConflict, "game_over", "today's game is finished, come back tomorrow")
	default:
		writeErr(w, http.StatusInternalServerError, "internal", "unexpected error")
	}
}
