// internal/word/session.go
//
// Session controller for the word-guessing game. Same daily semantics as
// the character games: deterministic daily answer via HMAC of the date,
// progress persisted per guess, stats and the day registry settled exactly
// once on a terminal outcome, free play after "play again".
//
// The character games and this one share the state enum, outcome type, and
// day registry from the game package; only the guess model differs.

package word

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gamedle/server/internal/daily"
	"github.com/gamedle/server/internal/game"
	"github.com/gamedle/server/internal/progress"
	"github.com/gamedle/server/internal/stats"
)

// Config declares the word game variant.
type Config struct {
	ID          string
	Name        string
	Description string
	MaxAttempts int
	WordLength  int
}

// Classic is the standard 6-attempt, five-letter game.
func Classic() Config {
	return Config{
		ID:          "wordle",
		Name:        "Wordle",
		Description: "Guess the five-letter word",
		MaxAttempts: 6,
		WordLength:  5,
	}
}

// Completion is emitted once when the game reaches a terminal state.
type Completion struct {
	GameID   string
	Won      bool
	Attempts int
	Answer   string
	Stats    stats.Stats
	FreePlay bool
}

// wordPayload is the opaque progress payload: the answer travels with the
// record so resuming never depends on the word list.
type wordPayload struct {
	Answer string `json:"answer"`
}

// Options are the optional session collaborators.
type Options struct {
	Now        func() time.Time
	DailySalt  string
	OnComplete func(Completion)
}

// Session is one player's run of the word game.
type Session struct {
	cfg      Config
	list     *List
	progress *progress.Store
	stats    *stats.Store
	registry *game.Registry

	now        func() time.Time
	salt       string
	onComplete func(Completion)

	state    game.State
	answer   string
	rows     []Row
	current  int
	freePlay bool
}

// NewSession wires a session from its collaborators. Start must be called
// before guesses are accepted.
func NewSession(cfg Config, list *List, prog *progress.Store, st *stats.Store, reg *game.Registry, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		cfg:        cfg,
		list:       list,
		progress:   prog,
		stats:      st,
		registry:   reg,
		now:        now,
		salt:       opts.DailySalt,
		onComplete: opts.OnComplete,
	}
}

// Start resumes today's persisted progress when present, honours an
// already-completed daily round, or begins a fresh daily game.
func (s *Session) Start(ctx context.Context) {
	if p := s.progress.Load(ctx, s.cfg.ID); p != nil {
		if s.resume(p) {
			return
		}
		s.progress.Clear(ctx, s.cfg.ID)
	}
	if ds := s.registry.Today(ctx, s.cfg.ID); ds != nil && ds.Completed {
		s.answer = s.dailyAnswer()
		s.rows = nil
		s.current = ds.Attempts
		if ds.Won {
			s.state = game.StateWonToday
		} else {
			s.state = game.StateLostToday
		}
		return
	}

	s.answer = s.dailyAnswer()
	s.rows = nil
	s.current = 0
	s.state = game.StateInProgress
	s.persist(ctx)
}

func (s *Session) resume(p *progress.Progress) bool {
	var pl wordPayload
	if len(p.Payload) > 0 {
		if err := json.Unmarshal(p.Payload, &pl); err != nil {
			log.Warn().Err(err).Str("game", s.cfg.ID).Msg("decode progress payload")
			return false
		}
	}
	if len(pl.Answer) != s.cfg.WordLength {
		log.Warn().Str("game", s.cfg.ID).Msg("stored answer unusable")
		return false
	}

	rows := make([]Row, 0, len(p.Attempts))
	for _, raw := range p.Attempts {
		var row Row
		if err := json.Unmarshal(raw, &row); err != nil {
			log.Warn().Err(err).Str("game", s.cfg.ID).Msg("decode stored attempt")
			return false
		}
		rows = append(rows, row)
	}

	s.answer = pl.Answer
	s.rows = rows
	s.current = p.CurrentAttempt
	switch {
	case p.Won:
		s.state = game.StateWonToday
	case p.Lost:
		s.state = game.StateLostToday
	default:
		s.state = game.StateInProgress
	}
	return true
}

// Submit validates and scores one guess. Input failures come back as the
// sentinel errors from engine.go and leave the session untouched.
func (s *Session) Submit(ctx context.Context, raw string) (Row, game.Outcome, error) {
	if s.state != game.StateInProgress {
		return Row{}, game.Outcome{}, ErrGameOver
	}
	guess := strings.ToLower(strings.TrimSpace(raw))
	if guess == "" {
		return Row{}, game.Outcome{}, ErrEmptyGuess
	}
	if len(guess) != s.cfg.WordLength || !isAlpha(guess) {
		return Row{}, game.Outcome{}, ErrNotAWord
	}
	if !s.list.IsAllowed(guess) {
		return Row{}, game.Outcome{}, ErrNotInList
	}

	row := Row{Word: guess, Marks: Score(guess, s.answer)}
	out := game.Outcome{ShouldContinue: true}
	if row.Won() {
		out = game.Outcome{Won: true}
	} else if s.current+1 >= s.cfg.MaxAttempts {
		out = game.Outcome{}
	}
	s.rows = append(s.rows, row)
	s.current++

	if out.ShouldContinue {
		if !s.freePlay {
			s.persist(ctx)
		}
		return row, out, nil
	}
	s.finalize(ctx, out)
	return row, out, nil
}

// finalize settles a terminal outcome: stats once, registry marked,
// progress cleared. Free play skips all persistence.
func (s *Session) finalize(ctx context.Context, out game.Outcome) {
	if out.Won {
		s.state = game.StateWonToday
	} else {
		s.state = game.StateLostToday
	}
	comp := Completion{
		GameID:   s.cfg.ID,
		Won:      out.Won,
		Attempts: s.current,
		Answer:   s.answer,
		FreePlay: s.freePlay,
	}
	if s.freePlay {
		comp.Stats = s.stats.Read(ctx, s.cfg.ID)
	} else {
		comp.Stats = s.stats.RecordCompletion(ctx, s.cfg.ID, out.Won, s.current, s.cfg.MaxAttempts)
		s.registry.SetCompleted(ctx, s.cfg.ID, out.Won, s.current, s.cfg.MaxAttempts)
		s.progress.Clear(ctx, s.cfg.ID)
	}
	if s.onComplete != nil {
		s.onComplete(comp)
	}
}

// persist writes the full current state as today's progress record.
func (s *Session) persist(ctx context.Context) {
	rows := make([]json.RawMessage, 0, len(s.rows))
	for _, r := range s.rows {
		raw, err := json.Marshal(r)
		if err != nil {
			log.Warn().Err(err).Str("game", s.cfg.ID).Msg("encode attempt")
			return
		}
		rows = append(rows, raw)
	}
	payload, err := json.Marshal(wordPayload{Answer: s.answer})
	if err != nil {
		log.Warn().Err(err).Str("game", s.cfg.ID).Msg("encode progress payload")
		return
	}
	s.progress.Save(ctx, s.cfg.ID, &progress.Progress{
		Date:           daily.DateKey(s.now()),
		CurrentAttempt: s.current,
		MaxAttempts:    s.cfg.MaxAttempts,
		Won:            s.state == game.StateWonToday,
		Lost:           s.state == game.StateLostToday,
		Attempts:       rows,
		Payload:        payload,
	})
}

// dailyAnswer is today's deterministic pick from the answer list.
func (s *Session) dailyAnswer() string {
	return s.list.Answer(daily.TargetIndex(s.now(), s.salt, s.list.Len()))
}

// PlayAgain switches to free play: random answer, clean board, and no
// effect on the daily round, stats, or persistence.
func (s *Session) PlayAgain() {
	s.answer = s.list.Random()
	s.rows = nil
	s.current = 0
	s.state = game.StateInProgress
	s.freePlay = true
}

// Accessors used by the HTTP layer.

func (s *Session) State() game.State   { return s.state }
func (s *Session) Answer() string      { return s.answer }
func (s *Session) Rows() []Row         { return s.rows }
func (s *Session) CurrentAttempt() int { return s.current }
func (s *Session) Config() Config      { return s.cfg }
func (s *Session) FreePlay() bool      { return s.freePlay }
