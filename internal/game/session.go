// internal/game/session.go
//
// Game Session Controller: drives one game variant end to end for one
// player. Owns the target selection, the in-memory guess history, and the
// calls into the progress/stats/registry stores. Collaborators are injected
// at construction; the session holds no ambient state.
//
// Daily semantics:
//   - The daily target is deterministic per calendar day (HMAC of the date),
//     so every player chases the same answer.
//   - "Play again" switches the session to free play: a random target,
//     nothing persisted, stats untouched.

package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gamedle/server/internal/daily"
	"github.com/gamedle/server/internal/entity"
	"github.com/gamedle/server/internal/progress"
	"github.com/gamedle/server/internal/stats"
)

// State is the session lifecycle. WonToday/LostToday double as the
// "come back tomorrow" gate for the daily round.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateWonToday
	StateLostToday
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateWonToday:
		return "won"
	case StateLostToday:
		return "lost"
	default:
		return "not_started"
	}
}

// Completion is emitted once when a game reaches a terminal state. It
// carries everything the result screen needs: the target, the final guess,
// and the updated lifetime stats.
type Completion struct {
	GameID    string
	Won       bool
	Attempts  int
	Target    *entity.Entity
	LastGuess *entity.Entity
	Stats     stats.Stats
	FreePlay  bool
}

// sessionPayload is the opaque progress payload. Target is a full snapshot
// so resuming never depends on the dataset still containing the entity;
// TargetRef is read as a fallback for records written by older builds.
type sessionPayload struct {
	Target    *entity.Entity `json:"target,omitempty"`
	TargetRef *targetRef     `json:"targetRef,omitempty"`
}

type targetRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options are the optional session collaborators.
type Options struct {
	Now        func() time.Time // defaults to time.Now
	DailySalt  string
	OnComplete func(Completion)
}

// Session is one player's run of one game variant.
type Session struct {
	cfg      Config
	catalog  *entity.Catalog
	progress *progress.Store
	stats    *stats.Store
	registry *Registry

	now        func() time.Time
	salt       string
	onComplete func(Completion)

	state    State
	target   *entity.Entity
	attempts []GuessResult
	current  int // attempts consumed so far
	freePlay bool
}

// NewSession wires a session from its collaborators. Start must be called
// before guesses are accepted.
func NewSession(cfg Config, catalog *entity.Catalog, prog *progress.Store, st *stats.Store, reg *Registry, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		cfg:        cfg,
		catalog:    catalog,
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
		// Record exists but cannot be rebound to a target; discard it.
		s.progress.Clear(ctx, s.cfg.ID)
	}
	if ds := s.registry.Today(ctx, s.cfg.ID); ds != nil && ds.Completed {
		s.target = s.dailyTarget()
		s.attempts = nil
		s.current = ds.Attempts
		if ds.Won {
			s.state = StateWonToday
		} else {
			s.state = StateLostToday
		}
		return
	}

	s.target = s.dailyTarget()
	s.attempts = nil
	s.current = 0
	s.state = StateInProgress
	s.persist(ctx)
}

// resume rebuilds in-memory state from a stored record. Returns false when
// the stored target cannot be restored, in which case the caller starts over.
func (s *Session) resume(p *progress.Progress) bool {
	var pl sessionPayload
	if len(p.Payload) > 0 {
		if err := json.Unmarshal(p.Payload, &pl); err != nil {
			log.Warn().Err(err).Str("game", s.cfg.ID).Msg("decode progress payload")
			return false
		}
	}
	target := pl.Target
	if target == nil && pl.TargetRef != nil {
		target = s.catalog.ByRef(pl.TargetRef.ID, pl.TargetRef.Name)
	}
	if target == nil {
		log.Warn().Str("game", s.cfg.ID).Msg("stored target no longer resolvable")
		return false
	}

	attempts := make([]GuessResult, 0, len(p.Attempts))
	for _, raw := range p.Attempts {
		var gr GuessResult
		if err := json.Unmarshal(raw, &gr); err != nil {
			log.Warn().Err(err).Str("game", s.cfg.ID).Msg("decode stored attempt")
			return false
		}
		attempts = append(attempts, gr)
	}

	s.target = target
	s.attempts = attempts
	s.current = p.CurrentAttempt
	switch {
	case p.Won:
		s.state = StateWonToday
	case p.Lost:
		s.state = StateLostToday
	default:
		s.state = StateInProgress
	}
	return true
}

// Submit validates and evaluates one guess. Input failures come back as the
// sentinel errors from validate.go and leave the session untouched.
func (s *Session) Submit(ctx context.Context, raw string) (GuessResult, Outcome, error) {
	if s.state != StateInProgress {
		return GuessResult{}, Outcome{}, ErrGameOver
	}
	guess, err := Resolve(s.catalog, raw, s.guessedNames())
	if err != nil {
		return GuessResult{}, Outcome{}, err
	}

	res := CompareGuess(s.cfg.Schema, guess, s.target)
	out := processOutcome(res, s.current, s.cfg.MaxAttempts)
	s.attempts = append(s.attempts, res)
	s.current++

	if out.ShouldContinue {
		if !s.freePlay {
			s.persist(ctx)
		}
		return res, out, nil
	}
	s.finalize(ctx, out, guess)
	return res, out, nil
}

// finalize settles a terminal outcome: stats once, registry marked,
// progress cleared, completion emitted. Free play skips all persistence.
func (s *Session) finalize(ctx context.Context, out Outcome, lastGuess *entity.Entity) {
	if out.Won {
		s.state = StateWonToday
	} else {
		s.state = StateLostToday
	}
	comp := Completion{
		GameID:    s.cfg.ID,
		Won:       out.Won,
		Attempts:  s.current,
		Target:    s.target,
		LastGuess: lastGuess,
		FreePlay:  s.freePlay,
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
	rows := make([]json.RawMessage, 0, len(s.attempts))
	for _, a := range s.attempts {
		raw, err := json.Marshal(a)
		if err != nil {
			log.Warn().Err(err).Str("game", s.cfg.ID).Msg("encode attempt")
			return
		}
		rows = append(rows, raw)
	}
	payload, err := json.Marshal(sessionPayload{Target: s.target})
	if err != nil {
		log.Warn().Err(err).Str("game", s.cfg.ID).Msg("encode progress payload")
		return
	}
	s.progress.Save(ctx, s.cfg.ID, &progress.Progress{
		Date:           daily.DateKey(s.now()),
		CurrentAttempt: s.current,
		MaxAttempts:    s.cfg.MaxAttempts,
		Won:            s.state == StateWonToday,
		Lost:           s.state == StateLostToday,
		Attempts:       rows,
		Payload:        payload,
	})
}

// dailyTarget is today's deterministic pick; every player with the same
// salt and catalog chases the same target for a given date.
func (s *Session) dailyTarget() *entity.Entity {
	return s.catalog.At(daily.TargetIndex(s.now(), s.salt, s.catalog.Len()))
}

// PlayAgain switches to free play: random target, clean board, and no
// effect on the daily round, stats, or persistence.
func (s *Session) PlayAgain() {
	s.target = s.catalog.Random()
	s.attempts = nil
	s.current = 0
	s.state = StateInProgress
	s.freePlay = true
}

// Suggest returns catalog suggestions for a typed query, excluding names
// already guessed this game.
func (s *Session) Suggest(query string) []*entity.Entity {
	return s.catalog.Filter(query, s.guessedNames())
}

// guessedNames lists the display names submitted so far.
func (s *Session) guessedNames() []string {
	names := make([]string, len(s.attempts))
	for i, a := range s.attempts {
		names[i] = a.Name.Value
	}
	return names
}

// Accessors used by the HTTP layer.

func (s *Session) State() State            { return s.state }
func (s *Session) Target() *entity.Entity  { return s.target }
func (s *Session) Attempts() []GuessResult { return s.attempts }
func (s *Session) CurrentAttempt() int     { return s.current }
func (s *Session) Config() Config          { return s.cfg }
func (s *Session) FreePlay() bool          { return s.freePlay }
