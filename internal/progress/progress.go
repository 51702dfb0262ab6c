// internal/progress/progress.go
//
// Daily progress persistence: one record per game holding the in-flight
// state for the current calendar day.
//
// Records are pinned to the day they were created for. Loading a record
// written on an earlier day deletes it and reports no progress, so a new
// day always starts a fresh game.
//
// All operations on the persistence medium are best effort: a failure is
// logged and treated as a no-op, gameplay continues in memory and simply
// will not survive a restart.

package progress

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gamedle/server/internal/daily"
	"github.com/gamedle/server/internal/store"
)

// DefaultMaxAttempts is used when a record is created implicitly by Update.
const DefaultMaxAttempts = 6

// Progress is the persisted daily state of one game.
//
// Attempts and Payload are opaque to the store: the game layer owns their
// shape (guess-result rows and the target snapshot respectively), which
// keeps one store serving every game variant.
type Progress struct {
	Date           string            `json:"date"` // YYYY-MM-DD the record belongs to
	CurrentAttempt int               `json:"currentAttempt"`
	MaxAttempts    int               `json:"maxAttempts"`
	Won            bool              `json:"won"`
	Lost           bool              `json:"lost"`
	Attempts       []json.RawMessage `json:"attempts"`
	Payload        json.RawMessage   `json:"payload,omitempty"`
	LastUpdated    int64             `json:"lastUpdated"` // unix milliseconds
}

// Terminal reports whether the record describes a finished game.
func (p *Progress) Terminal() bool { return p.Won || p.Lost }

// Store reads and writes Progress records, one per game id.
type Store struct {
	kv  store.KV
	now func() time.Time
}

// New constructs a Store over kv, scoped to the progress keyspace.
// now may be nil, in which case time.Now is used.
func New(kv store.KV, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{kv: store.Namespaced(kv, "progress"), now: now}
}

// Save upserts the full record for gameID, stamping LastUpdated and
// defaulting Date to today if unset.
func (s *Store) Save(ctx context.Context, gameID string, p *Progress) {
	if p.Date == "" {
		p.Date = daily.DateKey(s.now())
	}
	p.LastUpdated = s.now().UnixMilli()

	data, err := json.Marshal(p)
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("encode progress")
		return
	}
	if err := s.kv.Put(ctx, gameID, data); err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("save progress")
	}
}

// Load returns today's record for gameID, or nil when there is none.
// A record from a previous day is deleted and reported as absent.
func (s *Store) Load(ctx context.Context, gameID string) *Progress {
	data, ok, err := s.kv.Get(ctx, gameID)
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("load progress")
		return nil
	}
	if !ok {
		return nil
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("decode progress")
		return nil
	}
	if p.Date != daily.DateKey(s.now()) {
		s.Clear(ctx, gameID)
		return nil
	}
	return &p
}

// Update merges a change into the existing record via fn, creating a
// defaulted record for today first if none exists.
func (s *Store) Update(ctx context.Context, gameID string, fn func(*Progress)) {
	p := s.Load(ctx, gameID)
	if p == nil {
		p = &Progress{
			Date:        daily.DateKey(s.now()),
			MaxAttempts: DefaultMaxAttempts,
			Attempts:    []json.RawMessage{},
		}
	}
	fn(p)
	s.Save(ctx, gameID, p)
}

// Clear removes the record for gameID.
func (s *Store) Clear(ctx context.Context, gameID string) {
	if err := s.kv.Delete(ctx, gameID); err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("clear progress")
	}
}
