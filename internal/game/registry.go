// internal/game/registry.go
//
// Daily-state registry: one small record per game marking whether today's
// round has been completed, and how. Separate from the progress store so
// that completion survives the progress record being cleared at game end —
// it is what gates "come back tomorrow".

package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gamedle/server/internal/daily"
	"github.com/gamedle/server/internal/store"
)

// DayState records the outcome of one game's daily round.
type DayState struct {
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	Won         bool   `json:"won"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"maxAttempts"`
}

// Registry persists DayState records in the games keyspace.
type Registry struct {
	kv  store.KV
	now func() time.Time
}

// NewRegistry constructs a Registry over kv. now may be nil.
func NewRegistry(kv store.KV, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{kv: store.Namespaced(kv, "games"), now: now}
}

// Today returns the game's state for the current day, nil when the game has
// not been completed today. Records from earlier days are purged.
func (r *Registry) Today(ctx context.Context, gameID string) *DayState {
	data, ok, err := r.kv.Get(ctx, gameID)
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("load day state")
		return nil
	}
	if !ok {
		return nil
	}
	var ds DayState
	if err := json.Unmarshal(data, &ds); err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("decode day state")
		return nil
	}
	if ds.Date != daily.DateKey(r.now()) {
		if err := r.kv.Delete(ctx, gameID); err != nil {
			log.Warn().Err(err).Str("game", gameID).Msg("purge day state")
		}
		return nil
	}
	return &ds
}

// SetCompleted marks today's round finished. Best effort like every other
// persistence write.
func (r *Registry) SetCompleted(ctx context.Context, gameID string, won bool, attempts, maxAttempts int) {
	ds := DayState{
		Date:        daily.DateKey(r.now()),
		Completed:   true,
		Won:         won,
		Attempts:    attempts,
		MaxAttempts: maxAttempts,
	}
	data, err := json.Marshal(ds)
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("encode day state")
		return
	}
	if err := r.kv.Put(ctx, gameID, data); err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("save day state")
	}
}
