// internal/stats/stats.go
//
// Cumulative per-game personal statistics: games played, wins, streaks and
// the win-attempt distribution. Stats survive across days and are updated
// exactly once per completed game; an abandoned game never touches them.
//
// Persistence failures follow the same best-effort policy as the progress
// store: logged and swallowed.

package stats

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/gamedle/server/internal/store"
)

// Stats is one game's lifetime record for a single player.
// Invariants: Won <= Played and BestStreak >= CurrentStreak.
type Stats struct {
	Played        int   `json:"played"`
	Won           int   `json:"won"`
	CurrentStreak int   `json:"currentStreak"`
	BestStreak    int   `json:"bestStreak"`
	Distribution  []int `json:"distribution"` // wins by attempt count, index 0 = won on first guess
}

// Store reads and writes Stats records, one per game id.
type Store struct {
	kv store.KV
}

// New constructs a Store over kv, scoped to the stats keyspace.
func New(kv store.KV) *Store {
	return &Store{kv: store.Namespaced(kv, "stats")}
}

// Read returns the stats for gameID, zeroed defaults when absent.
func (s *Store) Read(ctx context.Context, gameID string) Stats {
	var st Stats
	data, ok, err := s.kv.Get(ctx, gameID)
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("load stats")
		return st
	}
	if !ok {
		return st
	}
	if err := json.Unmarshal(data, &st); err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("decode stats")
		return Stats{}
	}
	return st
}

// RecordCompletion applies one finished game: increments Played; on a win
// increments Won and the streak (raising BestStreak when passed) and buckets
// the winning attempt count; on a loss resets the streak.
//
// Callers own the exactly-once contract: invoking this twice for the same
// completion double-counts.
func (s *Store) RecordCompletion(ctx context.Context, gameID string, won bool, attempts, maxAttempts int) Stats {
	st := s.Read(ctx, gameID)

	st.Played++
	if won {
		st.Won++
		st.CurrentStreak++
		if st.CurrentStreak > st.BestStreak {
			st.BestStreak = st.CurrentStreak
		}
		if len(st.Distribution) < maxAttempts {
			grown := make([]int, maxAttempts)
			copy(grown, st.Distribution)
			st.Distribution = grown
		}
		if attempts >= 1 && attempts <= len(st.Distribution) {
			st.Distribution[attempts-1]++
		}
	} else {
		st.CurrentStreak = 0
	}

	data, err := json.Marshal(st)
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("encode stats")
		return st
	}
	if err := s.kv.Put(ctx, gameID, data); err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("save stats")
	}
	return st
}
