package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC. Progress records and daily targets are
// pinned to this key; a mismatch against today's key marks a record stale.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TargetIndex returns a deterministic catalog index for a date using
// HMAC(salt, YYYY-MM-DD) % catalogLen, so every player gets the same daily
// target without the answer being derivable from the date alone.
func TargetIndex(date time.Time, salt string, catalogLen int) int {
	if catalogLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(catalogLen))
}
