// internal/store/memory.go
//
// In-memory implementation of the KV medium. Used in tests and whenever no
// SQLite path is configured; state is lost when the process exits, which
// matches the "best effort" durability contract.

package store

import (
	"context"
	"sync"
)

// memory is a map-based KV implementation.
type memory struct {
	mu   sync.RWMutex      // guards values
	vals map[string][]byte // keyed by full key
}

// NewMemory constructs an empty in-memory KV.
func NewMemory() KV {
	return &memory{vals: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, false, nil
	}
	// Copy out so callers can't mutate stored state.
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *memory) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.vals[key] = v
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, key)
	return nil
}
