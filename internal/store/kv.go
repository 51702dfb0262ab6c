// internal/store/kv.go
//
// Keyed persistence medium for game state: string keys holding JSON blobs,
// the server-side analog of browser local storage. Implementations may be
// backed by memory (development/tests) or SQLite (durable best-effort).

package store

import (
	"context"
	"strings"
)

// KV is the persistence contract used by the progress and stats stores.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put upserts the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Namespaced returns a view of kv with every key prefixed by ns and ":".
// Used to give each keyspace (progress, stats) and each owner its own slice
// of the shared medium.
func Namespaced(kv KV, ns string) KV {
	return &namespaced{kv: kv, prefix: strings.TrimSuffix(ns, ":") + ":"}
}

type namespaced struct {
	kv     KV
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespaced) Put(ctx context.Context, key string, value []byte) error {
	return n.kv.Put(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}
