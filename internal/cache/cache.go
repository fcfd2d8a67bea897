// Package cache holds the process-wide session cache of detail records.
//
// Entries are JSON snapshots keyed by "item:" + name-or-id. There is no TTL and
// no eviction: the cache lives exactly as long as the dex process and grows
// with every distinct record visited or prefetched.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/five82/dex/internal/pokeapi"
)

const keyPrefix = "item:"

// Key builds the cache key for a name or numeric id.
func Key(nameOrID string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(nameOrID))
}

// Session is a concurrency-safe, unbounded key-value store of detail snapshots.
// The zero value is ready to use.
type Session struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New returns an empty Session.
func New() *Session {
	return &Session{}
}

// Get returns a copy of the record stored under key.
func (s *Session) Get(key string) (pokeapi.DetailRecord, bool) {
	if s == nil {
		return pokeapi.DetailRecord{}, false
	}
	s.mu.RLock()
	raw, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return pokeapi.DetailRecord{}, false
	}
	var rec pokeapi.DetailRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return pokeapi.DetailRecord{}, false
	}
	return rec, true
}

// Has reports whether key is present without decoding it.
func (s *Session) Has(key string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Put stores a snapshot of rec under key, overwriting any previous value.
func (s *Session) Put(key string, rec pokeapi.DetailRecord) {
	if s == nil {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	s.entries[key] = raw
}

// PutLive stores rec like Put, but only if ctx is still live when the write
// lock is held. Cancellation is checked and the entry written under the same
// lock, so a cancelled request never lands in the cache. It returns ctx.Err()
// when the write was skipped.
func (s *Session) PutLive(ctx context.Context, key string, rec pokeapi.DetailRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", key, err)
	}
	if s == nil {
		return ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	s.entries[key] = raw
	return nil
}

// Len returns the number of cached entries.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
