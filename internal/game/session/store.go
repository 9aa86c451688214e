// Package session holds resolved rolls between the moment they are made and
// the moment a caller applies them, e.g. damage from a stored attack.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/percentile/internal/game/roll"
)

// DefaultMaxAge is the eviction age used when a Store is created with maxAge <= 0.
const DefaultMaxAge = 30 * time.Minute

// Entry is one stored roll.
type Entry struct {
	ID      string      `yaml:"id"`
	Created time.Time   `yaml:"created"`
	Result  roll.Result `yaml:"result"`
}

// Store keeps resolved rolls keyed by id and evicts them by age.
// The caller owns the Store; nothing is global. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	maxAge  time.Duration
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store.
//
// Postcondition: maxAge <= 0 selects DefaultMaxAge.
func NewStore(maxAge time.Duration, opts ...Option) *Store {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	s := &Store{
		entries: make(map[string]Entry),
		maxAge:  maxAge,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores res under a fresh id and evicts expired entries.
//
// Postcondition: Returns the new entry's id.
func (s *Store) Put(res roll.Result) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)
	id := uuid.NewString()
	s.entries[id] = Entry{ID: id, Created: now, Result: res}
	return id
}

// Get returns the entry stored under id. Expired entries are not returned.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e, s.now()) {
		return Entry{}, false
	}
	return e, true
}

// Take returns and removes the entry stored under id.
func (s *Store) Take(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Entry{}, false
	}
	delete(s.entries, id)
	if s.expired(e, s.now()) {
		return Entry{}, false
	}
	return e, true
}

// Evict removes every entry older than the store's max age.
//
// Postcondition: Returns the number of entries removed.
func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(s.now())
}

// Len returns the number of stored entries, including any not yet evicted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// IDs returns the stored ids ordered oldest first.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Created.Equal(list[j].Created) {
			return list[i].ID < list[j].ID
		}
		return list[i].Created.Before(list[j].Created)
	})
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return ids
}

func (s *Store) expired(e Entry, now time.Time) bool {
	return now.Sub(e.Created) > s.maxAge
}

func (s *Store) evictLocked(now time.Time) int {
	n := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}
