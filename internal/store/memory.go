package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/aerospotter/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given airport.
	ErrNotFound = errors.New("no weather data for airport")
	// ErrExpired is returned when the cached snapshot is older than the max age.
	ErrExpired = errors.New("weather data expired")
)

type entry struct {
	snapshot weather.Snapshot
	savedAt  time.Time
}

// MemoryStore is a concurrency-safe cache of the latest snapshot per airport.
// Older snapshots are replaced, never kept.
type MemoryStore struct {
	mu sync.RWMutex

	// key: airport code
	data map[string]entry

	maxAge time.Duration // 0 = never expires
	now    func() time.Time
}

// NewMemoryStore creates a new MemoryStore. If maxAge is <= 0 snapshots never expire.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]entry),
		maxAge: maxAge,
		now:    time.Now,
	}
}

func key(airport string) string {
	return strings.ToUpper(strings.TrimSpace(airport))
}

// SaveSnapshot replaces the cached snapshot for the snapshot's airport.
func (s *MemoryStore) SaveSnapshot(snapshot weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key(snapshot.Airport())] = entry{snapshot: snapshot, savedAt: s.now()}
}

// GetLatest returns the cached snapshot for an airport if it has not expired.
func (s *MemoryStore) GetLatest(airport string) (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key(airport)]
	if !ok {
		return weather.Snapshot{}, ErrNotFound
	}
	if s.maxAge > 0 && s.now().Sub(e.savedAt) > s.maxAge {
		return weather.Snapshot{}, ErrExpired
	}
	return e.snapshot, nil
}

// Purge drops expired snapshots and returns how many were removed.
func (s *MemoryStore) Purge() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxAge)
	n := 0
	for k, e := range s.data {
		if e.savedAt.Before(cutoff) {
			delete(s.data, k)
			n++
		}
	}
	return n
}
