package cacheinfra

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// lruStore is a strict LRU store with lazy per-entry expiry.
// simplelru is not safe for concurrent use, so every access holds mu.
type lruStore struct {
	mu     sync.Mutex
	items  *simplelru.LRU[string, entry]
	now    func() time.Time
	logger *slog.Logger
}

// NewLRUStore creates a store that evicts the least recently accessed entry
// once Capacity is reached. A zero Capacity leaves the store unbounded.
func NewLRUStore(cfg Config) (*lruStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	size := cfg.Capacity
	if size == 0 {
		size = math.MaxInt
	}

	items, err := simplelru.NewLRU[string, entry](size, nil)
	if err != nil {
		return nil, err
	}

	return &lruStore{
		items:  items,
		now:    cfg.clock(),
		logger: cfg.logger(),
	}, nil
}

// Has reports whether key holds a fresh entry. It does not update recency.
func (s *lruStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items.Peek(key)
	return ok && !e.stale(s.now())
}

// Get returns the value for key and marks it as most recently used.
// A stale entry is dropped and reported as a miss.
func (s *lruStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items.Get(key)
	if !ok {
		return nil, false
	}

	if e.stale(s.now()) {
		s.items.Remove(key)
		s.logger.Debug("store entry stale", "key", key, "ttl", e.ttl)
		return nil, false
	}

	return e.value, true
}

// Set writes value under key, replacing any previous entry and refreshing
// its age, ttl and recency.
func (s *lruStore) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if evicted := s.items.Add(key, entry{value: value, storedAt: s.now(), ttl: ttl}); evicted {
		s.logger.Debug("store evicted least recently used entry", "size", s.items.Len())
	}
}

// Len returns the number of entries, stale ones included.
func (s *lruStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Len()
}
