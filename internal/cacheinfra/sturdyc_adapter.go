package cacheinfra

import (
	"log/slog"
	"time"

	"github.com/viccon/sturdyc"
)

// sturdycStore wraps a sturdyc client providing a sharded store.
// sturdyc only knows one TTL per client, so the per-entry ttl is enforced
// lazily on read and can never extend past Config.TTL.
type sturdycStore struct {
	client *sturdyc.Client[entry]
	now    func() time.Time
	logger *slog.Logger
}

// NewSturdycStore creates a new sturdyc store adapter.
// Capacity, NumShards, TTL and EvictionPercentage are passed to sturdyc.New();
// the remaining options are applied via ToSturdycOptions().
//
// Eviction is percentage based per shard, so unlike NewLRUStore it does not
// guarantee that the least recently used entry goes first.
func NewSturdycStore(cfg Config) (*sturdycStore, error) {
	cfg.Backend = BackendSharded
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[entry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &sturdycStore{
		client: client,
		now:    cfg.clock(),
		logger: cfg.logger(),
	}, nil
}

// Has reports whether key holds a fresh entry.
func (s *sturdycStore) Has(key string) bool {
	e, ok := s.client.Get(key)
	return ok && !e.stale(s.now())
}

// Get returns the value for key. A stale entry is deleted and reported as a miss.
func (s *sturdycStore) Get(key string) (any, bool) {
	e, ok := s.client.Get(key)
	if !ok {
		return nil, false
	}

	if e.stale(s.now()) {
		s.client.Delete(key)
		s.logger.Debug("store entry stale", "key", key, "ttl", e.ttl)
		return nil, false
	}

	return e.value, true
}

// Set writes value under key, replacing any previous entry.
func (s *sturdycStore) Set(key string, value any, ttl time.Duration) {
	s.client.Set(key, entry{value: value, storedAt: s.now(), ttl: ttl})
}

// Len returns the number of entries held by sturdyc.
func (s *sturdycStore) Len() int {
	return s.client.Size()
}
