package cache

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-funcache/internal/cacheinfra"
)

// Backend selects the Store implementation built by NewStore.
type Backend string

const (
	// BackendLRU is a strict least-recently-used store. Default.
	BackendLRU Backend = Backend(cacheinfra.BackendLRU)
	// BackendSharded is a sharded store tuned for heavy concurrent use.
	// Eviction is approximate and every entry is capped by Config.TTL.
	BackendSharded Backend = Backend(cacheinfra.BackendSharded)
)

// Config exposes store configuration options for consumers of the cache package.
type Config struct {
	Backend            Backend
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration
	Now                func() time.Time
	Logger             *slog.Logger
}

// DefaultConfig returns an unbounded LRU store configuration.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// DefaultShardedConfig returns a sharded store configuration with sensible defaults.
func DefaultShardedConfig() Config {
	return convertFromInternal(cacheinfra.DefaultShardedConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewStore constructs the store selected by cfg.Backend.
func NewStore(cfg Config) (Store, error) {
	internal := cfg.toInternal()

	if internal.Backend == cacheinfra.BackendSharded {
		store, err := cacheinfra.NewSturdycStore(internal)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := cacheinfra.NewLRUStore(internal)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Backend:            cacheinfra.Backend(c.Backend),
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
		Now:                c.Now,
		Logger:             c.Logger,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Backend:            Backend(cfg.Backend),
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
		Now:                cfg.Now,
		Logger:             cfg.Logger,
	}
}
