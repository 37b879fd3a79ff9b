package cacheinfra

import (
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/viccon/sturdyc"
)

// Backend selects the store implementation.
type Backend string

const (
	// BackendLRU is a strict least-recently-used store.
	BackendLRU Backend = "lru"
	// BackendSharded is a sharded sturdyc store with approximate eviction.
	BackendSharded Backend = "sharded"
)

// Config holds the configuration shared by the store adapters.
type Config struct {
	// Backend selects the implementation. Empty means BackendLRU.
	Backend Backend

	// Capacity is the maximum number of entries.
	// Zero means unbounded for BackendLRU and is rejected for BackendSharded.
	Capacity int

	// NumShards determines the number of sturdyc shards.
	// Only used by BackendSharded. Default: 256
	NumShards int

	// TTL is the ceiling for every entry of a sharded store. sturdyc drops
	// entries after this duration even when their own ttl is zero or longer.
	// Only used by BackendSharded.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries sturdyc evicts
	// when a shard reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often sturdyc sweeps expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration

	// Now is the clock used to age entries. Defaults to time.Now, which
	// carries a monotonic reading.
	Now func() time.Time

	// Logger receives debug records for stale drops and evictions.
	Logger *slog.Logger
}

// DefaultConfig returns an unbounded LRU configuration.
func DefaultConfig() Config {
	return Config{
		Backend: BackendLRU,
	}
}

// DefaultShardedConfig returns a sharded configuration with the sturdyc
// parameters used for most workloads.
func DefaultShardedConfig() Config {
	return Config{
		Backend:            BackendSharded,
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid for the selected backend.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.In(BackendLRU, BackendSharded)),
		validation.Field(&c.Capacity, validation.Min(0)),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)

	if err == nil && c.Backend == BackendSharded {
		err = validation.ValidateStruct(&c,
			validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
			validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
			validation.Field(&c.TTL, validation.Required, validation.Min(time.Duration(0))),
			validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		)
	}

	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid store configuration")
	}
	return nil
}

// ToSturdycOptions converts the optional parts of Config to sturdyc options.
// Capacity, NumShards, TTL, and EvictionPercentage are passed directly
// to sturdyc.New() and are not included.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

func (c Config) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
