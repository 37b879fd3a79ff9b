package funcache

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-funcache/cache"
)

// Options configures a memoized function. It is read once, when the wrapper
// is built; changing it afterwards has no effect.
type Options[R any] struct {
	// Max is the maximum number of cached results. Zero means unbounded.
	// The value is passed to the store untouched, so a negative Max fails
	// store construction. Ignored when Store is set.
	Max int

	// Primitive selects the primitive key mode: arguments are joined with
	// cache.KeyJoiner instead of being serialized and hashed.
	Primitive bool

	// CacheAge returns the time-to-live for a successful result. It runs
	// once per miss, after the target succeeds. Zero keeps the result until
	// it is evicted, a negative value disables caching for that result.
	// Nil behaves like a function that always returns zero.
	//
	// On a cache.BackendSharded store every entry is also dropped once it
	// reaches the store's Config.TTL, so zero means "until Config.TTL" there
	// and a longer ttl is cut to it.
	CacheAge func(R) time.Duration

	// Namespace seeds structural keys. Empty selects cache.DefaultNamespace.
	Namespace string

	// Coalesce makes concurrent misses on the same key share a single
	// in-flight call of the target. When false every miss calls the target,
	// even if an identical call is already running.
	Coalesce bool

	// Store overrides the store. By default every wrapper owns a fresh LRU store.
	Store cache.Store

	// Now is the clock of the default store. Defaults to time.Now.
	Now func() time.Time

	// Logger receives debug records for hits, misses and writes.
	Logger *slog.Logger
}

// AgeMillis adapts a function returning milliseconds to Options.CacheAge.
func AgeMillis[R any](fn func(R) int64) func(R) time.Duration {
	return func(result R) time.Duration {
		return time.Duration(fn(result)) * time.Millisecond
	}
}

func (o Options[R]) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options[R]) store() (cache.Store, error) {
	if o.Store != nil {
		return o.Store, nil
	}

	return cache.NewStore(cache.Config{
		Backend:  cache.BackendLRU,
		Capacity: o.Max,
		Now:      o.Now,
		Logger:   o.Logger,
	})
}
