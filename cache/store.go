package cache

import "time"

// KeySerializer builds a cache key from an ordered argument list.
// It is responsible for producing stable keys across calls and process runs.
type KeySerializer interface {
	SerializeKey(args ...any) (string, error)
}

// Store is the bounded key-value store a memoized function writes through.
// Implementations own entry age, expiry and capacity eviction.
//
// A ttl of zero means the entry never expires on its own. A negative ttl
// makes the entry stale as soon as it is written.
type Store interface {
	Has(key string) bool
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

// Lener is implemented by stores that can report their entry count.
type Lener interface {
	Len() int
}
