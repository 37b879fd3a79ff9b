package cacheinfra

import "time"

// entry is the value stored for every key, regardless of backend.
type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// stale reports whether the entry must be treated as a miss at now.
// A zero ttl never expires; a negative ttl is stale from the start.
func (e entry) stale(now time.Time) bool {
	switch {
	case e.ttl == 0:
		return false
	case e.ttl < 0:
		return true
	default:
		return now.Sub(e.storedAt) >= e.ttl
	}
}
