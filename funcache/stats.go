package funcache

import "github.com/puzpuzpuz/xsync/v3"

// Stats is a snapshot of the counters of a memoized function.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Errors    int64 `json:"errors"`
	Coalesced int64 `json:"coalesced"`
}

type counters struct {
	hits      *xsync.Counter
	misses    *xsync.Counter
	errors    *xsync.Counter
	coalesced *xsync.Counter
}

func newCounters() *counters {
	return &counters{
		hits:      xsync.NewCounter(),
		misses:    xsync.NewCounter(),
		errors:    xsync.NewCounter(),
		coalesced: xsync.NewCounter(),
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:      c.hits.Value(),
		Misses:    c.misses.Value(),
		Errors:    c.errors.Value(),
		Coalesced: c.coalesced.Value(),
	}
}
