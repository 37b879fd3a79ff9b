// Package funcache memoizes arbitrary Go functions.
//
// A memoized function has the same call shape as the function it wraps. Each
// call derives a key from its arguments, returns the stored result on a hit
// and calls the target on a miss. Successful results are written to a
// bounded store; errors are returned untouched and never stored.
//
// # Basic Usage
//
//	lookup := funcache.Must(funcache.Memoize1(repo.FindUser, funcache.Options[*User]{
//		Max: 1000,
//		CacheAge: func(u *User) time.Duration {
//			if u == nil {
//				return -1 // do not remember misses
//			}
//			return time.Minute
//		},
//	}))
//
//	user, err := lookup("user-123")
//
// Memoize wraps a variadic Func, MemoizeContext wraps a ContextFunc whose
// context is passed through but never becomes part of the key, and Memoize1
// and Memoize2 keep typed signatures.
//
// # Result Dependent TTL
//
// Options.CacheAge inspects each successful result and decides how long it
// stays fresh:
//
//   - zero: kept until capacity eviction
//   - positive: stale once the entry is that old, the next call recomputes
//   - negative: stale immediately, every call recomputes
//
// The ttl is computed again for every new result, so a key can switch between
// long and short lifetimes as its result changes.
//
// # Concurrency
//
// Memoized functions are safe for concurrent use. By default two concurrent
// misses on the same key both call the target and the last one to finish
// wins the store. Options.Coalesce makes concurrent misses share one
// in-flight call instead.
//
// # Keys
//
// Keys come from cache.KeySerializer. Structural mode (default) hashes the
// JSON form of the arguments and fails with a serialization error before the
// target runs when an argument cannot be encoded. Primitive mode joins the
// fmt.Sprint form of the arguments and never fails.
package funcache
