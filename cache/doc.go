// Package cache provides the key serialization and store interfaces used by
// memoized functions.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - KeySerializer: Builds stable cache keys from an ordered argument list
//   - Store: A bounded key-value store with per-entry time-to-live
//
// The funcache package composes both to wrap arbitrary functions. They are
// exported so callers can derive keys on their own or plug in another store.
//
// # Basic Usage
//
//	serializer := cache.NewStructuralKeySerializer("")
//	key, err := serializer.SerializeKey("user-123", Filter{Active: true})
//
//	store, err := cache.NewStore(cache.Config{Capacity: 1000})
//	store.Set(key, user, 30*time.Second)
//
// # Key Serialization Strategy
//
// Two modes are available:
//
//   - Primitive: arguments are formatted with fmt.Sprint and joined with
//     KeyJoiner. No hashing, no type inspection. Values with the same string
//     form (1 and "1") share a key, so only use it for known scalar arguments.
//   - Structural: every argument is encoded with encoding/json, the results
//     are joined with KeyJoiner and the signature is hashed to a UUIDv5
//     seeded with a namespace.
//
// Structural keys follow encoding/json rules:
//
//   - Maps: keys are sorted, so insertion order does not matter
//   - Structs: exported fields in declaration order, json tags honored
//   - Slices/arrays: element order matters
//   - Pointers: serialized as the value they point to
//
// Channels, functions, NaN and cyclic structures cannot be encoded. They make
// SerializeKey fail with a serialization error (see IsSerializationError)
// before any function is invoked.
//
// # Namespaces
//
// The structural hash is seeded with DefaultNamespace unless another one is
// given. A namespace may be a UUID or any other string; non-UUID strings are
// mapped to a UUID deterministically. Namespaces keep two memoized functions
// from producing the same key for the same arguments when they share a store.
//
// # Stores
//
// NewStore builds one of two backends:
//
//   - BackendLRU (default): strict least-recently-used eviction, unbounded
//     when Capacity is zero
//   - BackendSharded: sturdyc-backed, sharded for concurrency, approximate
//     eviction, every entry capped by Config.TTL
//
// Both expire entries lazily: a ttl of zero never expires, a positive ttl
// expires once the entry is that old, and a negative ttl is stale at once.
package cache
