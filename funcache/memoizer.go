package funcache

import (
	"context"
	"log/slog"
	"reflect"
	"runtime"
	"time"

	"github.com/goliatone/go-funcache/cache"
	"golang.org/x/sync/singleflight"
)

// Func is a function of variadic, heterogeneous arguments.
type Func[R any] func(args ...any) (R, error)

// ContextFunc is a blocking function that honors cancellation through ctx.
type ContextFunc[R any] func(ctx context.Context, args ...any) (R, error)

// Memoizer owns the store and key serializer of one memoized function.
type Memoizer[R any] struct {
	store      cache.Store
	serializer cache.KeySerializer
	cacheAge   func(R) time.Duration
	coalesce   bool
	nilable    bool
	group      singleflight.Group
	logger     *slog.Logger
	stats      *counters
}

// New creates a Memoizer from opts. The only error source is the store:
// an invalid Max is reported here.
func New[R any](opts Options[R]) (*Memoizer[R], error) {
	store, err := opts.store()
	if err != nil {
		return nil, err
	}

	return &Memoizer[R]{
		store:      store,
		serializer: cache.NewKeySerializer(opts.Primitive, opts.Namespace),
		cacheAge:   opts.CacheAge,
		coalesce:   opts.Coalesce,
		nilable:    reflect.TypeFor[R]().Kind() == reflect.Interface,
		logger:     opts.logger(),
		stats:      newCounters(),
	}, nil
}

// Memoize wraps fn so results are cached by argument list.
func Memoize[R any](fn Func[R], opts Options[R]) (Func[R], error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	return func(args ...any) (R, error) {
		return m.Do(args, func() (R, error) {
			return fn(args...)
		})
	}, nil
}

// MemoizeContext wraps a context aware fn. ctx is not part of the key.
func MemoizeContext[R any](fn ContextFunc[R], opts Options[R]) (ContextFunc[R], error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, args ...any) (R, error) {
		return m.DoContext(ctx, args, func(ctx context.Context) (R, error) {
			return fn(ctx, args...)
		})
	}, nil
}

// Memoize1 wraps a single argument function keeping its signature.
func Memoize1[A, R any](fn func(A) (R, error), opts Options[R]) (func(A) (R, error), error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	return func(a A) (R, error) {
		return m.Do([]any{a}, func() (R, error) {
			return fn(a)
		})
	}, nil
}

// Memoize2 wraps a two argument function keeping its signature.
func Memoize2[A, B, R any](fn func(A, B) (R, error), opts Options[R]) (func(A, B) (R, error), error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	return func(a A, b B) (R, error) {
		return m.Do([]any{a, b}, func() (R, error) {
			return fn(a, b)
		})
	}, nil
}

// Must panics if err is not nil. Use it for package level wrappers.
func Must[F any](fn F, err error) F {
	if err != nil {
		panic(err)
	}
	return fn
}

// Do returns the cached result for args, or calls invoke on a miss.
func (m *Memoizer[R]) Do(args []any, invoke func() (R, error)) (R, error) {
	return m.DoContext(context.Background(), args, func(context.Context) (R, error) {
		return invoke()
	})
}

// DoContext returns the cached result for args, or calls invoke on a miss.
//
// The key is derived before invoke runs, so a serialization error is
// returned without calling the target. Errors from invoke are returned as
// is and never cached.
//
// With Coalesce enabled, concurrent misses on one key share a single call
// of invoke. The shared call does not inherit cancellation from any single
// caller; a caller whose ctx ends stops waiting and gets ctx.Err(). A panic
// in the shared call is raised again on every waiting caller.
func (m *Memoizer[R]) DoContext(ctx context.Context, args []any, invoke func(context.Context) (R, error)) (R, error) {
	var zero R

	key, err := m.serializer.SerializeKey(args...)
	if err != nil {
		return zero, err
	}

	if result, ok := m.lookup(key); ok {
		return result, nil
	}

	if !m.coalesce {
		return m.compute(ctx, key, invoke)
	}

	shared := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (any, error) {
		f := m.share(shared, key, invoke)
		return f, f.err
	})

	select {
	case res := <-ch:
		if res.Shared {
			m.stats.coalesced.Inc()
		}
		f, _ := res.Val.(flight[R])
		if f.panicked {
			panic(f.recovered)
		}
		if f.goexit {
			runtime.Goexit()
		}
		return f.result, f.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// flight is the outcome of a shared call, delivered to every waiter.
type flight[R any] struct {
	result    R
	err       error
	recovered any
	panicked  bool
	goexit    bool
}

// share runs compute on its own goroutine and always returns, so a panic or
// runtime.Goexit in the target is replayed on each waiter's goroutine
// instead of escaping inside singleflight.
func (m *Memoizer[R]) share(ctx context.Context, key string, invoke func(context.Context) (R, error)) flight[R] {
	out := make(chan flight[R], 1)

	go func() {
		var f flight[R]
		normal := false
		defer func() {
			if !normal {
				if r := recover(); r != nil {
					f.recovered, f.panicked = r, true
				} else {
					f.goexit = true
				}
			}
			out <- f
		}()

		f.result, f.err = m.compute(ctx, key, invoke)
		normal = true
	}()

	return <-out
}

// Contains reports whether a fresh result is cached for args.
func (m *Memoizer[R]) Contains(args ...any) (bool, error) {
	key, err := m.serializer.SerializeKey(args...)
	if err != nil {
		return false, err
	}
	return m.store.Has(key), nil
}

// Stats returns a snapshot of hit, miss and error counters.
func (m *Memoizer[R]) Stats() Stats {
	return m.stats.snapshot()
}

func (m *Memoizer[R]) lookup(key string) (R, bool) {
	var zero R

	value, ok := m.store.Get(key)
	if !ok {
		return zero, false
	}

	if value == nil {
		if !m.nilable {
			m.logger.Warn("memoized value has unexpected type", "key", key)
			return zero, false
		}
		m.stats.hits.Inc()
		return zero, true
	}

	result, ok := value.(R)
	if !ok {
		// a shared store can hold a value written by another function
		m.logger.Warn("memoized value has unexpected type", "key", key)
		return zero, false
	}

	m.stats.hits.Inc()
	m.logger.Debug("memoized hit", "key", key)
	return result, true
}

func (m *Memoizer[R]) compute(ctx context.Context, key string, invoke func(context.Context) (R, error)) (R, error) {
	m.stats.misses.Inc()

	result, err := invoke(ctx)
	if err != nil {
		m.stats.errors.Inc()
		m.logger.Debug("memoized call failed", "key", key, "error", err)
		return result, err
	}

	var ttl time.Duration
	if m.cacheAge != nil {
		ttl = m.cacheAge(result)
	}

	m.store.Set(key, result, ttl)
	m.logger.Debug("memoized miss stored", "key", key, "ttl", ttl)

	return result, nil
}
