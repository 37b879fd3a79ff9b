package di

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-funcache/cache"
	"github.com/goliatone/go-funcache/funcache"
	"github.com/puzpuzpuz/xsync/v3"
)

// Config holds the defaults a Container applies to every memoized function.
type Config struct {
	// Store is the template used to build one store per memoized function.
	Store cache.Config

	// Logger is handed to every memoized function, tagged with its name.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with an unbounded LRU store template.
func DefaultConfig() Config {
	return Config{Store: cache.DefaultConfig()}
}

type statsProvider interface {
	Stats() funcache.Stats
}

// Container provides dependency injection for memoized functions.
// It applies shared defaults and keeps a registry of every function it
// built so their stats can be inspected together.
type Container struct {
	config   Config
	registry *xsync.MapOf[string, statsProvider]
}

// NewContainer creates a new DI container with the provided configuration.
// The store template is validated once here.
func NewContainer(config Config) (*Container, error) {
	if err := config.Store.Validate(); err != nil {
		return nil, err
	}

	return &Container{
		config:   config,
		registry: xsync.NewMapOf[string, statsProvider](),
	}, nil
}

// NewContainerWithDefaults creates a new DI container using default configuration.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(DefaultConfig())
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}

// Names returns the registered function names in sorted order.
func (c *Container) Names() []string {
	names := make([]string, 0, c.registry.Size())
	c.registry.Range(func(name string, _ statsProvider) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Stats returns a snapshot of the stats of every registered function.
func (c *Container) Stats() map[string]funcache.Stats {
	out := make(map[string]funcache.Stats, c.registry.Size())
	c.registry.Range(func(name string, p statsProvider) bool {
		out[name] = p.Stats()
		return true
	})
	return out
}

// NewMemoizer builds a Memoizer registered under name.
//
// Unless opts says otherwise, the memoizer gets its own store built from the
// container template (opts.Max overrides the capacity), the name as key
// namespace and the container logger.
//
// Since Go methods cannot have type parameters, this is provided as a package-level function.
func NewMemoizer[R any](c *Container, name string, opts funcache.Options[R]) (*funcache.Memoizer[R], error) {
	if _, exists := c.registry.Load(name); exists {
		return nil, duplicateName(name)
	}

	if opts.Logger == nil && c.config.Logger != nil {
		opts.Logger = c.config.Logger.With("function", name)
	}

	if opts.Namespace == "" && !opts.Primitive {
		opts.Namespace = name
	}

	if opts.Store == nil {
		storeCfg := c.config.Store
		if opts.Max != 0 {
			storeCfg.Capacity = opts.Max
		}
		if opts.Now != nil {
			storeCfg.Now = opts.Now
		}
		storeCfg.Logger = opts.Logger

		store, err := cache.NewStore(storeCfg)
		if err != nil {
			return nil, err
		}
		opts.Store = store
	}

	m, err := funcache.New(opts)
	if err != nil {
		return nil, err
	}

	if _, loaded := c.registry.LoadOrStore(name, m); loaded {
		return nil, duplicateName(name)
	}

	return m, nil
}

// Memoize wraps fn with a memoizer registered under name.
// Example: Memoize[*User](container, "users.find", findUser, funcache.Options[*User]{})
func Memoize[R any](c *Container, name string, fn funcache.Func[R], opts funcache.Options[R]) (funcache.Func[R], error) {
	m, err := NewMemoizer(c, name, opts)
	if err != nil {
		return nil, err
	}

	return func(args ...any) (R, error) {
		return m.Do(args, func() (R, error) {
			return fn(args...)
		})
	}, nil
}

// MemoizeContext wraps a context aware fn with a memoizer registered under name.
func MemoizeContext[R any](c *Container, name string, fn funcache.ContextFunc[R], opts funcache.Options[R]) (funcache.ContextFunc[R], error) {
	m, err := NewMemoizer(c, name, opts)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, args ...any) (R, error) {
		return m.DoContext(ctx, args, func(ctx context.Context) (R, error) {
			return fn(ctx, args...)
		})
	}, nil
}

// IsDuplicateName reports whether err was caused by registering a name twice.
func IsDuplicateName(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryConflict)
}

func duplicateName(name string) error {
	return goerrors.New(fmt.Sprintf("memoized function %q already registered", name), goerrors.CategoryConflict).
		WithMetadata(map[string]any{"name": name})
}
