package cursorkeep

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/cursorkeep/internal/config"
	"github.com/aretw0/cursorkeep/internal/logging"
	"github.com/aretw0/cursorkeep/pkg/adapters/file"
	"github.com/aretw0/cursorkeep/pkg/observability"
	"github.com/aretw0/cursorkeep/pkg/ports"
	"github.com/aretw0/cursorkeep/pkg/session"
	"github.com/aretw0/cursorkeep/pkg/tracker"
)

// Keeper is the high-level entry point for the library.
// It owns a session store and hands out the listener a host registers for
// document lifecycle events.
type Keeper struct {
	*session.Store

	backend       ports.TableStore
	path          string
	retentionDays int
	registerer    prometheus.Registerer
	logger        *slog.Logger
	listener      *tracker.Tracker
}

// Option defines a functional option for configuring the Keeper.
type Option func(*Keeper)

// WithPath sets the session file location (default: the user's config directory).
func WithPath(path string) Option {
	return func(k *Keeper) {
		k.path = path
	}
}

// WithRetentionDays sets how long untouched entries are kept.
func WithRetentionDays(days int) Option {
	return func(k *Keeper) {
		k.retentionDays = days
	}
}

// WithBackend injects a custom TableStore, bypassing the default file backend.
func WithBackend(backend ports.TableStore) Option {
	return func(k *Keeper) {
		k.backend = backend
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Keeper) {
		k.logger = logger
	}
}

// WithMetricsRegisterer registers Prometheus collectors on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(k *Keeper) {
		k.registerer = reg
	}
}

// Open creates the session store, pruning stale entries.
// It fails only when the session file's directory cannot be created; hosts should
// then disable cursor memory instead of failing.
func Open(opts ...Option) (*Keeper, error) {
	k := &Keeper{
		path:          config.DefaultSessionPath(),
		retentionDays: session.DefaultRetentionDays,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}

	if k.backend == nil {
		backend, err := file.New(k.path, file.WithLogger(k.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to open session file: %w", err)
		}
		k.backend = backend
	}

	storeOpts := []session.Option{
		session.WithRetentionDays(k.retentionDays),
		session.WithLogger(k.logger),
	}
	if k.registerer != nil {
		storeOpts = append(storeOpts, session.WithMetrics(observability.NewMetrics(k.registerer)))
	}

	store, err := session.New(k.backend, storeOpts...)
	if err != nil {
		return nil, err
	}
	k.Store = store
	k.listener = tracker.New(store, tracker.WithLogger(k.logger))

	return k, nil
}

// Listener returns the document lifecycle listener to register with the host.
func (k *Keeper) Listener() ports.DocumentListener {
	return k.listener
}

// Backend returns the underlying table store.
func (k *Keeper) Backend() ports.TableStore {
	return k.backend
}

// Close releases the backend if it holds resources (e.g. a Redis connection).
func (k *Keeper) Close() error {
	if c, ok := k.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
