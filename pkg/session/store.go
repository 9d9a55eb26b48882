package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/cursorkeep/internal/logging"
	"github.com/aretw0/cursorkeep/pkg/domain"
	"github.com/aretw0/cursorkeep/pkg/observability"
	"github.com/aretw0/cursorkeep/pkg/ports"
)

// DefaultRetentionDays is how long an entry survives without being updated.
const DefaultRetentionDays = 180

// ErrNegativeRetention is returned for a retention horizon below zero.
var ErrNegativeRetention = errors.New("retention days cannot be negative")

// Store records cursor positions per document on top of a ports.TableStore.
type Store struct {
	backend ports.TableStore

	mu sync.Mutex // serializes read-modify-write cycles

	retentionDays int
	now           func() time.Time
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// Option configures the Store.
type Option func(*Store)

// WithRetentionDays sets the pruning horizon used at construction and by StartPruning.
func WithRetentionDays(days int) Option {
	return func(s *Store) {
		s.retentionDays = days
	}
}

// WithLogger configures a logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a Store over backend and prunes stale entries once.
// A failed prune is logged and does not prevent the Store from being used.
func New(backend ports.TableStore, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("session store requires a backend")
	}

	s := &Store{
		backend:       backend,
		retentionDays: DefaultRetentionDays,
		now:           time.Now,
		logger:        logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retentionDays < 0 {
		return nil, ErrNegativeRetention
	}

	if _, err := s.Prune(context.Background(), s.retentionDays); err != nil {
		s.logger.Warn("Initial prune failed", "err", err)
	}

	return s, nil
}

// RetentionDays returns the configured pruning horizon.
func (s *Store) RetentionDays() int {
	return s.retentionDays
}

// Put records the cursor position of key, stamped with the current time.
func (s *Store) Put(ctx context.Context, key string, x, y int) error {
	if key == "" {
		return domain.ErrEmptyKey
	}

	err := s.withLock(func() error {
		table, err := s.load(ctx)
		if err != nil {
			return err
		}

		table[key] = domain.Entry{X: x, Y: y, LastUpdate: domain.NewTimestamp(s.now())}
		return s.save(ctx, table)
	})

	s.metrics.ObserveOperation("put", result(err))
	if err != nil {
		return err
	}
	s.logger.Debug("Cursor position saved", "key", key, "x", x, "y", y)
	return nil
}

// Get returns the entry stored for key. ok is false when there is none.
func (s *Store) Get(ctx context.Context, key string) (entry domain.Entry, ok bool, err error) {
	if key == "" {
		return domain.Entry{}, false, nil
	}

	table, err := s.load(ctx)
	if err != nil {
		s.metrics.ObserveOperation("get", observability.ResultError)
		return domain.Entry{}, false, err
	}

	entry, ok = table[key]
	if !ok {
		s.metrics.ObserveOperation("get", observability.ResultMiss)
		return domain.Entry{}, false, nil
	}
	s.metrics.ObserveOperation("get", observability.ResultOK)
	return entry, true, nil
}

// Entries returns a snapshot of the whole table.
func (s *Store) Entries(ctx context.Context) (domain.Table, error) {
	return s.load(ctx)
}

// Prune removes entries whose age in whole days exceeds retentionDays and returns
// how many were removed. The table is saved only if something was removed.
func (s *Store) Prune(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays < 0 {
		return 0, ErrNegativeRetention
	}

	removed := 0
	err := s.withLock(func() error {
		old, err := s.load(ctx)
		if err != nil {
			return err
		}

		now := s.now()
		table := old.Clone()
		for key, entry := range old {
			if entry.Age(now) > retentionDays {
				s.logger.Info("Removing stale cursor position", "key", key, "last_update", entry.LastUpdate.String())
				delete(table, key)
			}
		}

		if table.Equal(old) {
			return nil
		}
		if err := s.save(ctx, table); err != nil {
			return err
		}
		removed = len(old) - len(table)
		return nil
	})

	s.metrics.ObserveOperation("prune", result(err))
	s.metrics.AddPruned(removed)
	return removed, err
}

// StartPruning runs Prune with the configured horizon every interval until ctx is done.
// The returned channel is closed once the loop has exited.
func (s *Store) StartPruning(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := s.Prune(ctx, s.retentionDays); err != nil {
					s.logger.Warn("Periodic prune failed", "err", err)
				} else if n > 0 {
					s.logger.Info("Pruned stale cursor positions", "removed", n)
				}
			}
		}
	}()
	return done
}

// withLock executes fn while holding the write lock.
func (s *Store) withLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) load(ctx context.Context) (domain.Table, error) {
	table, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session table: %w", err)
	}
	if table == nil {
		table = domain.NewTable()
	}
	s.metrics.SetEntries(len(table))
	return table, nil
}

func (s *Store) save(ctx context.Context, table domain.Table) error {
	start := time.Now()
	err := s.backend.Save(ctx, table)
	s.metrics.ObserveSave(time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to save session table: %w", err)
	}
	s.metrics.SetEntries(len(table))
	return nil
}

func result(err error) string {
	if err != nil {
		return observability.ResultError
	}
	return observability.ResultOK
}
