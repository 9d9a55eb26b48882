package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/cursorkeep/internal/logging"
	"github.com/aretw0/cursorkeep/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis key holding the serialized table.
const DefaultKey = "cursorkeep:table"

// Store implements ports.TableStore using Redis.
// The whole table is one JSON string value, so every Save is a single SET and
// readers see either the previous or the new table.
type Store struct {
	client *backend.Client
	key    string
	logger *slog.Logger
}

type Option func(*Store)

// WithKey sets the key the table is stored under.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithLogger configures a logger for recovery events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    DefaultKey,
		logger: logging.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Key returns the Redis key holding the table.
func (s *Store) Key() string {
	return s.key
}

// Load retrieves the table from Redis.
// A missing key or an undecodable value yields an empty table.
func (s *Store) Load(ctx context.Context) (domain.Table, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.NewTable(), nil
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var table domain.Table
	if err := json.Unmarshal(val, &table); err != nil || table == nil {
		s.logger.Warn("Session table corrupt, starting empty", "key", s.key, "err", err)
		return domain.NewTable(), nil
	}

	return table, nil
}

// Save persists the table to Redis.
func (s *Store) Save(ctx context.Context, table domain.Table) error {
	if table == nil {
		table = domain.NewTable()
	}
	data, err := json.Marshal(table)
	if err != nil {
		return &domain.PersistenceError{Op: "marshal", Path: s.key, Err: err}
	}

	// No expiration: entries age out through pruning, not key TTL
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return &domain.PersistenceError{Op: "set", Path: s.key, Err: err}
	}

	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
