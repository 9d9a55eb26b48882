// Package tracker connects a host editor's document lifecycle to a session store.
//
// It is the only package that deals with host documents: the store itself only sees
// paths and coordinates.
package tracker

import (
	"context"
	"log/slog"

	"github.com/aretw0/cursorkeep/internal/logging"
	"github.com/aretw0/cursorkeep/pkg/domain"
	"github.com/aretw0/cursorkeep/pkg/ports"
)

// PositionStore is the part of session.Store the tracker needs.
type PositionStore interface {
	Put(ctx context.Context, key string, x, y int) error
	Get(ctx context.Context, key string) (domain.Entry, bool, error)
}

// Tracker saves the cursor position when a document closes and restores it when the
// document is opened again.
type Tracker struct {
	store  PositionStore
	logger *slog.Logger
}

var _ ports.DocumentListener = (*Tracker)(nil)

// Option configures the Tracker.
type Option func(*Tracker)

// WithLogger configures a logger for the Tracker.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// New creates a Tracker backed by store.
func New(store PositionStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnDocumentClosed records the document's cursor position.
// Documents without a path are ignored. Failures are logged, never propagated:
// losing a cursor position must not disturb the editor.
func (t *Tracker) OnDocumentClosed(ctx context.Context, doc ports.Document) {
	path, ok := doc.Identity()
	if !ok {
		return
	}

	x, y := doc.Position()
	t.logger.Debug("Saving cursor position", "path", path, "x", x, "y", y)
	if err := t.store.Put(ctx, path, x, y); err != nil {
		t.logger.Warn("Failed to save cursor position", "path", path, "err", err)
	}
}

// OnDocumentOpened moves the cursor to the last recorded position, if any.
func (t *Tracker) OnDocumentOpened(ctx context.Context, doc ports.Document) {
	path, ok := doc.Identity()
	if !ok {
		return
	}

	entry, found, err := t.store.Get(ctx, path)
	if err != nil {
		t.logger.Warn("Failed to load cursor position", "path", path, "err", err)
		return
	}
	if !found {
		return
	}

	t.logger.Debug("Restoring cursor position", "path", path, "x", entry.X, "y", entry.Y)
	doc.SetPosition(entry.X, entry.Y)
}
