package ports

import (
	"context"

	"github.com/aretw0/cursorkeep/pkg/domain"
)

// TableStore persists the whole session table as a single unit.
type TableStore interface {
	// Load returns the persisted table.
	// A missing or undecodable table is recovered as an empty table, never an error.
	// Errors are reserved for I/O failures that say nothing about the table's content.
	Load(ctx context.Context) (domain.Table, error)

	// Save replaces the persisted table with table.
	// On failure the previous table must be left intact and the error
	// must match domain.ErrPersistence.
	Save(ctx context.Context, table domain.Table) error
}
