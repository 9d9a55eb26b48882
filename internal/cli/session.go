package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/aretw0/cursorkeep/internal/presentation/tui"
	"github.com/aretw0/cursorkeep/pkg/domain"
)

// EntryStore is the slice of the session store the session commands use.
type EntryStore interface {
	Entries(ctx context.Context) (domain.Table, error)
	Get(ctx context.Context, key string) (domain.Entry, bool, error)
	Put(ctx context.Context, key string, x, y int) error
	Prune(ctx context.Context, days int) (int, error)
	RetentionDays() int
}

// ListOptions controls how the table is printed.
type ListOptions struct {
	Pretty bool
	Color  bool
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ListEntries prints every entry of the table, sorted by path.
func ListEntries(ctx context.Context, w io.Writer, store EntryStore, opts ListOptions) error {
	table, err := store.Entries(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session table: %w", err)
	}
	if len(table) == 0 {
		fmt.Fprintln(w, "No remembered positions.")
		return nil
	}

	rows := tui.Rows(table, time.Now())
	if opts.Pretty {
		out, err := tui.NewRenderer()(tui.MarkdownTable(rows))
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil
	}

	fmt.Fprint(w, tui.FormatEntries(rows, store.RetentionDays(), opts.Color))
	return nil
}

// GetEntry prints the position remembered for path.
func GetEntry(ctx context.Context, w io.Writer, store EntryStore, path string) error {
	entry, ok, err := store.Get(ctx, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no position remembered for %s", path)
	}
	fmt.Fprintf(w, "%d %d\n", entry.X, entry.Y)
	return nil
}

// PutEntry records a position for path.
func PutEntry(ctx context.Context, w io.Writer, store EntryStore, path string, x, y int) error {
	if err := store.Put(ctx, path, x, y); err != nil {
		return err
	}
	printSystemMessage(w, "Remembered %s at %d:%d.", path, x, y)
	return nil
}

// PruneEntries removes entries older than days and reports how many went.
// A negative days uses the store's retention horizon.
func PruneEntries(ctx context.Context, w io.Writer, store EntryStore, days int) error {
	if days < 0 {
		days = store.RetentionDays()
	}
	removed, err := store.Prune(ctx, days)
	if err != nil {
		return err
	}
	printSystemMessage(w, "Pruned %d entries older than %d days.", removed, days)
	return nil
}
