/*
Package cursorkeep remembers where the cursor was in every document an editor closes,
and puts it back when the document is opened again.

It is a small persistent session store: one JSON file maps each document path to its
last cursor coordinates and the time they were recorded. Every write replaces the file
atomically (temporary file plus rename), so the file is always either the previous or
the new complete table. Entries not updated within the retention horizon (180 days by
default) are pruned when the store opens.

# Architecture

The store is decoupled from both storage and editor through ports:

  - pkg/session: the SessionStore (Put, Get, Prune).
  - pkg/adapters/file: the atomic JSON file backend (default).
  - pkg/adapters/memory, pkg/adapters/redis: alternative backends.
  - pkg/tracker: the adapter a host editor calls on document open and close.

# Usage

	keeper, err := cursorkeep.Open(cursorkeep.WithPath(path))
	if err != nil {
		// The directory could not be created: run without cursor memory.
		return
	}
	defer keeper.Close()

	listener := keeper.Listener()
	listener.OnDocumentClosed(ctx, doc) // stores doc's cursor
	listener.OnDocumentOpened(ctx, doc) // restores it, if known
*/
package cursorkeep
