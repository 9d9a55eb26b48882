/*
Package ports defines the driven ports (interfaces) of the cursor session store.

These interfaces decouple the store from its storage backends and from the host
editor, so the same SessionStore works over a file, memory or Redis, and under any
editor that can describe its documents.

# Key Interfaces

  - TableStore: Loads and atomically replaces the whole session table.
  - Document: The host's view of an open document (identity and cursor position).
  - DocumentListener: The two lifecycle callbacks a host invokes on open and close.
*/
package ports
