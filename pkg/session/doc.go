/*
Package session implements the cursor session store.

A Store keeps, for every document path, the last cursor position and the time it was
recorded. It holds no cache: each operation loads the whole table from its backend,
and each write saves the whole table back, so the backend remains the only source of
truth between process runs.

# Concurrency

Read-modify-write cycles (Put, Prune) are serialized by the Store, so concurrent writers
in one process never lose updates. Coordination between processes is not attempted; the
last save wins.

# Retention

Entries whose last update is older than the retention horizon (180 days by default)
are pruned when the Store is created, and whenever the host calls Prune or runs
StartPruning.
*/
package session
