/*
Package observability provides Prometheus metrics for the cursor session store.

Metrics are registered on a caller-supplied registry so that several stores (or tests)
never collide on the global default registry. A nil *Metrics is valid and records nothing,
which keeps instrumentation optional for embedders.
*/
package observability
