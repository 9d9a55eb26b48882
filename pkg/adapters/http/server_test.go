package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cursorkeep/internal/logging"
	"github.com/aretw0/cursorkeep/pkg/adapters/memory"
	"github.com/aretw0/cursorkeep/pkg/domain"
	"github.com/aretw0/cursorkeep/pkg/observability"
	"github.com/aretw0/cursorkeep/pkg/session"
)

func newTestHandler(t *testing.T, seed domain.Table) (http.Handler, *session.Store) {
	t.Helper()
	reg := prometheus.NewRegistry()
	store, err := session.New(memory.NewStore(seed), session.WithMetrics(observability.NewMetrics(reg)))
	require.NoError(t, err)
	return NewHandler(store, reg, logging.NewNop()), store
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestListEntries(t *testing.T) {
	h, store := newTestHandler(t, nil)
	require.NoError(t, store.Put(context.Background(), "/a/b.go", 3, 4))

	w := do(h, "GET", "/entries")
	require.Equal(t, http.StatusOK, w.Code)

	var table domain.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, 3, table["/a/b.go"].X)
}

func TestLookupEntry(t *testing.T) {
	h, store := newTestHandler(t, nil)
	require.NoError(t, store.Put(context.Background(), "/a b/c.go", 7, 1))

	w := do(h, "GET", "/entries/lookup?path="+url.QueryEscape("/a b/c.go"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"x":7`)

	w = do(h, "GET", "/entries/lookup?path=/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, "GET", "/entries/lookup")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrune(t *testing.T) {
	old := domain.NewTimestamp(time.Now().Add(-10 * 24 * time.Hour))
	h, _ := newTestHandler(t, domain.Table{"/old": {X: 1, LastUpdate: old}})

	w := do(h, "POST", "/prune?days=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed": 1, "retention_days": 5}`, w.Body.String())

	w = do(h, "POST", "/prune?days=-2")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, "GET", "/prune")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthInfoMetrics(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	assert.Equal(t, http.StatusOK, do(h, "GET", "/health").Code)

	w := do(h, "GET", "/info")
	assert.Contains(t, w.Body.String(), `"retention_days":180`)

	w = do(h, "GET", "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cursorkeep_operations_total")
}

type brokenStore struct{}

func (brokenStore) Entries(ctx context.Context) (domain.Table, error) {
	return nil, errors.New("boom")
}
func (brokenStore) Get(ctx context.Context, key string) (domain.Entry, bool, error) {
	return domain.Entry{}, false, errors.New("boom")
}
func (brokenStore) Prune(ctx context.Context, days int) (int, error) { return 0, errors.New("boom") }
func (brokenStore) RetentionDays() int                               { return 1 }

func TestStoreErrors(t *testing.T) {
	h := NewHandler(brokenStore{}, nil, logging.NewNop())

	assert.Equal(t, http.StatusInternalServerError, do(h, "GET", "/entries").Code)
	assert.Equal(t, http.StatusInternalServerError, do(h, "GET", "/entries/lookup?path=/x").Code)
	assert.Equal(t, http.StatusInternalServerError, do(h, "POST", "/prune").Code)
	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/metrics").Code)
}
