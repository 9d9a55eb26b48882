package observability_test

import (
	"testing"
	"time"

	"github.com/aretw0/cursorkeep/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveOperation("put", observability.ResultOK)
	m.ObserveOperation("put", observability.ResultOK)
	m.ObserveOperation("get", observability.ResultMiss)
	m.AddPruned(3)
	m.AddPruned(0)
	m.SetEntries(7)
	m.ObserveSave(5 * time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "cursorkeep_operations_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count, "two label combinations")

	total, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("put", observability.ResultError)
		m.AddPruned(1)
		m.SetEntries(1)
		m.ObserveSave(time.Second)
	})
}
