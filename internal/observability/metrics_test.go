package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest("/api/v1/tickets", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/v1/tickets", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/api/v1/agencies", "POST", 409, time.Millisecond)
	m.RecordError("/api/v1/agencies", "POST", "CONFLICT")

	snap := m.Snapshot()
	require.Len(t, snap.Requests, 2)
	assert.Equal(t, "/api/v1/agencies|POST|409", snap.Requests[0].Key)
	assert.Equal(t, "/api/v1/tickets|GET|200", snap.Requests[1].Key)
	assert.EqualValues(t, 2, snap.Requests[1].Count)
	assert.InDelta(t, 20.0, snap.Requests[1].AvgLatencyMs, 0.01)
	require.Len(t, snap.Errors, 1)
	assert.EqualValues(t, 1, snap.Errors[0].Count)
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
	})
}
