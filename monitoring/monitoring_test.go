package monitoring_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/davidvella/meld/metrics"
	"github.com/davidvella/meld/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := monitoring.NewLogger("heap", &buf, monitoring.INFO)

	ctx := context.Background()
	l.Log(ctx, monitoring.DEBUG, "merge", "dropped", nil)
	l.Log(ctx, monitoring.WARN, "rollback", "push rolled back", map[string]interface{}{"size": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry monitoring.LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "heap", entry.Component)
	assert.Equal(t, "rollback", entry.EventType)
	assert.Equal(t, "push rolled back", entry.Message)
	assert.Equal(t, 3.0, entry.Details["size"])
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level monitoring.LogLevel
		want  string
	}{
		{monitoring.DEBUG, "DEBUG"},
		{monitoring.INFO, "INFO"},
		{monitoring.WARN, "WARN"},
		{monitoring.ERROR, "ERROR"},
		{monitoring.LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestStats(t *testing.T) {
	r := metrics.NewRegistry()
	s := monitoring.NewStats(r, "jobs")
	ctx := context.Background()

	s.RecordOperation(ctx, "push")
	s.RecordOperation(ctx, "pop")
	s.RecordRollback(ctx, "merge", errors.New("boom"))
	s.SetSize(ctx, 7)
	s.RecordMergeSpine(ctx, 4)

	assert.Equal(t, 2.0, r.Sum(monitoring.OperationsTotal))
	assert.Equal(t, 1.0, r.Sum(monitoring.RollbacksTotal))

	size, ok := r.Last(monitoring.HeapSize)
	require.True(t, ok)
	assert.Equal(t, 7.0, size.Value)
	assert.Equal(t, "jobs", size.Labels["heap"])

	rb, ok := r.Last(monitoring.RollbacksTotal)
	require.True(t, ok)
	assert.Equal(t, "merge", rb.Labels["op"])
	assert.Equal(t, "boom", rb.Labels["error"])

	spine, ok := r.Last(monitoring.MergeSpineLength)
	require.True(t, ok)
	assert.Equal(t, 4.0, spine.Value)
}
