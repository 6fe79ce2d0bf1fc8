package monitoring

import (
	"context"

	"github.com/davidvella/meld/metrics"
)

const (
	OperationsTotal  = "heap_operations_total"
	RollbacksTotal   = "heap_rollbacks_total"
	HeapSize         = "heap_size"
	MergeSpineLength = "heap_merge_spine_length"
)

type Stats interface {
	RecordOperation(ctx context.Context, op string)
	RecordRollback(ctx context.Context, op string, err error)
	SetSize(ctx context.Context, n int)
	RecordMergeSpine(ctx context.Context, steps int)
}

// stats reports heap statistics into a metrics registry
type stats struct {
	registry *metrics.Registry
	name     string
}

func NewStats(registry *metrics.Registry, name string) Stats {
	registry.Register(metrics.Metric{
		Name:        OperationsTotal,
		Type:        metrics.Counter,
		Description: "Total number of successful heap operations by type",
	})

	registry.Register(metrics.Metric{
		Name:        RollbacksTotal,
		Type:        metrics.Counter,
		Description: "Total number of operations rolled back after a comparator failure",
	})

	registry.Register(metrics.Metric{
		Name:        HeapSize,
		Type:        metrics.Gauge,
		Description: "Number of elements in the heap",
	})

	registry.Register(metrics.Metric{
		Name:        MergeSpineLength,
		Type:        metrics.Histogram,
		Description: "Right spine nodes relinked per merge",
	})

	return &stats{
		registry: registry,
		name:     name,
	}
}

func (s *stats) RecordOperation(_ context.Context, op string) {
	s.registry.RecordCounter(OperationsTotal, 1, map[string]string{
		"heap": s.name,
		"op":   op,
	})
}

func (s *stats) RecordRollback(_ context.Context, op string, err error) {
	s.registry.RecordCounter(RollbacksTotal, 1, map[string]string{
		"heap":  s.name,
		"op":    op,
		"error": err.Error(),
	})
}

func (s *stats) SetSize(_ context.Context, n int) {
	s.registry.RecordGauge(HeapSize, float64(n), map[string]string{
		"heap": s.name,
	})
}

func (s *stats) RecordMergeSpine(_ context.Context, steps int) {
	s.registry.RecordHistogram(MergeSpineLength, float64(steps), map[string]string{
		"heap": s.name,
	})
}

type nopStats struct{}

func (nopStats) RecordOperation(context.Context, string) {}
func (nopStats) RecordRollback(context.Context, string, error) {}
func (nopStats) SetSize(context.Context, int) {}
func (nopStats) RecordMergeSpine(context.Context, int) {}

// NopStats returns a Stats that records nothing.
func NopStats() Stats {
	return nopStats{}
}
