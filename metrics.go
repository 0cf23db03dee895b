package facet

import "time"

// MetricsCollector defines the interface for observing table events.
// Implementations must be cheap; hooks run synchronously inside the
// mutation pipeline.
type MetricsCollector interface {
	// OnMutation is called when a mutation pipeline completes.
	OnMutation(op string, keys int, duration time.Duration)

	// OnNotify is called after subscribers have been notified.
	OnNotify(listeners int, duration time.Duration)

	// OnMaterialize is called when the ordered view is (re)built from
	// scratch.
	OnMaterialize(rows int, duration time.Duration)

	// OnPartitionCreated is called when a partition is lazily created.
	OnPartitionCreated(path string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (c *NoopMetricsCollector) OnMutation(op string, keys int, duration time.Duration) {}
func (c *NoopMetricsCollector) OnNotify(listeners int, duration time.Duration)         {}
func (c *NoopMetricsCollector) OnMaterialize(rows int, duration time.Duration)         {}
func (c *NoopMetricsCollector) OnPartitionCreated(path string)                         {}
