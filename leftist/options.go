package leftist

import "github.com/davidvella/meld/monitoring"

// options defines the observers attached to a heap.
type options struct {
	name   string            // Label used in log entries and metrics
	logger monitoring.Logger // Receives rollback and merge events
	stats  monitoring.Stats  // Receives operation counts and sizes
}

// Option is a function that configures a heap.
type Option func(*options)

// WithName sets the label the heap reports itself under.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used for rollback and merge events.
func WithLogger(logger monitoring.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStats sets the statistics sink.
func WithStats(stats monitoring.Stats) Option {
	return func(o *options) {
		if stats != nil {
			o.stats = stats
		}
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		name:   "heap",
		logger: monitoring.Nop(),
		stats:  monitoring.NopStats(),
	}
}
