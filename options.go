package ipyhealth

import (
	"log/slog"
	"time"

	"github.com/mereldawu/ipyhealth/config"
)

type options struct {
	fromDate    time.Time
	workers     int
	verbose     bool
	catalogPath string
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{workers: config.DefaultWorkers}
}

// Option configures a parse run.
type Option func(*options)

// WithFromDate drops every row whose declared start time is strictly before
// from. Filtering happens in the workers, before aggregation.
func WithFromDate(from time.Time) Option {
	return func(o *options) { o.fromDate = from }
}

// WithWorkers sets the parallel batch worker count, clamped to >= 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithVerbose enables progress reporting and the final extraction report.
// Both are observational and never affect the output tables.
func WithVerbose(v bool) Option {
	return func(o *options) { o.verbose = v }
}

// WithCatalogFile replaces the embedded format catalog with a rules file of
// the same shape.
func WithCatalogFile(path string) Option {
	return func(o *options) { o.catalogPath = path }
}

// WithLogger replaces the run's logger. Without it the global logger is
// used, annotated with the run ID and export directory.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
