// Package config provides configuration defaults and utilities
// for the export parser.
//
// This package defines all configurable constants with documented defaults.
// Callers can override the tunable ones through parser options or CLI flags.
package config

// =============================================================================
// Input Layout Defaults
// =============================================================================

const (
	// ExportFileName is the export document inside the export directory.
	// The parser fails with an input error when it is missing.
	ExportFileName = "export.xml"

	// RoutesDirName is the track file subdirectory inside the export
	// directory. Filenames embed the workout start timestamp.
	RoutesDirName = "workout-routes"

	// RouteFileExt is the track file extension. Other files in the routes
	// directory are ignored.
	RouteFileExt = ".gpx"
)

// =============================================================================
// Timestamp Layout Defaults
// =============================================================================

const (
	// TimestampLayout is the fixed export timestamp format used by Record,
	// Workout and route elements (e.g. "2020-05-01 10:00:00 +0200").
	TimestampLayout = "2006-01-02 15:04:05 -0700"

	// DateLayout is the date-only format used by ActivitySummary elements.
	DateLayout = "2006-01-02"

	// RouteFileTimeLayout is the timestamp format embedded in track file
	// names (e.g. "route_2020-05-01_10-00-00.gpx").
	RouteFileTimeLayout = "2006-01-02_15-04-05"
)

// =============================================================================
// Dispatch Defaults
// =============================================================================

const (
	// DefaultWorkers is the number of parallel batch workers.
	// Override via option: WithWorkers
	DefaultWorkers = 4

	// ProgressEvery is how many processed elements between progress reports.
	// Progress is observational only and never affects the output tables.
	ProgressEvery = 10000
)
