// Package ipyhealth parses a health-data export directory into four
// in-memory tables: samples, workouts, activity summaries, and workout
// routes.
//
// The export is a directory holding one export.xml document plus a
// workout-routes/ subdirectory of GPX track files. Parsing fans element
// batches out across parallel workers and joins their results; row order in
// the returned tables is therefore unspecified.
//
//	p, err := ipyhealth.Parse(ctx, "apple_health_export",
//		ipyhealth.WithWorkers(8),
//		ipyhealth.WithFromDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
//	if err != nil {
//		// errors.IsInput / IsConfig / AsBatch classify the failure
//	}
//	fmt.Println(p.Workouts.Len())
package ipyhealth
