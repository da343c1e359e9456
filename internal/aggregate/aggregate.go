// Package aggregate merges the batch workers' partial results into the four
// output tables and resolves workout route files.
//
// Merging happens after the dispatch barrier, so no partial is still being
// written when it is read here. Rows are concatenated in batch order;
// because batch completion across workers is nondeterministic, the final
// row order is unspecified and consumers must not rely on it.
package aggregate

import (
	"time"

	"github.com/mereldawu/ipyhealth/internal/dispatch"
	"github.com/mereldawu/ipyhealth/internal/logging"
	"github.com/mereldawu/ipyhealth/types"
)

var log = logging.Component("aggregate")

// Merge concatenates partial rows into the samples, workouts and activities
// tables. Record elements become samples; any category outside Workout and
// ActivitySummary is a sample category.
func Merge(partials []dispatch.Partial) (samples, workouts, activities *types.Table) {
	samples = types.NewTable(types.TableSamples, 0)
	workouts = types.NewTable(types.TableWorkouts, 0)
	activities = types.NewTable(types.TableActivities, 0)

	for _, p := range partials {
		for category, rows := range p.Rows {
			switch category {
			case "Workout":
				workouts.Append(rows...)
			case "ActivitySummary":
				activities.Append(rows...)
			default:
				samples.Append(rows...)
			}
		}
	}

	log.Debug("merged",
		"samples", samples.Len(),
		"workouts", workouts.Len(),
		"activities", activities.Len())
	return samples, workouts, activities
}

// Routes builds the routes table by matching each workout's start time
// against the timestamps embedded in the track-file names. A workout with
// no matching file gets a nil file reference; that is expected, not an
// error. When several files carry the same timestamp the first one wins.
func Routes(workouts *types.Table, trackDir string) (*types.Table, error) {
	index, err := indexTrackFiles(trackDir)
	if err != nil {
		return nil, err
	}

	routes := types.NewTable(types.TableRoutes, workouts.Len())
	matched := 0

	for _, w := range workouts.Rows {
		row := types.Row{
			"activity":   w["activity"],
			"start_date": w["start_date"],
			"file":       nil,
		}

		start := w.Time("start_date")
		if !start.IsZero() {
			if path, ok := index[start.Truncate(time.Second)]; ok {
				row["file"] = path
				matched++
			}
		}

		routes.Append(row)
	}

	log.Debug("routes resolved", "workouts", workouts.Len(), "matched", matched)
	return routes, nil
}
