package ipyhealth

import (
	"log/slog"

	"github.com/mereldawu/ipyhealth/internal/dispatch"
	"github.com/mereldawu/ipyhealth/internal/export"
)

// reportStats logs the extraction outcome: per-table row counts against the
// number of elements read, warning when elements went missing without being
// skipped or filtered. Observational only.
func reportStats(log *slog.Logger, p *Parser, doc *export.Document, partials []dispatch.Partial) {
	var skipped, filtered int
	for _, part := range partials {
		skipped += part.Skipped
		filtered += part.Filtered
	}

	extracted := p.Samples.Len() + p.Workouts.Len() + p.Activities.Len()

	if !doc.Info.ExportDate.IsZero() {
		log.Info("export metadata", "export_date", doc.Info.ExportDate)
	}
	log.Info("extraction complete",
		"elements", len(doc.Elements),
		"samples", p.Samples.Len(),
		"workouts", p.Workouts.Len(),
		"activities", p.Activities.Len(),
		"routes", p.Routes.Len(),
		"skipped", skipped,
		"filtered", filtered)

	if missing := len(doc.Elements) - extracted - skipped - filtered; missing != 0 {
		log.Warn("elements unaccounted for, please investigate", "count", missing)
	}
}
