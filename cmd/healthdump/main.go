// healthdump parses a health-data export directory and prints table
// summaries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/mereldawu/ipyhealth"
	"github.com/mereldawu/ipyhealth/config"
	"github.com/mereldawu/ipyhealth/internal/gpx"
	"github.com/mereldawu/ipyhealth/internal/logging"
	"github.com/mereldawu/ipyhealth/types"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	dir := flag.String("dir", ".", "export directory (holds export.xml and workout-routes/)")
	from := flag.String("from", "", "drop rows starting before this date (2006-01-02)")
	workers := flag.Int("workers", config.DefaultWorkers, "parallel batch workers")
	catalogPath := flag.String("catalog", "", "rules file overriding the embedded catalog")
	jsonLogs := flag.Bool("json", false, "JSON log output")
	quiet := flag.Bool("quiet", false, "suppress progress and stats logging")
	preview := flag.Int("preview", 0, "print the first N rows of each table")
	routes := flag.Bool("routes", false, "read matched track files and print point counts")
	flag.Parse()

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelWarn
	}
	logging.Init(level, *jsonLogs)

	log := logging.Component("healthdump")
	log.Info("healthdump starting", "version", Version, "dir", *dir)

	opts := []ipyhealth.Option{
		ipyhealth.WithWorkers(*workers),
		ipyhealth.WithVerbose(!*quiet),
	}
	if *catalogPath != "" {
		opts = append(opts, ipyhealth.WithCatalogFile(*catalogPath))
	}
	if *from != "" {
		cutoff, err := parseFrom(*from)
		if err != nil {
			log.Error("invalid -from date", "value", *from, "error", err)
			os.Exit(2)
		}
		opts = append(opts, ipyhealth.WithFromDate(cutoff))
	}

	p, err := ipyhealth.Parse(context.Background(), *dir, opts...)
	if err != nil {
		log.Error("parse failed", "error", err)
		os.Exit(1)
	}

	printSummary(p)

	if *preview > 0 {
		for _, kind := range allKinds {
			printPreview(p.Table(kind), *preview)
		}
	}
	if *routes {
		printRouteStats(p.Routes)
	}
}

var allKinds = []types.TableKind{
	types.TableSamples,
	types.TableWorkouts,
	types.TableActivities,
	types.TableRoutes,
}

func parseFrom(s string) (time.Time, error) {
	if t, err := time.Parse(config.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(config.TimestampLayout, s)
}

func printSummary(p *ipyhealth.Parser) {
	t := tablewriter.NewWriter(os.Stdout)
	t.SetHeader([]string{"Table", "Rows", "Columns"})
	for _, kind := range allKinds {
		tbl := p.Table(kind)
		t.Append([]string{
			kind.String(),
			fmt.Sprintf("%d", tbl.Len()),
			fmt.Sprintf("%d", len(tbl.Columns())),
		})
	}
	t.Render()
}

func printPreview(tbl *types.Table, n int) {
	if tbl.Len() == 0 {
		return
	}
	cols := tbl.Columns()

	fmt.Printf("\n%s:\n", tbl.Kind)
	t := tablewriter.NewWriter(os.Stdout)
	t.SetHeader(cols)

	if n > tbl.Len() {
		n = tbl.Len()
	}
	for _, row := range tbl.Rows[:n] {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = formatCell(row[c])
		}
		t.Append(cells)
	}
	t.Render()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(config.TimestampLayout)
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// printRouteStats reads each matched track file and prints its point count.
// This is the only place track file contents are opened.
func printRouteStats(routes *types.Table) {
	log := logging.Component("healthdump")

	type stat struct {
		file   string
		points int
	}
	var stats []stat

	for _, row := range routes.Rows {
		path, ok := row["file"].(string)
		if !ok || path == "" {
			continue
		}
		track, err := gpx.ParseFile(path)
		if err != nil {
			log.Warn("track file not readable", "file", path, "error", err)
			continue
		}
		stats = append(stats, stat{file: path, points: len(track.Points)})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].file < stats[j].file })

	fmt.Println()
	t := tablewriter.NewWriter(os.Stdout)
	t.SetHeader([]string{"Track File", "Points"})
	for _, s := range stats {
		t.Append([]string{s.file, fmt.Sprintf("%d", s.points)})
	}
	t.Render()
}
