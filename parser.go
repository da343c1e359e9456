package ipyhealth

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mereldawu/ipyhealth/config"
	apperrors "github.com/mereldawu/ipyhealth/errors"
	"github.com/mereldawu/ipyhealth/internal/aggregate"
	"github.com/mereldawu/ipyhealth/internal/catalog"
	"github.com/mereldawu/ipyhealth/internal/dispatch"
	"github.com/mereldawu/ipyhealth/internal/export"
	"github.com/mereldawu/ipyhealth/internal/logging"
	"github.com/mereldawu/ipyhealth/internal/progress"
	"github.com/mereldawu/ipyhealth/types"
)

// Parser holds the result of one parse run: the four output tables and the
// export's own metadata. The tables are immutable once returned; their row
// order is unspecified.
type Parser struct {
	Samples    *types.Table
	Workouts   *types.Table
	Activities *types.Table
	Routes     *types.Table
	Info       types.ExportInfo

	// Dir is the export directory the run parsed.
	Dir string
}

// Table returns the table of the given kind.
func (p *Parser) Table(kind types.TableKind) *types.Table {
	switch kind {
	case types.TableSamples:
		return p.Samples
	case types.TableWorkouts:
		return p.Workouts
	case types.TableActivities:
		return p.Activities
	case types.TableRoutes:
		return p.Routes
	default:
		return nil
	}
}

// Parse reads the export directory and builds the four tables.
//
// The directory must contain the export document and the track-file
// subdirectory; a missing one is an input error. Config errors (broken
// catalog) and batch errors (an element whose field text does not match its
// declared kind) abort the whole parse: no partial tables are ever
// returned.
func Parse(ctx context.Context, dir string, opts ...Option) (*Parser, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx = logging.ContextWithRunID(ctx, uuid.NewString())
	ctx = logging.ContextWithExportDir(ctx, dir)
	log := o.logger
	if log == nil {
		log = logging.WithContext(ctx)
	}
	log = log.With("component", "parser")

	exportPath := filepath.Join(dir, config.ExportFileName)
	routesDir := filepath.Join(dir, config.RoutesDirName)
	if err := validateLayout(exportPath, routesDir); err != nil {
		return nil, err
	}

	cat, err := loadCatalog(o)
	if err != nil {
		return nil, err
	}

	log.Info("reading export document", "path", exportPath)
	doc, err := export.ReadFile(exportPath, cat.Contains)
	if err != nil {
		return nil, err
	}

	counter := progress.New(len(doc.Elements), config.ProgressEvery, o.verbose)

	partials, err := dispatch.Run(ctx, doc.Elements, cat, dispatch.Options{
		Workers:  o.workers,
		Cutoff:   o.fromDate,
		Progress: counter,
	})
	if err != nil {
		return nil, err
	}

	samples, workouts, activities := aggregate.Merge(partials)

	routes, err := aggregate.Routes(workouts, routesDir)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		Samples:    samples,
		Workouts:   workouts,
		Activities: activities,
		Routes:     routes,
		Info:       doc.Info,
		Dir:        dir,
	}

	if o.verbose {
		reportStats(log, p, doc, partials)
	}
	return p, nil
}

// validateLayout checks the export directory precondition: the document and
// the track-file subdirectory must both exist.
func validateLayout(exportPath, routesDir string) error {
	if _, err := os.Stat(exportPath); err != nil {
		return apperrors.Wrapf(apperrors.ErrExportMissing, "%s", exportPath)
	}
	fi, err := os.Stat(routesDir)
	if err != nil || !fi.IsDir() {
		return apperrors.Wrapf(apperrors.ErrRoutesDirMissing, "%s", routesDir)
	}
	return nil
}

func loadCatalog(o options) (*catalog.Catalog, error) {
	if o.catalogPath != "" {
		return catalog.LoadFile(o.catalogPath)
	}
	return catalog.Load()
}
