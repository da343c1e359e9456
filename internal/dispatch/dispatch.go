// Package dispatch fans the export's elements out across a pool of batch
// workers.
//
// Elements are split into contiguous, roughly equal batches; each batch is
// processed independently with no shared mutable state and the results are
// joined at a barrier before aggregation. Any element failure aborts the
// whole parse: partial tables are never returned, because a
// silently-incomplete table is worse than no table.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/mereldawu/ipyhealth/errors"
	"github.com/mereldawu/ipyhealth/internal/catalog"
	"github.com/mereldawu/ipyhealth/internal/coerce"
	"github.com/mereldawu/ipyhealth/internal/logging"
	"github.com/mereldawu/ipyhealth/internal/progress"
	"github.com/mereldawu/ipyhealth/internal/record"
	"github.com/mereldawu/ipyhealth/types"
)

var log = logging.Component("dispatch")

// Options configures a dispatch run.
type Options struct {
	// Workers is the batch worker count, clamped to >= 1.
	Workers int

	// Cutoff drops rows whose declared start time is strictly before it.
	// The zero time disables filtering. Filtering happens inside the
	// workers, before aggregation.
	Cutoff time.Time

	// Progress, when non-nil, is advanced once per input element.
	Progress *progress.Counter
}

// Partial is one batch's output: rows grouped by category, in input order,
// plus counts of elements that produced no row (for the extraction report).
type Partial struct {
	Batch    int
	Rows     map[string][]types.Row
	Skipped  int // vendor types outside the documented schema
	Filtered int // rows dropped by the cutoff date
}

// Run splits elements into contiguous batches and builds rows in parallel.
// The returned partials are complete: if any batch fails, Run returns a
// BatchError identifying the offending element and no partials at all.
func Run(ctx context.Context, elements []types.Element, cat *catalog.Catalog, opts Options) ([]Partial, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(elements) && len(elements) > 0 {
		workers = len(elements)
	}

	batches := split(elements, workers)
	partials := make([]Partial, len(batches))

	log.Debug("dispatching", "elements", len(elements), "batches", len(batches))

	g, ctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			p, err := runBatch(ctx, i, batch, cat, opts)
			if err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}

// split partitions elements into n contiguous, roughly equal-size batches.
// Order within a batch is preserved.
func split(elements []types.Element, n int) [][]types.Element {
	if len(elements) == 0 {
		return nil
	}
	size := (len(elements) + n - 1) / n

	var batches [][]types.Element
	for start := 0; start < len(elements); start += size {
		end := start + size
		if end > len(elements) {
			end = len(elements)
		}
		batches = append(batches, elements[start:end])
	}
	return batches
}

// runBatch builds rows for one batch. A panic inside row building is
// recovered into a BatchError so one poisoned element cannot take down the
// coordinating process.
func runBatch(ctx context.Context, idx int, batch []types.Element, cat *catalog.Catalog, opts Options) (p Partial, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic in batch worker", "batch", idx, "panic", r)
			err = &apperrors.BatchError{Batch: idx, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	p = Partial{Batch: idx, Rows: make(map[string][]types.Row)}

	for _, elem := range batch {
		select {
		case <-ctx.Done():
			return Partial{}, ctx.Err()
		default:
		}

		if opts.Progress != nil {
			opts.Progress.Add(1)
		}

		rules, lookupErr := cat.Lookup(elem.Tag)
		if lookupErr != nil {
			// The reader only keeps catalog tags; reaching this means the
			// catalog changed under us.
			return Partial{}, &apperrors.BatchError{
				Batch:    idx,
				Category: elem.Tag,
				Err:      lookupErr,
			}
		}

		row, buildErr := record.Build(elem, rules)
		if buildErr != nil {
			be := &apperrors.BatchError{
				Batch:    idx,
				Category: elem.Tag,
				TypeCode: elem.Type(),
				Err:      buildErr,
			}
			var fe *record.FieldError
			if apperrors.As(buildErr, &fe) {
				be.Column = fe.Column
				be.Err = fe.Err
			}
			return Partial{}, be
		}
		if row == nil {
			p.Skipped++ // vendor type outside the documented schema
			continue
		}

		if !opts.Cutoff.IsZero() {
			start := row.Time(coerce.Snake(rules.StartAttr))
			if start.Before(opts.Cutoff) {
				p.Filtered++
				continue
			}
		}

		p.Rows[elem.Tag] = append(p.Rows[elem.Tag], row)
	}

	return p, nil
}
