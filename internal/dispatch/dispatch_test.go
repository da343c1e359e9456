package dispatch

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/mereldawu/ipyhealth/errors"
	"github.com/mereldawu/ipyhealth/internal/catalog"
	"github.com/mereldawu/ipyhealth/types"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func stepElement(i int) types.Element {
	start := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute)
	ts := start.Format("2006-01-02 15:04:05 -0700")
	return types.Element{
		Tag: "Record",
		Attrs: map[string]string{
			"type":         "HKQuantityTypeIdentifierStepCount",
			"creationDate": ts,
			"startDate":    ts,
			"endDate":      ts,
			"value":        fmt.Sprintf("%d", i),
		},
	}
}

func workoutElement(date string) types.Element {
	return types.Element{
		Tag: "Workout",
		Attrs: map[string]string{
			"workoutActivityType": "HKWorkoutActivityTypeRunning",
			"creationDate":        date,
			"startDate":           date,
			"endDate":             date,
		},
	}
}

// rowKeys reduces partial rows to a multiset of identifying keys.
func rowKeys(partials []Partial) map[string]int {
	keys := make(map[string]int)
	for _, p := range partials {
		for category, rows := range p.Rows {
			for _, r := range rows {
				keys[fmt.Sprintf("%s/%v/%v", category, r["start_date"], r["value"])]++
			}
		}
	}
	return keys
}

func TestRun_SplitIsContentPreserving(t *testing.T) {
	cat := mustCatalog(t)

	elements := make([]types.Element, 103)
	for i := range elements {
		elements[i] = stepElement(i)
	}

	single, err := Run(context.Background(), elements, cat, Options{Workers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := rowKeys(single)

	for _, workers := range []int{2, 3, 7, 16, 103, 500} {
		got, err := Run(context.Background(), elements, cat, Options{Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}

		keys := rowKeys(got)
		if len(keys) != len(want) {
			t.Errorf("workers=%d: expected %d distinct rows, got %d", workers, len(want), len(keys))
			continue
		}
		for k, n := range want {
			if keys[k] != n {
				t.Errorf("workers=%d: key %s count %d, want %d", workers, k, keys[k], n)
			}
		}
	}
}

func TestRun_WorkerClamp(t *testing.T) {
	cat := mustCatalog(t)
	elements := []types.Element{stepElement(1)}

	partials, err := Run(context.Background(), elements, cat, Options{Workers: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(partials) != 1 {
		t.Errorf("expected 1 batch, got %d", len(partials))
	}
}

func TestRun_CutoffFilter(t *testing.T) {
	cat := mustCatalog(t)

	elements := []types.Element{
		workoutElement("2019-01-01 08:00:00 +0000"),
		workoutElement("2020-06-01 08:00:00 +0000"),
		workoutElement("2021-01-01 08:00:00 +0000"),
	}
	cutoff := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	partials, err := Run(context.Background(), elements, cat, Options{Workers: 2, Cutoff: cutoff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kept []time.Time
	var filtered int
	for _, p := range partials {
		filtered += p.Filtered
		for _, r := range p.Rows["Workout"] {
			kept = append(kept, r.Time("start_date"))
		}
	}

	if len(kept) != 2 {
		t.Fatalf("expected exactly 2 workouts after cutoff, got %d", len(kept))
	}
	for _, ts := range kept {
		if ts.Before(cutoff) {
			t.Errorf("row dated %v should have been filtered", ts)
		}
	}
	if filtered != 1 {
		t.Errorf("expected 1 filtered element, got %d", filtered)
	}
}

func TestRun_MalformedFieldAbortsParse(t *testing.T) {
	cat := mustCatalog(t)

	elements := make([]types.Element, 0, 20)
	for i := 0; i < 19; i++ {
		elements = append(elements, stepElement(i))
	}
	bad := stepElement(99)
	bad.Attrs["value"] = "abc"
	elements = append(elements, bad)

	partials, err := Run(context.Background(), elements, cat, Options{Workers: 4})
	if err == nil {
		t.Fatal("expected BatchError for malformed numeric")
	}
	if partials != nil {
		t.Error("no partial results may be returned on error")
	}

	be := apperrors.AsBatch(err)
	if be == nil {
		t.Fatalf("expected BatchError, got %T: %v", err, err)
	}
	if be.Category != "Record" {
		t.Errorf("expected category Record, got %q", be.Category)
	}
	if be.Column != "value" {
		t.Errorf("expected column \"value\", got %q", be.Column)
	}
	if be.TypeCode != "HKQuantityTypeIdentifierStepCount" {
		t.Errorf("expected element type in error, got %q", be.TypeCode)
	}
	if !apperrors.IsParse(err) {
		t.Errorf("expected parse error class, got %v", err)
	}
}

func TestRun_SkipsUndocumentedTypes(t *testing.T) {
	cat := mustCatalog(t)

	unknown := stepElement(1)
	unknown.Attrs["type"] = "HKDataTypeSleepDurationGoal"
	elements := []types.Element{stepElement(0), unknown}

	partials, err := Run(context.Background(), elements, cat, Options{Workers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(partials[0].Rows["Record"]); got != 1 {
		t.Errorf("expected 1 row, got %d", got)
	}
	if partials[0].Skipped != 1 {
		t.Errorf("expected 1 skipped element, got %d", partials[0].Skipped)
	}
}

func TestSplit(t *testing.T) {
	elements := make([]types.Element, 10)

	tests := []struct {
		n         int
		wantSizes []int
	}{
		{1, []int{10}},
		{2, []int{5, 5}},
		{3, []int{4, 4, 2}},
		{10, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		batches := split(elements, tt.n)
		if len(batches) != len(tt.wantSizes) {
			t.Errorf("split n=%d: expected %d batches, got %d", tt.n, len(tt.wantSizes), len(batches))
			continue
		}
		for i, b := range batches {
			if len(b) != tt.wantSizes[i] {
				t.Errorf("split n=%d batch %d: expected size %d, got %d", tt.n, i, tt.wantSizes[i], len(b))
			}
		}
	}

	if batches := split(nil, 4); batches != nil {
		t.Errorf("expected nil batches for empty input, got %v", batches)
	}
}
