package errors

import (
	"strings"
	"testing"
)

func TestCategoryPredicates(t *testing.T) {
	tests := []struct {
		err                     error
		input, config, parseErr bool
	}{
		{ErrExportMissing, true, false, false},
		{ErrRoutesDirMissing, true, false, false},
		{ErrUnknownCategory, false, true, false},
		{ErrUnknownKind, false, true, false},
		{ErrBadTimestamp, false, false, true},
		{ErrBadNumber, false, false, true},
		{Wrap(ErrBadUnit, "context"), false, false, true},
	}

	for _, tt := range tests {
		if got := IsInput(tt.err); got != tt.input {
			t.Errorf("IsInput(%v) = %v, want %v", tt.err, got, tt.input)
		}
		if got := IsConfig(tt.err); got != tt.config {
			t.Errorf("IsConfig(%v) = %v, want %v", tt.err, got, tt.config)
		}
		if got := IsParse(tt.err); got != tt.parseErr {
			t.Errorf("IsParse(%v) = %v, want %v", tt.err, got, tt.parseErr)
		}
	}
}

func TestBatchError(t *testing.T) {
	be := &BatchError{
		Batch:    3,
		Category: "Record",
		TypeCode: "HKQuantityTypeIdentifierStepCount",
		Column:   "value",
		Err:      ErrBadNumber,
	}

	msg := be.Error()
	for _, part := range []string{"batch 3", "Record", "value"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q should contain %q", msg, part)
		}
	}

	if !Is(be, ErrBadNumber) {
		t.Error("BatchError should unwrap to its cause")
	}
	if AsBatch(Wrap(be, "outer")) == nil {
		t.Error("AsBatch should find a wrapped BatchError")
	}
	if AsBatch(ErrBadNumber) != nil {
		t.Error("AsBatch on a plain error should return nil")
	}
}

func TestValidationErrors(t *testing.T) {
	v := NewValidationErrors()
	if v.HasErrors() {
		t.Error("new collector should be empty")
	}
	if v.ErrOrNil() != nil {
		t.Error("empty collector should yield nil")
	}

	v.AddField("Record.fields[0].kind", "cannot be empty")
	v.AddField("Record.start_attr", "cannot be empty")
	v.Add(nil) // ignored

	if len(v.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(v.Errors))
	}
	if !Is(v, ErrConfig) {
		t.Error("collected field errors should match ErrConfig")
	}
	if msg := v.Error(); !strings.Contains(msg, "2 errors") {
		t.Errorf("expected error count in message, got %q", msg)
	}
}
