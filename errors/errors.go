// Package errors defines the error taxonomy for the export parser.
//
// This package provides:
// - Sentinel errors for the input, config, and parse failure classes
// - BatchError, which carries the identity of the element that failed
// - Error category checking functions
// - Error wrapping utilities
package errors

import (
	"errors"
	"fmt"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// Input errors: the export directory is missing or malformed.
	ErrInput            = errors.New("invalid input")
	ErrExportMissing    = errors.New("export document not found")
	ErrRoutesDirMissing = errors.New("track file directory not found")
	ErrMalformedExport  = errors.New("malformed export document")

	// Config errors: the format catalog is inconsistent.
	ErrConfig          = errors.New("invalid catalog configuration")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownKind     = errors.New("unknown coercion kind")
	ErrBadPattern      = errors.New("invalid type pattern")

	// Parse errors: a field's raw text does not match its declared kind.
	ErrParse        = errors.New("malformed field value")
	ErrBadTimestamp = errors.New("malformed timestamp")
	ErrBadNumber    = errors.New("malformed number")
	ErrBadUnit      = errors.New("unsupported unit")
)

// ============================================================================
// Helper functions for error checking
// ============================================================================

// Is is a convenience wrapper for errors.Is
var Is = errors.Is

// As is a convenience wrapper for errors.As
var As = errors.As

// IsInput returns true if err belongs to the input error class.
func IsInput(err error) bool {
	return errors.Is(err, ErrInput) ||
		errors.Is(err, ErrExportMissing) ||
		errors.Is(err, ErrRoutesDirMissing) ||
		errors.Is(err, ErrMalformedExport)
}

// IsConfig returns true if err belongs to the config error class.
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrUnknownKind) ||
		errors.Is(err, ErrBadPattern)
}

// IsParse returns true if err belongs to the parse error class.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse) ||
		errors.Is(err, ErrBadTimestamp) ||
		errors.Is(err, ErrBadNumber) ||
		errors.Is(err, ErrBadUnit)
}

// ============================================================================
// BatchError
// ============================================================================

// BatchError wraps a parse or config error with the identity of the batch
// and element that produced it. A BatchError aborts the whole parse; no
// partial tables are returned.
type BatchError struct {
	Batch    int    // batch index within the dispatch
	Category string // element category (e.g. "Workout")
	TypeCode string // element type attribute, if any
	Column   string // offending column, if known
	Err      error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	id := e.Category
	if e.TypeCode != "" {
		id += "/" + e.TypeCode
	}
	if e.Column != "" {
		return fmt.Sprintf("batch %d: %s: column %q: %v", e.Batch, id, e.Column, e.Err)
	}
	return fmt.Sprintf("batch %d: %s: %v", e.Batch, id, e.Err)
}

// Unwrap returns the wrapped error.
func (e *BatchError) Unwrap() error {
	return e.Err
}

// AsBatch returns the BatchError in err's chain, or nil.
func AsBatch(err error) *BatchError {
	var be *BatchError
	if errors.As(err, &be) {
		return be
	}
	return nil
}

// ============================================================================
// Error wrapping utilities
// ============================================================================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewValidation creates a config validation error with field context.
func NewValidation(field, reason string) error {
	return fmt.Errorf("invalid %s: %s: %w", field, reason, ErrConfig)
}

// ============================================================================
// Validation Errors Collection
// ============================================================================

// ValidationErrors collects multiple catalog validation errors so a broken
// catalog is reported in full rather than one field at a time.
type ValidationErrors struct {
	Errors []error
}

// NewValidationErrors creates a new ValidationErrors collector.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add adds an error to the collection.
func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.Errors = append(v.Errors, err)
	}
}

// AddField adds a field validation error.
func (v *ValidationErrors) AddField(field, reason string) {
	v.Errors = append(v.Errors, NewValidation(field, reason))
}

// HasErrors returns true if there are any errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrOrNil returns the collection as an error, or nil if empty.
func (v *ValidationErrors) ErrOrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}
	if len(v.Errors) == 1 {
		return v.Errors[0].Error()
	}

	msg := fmt.Sprintf("validation failed with %d errors:", len(v.Errors))
	for _, err := range v.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is/As.
func (v *ValidationErrors) Unwrap() []error {
	return v.Errors
}
