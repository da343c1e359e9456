package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Row is one flat record: column name to coerced scalar. Values are one of
// string, time.Time, float64, Quantity, Device, or nil for a declared column
// whose source attribute was absent or empty.
type Row map[string]any

// Columns returns the row's column names in sorted order.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// Time returns the named column as a time.Time, or the zero time if the
// column is absent, nil, or not a timestamp.
func (r Row) Time(column string) time.Time {
	if v, ok := r[column].(time.Time); ok {
		return v
	}
	return time.Time{}
}

// String returns the named column as a string, or "" if absent or not text.
func (r Row) String(column string) string {
	if v, ok := r[column].(string); ok {
		return v
	}
	return ""
}

// Quantity is a numeric value paired with its unit. Standard coercion always
// produces a single Quantity; the value and unit are never split into
// separate columns.
type Quantity struct {
	Value float64
	Unit  string
}

// String returns the quantity as "value unit".
func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// Device is the structured form of the vendor device string, e.g.
// "<<HKDevice>, name:Apple Watch, manufacturer:Apple Inc., model:Watch,
// hardware:Watch3,4, software:6.2>". Pairs outside the known fields are kept
// in Extra.
type Device struct {
	Name         string
	Manufacturer string
	Model        string
	Hardware     string
	Software     string
	Extra        map[string]string
}

// String returns a compact "key:value, ..." rendering of the known fields.
func (d Device) String() string {
	var parts []string
	for _, kv := range [][2]string{
		{"name", d.Name},
		{"manufacturer", d.Manufacturer},
		{"model", d.Model},
		{"hardware", d.Hardware},
		{"software", d.Software},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+":"+kv[1])
		}
	}
	return strings.Join(parts, ", ")
}
