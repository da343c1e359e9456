// Package record builds flat rows from raw export elements using the
// category's rule set from the format catalog.
package record

import (
	"fmt"

	"github.com/mereldawu/ipyhealth/internal/catalog"
	"github.com/mereldawu/ipyhealth/internal/coerce"
	"github.com/mereldawu/ipyhealth/types"
)

// FieldError identifies the column whose coercion failed.
type FieldError struct {
	Column string
	Err    error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

// Unwrap returns the wrapped coercion error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Build produces one row from an element, applying each of the category's
// field rules. It is a pure transform.
//
// Build returns (nil, nil) when the element's type attribute does not match
// the category's pattern: the export may carry vendor types outside the
// documented schema and those are skipped, not failed. A coercion failure
// returns a parse error naming the offending column; missing attributes
// yield nil values under the declared column, so every non-nil row carries
// exactly the columns declared for its category.
func Build(elem types.Element, rules *catalog.RuleSet) (types.Row, error) {
	var class, code string
	if rules.Pattern != nil {
		raw, ok := elem.Attr(rules.TypeAttr)
		if !ok {
			return nil, nil
		}
		class, code, ok = coerce.TypeCode(rules.Pattern, raw)
		if !ok {
			return nil, nil
		}
	}

	row := make(types.Row, len(rules.Columns()))

	for _, fr := range rules.Fields {
		switch fr.Kind {
		case coerce.KindType:
			row["activity_type"] = class
			row["activity"] = code

		case coerce.KindStandard:
			column := catalog.StandardColumn(fr.Attr)
			value, okV := elem.Attr(fr.Attr)
			unit, okU := elem.Attr(fr.UnitAttr)
			if !okV || !okU {
				row[column] = nil
				continue
			}
			_, q, err := coerce.Standard(fr.Attr, value, unit)
			if err != nil {
				return nil, &FieldError{Column: column, Err: err}
			}
			row[column] = q

		default:
			column := coerce.Snake(fr.Attr)
			raw, ok := elem.Attr(fr.Attr)
			if !ok {
				row[column] = nil
				continue
			}
			v, err := coerce.Coerce(raw, fr.Kind)
			if err != nil {
				return nil, &FieldError{Column: column, Err: err}
			}
			row[column] = v
		}
	}

	return row, nil
}
