package coerce

import (
	apperrors "github.com/mereldawu/ipyhealth/errors"
)

// Kind indicates how a raw attribute value is coerced into a typed scalar.
// The set is closed: every kind has exactly one handler.
type Kind int

const (
	// KindString is a unicode-normalized text field.
	KindString Kind = iota
	// KindDate is a timestamp in the fixed export format.
	KindDate
	// KindNumeric is a float field; empty or missing values become nil.
	KindNumeric
	// KindDevice is the vendor device descriptor string.
	KindDevice
	// KindNoFormat passes the raw text through untouched.
	KindNoFormat
	// KindStandard pairs a numeric field with its adjacent unit field into
	// a single value-with-unit quantity.
	KindStandard
	// KindType derives the short type code from the verbose vendor type
	// name using the category's pattern.
	KindType
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindNumeric:
		return "numeric"
	case KindDevice:
		return "device"
	case KindNoFormat:
		return "no_format"
	case KindStandard:
		return "standard"
	case KindType:
		return "type"
	default:
		return "unknown"
	}
}

// ParseKind parses a catalog kind name. Unknown names are a config error.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "date":
		return KindDate, nil
	case "numeric", "numerics":
		return KindNumeric, nil
	case "device":
		return KindDevice, nil
	case "no_format":
		return KindNoFormat, nil
	case "standard":
		return KindStandard, nil
	case "type":
		return KindType, nil
	default:
		return 0, apperrors.Wrapf(apperrors.ErrUnknownKind, "kind %q", s)
	}
}
