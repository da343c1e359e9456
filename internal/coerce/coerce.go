// Package coerce converts raw export attribute text into typed scalars.
//
// Each coercion kind has one handler. All handlers are pure: they never
// touch shared state, so batches can coerce in parallel without locking.
package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/mereldawu/ipyhealth/config"
	apperrors "github.com/mereldawu/ipyhealth/errors"
	"github.com/mereldawu/ipyhealth/types"
)

// Coerce applies a single-value coercion kind to one raw attribute value.
// KindStandard and KindType need paired inputs and are handled by Standard
// and TypeCode; routing them here is a config error.
func Coerce(raw string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return norm.NFKD.String(raw), nil
	case KindDate:
		t, err := Date(raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindNumeric:
		return Numeric(raw)
	case KindDevice:
		return Device(raw), nil
	case KindNoFormat:
		return raw, nil
	case KindStandard:
		return nil, apperrors.Wrap(apperrors.ErrConfig, "standard kind requires a paired unit field")
	case KindType:
		return nil, apperrors.Wrap(apperrors.ErrConfig, "type kind requires the category pattern")
	default:
		return nil, apperrors.Wrapf(apperrors.ErrUnknownKind, "kind(%d)", int(kind))
	}
}

// Date parses a timestamp in the fixed export format, falling back to the
// date-only layout used by activity summaries. The result is timezone-naive:
// the embedded offset is dropped and the wall-clock reading is kept, so
// timestamps compare against cutoff dates and track-file names the way they
// read in the export.
func Date(raw string) (time.Time, error) {
	if t, err := time.Parse(config.TimestampLayout, raw); err == nil {
		return stripZone(t), nil
	}
	if t, err := time.Parse(config.DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.Wrapf(apperrors.ErrBadTimestamp, "value %q", raw)
}

func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Numeric parses a float field. Empty input yields nil, not an error: the
// export leaves optional quantities blank.
func Numeric(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrBadNumber, "value %q", raw)
	}
	return f, nil
}

// devicePunct strips the markup around device string fragments, e.g.
// "<<HKDevice>" or a trailing ">".
const devicePunct = "<>,!\"#$%&'()*+/:;=?@[\\]^_`{|}~- "

// Device parses the vendor device descriptor string into its named parts.
// Fragments without a colon (such as the continuation of a "hardware"
// value split by a comma) are dropped, matching the export's loose format.
func Device(raw string) types.Device {
	var d types.Device

	for _, part := range strings.Split(raw, ",") {
		i := strings.Index(part, ":")
		if i < 0 {
			continue
		}
		key := strings.ToLower(strings.Trim(part[:i], devicePunct))
		val := strings.Trim(part[i+1:], devicePunct)

		switch key {
		case "name":
			d.Name = val
		case "manufacturer":
			d.Manufacturer = val
		case "model":
			d.Model = val
		case "hardware":
			d.Hardware = val
		case "software":
			d.Software = val
		default:
			if key == "" {
				continue
			}
			if d.Extra == nil {
				d.Extra = make(map[string]string)
			}
			d.Extra[key] = val
		}
	}

	return d
}

// Standard pairs a numeric field with its adjacent unit field into a single
// quantity, normalized to the standard units: minutes for durations,
// kilometers for distances, kilocalories for energy. The returned column
// name carries the unit suffix (duration_min, distance_km,
// energy_burned_kcal).
func Standard(name, value, unit string) (string, types.Quantity, error) {
	key := Snake(strings.TrimPrefix(name, "total"))

	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", types.Quantity{}, apperrors.Wrapf(apperrors.ErrBadNumber, "%s value %q", name, value)
	}

	switch key {
	case "duration":
		switch unit {
		case "min":
			return "duration_min", types.Quantity{Value: v, Unit: "min"}, nil
		case "sec":
			return "duration_min", types.Quantity{Value: v / 60, Unit: "min"}, nil
		}

	case "distance":
		switch unit {
		case "km":
			return "distance_km", types.Quantity{Value: v, Unit: "km"}, nil
		case "m":
			return "distance_km", types.Quantity{Value: v / 1000, Unit: "km"}, nil
		}

	case "energy_burned":
		switch unit {
		case "kcal":
			return "energy_burned_kcal", types.Quantity{Value: v, Unit: "kcal"}, nil
		case "cal":
			return "energy_burned_kcal", types.Quantity{Value: v / 1000, Unit: "kcal"}, nil
		}
	}

	return "", types.Quantity{}, apperrors.Wrapf(apperrors.ErrBadUnit, "%s unit %q", name, unit)
}

// TypeCode matches the verbose vendor type name against the category's
// pattern and extracts the type class and short code, e.g.
// "HKWorkoutActivityTypeYoga" -> ("Workout", "Yoga"). ok is false when the
// value is outside the documented schema.
func TypeCode(pattern *regexp.Regexp, value string) (class, code string, ok bool) {
	m := pattern.FindStringSubmatch(value)
	if len(m) < 3 {
		return "", "", false
	}
	return m[1], m[2], true
}
