package coerce

import (
	"strings"
	"unicode"
)

// Snake converts a vendor attribute name to its snake_case column name:
// "creationDate" -> "creation_date", "totalEnergyBurned" ->
// "total_energy_burned", "HRV" -> "hrv". Acronym runs stay together, with
// the final capital starting the next word ("HKDeviceName" ->
// "hk_device_name").
func Snake(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)

	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (unicode.IsUpper(runes[i-1]) && nextLower)) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
