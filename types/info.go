package types

import "time"

// ExportInfo is the export's own metadata: when it was produced and the
// subject characteristics from the Me element, with vendor prefixes stripped.
type ExportInfo struct {
	ExportDate time.Time

	DateOfBirth     string
	BiologicalSex   string
	BloodType       string
	SkinType        string
	Characteristics map[string]string // any further Me attributes, cleaned
}
