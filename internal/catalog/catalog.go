// Package catalog holds the declarative format catalog: the mapping from
// record category to type-code pattern and per-field coercion rules.
//
// The catalog ships embedded in the binary and is loaded once at startup; a
// caller may substitute a rules file of the same shape. It is immutable
// after load.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	apperrors "github.com/mereldawu/ipyhealth/errors"
	"github.com/mereldawu/ipyhealth/internal/coerce"
)

//go:embed rules.yaml
var embeddedRules []byte

// =============================================================================
// Types
// =============================================================================

// FieldRule is one field-coercion assignment: which attribute to read, how
// to coerce it, and for standard kinds which attribute carries the unit.
type FieldRule struct {
	Attr     string // vendor attribute name
	Kind     coerce.Kind
	UnitAttr string // set only for KindStandard
}

// RuleSet is the complete rule set for one category.
type RuleSet struct {
	Category  string
	Pattern   *regexp.Regexp // type-code extraction; nil for pattern-less categories
	TypeAttr  string         // attribute holding the verbose type name; "" if none
	StartAttr string         // attribute holding the declared start time
	Fields    []FieldRule

	columns []string // declared output columns, precomputed at load
}

// Columns returns the declared output column names for this category, in
// rule order. Every row built from this rule set has exactly these columns.
func (rs *RuleSet) Columns() []string {
	return rs.columns
}

// Catalog maps category names to their rule sets.
type Catalog struct {
	categories map[string]*RuleSet
}

// =============================================================================
// Load
// =============================================================================

// Load parses the embedded rules file.
func Load() (*Catalog, error) {
	return parse(embeddedRules)
}

// LoadFile loads a rules file from disk, expanding environment variables,
// replacing the embedded catalog wholesale.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse([]byte(os.ExpandEnv(string(data))))
}

// yaml document shape

type fileSchema struct {
	Categories map[string]categorySchema `yaml:"categories"`
}

type categorySchema struct {
	Pattern   string        `yaml:"pattern"`
	TypeAttr  string        `yaml:"type_attr"`
	StartAttr string        `yaml:"start_attr"`
	Fields    []fieldSchema `yaml:"fields"`
}

type fieldSchema struct {
	Column string `yaml:"column"`
	Kind   string `yaml:"kind"`
	Unit   string `yaml:"unit"`
}

func parse(data []byte) (*Catalog, error) {
	var doc fileSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfig, err.Error())
	}

	cat := &Catalog{categories: make(map[string]*RuleSet, len(doc.Categories))}
	errs := apperrors.NewValidationErrors()

	for name, cs := range doc.Categories {
		rs, err := buildRuleSet(name, cs, errs)
		if err != nil {
			return nil, err
		}
		cat.categories[name] = rs
	}

	if errs.HasErrors() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConfig, errs.ErrOrNil())
	}
	return cat, nil
}

func buildRuleSet(name string, cs categorySchema, errs *apperrors.ValidationErrors) (*RuleSet, error) {
	rs := &RuleSet{
		Category:  name,
		TypeAttr:  cs.TypeAttr,
		StartAttr: cs.StartAttr,
	}

	if cs.Pattern != "" {
		p, err := regexp.Compile(cs.Pattern)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrBadPattern, "category %s: %v", name, err)
		}
		if p.NumSubexp() < 2 {
			return nil, apperrors.Wrapf(apperrors.ErrBadPattern,
				"category %s: pattern needs two capture groups (class, code)", name)
		}
		rs.Pattern = p
	}

	if cs.StartAttr == "" {
		errs.AddField(name+".start_attr", "cannot be empty")
	}

	for i, fs := range cs.Fields {
		field := fmt.Sprintf("%s.fields[%d]", name, i)

		if fs.Column == "" {
			errs.AddField(field+".column", "cannot be empty")
			continue
		}

		kind, err := coerce.ParseKind(fs.Kind)
		if err != nil {
			errs.AddField(field+".kind", err.Error())
			continue
		}

		switch kind {
		case coerce.KindStandard:
			if fs.Unit == "" {
				errs.AddField(field+".unit", "required for standard fields")
				continue
			}
		case coerce.KindType:
			if rs.Pattern == nil {
				errs.AddField(field, "type field requires a category pattern")
				continue
			}
		}

		fr := FieldRule{Attr: fs.Column, Kind: kind, UnitAttr: fs.Unit}
		rs.Fields = append(rs.Fields, fr)
		rs.columns = append(rs.columns, outputColumns(fr)...)
	}

	return rs, nil
}

// outputColumns returns the output column names a rule contributes.
func outputColumns(fr FieldRule) []string {
	switch fr.Kind {
	case coerce.KindType:
		return []string{"activity_type", "activity"}
	case coerce.KindStandard:
		return []string{StandardColumn(fr.Attr)}
	default:
		return []string{coerce.Snake(fr.Attr)}
	}
}

// StandardColumn maps a standard field's vendor attribute to its normalized
// output column: duration -> duration_min, totalDistance -> distance_km,
// totalEnergyBurned -> energy_burned_kcal.
func StandardColumn(attr string) string {
	switch attr {
	case "duration":
		return "duration_min"
	case "totalDistance":
		return "distance_km"
	case "totalEnergyBurned":
		return "energy_burned_kcal"
	default:
		return coerce.Snake(attr)
	}
}

// =============================================================================
// Lookup
// =============================================================================

// Lookup returns the rule set for a category, or a config error if the
// category is not in the catalog.
func (c *Catalog) Lookup(category string) (*RuleSet, error) {
	rs, ok := c.categories[category]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrUnknownCategory, "category %q", category)
	}
	return rs, nil
}

// Contains reports whether the category is in the catalog.
func (c *Catalog) Contains(category string) bool {
	_, ok := c.categories[category]
	return ok
}

// Categories returns the catalog's category names, sorted.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
