package types

// Element is one top-level element from the export document: a tag name plus
// a flat attribute map. All attribute values are raw text until coercion.
type Element struct {
	Tag   string
	Attrs map[string]string
}

// Attr returns the named attribute and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Type returns the element's type-identifying attribute. Record elements
// carry it as "type", Workout elements as "workoutActivityType". Elements
// without one (e.g. ActivitySummary) return the empty string.
func (e Element) Type() string {
	if v, ok := e.Attrs["type"]; ok {
		return v
	}
	return e.Attrs["workoutActivityType"]
}
