package providers

import "strings"

type FilterKind string

const FilterPicker FilterKind = "Picker"

type FilterOption struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Filter struct {
	Key     string         `yaml:"key"`
	Label   string         `yaml:"label"`
	Kind    FilterKind     `yaml:"kind"`
	Default string         `yaml:"default"`
	Options []FilterOption `yaml:"options"`
}

// HasValue reports whether v is one of the filter's option values.
func (f Filter) HasValue(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}

	return false
}

// LabelFor returns the display label of value v, or v itself if unknown.
func (f Filter) LabelFor(v string) string {
	for _, o := range f.Options {
		if o.Value == v {
			return o.Label
		}
	}

	return v
}

// Lookup resolves user input to an option value, matching either the value
// or the label case-insensitively.
func (f Filter) Lookup(in string) (string, bool) {
	in = strings.TrimSpace(in)
	for _, o := range f.Options {
		if strings.EqualFold(o.Value, in) || strings.EqualFold(o.Label, in) {
			return o.Value, true
		}
	}

	return "", false
}

// FilterValues carries the user's selections keyed by Filter.Key. A nil
// map is valid and selects every default.
type FilterValues map[string]string

func (fv FilterValues) Value(f Filter) string {
	if v, ok := fv[f.Key]; ok {
		return v
	}

	return f.Default
}
