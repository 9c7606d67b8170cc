package shanghaifantasy

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/brogergvhs/novelsrc/internal/providers"
	"gopkg.in/yaml.v3"
)

const (
	FilterStatus = "novelstatus"
	FilterTerm   = "term"
)

//go:embed filters.yaml
var filtersYAML []byte

var (
	filtersOnce sync.Once
	filterTable []providers.Filter
)

type filterFile struct {
	Filters []struct {
		Key     string         `yaml:"key"`
		Label   string         `yaml:"label"`
		Default string         `yaml:"default"`
		Options []filterOption `yaml:"options"`
	} `yaml:"filters"`
}

// filterOption accepts either a mapping with label and value or a bare
// scalar that serves as both.
type filterOption providers.FilterOption

func (o *filterOption) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		o.Label, o.Value = n.Value, n.Value
		return nil
	}

	var raw struct {
		Label string `yaml:"label"`
		Value string `yaml:"value"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	o.Label, o.Value = raw.Label, raw.Value

	return nil
}

func parseFilters(data []byte) ([]providers.Filter, error) {
	var ff filterFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("filters: %w", err)
	}

	out := make([]providers.Filter, 0, len(ff.Filters))
	for _, f := range ff.Filters {
		opts := make([]providers.FilterOption, len(f.Options))
		for i, o := range f.Options {
			opts[i] = providers.FilterOption(o)
		}

		out = append(out, providers.Filter{
			Key:     f.Key,
			Label:   f.Label,
			Kind:    providers.FilterPicker,
			Default: f.Default,
			Options: opts,
		})
	}

	return out, nil
}

// Filters returns the listing filter schema. The table is decoded on first
// use and shared read-only afterwards.
func Filters() []providers.Filter {
	filtersOnce.Do(func() {
		table, err := parseFilters(filtersYAML)
		if err != nil {
			panic(err)
		}
		filterTable = table
	})

	return filterTable
}

func filterByKey(key string) providers.Filter {
	for _, f := range Filters() {
		if f.Key == key {
			return f
		}
	}

	return providers.Filter{Key: key}
}

func (s *Source) Filters() []providers.Filter {
	return Filters()
}
