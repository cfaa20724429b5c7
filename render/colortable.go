package render

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const blockNamespace = "minecraft:"

//go:embed blockcolors.yaml
var defaultColorTableYAML []byte

// ColorTable maps block identifiers to color rules, read-only once loaded.
type ColorTable map[string]BlockMapColor

// Lookup tries identifier as-is and then without the minecraft: namespace
func (t ColorTable) Lookup(name string) (BlockMapColor, bool) {
	if r, ok := t[name]; ok {
		return r, true
	}
	if trimmed := strings.TrimPrefix(name, blockNamespace); len(trimmed) != len(name) {
		r, ok := t[trimmed]
		return r, ok
	}
	return BlockMapColor{}, false
}

// Color resolves block to concrete color, false if block is not in the table
func (t ColorTable) Color(b Block) (MapColor, bool) {
	r, ok := t.Lookup(b.Name)
	if !ok {
		return Clear, false
	}
	return r.Select(b.Properties), true
}

// two color rules use pointers so that a missing key is told apart from Clear
type colorTableFile struct {
	Single map[string][]string `yaml:"single"`
	Bed    map[string]struct {
		Head *MapColor `yaml:"head"`
		Foot *MapColor `yaml:"foot"`
	} `yaml:"bed"`
	Crops map[string]struct {
		Growing *MapColor `yaml:"growing"`
		Grown   *MapColor `yaml:"grown"`
	} `yaml:"crops"`
	Pillar map[string]struct {
		Top  *MapColor `yaml:"top"`
		Side *MapColor `yaml:"side"`
	} `yaml:"pillar"`
	Waterloggable map[string]struct {
		Dry *MapColor `yaml:"dry"`
		Wet *MapColor `yaml:"wet"`
	} `yaml:"waterloggable"`
}

func ParseColorTable(b []byte) (ColorTable, error) {
	var f colorTableFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	t := ColorTable{}
	add := func(name string, r BlockMapColor) error {
		if prev, ok := t[name]; ok {
			return fmt.Errorf("block %q has more than one color rule (%s and %s)", name, prev, r)
		}
		t[name] = r
		return nil
	}
	// sorted for stable error messages
	colorNames := make([]string, 0, len(f.Single))
	for k := range f.Single {
		colorNames = append(colorNames, k)
	}
	sort.Strings(colorNames)
	for _, cn := range colorNames {
		c, err := ParseMapColor(cn)
		if err != nil {
			return nil, err
		}
		for _, name := range f.Single[cn] {
			if err := add(name, Single(c)); err != nil {
				return nil, err
			}
		}
	}
	addPair := func(name string, kind RuleKind, a, b *MapColor, an, bn string, rule func(MapColor, MapColor) BlockMapColor) error {
		if a == nil || b == nil {
			return fmt.Errorf("%s rule of block %q needs both %s and %s", kind, name, an, bn)
		}
		return add(name, rule(*a, *b))
	}
	for name, v := range f.Bed {
		if err := addPair(name, RuleBed, v.Head, v.Foot, "head", "foot", Bed); err != nil {
			return nil, err
		}
	}
	for name, v := range f.Crops {
		if err := addPair(name, RuleCrops, v.Growing, v.Grown, "growing", "grown", Crops); err != nil {
			return nil, err
		}
	}
	for name, v := range f.Pillar {
		if err := addPair(name, RulePillar, v.Top, v.Side, "top", "side", Pillar); err != nil {
			return nil, err
		}
	}
	for name, v := range f.Waterloggable {
		if err := addPair(name, RuleWaterloggable, v.Dry, v.Wet, "dry", "wet", Waterloggable); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// DefaultColorTable parses the embedded vanilla table
func DefaultColorTable() (ColorTable, error) {
	return ParseColorTable(defaultColorTableYAML)
}

// LoadColorTable reads table from path, empty path means embedded default
func LoadColorTable(path string) (ColorTable, error) {
	if path == "" {
		return DefaultColorTable()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseColorTable(b)
	if err != nil {
		return nil, fmt.Errorf("color table %s: %w", path, err)
	}
	return t, nil
}
