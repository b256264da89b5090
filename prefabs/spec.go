package prefabs

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/milk9111/jigsaw/puzzle"
	"github.com/milk9111/jigsaw/raster"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// SpecFile is the name of the puzzle configuration prefab.
const SpecFile = "puzzle.yaml"

// HookEvents are the lifecycle events a script may be attached to.
var HookEvents = []string{"init", "destroy", "resolve", "merge", "shuffle"}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PuzzleSpec struct {
	Name    string                     `yaml:"name"`
	Image   string                     `yaml:"image"`
	Width   float64                    `yaml:"width"`
	Height  float64                    `yaml:"height"`
	Padding float64                    `yaml:"padding"`
	Stroke  float64                    `yaml:"stroke"`
	Shadow  bool                       `yaml:"shadow"`
	Seed    uint64                     `yaml:"seed"`
	Grid    GridSpec                   `yaml:"grid"`
	Presets map[string]puzzle.GridSize `yaml:"presets"`
	Style   StyleSpec                  `yaml:"style"`
	Audio   []AudioSpec                `yaml:"audio"`
	Hooks   map[string]string          `yaml:"hooks"`
}

type StyleSpec struct {
	Stroke       *YAMLColor `yaml:"stroke"`
	Paper        *YAMLColor `yaml:"paper"`
	Shadow       *YAMLColor `yaml:"shadow"`
	ShadowOffset float64    `yaml:"shadow_offset"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// LoadPuzzleSpec reads and validates puzzle.yaml.
func LoadPuzzleSpec() (*PuzzleSpec, error) {
	spec, err := LoadSpec[PuzzleSpec](SpecFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects settings no puzzle can be built from. An unusable grid
// is not rejected here; the puzzle falls back to 2x2 on its own.
func (s *PuzzleSpec) Validate() error {
	if s.Width < 0 || s.Height < 0 || s.Padding < 0 || s.Stroke < 0 {
		return fmt.Errorf("prefabs: %s: negative size", SpecFile)
	}
	for event := range s.Hooks {
		if !slices.Contains(HookEvents, event) {
			return fmt.Errorf("prefabs: %s: unknown hook event %q", SpecFile, event)
		}
	}
	for _, a := range s.Audio {
		if a.Name == "" || a.File == "" {
			return fmt.Errorf("prefabs: %s: audio entries need a name and a file", SpecFile)
		}
	}
	return nil
}

// Config converts the spec into a puzzle configuration.
func (s *PuzzleSpec) Config() puzzle.Config {
	presets := puzzle.DefaultPresets()
	for name, size := range s.Presets {
		presets[name] = size
	}
	return puzzle.Config{
		Width:   s.Width,
		Height:  s.Height,
		Padding: s.Padding,
		Stroke:  s.Stroke,
		Shadow:  s.Shadow,
		Grid:    s.Grid.GridSpec,
		Presets: presets,
		Seed:    s.Seed,
	}
}

// RasterStyle merges the configured colours over the default style.
func (s *PuzzleSpec) RasterStyle() raster.Style {
	style := raster.DefaultStyle()
	if s.Style.Stroke != nil {
		style.Stroke = s.Style.Stroke.Color
	}
	if s.Style.Paper != nil {
		style.Paper = s.Style.Paper.Color
	}
	if s.Style.Shadow != nil {
		style.ShadowColor = s.Style.Shadow.Color
	}
	if s.Style.ShadowOffset > 0 {
		style.ShadowOffset = s.Style.ShadowOffset
	}
	return style
}

// PresetNames lists the preset names sorted by piece count, largest
// pieces first.
func (s *PuzzleSpec) PresetNames() []string {
	presets := s.Config().Presets
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := presets[a].Count() - presets[b].Count(); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names
}

// GridSpec accepts a preset name, an "<x>x<y>" string or an {x, y} mapping.
type GridSpec struct {
	puzzle.GridSpec
}

func (g *GridSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		g.GridSpec = ParseGridSpec(value.Value)
		return nil
	case yaml.MappingNode:
		var size puzzle.GridSize
		if err := value.Decode(&size); err != nil {
			return err
		}
		g.GridSpec = puzzle.GridSpec{Size: size}
		return nil
	default:
		return fmt.Errorf("grid must be a preset name or an {x, y} mapping")
	}
}

// ParseGridSpec reads "6x4" as an explicit size and anything else as a
// preset name.
func ParseGridSpec(s string) puzzle.GridSpec {
	s = strings.TrimSpace(s)
	if xs, ys, ok := strings.Cut(s, "x"); ok {
		x, errX := strconv.Atoi(xs)
		y, errY := strconv.Atoi(ys)
		if errX == nil && errY == nil {
			return puzzle.GridSpec{Size: puzzle.GridSize{X: x, Y: y}}
		}
	}
	return puzzle.GridSpec{Preset: s}
}

// YAMLColor is a colour written as "#rrggbb", "#rrggbbaa" or an SVG
// colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
