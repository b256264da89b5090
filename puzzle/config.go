package puzzle

import (
	"fmt"
	"math"
)

// GridSize is the number of pieces along each axis.
type GridSize struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (s GridSize) String() string {
	return fmt.Sprintf("%dx%d", s.X, s.Y)
}

// Valid reports whether both dimensions are at least 2.
func (s GridSize) Valid() bool {
	return s.X > 1 && s.Y > 1
}

// Count is the number of cells in the grid.
func (s GridSize) Count() int {
	return s.X * s.Y
}

// GridSpec selects a grid either by preset name or by explicit size.
// A non-empty Preset wins over Size.
type GridSpec struct {
	Preset string
	Size   GridSize
}

func (s GridSpec) String() string {
	if s.Preset != "" {
		return s.Preset
	}
	return s.Size.String()
}

// FallbackGridSize is used when a GridSpec cannot be resolved.
var FallbackGridSize = GridSize{X: 2, Y: 2}

// DefaultPresets maps the named grid presets to their sizes.
func DefaultPresets() map[string]GridSize {
	return map[string]GridSize{
		"big":    {X: 4, Y: 4},
		"medium": {X: 6, Y: 6},
		"small":  {X: 8, Y: 8},
	}
}

// ResolveGridSize turns spec into a concrete size. When spec is invalid the
// 2x2 fallback is returned together with a *ConfigError; the size is always
// usable.
func ResolveGridSize(spec GridSpec, presets map[string]GridSize) (GridSize, error) {
	if spec.Preset != "" {
		if size, ok := presets[spec.Preset]; ok && size.Valid() {
			return size, nil
		}
		return FallbackGridSize, &ConfigError{Input: spec.Preset, Fallback: FallbackGridSize}
	}
	if spec.Size.Valid() {
		return spec.Size, nil
	}
	return FallbackGridSize, &ConfigError{Input: spec.Size.String(), Fallback: FallbackGridSize}
}

// Config is the construction-time configuration of a Puzzle.
type Config struct {
	// Width and Height bound the canvas, padding included. Zero means
	// unbounded on that axis.
	Width  float64
	Height float64
	// Padding is reserved around the image for drag overshoot.
	Padding float64
	// Stroke is the outline width.
	Stroke float64
	// Shadow enables the drop-shadow cue on active and grouped nodes.
	Shadow  bool
	Grid    GridSpec
	Presets map[string]GridSize
	// Seed drives tab generation and shuffling. Zero picks a random seed.
	Seed uint64
}

const defaultStroke = 2

func (c Config) withDefaults() Config {
	if c.Stroke <= 0 {
		c.Stroke = defaultStroke
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.Presets == nil {
		c.Presets = DefaultPresets()
	}
	return c
}

// contentBounds are the optional bounds for the image itself.
func (c Config) contentBounds() (w, h float64) {
	if c.Width > 0 {
		w = math.Max(c.Width-c.Padding*2, 1)
	}
	if c.Height > 0 {
		h = math.Max(c.Height-c.Padding*2, 1)
	}
	return w, h
}

// Metrics are the pixel measurements of a loaded puzzle.
type Metrics struct {
	Ratio       float64
	Width       float64 // scaled image width
	Height      float64 // scaled image height
	PaperWidth  float64
	PaperHeight float64
	Padding     float64
	Stroke      float64
}

// PieceSize is the pixel span of one grid cell.
func (m Metrics) PieceSize(size GridSize) (w, h float64) {
	return m.Width / float64(size.X), m.Height / float64(size.Y)
}

// FitImage scales a natural image size into the configured bounds. The
// image is only ever shrunk and keeps its aspect ratio.
func FitImage(cfg Config, naturalW, naturalH float64) Metrics {
	boundW, boundH := cfg.contentBounds()
	xRatio, yRatio := 1.0, 1.0
	if boundW > 0 && boundW < naturalW {
		xRatio = boundW / naturalW
	}
	if boundH > 0 && boundH < naturalH {
		yRatio = boundH / naturalH
	}
	ratio := math.Min(xRatio, yRatio)

	m := Metrics{
		Ratio:   ratio,
		Width:   naturalW * ratio,
		Height:  naturalH * ratio,
		Padding: cfg.Padding,
		Stroke:  cfg.Stroke,
	}
	m.PaperWidth = cfg.Padding*2 + m.Width
	if boundW > 0 {
		m.PaperWidth = cfg.Padding*2 + boundW
	}
	m.PaperHeight = cfg.Padding*2 + m.Height
	if boundH > 0 {
		m.PaperHeight = cfg.Padding*2 + boundH
	}
	return m
}
