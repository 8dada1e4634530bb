// Package definition loads ring-chart descriptions from YAML or TOML files.
package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mindsgn-studio/donut/engine"
)

// Format is the encoding of a definition file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"

	DefaultBackground = "#FFFFFF"
)

var ErrUnknownFormat = errors.New("unknown definition format")

type Segment struct {
	Value float64 `yaml:"value" toml:"value"`
	Color string  `yaml:"color" toml:"color"`
	Label string  `yaml:"label,omitempty" toml:"label,omitempty"`
}

type Ring struct {
	Name        string    `yaml:"name" toml:"name"`
	Size        float64   `yaml:"size" toml:"size"`
	StrokeWidth float64   `yaml:"stroke_width" toml:"stroke_width"`
	InnerRadius float64   `yaml:"inner_radius" toml:"inner_radius"`
	ShowLabels  *bool     `yaml:"show_labels,omitempty" toml:"show_labels,omitempty"` // nil means true
	Segments    []Segment `yaml:"segments" toml:"segments"`
}

// Definition is a concentric stack of rings on one canvas. Rings are
// listed outermost first, which is also the paint order.
type Definition struct {
	Canvas     float64 `yaml:"canvas" toml:"canvas"`
	Background string  `yaml:"background" toml:"background"`
	Cutout     string  `yaml:"cutout" toml:"cutout"` // "overlay" (default) or "annulus"
	Strict     bool    `yaml:"strict" toml:"strict"`
	Rings      []Ring  `yaml:"rings" toml:"rings"`
}

// FormatOf picks the format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads and validates a definition file
func Load(path string) (*Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a definition
func Parse(data []byte, format Format) (*Definition, error) {
	def := &Definition{}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(def); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(def); err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Validate checks what the engine does not: colors and naming. Geometry
// is left to engine.Compute so there is one source of truth for it.
func (d *Definition) Validate() error {
	if d.Background == "" {
		d.Background = DefaultBackground
	}
	if _, err := colorful.Hex(d.Background); err != nil {
		return fmt.Errorf("background %q: %w", d.Background, err)
	}
	if _, err := d.CutoutMode(); err != nil {
		return err
	}
	if len(d.Rings) == 0 {
		return errors.New("definition has no rings")
	}

	for i := range d.Rings {
		ring := &d.Rings[i]
		if ring.Name == "" {
			ring.Name = fmt.Sprintf("ring-%d", i)
		}
		for j, s := range ring.Segments {
			if _, err := colorful.Hex(s.Color); err != nil {
				return fmt.Errorf("ring %q segment %d color %q: %w", ring.Name, j, s.Color, err)
			}
		}
	}
	return nil
}

// CutoutMode maps the cutout field onto the engine's mode
func (d *Definition) CutoutMode() (engine.CutoutMode, error) {
	switch strings.ToLower(d.Cutout) {
	case "", "overlay":
		return engine.CutoutOverlay, nil
	case "annulus":
		return engine.CutoutAnnulus, nil
	}
	return 0, fmt.Errorf("unknown cutout %q (want overlay or annulus)", d.Cutout)
}

// Stack converts the definition into engine input
func (d *Definition) Stack() (engine.Stack, error) {
	cutout, err := d.CutoutMode()
	if err != nil {
		return engine.Stack{}, err
	}

	stack := engine.Stack{Canvas: d.Canvas, Rings: make([]engine.Ring, len(d.Rings))}
	for i, r := range d.Rings {
		showLabels := true
		if r.ShowLabels != nil {
			showLabels = *r.ShowLabels
		}
		stack.Rings[i] = engine.Ring{
			Name: r.Name,
			Config: engine.Config{
				Size:        r.Size,
				StrokeWidth: r.StrokeWidth,
				InnerRadius: r.InnerRadius,
				ShowLabels:  showLabels,
				Cutout:      cutout,
				Strict:      d.Strict,
			},
			Segments: r.EngineSegments(),
		}
	}
	return stack, nil
}

// EngineSegments converts the ring's segments into engine input
func (r Ring) EngineSegments() []engine.Segment {
	segs := make([]engine.Segment, len(r.Segments))
	for i, s := range r.Segments {
		segs[i] = engine.Segment{Value: s.Value, Color: s.Color, Label: s.Label}
	}
	return segs
}

// Values returns the ring's segment weights
func (r Ring) Values() []float64 {
	vs := make([]float64, len(r.Segments))
	for i, s := range r.Segments {
		vs[i] = s.Value
	}
	return vs
}

// Default returns the three rings of the journey analysis screen:
// sessions around outcomes around the journey breakdown.
func Default() *Definition {
	hidden := false
	return &Definition{
		Canvas:     380,
		Background: DefaultBackground,
		Cutout:     "overlay",
		Rings: []Ring{
			{
				Name:        "sessions",
				Size:        340,
				StrokeWidth: 12,
				InnerRadius: 148,
				ShowLabels:  &hidden,
				Segments: []Segment{
					{Value: 65, Color: "#F0F0F0", Label: "65%"},
					{Value: 35, Color: "#3150C7", Label: "35%"},
				},
			},
			{
				Name:        "outcomes",
				Size:        260,
				StrokeWidth: 20,
				InnerRadius: 105,
				ShowLabels:  &hidden,
				Segments: []Segment{
					{Value: 35, Color: "#E7E7E7", Label: "35%"},
					{Value: 10, Color: "#000000", Label: "10%"},
				},
			},
			{
				Name:        "journey",
				Size:        170,
				StrokeWidth: 20,
				InnerRadius: 60,
				ShowLabels:  &hidden,
				Segments: []Segment{
					{Value: 40, Color: "#78F5B2", Label: "Inscription"},
					{Value: 30, Color: "#E97C64", Label: "Abandon"},
					{Value: 20, Color: "#F2C55E", Label: "Consultation"},
					{Value: 10, Color: "#000000", Label: "Erreur"},
				},
			},
		},
	}
}
