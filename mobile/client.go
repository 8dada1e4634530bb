package mobile

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/goccy/go-json"

	"github.com/mindsgn-studio/donut/anim"
	"github.com/mindsgn-studio/donut/engine"
	"github.com/mindsgn-studio/donut/render"
)

// Chart is the mobile-friendly donut chart interface
// All methods use simple types compatible with gomobile
type Chart struct {
	mu       sync.RWMutex
	config   engine.Config
	segments []engine.Segment
	computed *engine.Chart
}

// NewChart creates an empty chart
// size: side of the square drawing area
// strokeWidth: inset of the outer radius
// innerRadius: radius of the hole, 0 for a pie
func NewChart(size, strokeWidth, innerRadius float64) *Chart {
	return &Chart{
		config: engine.Config{
			Size:        size,
			StrokeWidth: strokeWidth,
			InnerRadius: innerRadius,
			ShowLabels:  true,
		},
	}
}

// SetShowLabels toggles percentage labels
func (c *Chart) SetShowLabels(show bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.ShowLabels = show
}

// SetAnnulus draws ring sectors instead of painting a hole over the pie
func (c *Chart) SetAnnulus(annulus bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if annulus {
		c.config.Cutout = engine.CutoutAnnulus
	} else {
		c.config.Cutout = engine.CutoutOverlay
	}
}

// SetStrict rejects an inner radius that would otherwise be clamped
func (c *Chart) SetStrict(strict bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Strict = strict
}

// AddSegment appends a segment. An empty label means the percentage is shown.
func (c *Chart) AddSegment(value float64, color, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments = append(c.segments, engine.Segment{Value: value, Color: color, Label: label})
}

// SetValue changes the weight of one segment
func (c *Chart) SetValue(index int, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.segments) {
		return fmt.Errorf("segment index %d out of range", index)
	}
	c.segments[index].Value = value
	return nil
}

// SegmentCount returns how many segments were added
func (c *Chart) SegmentCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.segments)
}

// Clear removes all segments and the computed geometry
func (c *Chart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments = nil
	c.computed = nil
}

// Compute recalculates the geometry. Getters read the last successful result.
func (c *Chart) Compute() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computeLocked()
}

func (c *Chart) computeLocked() error {
	chart, err := engine.Compute(c.segments, c.config)
	if err != nil {
		return err
	}
	c.computed = chart
	return nil
}

func (c *Chart) wedge(index int) (engine.Wedge, bool) {
	if c.computed == nil || index < 0 || index >= len(c.computed.Wedges) {
		return engine.Wedge{}, false
	}
	return c.computed.Wedges[index], true
}

// WedgeCount returns the number of computed wedges, 0 for an empty chart
func (c *Chart) WedgeCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.computed == nil {
		return 0
	}
	return len(c.computed.Wedges)
}

// WedgePath returns the SVG path data of a wedge
func (c *Chart) WedgePath(index int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.wedge(index)
	if !ok {
		return ""
	}
	return w.Path.String()
}

// WedgeColor returns the fill of a wedge
func (c *Chart) WedgeColor(index int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, _ := c.wedge(index)
	return w.Color
}

// WedgeLabel returns the label text of a wedge
func (c *Chart) WedgeLabel(index int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, _ := c.wedge(index)
	return w.Label
}

// WedgeLabelVisible reports whether the wedge label should be drawn
func (c *Chart) WedgeLabelVisible(index int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.wedge(index)
	return ok && c.computed.ShowLabels && w.LabelVisible
}

// WedgeStartAngle returns the start angle in degrees from 12 o'clock
func (c *Chart) WedgeStartAngle(index int) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, _ := c.wedge(index)
	return w.StartAngle
}

// WedgeEndAngle returns the end angle in degrees from 12 o'clock
func (c *Chart) WedgeEndAngle(index int) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, _ := c.wedge(index)
	return w.EndAngle
}

// WedgePercentage returns the share of a wedge (0-1)
func (c *Chart) WedgePercentage(index int) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, _ := c.wedge(index)
	return w.Percentage
}

// LabelX returns the horizontal label anchor of a wedge
func (c *Chart) LabelX(index int) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, _ := c.wedge(index)
	return w.Anchor.X
}

// LabelY returns the vertical label anchor of a wedge
func (c *Chart) LabelY(index int) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, _ := c.wedge(index)
	return w.Anchor.Y
}

// HolePath returns the path of the overlay hole, empty when there is none
func (c *Chart) HolePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.computed == nil || c.computed.Hole == nil {
		return ""
	}
	return c.computed.Hole.String()
}

// HitTest returns the wedge under a touch point, or -1
func (c *Chart) HitTest(x, y float64) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.computed == nil {
		return -1
	}
	i, ok := c.computed.HitTest(engine.Point{X: x, Y: y})
	if !ok {
		return -1
	}
	return i
}

type wedgeJSON struct {
	Index        int     `json:"index"`
	Value        float64 `json:"value"`
	Color        string  `json:"color"`
	Percentage   float64 `json:"percentage"`
	StartAngle   float64 `json:"startAngle"`
	EndAngle     float64 `json:"endAngle"`
	Path         string  `json:"path"`
	Label        string  `json:"label"`
	LabelVisible bool    `json:"labelVisible"`
	LabelX       float64 `json:"labelX"`
	LabelY       float64 `json:"labelY"`
}

type chartJSON struct {
	Size        float64     `json:"size"`
	OuterRadius float64     `json:"outerRadius"`
	InnerRadius float64     `json:"innerRadius"`
	Clamped     bool        `json:"clamped"`
	Total       float64     `json:"total"`
	Hole        string      `json:"hole,omitempty"`
	Wedges      []wedgeJSON `json:"wedges"`
}

// JSON returns the computed geometry as one JSON document, for bridges
// that prefer a single call over many getters
func (c *Chart) JSON() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.computed == nil {
		return "", fmt.Errorf("chart not computed")
	}

	doc := chartJSON{
		Size:        c.computed.Size,
		OuterRadius: c.computed.OuterRadius,
		InnerRadius: c.computed.InnerRadius,
		Clamped:     c.computed.Clamped,
		Total:       c.computed.Total,
		Wedges:      make([]wedgeJSON, len(c.computed.Wedges)),
	}
	if c.computed.Hole != nil {
		doc.Hole = c.computed.Hole.String()
	}
	for i, w := range c.computed.Wedges {
		doc.Wedges[i] = wedgeJSON{
			Index:        w.Index,
			Value:        w.Value,
			Color:        w.Color,
			Percentage:   w.Percentage,
			StartAngle:   w.StartAngle,
			EndAngle:     w.EndAngle,
			Path:         w.Path.String(),
			Label:        w.Label,
			LabelVisible: c.computed.ShowLabels && w.LabelVisible,
			LabelX:       w.Anchor.X,
			LabelY:       w.Anchor.Y,
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode chart: %w", err)
	}
	return string(data), nil
}

// SVG renders the computed chart as a standalone SVG document
// background: canvas and hole color, e.g. "#FFFFFF"
func (c *Chart) SVG(background string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.computed == nil {
		return "", fmt.Errorf("chart not computed")
	}

	opts := render.DefaultOptions()
	if background != "" {
		opts.Background = background
	}
	layers := engine.Layers{{Name: "chart", Chart: c.computed}}

	var buf bytes.Buffer
	if err := render.SVG(&buf, c.computed.Size, layers, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Animator drives the tap-to-focus animation of a Chart. The host calls
// Step once per display frame while it returns true.
type Animator struct {
	mu    sync.Mutex
	chart *Chart
	drill *anim.DrillDown
	base  []engine.Segment
}

// NewAnimator captures the chart's current segments as the resting layout
func NewAnimator(chart *Chart) *Animator {
	chart.mu.RLock()
	base := append([]engine.Segment(nil), chart.segments...)
	chart.mu.RUnlock()

	values := make([]float64, len(base))
	for i, s := range base {
		values[i] = s.Value
	}
	return &Animator{chart: chart, drill: anim.NewDrillDown(values), base: base}
}

// Focus toggles focus on a segment, as a tap on the wedge does
func (a *Animator) Focus(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.drill.Toggle(index)
}

// FocusedIndex returns the focused segment or -1
func (a *Animator) FocusedIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.drill.Focused()
}

// Step advances one frame and recomputes the chart. It reports whether
// more frames follow.
func (a *Animator) Step() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	more := a.drill.Step()

	a.chart.mu.Lock()
	defer a.chart.mu.Unlock()
	a.chart.segments = a.drill.Segments(a.base)
	return more, a.chart.computeLocked()
}

// NormalizePath parses a host-supplied path description (absolute M, L, A
// and Z commands, separated by spaces or commas) and returns it in the
// chart's own encoding, so it can be compared with WedgePath output
func NormalizePath(d string) (string, error) {
	path, err := engine.ParsePath(d)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return path.String(), nil
}

// FormatPercent formats a share (0-1) the way default labels read
// This is a helper function that can be called from mobile apps
func FormatPercent(share float64) string {
	if math.IsNaN(share) || math.IsInf(share, 0) {
		return "-"
	}
	return engine.PercentLabel(share)
}
