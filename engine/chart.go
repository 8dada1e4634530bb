package engine

import (
	"fmt"
	"math"
)

const (
	// LabelThreshold is the share at or below which a wedge label is hidden
	LabelThreshold = 0.05
	// MaxInnerRatio caps an oversized inner radius relative to the outer radius
	MaxInnerRatio = 0.95
)

// CutoutMode selects how the hollow center is produced
type CutoutMode int

const (
	// CutoutOverlay draws full pie wedges plus a hole path painted over them
	// in the background color
	CutoutOverlay CutoutMode = iota
	// CutoutAnnulus draws every wedge as an annular sector; no hole path
	CutoutAnnulus
)

func (m CutoutMode) String() string {
	switch m {
	case CutoutOverlay:
		return "overlay"
	case CutoutAnnulus:
		return "annulus"
	}
	return fmt.Sprintf("CutoutMode(%d)", int(m))
}

// Segment is one weighted input category
type Segment struct {
	Value float64
	Color string // passed through untouched
	Label string // empty means "derive a percentage"
}

// Config describes the chart box
type Config struct {
	Size        float64 // side of the bounding box
	StrokeWidth float64
	InnerRadius float64 // 0 draws a full pie
	ShowLabels  bool
	Cutout      CutoutMode
	// Strict rejects an inner radius that reaches the outer edge instead of
	// clamping it to MaxInnerRatio of the outer radius.
	Strict bool
}

// Wedge is the drawable geometry of one segment
type Wedge struct {
	Index        int
	Value        float64
	Color        string
	Percentage   float64 // value / total, 0..1
	StartAngle   float64
	EndAngle     float64
	LargeArc     bool
	Path         Path
	Label        string
	LabelVisible bool
	Anchor       Point
}

// Span returns the angle covered by the wedge in degrees
func (w Wedge) Span() float64 {
	return w.EndAngle - w.StartAngle
}

// Chart is the result of one engine pass
type Chart struct {
	Size        float64
	Center      Point
	OuterRadius float64
	InnerRadius float64 // effective radius after clamping
	Clamped     bool
	ShowLabels  bool
	Cutout      CutoutMode
	Total       float64
	Wedges      []Wedge
	Hole        Path // nil when there is no overlay hole
}

// Empty reports whether the chart has nothing to draw
func (c *Chart) Empty() bool {
	return len(c.Wedges) == 0
}

// ComputeChart is the short form of Compute for a stroke-less chart with labels
func ComputeChart(segments []Segment, size, innerRadius float64) (*Chart, error) {
	return Compute(segments, Config{
		Size:        size,
		InnerRadius: innerRadius,
		ShowLabels:  true,
	})
}

// Compute converts segments into wedge geometry. It is a pure function:
// nothing is retained between calls.
func Compute(segments []Segment, cfg Config) (*Chart, error) {
	outer, inner, clamped, err := cfg.radii()
	if err != nil {
		return nil, err
	}

	var total float64
	for i, s := range segments {
		if !finite(s.Value) || s.Value < 0 {
			return nil, configError(fmt.Sprintf("segments[%d].value", i), s.Value, "must be a non-negative number")
		}
		total += s.Value
	}
	if !finite(total) {
		return nil, configError("total", total, "segment values overflow when summed")
	}

	center := Point{X: cfg.Size / 2, Y: cfg.Size / 2}
	chart := &Chart{
		Size:        cfg.Size,
		Center:      center,
		OuterRadius: outer,
		InnerRadius: inner,
		Clamped:     clamped,
		ShowLabels:  cfg.ShowLabels,
		Cutout:      cfg.Cutout,
		Total:       total,
		Wedges:      []Wedge{},
	}

	if inner > 0 && cfg.Cutout == CutoutOverlay {
		chart.Hole = holePath(center, inner)
	}

	if total <= 0 {
		return chart, nil
	}

	chart.Wedges = make([]Wedge, 0, len(segments))
	labelRadius := (outer + inner) / 2
	startAngle := 0.0

	for i, s := range segments {
		percentage := s.Value / total
		endAngle := startAngle + FullTurn*percentage
		if i == len(segments)-1 {
			endAngle = FullTurn // absorb accumulated rounding
		}
		span := endAngle - startAngle

		w := Wedge{
			Index:        i,
			Value:        s.Value,
			Color:        s.Color,
			Percentage:   percentage,
			StartAngle:   startAngle,
			EndAngle:     endAngle,
			LargeArc:     span > FullTurn/2,
			Label:        s.Label,
			LabelVisible: percentage > LabelThreshold,
			Anchor:       Polar(center, labelRadius, (startAngle+endAngle)/2),
		}
		if w.Label == "" {
			w.Label = PercentLabel(percentage)
		}

		if cfg.Cutout == CutoutAnnulus && inner > 0 {
			w.Path = sectorPath(center, outer, inner, startAngle, endAngle)
		} else {
			w.Path = wedgePath(center, outer, startAngle, endAngle)
		}

		chart.Wedges = append(chart.Wedges, w)
		startAngle = endAngle
	}

	return chart, nil
}

// PercentLabel formats a 0..1 share as a whole percentage
func PercentLabel(percentage float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(percentage*100)))
}

func (c Config) radii() (outer, inner float64, clamped bool, err error) {
	switch {
	case !finite(c.Size) || c.Size <= 0:
		return 0, 0, false, configError("size", c.Size, "must be positive")
	case !finite(c.StrokeWidth) || c.StrokeWidth < 0:
		return 0, 0, false, configError("strokeWidth", c.StrokeWidth, "must not be negative")
	case c.StrokeWidth >= c.Size:
		return 0, 0, false, configError("strokeWidth", c.StrokeWidth, "must be smaller than size")
	case !finite(c.InnerRadius) || c.InnerRadius < 0:
		return 0, 0, false, configError("innerRadius", c.InnerRadius, "must not be negative")
	}

	outer = (c.Size - c.StrokeWidth) / 2
	inner = c.InnerRadius
	if inner >= outer {
		if c.Strict {
			return 0, 0, false, configError("innerRadius", c.InnerRadius, fmt.Sprintf("must be smaller than the outer radius %g", outer))
		}
		inner = outer * MaxInnerRatio
		clamped = true
	}
	return outer, inner, clamped, nil
}

// isFullTurn catches the single-segment case: an arc whose endpoints
// coincide is skipped by SVG renderers, so it has to be split.
func isFullTurn(span float64) bool {
	return span >= FullTurn-1e-9
}

func wedgePath(center Point, radius, start, end float64) Path {
	from := Polar(center, radius, start)
	to := Polar(center, radius, end)
	span := end - start

	path := Path{
		MoveTo{X: center.X, Y: center.Y},
		LineTo{X: from.X, Y: from.Y},
	}
	if isFullTurn(span) {
		mid := Polar(center, radius, start+span/2)
		path = append(path,
			ArcTo{RX: radius, RY: radius, Sweep: SweepClockwise, X: mid.X, Y: mid.Y},
			ArcTo{RX: radius, RY: radius, Sweep: SweepClockwise, X: to.X, Y: to.Y},
		)
	} else {
		path = append(path, ArcTo{
			RX:       radius,
			RY:       radius,
			LargeArc: span > FullTurn/2,
			Sweep:    SweepClockwise,
			X:        to.X,
			Y:        to.Y,
		})
	}
	return append(path, ClosePath{})
}

// sectorPath walks the outer arc clockwise and the inner arc back
// counter-clockwise, so the nonzero fill rule leaves the center empty.
func sectorPath(center Point, outer, inner, start, end float64) Path {
	span := end - start
	outerFrom := Polar(center, outer, start)
	outerTo := Polar(center, outer, end)
	innerFrom := Polar(center, inner, start)
	innerTo := Polar(center, inner, end)

	if isFullTurn(span) {
		outerMid := Polar(center, outer, start+span/2)
		innerMid := Polar(center, inner, start+span/2)
		return Path{
			MoveTo{X: outerFrom.X, Y: outerFrom.Y},
			ArcTo{RX: outer, RY: outer, Sweep: SweepClockwise, X: outerMid.X, Y: outerMid.Y},
			ArcTo{RX: outer, RY: outer, Sweep: SweepClockwise, X: outerTo.X, Y: outerTo.Y},
			ClosePath{},
			MoveTo{X: innerFrom.X, Y: innerFrom.Y},
			ArcTo{RX: inner, RY: inner, Sweep: !SweepClockwise, X: innerMid.X, Y: innerMid.Y},
			ArcTo{RX: inner, RY: inner, Sweep: !SweepClockwise, X: innerTo.X, Y: innerTo.Y},
			ClosePath{},
		}
	}

	large := span > FullTurn/2
	return Path{
		MoveTo{X: outerFrom.X, Y: outerFrom.Y},
		ArcTo{RX: outer, RY: outer, LargeArc: large, Sweep: SweepClockwise, X: outerTo.X, Y: outerTo.Y},
		LineTo{X: innerTo.X, Y: innerTo.Y},
		ArcTo{RX: inner, RY: inner, LargeArc: large, Sweep: !SweepClockwise, X: innerFrom.X, Y: innerFrom.Y},
		ClosePath{},
	}
}

// holePath is a full circle built from two semicircles, meant to be
// painted over the wedges in the background color.
func holePath(center Point, radius float64) Path {
	left := center.X - radius
	right := center.X + radius
	return Path{
		MoveTo{X: left, Y: center.Y},
		ArcTo{RX: radius, RY: radius, LargeArc: true, Sweep: true, X: right, Y: center.Y},
		ArcTo{RX: radius, RY: radius, LargeArc: true, Sweep: true, X: left, Y: center.Y},
	}
}
