package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MaxRingWorkers bounds how many rings are computed at once
const MaxRingWorkers = 4

// Ring is one independent chart of a concentric stack
type Ring struct {
	Name     string
	Config   Config
	Segments []Segment
}

// Stack places rings concentrically on a square canvas. Rings are listed
// in paint order: later rings are drawn over earlier ones.
type Stack struct {
	Canvas float64 // 0 means "fit the largest ring"
	Rings  []Ring
}

// Layer is a computed ring and where it sits on the canvas
type Layer struct {
	Name   string
	Offset Point
	Chart  *Chart
}

// Layers is a computed stack in paint order
type Layers []Layer

// ComputeRings runs the engine for every ring concurrently. Rings share no
// state, so the only coordination is collecting results in input order.
func ComputeRings(ctx context.Context, rings []Ring) ([]*Chart, error) {
	charts := make([]*Chart, len(rings))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxRingWorkers)

	for i, ring := range rings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chart, err := Compute(ring.Segments, ring.Config)
			if err != nil {
				return fmt.Errorf("ring %d (%s): %w", i, ring.Name, err)
			}
			charts[i] = chart
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return charts, nil
}

// CanvasSize returns the canvas side used to lay the stack out
func (s Stack) CanvasSize() float64 {
	if s.Canvas > 0 {
		return s.Canvas
	}
	var size float64
	for _, r := range s.Rings {
		size = max(size, r.Config.Size)
	}
	return size
}

// Compute computes every ring and centers it on the canvas
func (s Stack) Compute(ctx context.Context) (Layers, error) {
	charts, err := ComputeRings(ctx, s.Rings)
	if err != nil {
		return nil, err
	}

	canvas := s.CanvasSize()
	layers := make(Layers, len(charts))
	for i, chart := range charts {
		shift := (canvas - chart.Size) / 2
		layers[i] = Layer{
			Name:   s.Rings[i].Name,
			Offset: Point{X: shift, Y: shift},
			Chart:  chart,
		}
	}
	return layers, nil
}

// HitTest resolves a canvas point the way the rings are painted, top ring
// first. An overlay hole is painted background and hides the rings
// beneath it; an annulus center is transparent.
func (ls Layers) HitTest(p Point) (ring, wedge int, ok bool) {
	for i := len(ls) - 1; i >= 0; i-- {
		chart := ls[i].Chart
		local := p.Sub(ls[i].Offset)
		d := Distance(chart.Center, local)
		if d > chart.OuterRadius {
			continue
		}
		if chart.InnerRadius > 0 && d < chart.InnerRadius {
			if chart.Hole != nil {
				return -1, -1, false
			}
			continue
		}
		if w, found := chart.WedgeAt(Angle(chart.Center, local)); found {
			return i, w, true
		}
	}
	return -1, -1, false
}
