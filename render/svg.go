// Package render draws computed ring stacks as SVG documents or as
// colored braille text for terminals.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/google/uuid"

	"github.com/mindsgn-studio/donut/engine"
)

// Options controls the look of rendered charts
type Options struct {
	Background  string // canvas and hole fill
	WedgeStroke string // separator drawn around each wedge
	LabelColor  string
	FontSize    int
	// ID prefixes the group ids; a random one is used when empty so that
	// several charts can live in one page.
	ID string
}

// DefaultOptions mirrors the mobile screen: white canvas, white 1px
// separators, bold black 12px labels.
func DefaultOptions() Options {
	return Options{
		Background:  "#FFFFFF",
		WedgeStroke: "#FFFFFF",
		LabelColor:  "#000000",
		FontSize:    12,
	}
}

// errWriter remembers the first write error; svgo itself ignores them
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}

// SVG writes the layers as one SVG document. Each ring paints its wedges,
// then its hole in the background color, then its labels, so inner rings
// cover outer ones exactly as on the device.
func SVG(w io.Writer, canvasSize float64, layers engine.Layers, opts Options) error {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}

	ew := &errWriter{w: w}
	side := int(math.Ceil(canvasSize))
	canvas := svg.New(ew)
	canvas.Start(side, side)
	canvas.Rect(0, 0, side, side, "fill:"+opts.Background)

	for i, layer := range layers {
		drawLayer(canvas, fmt.Sprintf("%s-%d", opts.ID, i), layer, opts)
	}

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("failed to write svg: %w", ew.err)
	}
	return nil
}

func drawLayer(canvas *svg.SVG, id string, layer engine.Layer, opts Options) {
	chart := layer.Chart
	canvas.Group(
		fmt.Sprintf(`id="%s"`, id),
		fmt.Sprintf(`transform="translate(%g,%g)"`, layer.Offset.X, layer.Offset.Y),
	)

	for _, w := range chart.Wedges {
		canvas.Path(w.Path.String(),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", w.Color, opts.WedgeStroke))
	}

	if chart.Hole != nil {
		canvas.Path(chart.Hole.String(), "fill:"+opts.Background)
	}

	if chart.ShowLabels {
		style := fmt.Sprintf(
			"fill:%s;font-size:%dpx;font-weight:bold;text-anchor:middle;dominant-baseline:middle",
			opts.LabelColor, opts.FontSize)
		for _, w := range chart.Wedges {
			if !w.LabelVisible {
				continue
			}
			canvas.Text(int(math.Round(w.Anchor.X)), int(math.Round(w.Anchor.Y)), w.Label, style)
		}
	}

	canvas.Gend()
}
