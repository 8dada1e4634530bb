package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mindsgn-studio/donut/engine"
)

type wedgeReport struct {
	Index        int     `json:"index"`
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	Percentage   float64 `json:"percentage"`
	StartAngle   float64 `json:"startAngle"`
	EndAngle     float64 `json:"endAngle"`
	LargeArc     bool    `json:"largeArc"`
	LabelVisible bool    `json:"labelVisible"`
	Path         string  `json:"path"`
}

type ringReport struct {
	Name        string        `json:"name"`
	OffsetX     float64       `json:"offsetX"`
	OffsetY     float64       `json:"offsetY"`
	OuterRadius float64       `json:"outerRadius"`
	InnerRadius float64       `json:"innerRadius"`
	Clamped     bool          `json:"clamped"`
	Total       float64       `json:"total"`
	Hole        string        `json:"hole,omitempty"`
	Wedges      []wedgeReport `json:"wedges"`
}

func newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the computed wedge geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, layers, err := computeDefinition(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), layers)
			}
			return writeTable(cmd.OutOrStdout(), layers)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func buildReport(layers engine.Layers) []ringReport {
	report := make([]ringReport, len(layers))
	for i, l := range layers {
		c := l.Chart
		r := ringReport{
			Name:        l.Name,
			OffsetX:     l.Offset.X,
			OffsetY:     l.Offset.Y,
			OuterRadius: c.OuterRadius,
			InnerRadius: c.InnerRadius,
			Clamped:     c.Clamped,
			Total:       c.Total,
			Wedges:      make([]wedgeReport, len(c.Wedges)),
		}
		if c.Hole != nil {
			r.Hole = c.Hole.String()
		}
		for j, w := range c.Wedges {
			r.Wedges[j] = wedgeReport{
				Index:        w.Index,
				Label:        w.Label,
				Value:        w.Value,
				Percentage:   w.Percentage,
				StartAngle:   w.StartAngle,
				EndAngle:     w.EndAngle,
				LargeArc:     w.LargeArc,
				LabelVisible: c.ShowLabels && w.LabelVisible,
				Path:         w.Path.String(),
			}
		}
		report[i] = r
	}
	return report
}

func writeJSON(w io.Writer, layers engine.Layers) error {
	data, err := json.MarshalIndent(buildReport(layers), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, layers engine.Layers) error {
	table := tablewriter.NewTable(w)
	table.Header("Ring", "#", "Label", "Value", "Share", "Start", "End", "Shown")

	for _, r := range buildReport(layers) {
		if len(r.Wedges) == 0 {
			if err := table.Append(r.Name, "-", "(empty)", "0", "-", "-", "-", "-"); err != nil {
				return err
			}
			continue
		}
		for _, wr := range r.Wedges {
			shown := "no"
			if wr.LabelVisible {
				shown = "yes"
			}
			err := table.Append(
				r.Name,
				fmt.Sprint(wr.Index),
				wr.Label,
				fmt.Sprintf("%g", wr.Value),
				engine.PercentLabel(wr.Percentage),
				fmt.Sprintf("%.1f", wr.StartAngle),
				fmt.Sprintf("%.1f", wr.EndAngle),
				shown,
			)
			if err != nil {
				return err
			}
		}
	}
	return table.Render()
}
