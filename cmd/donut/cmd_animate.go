package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindsgn-studio/donut/anim"
	"github.com/mindsgn-studio/donut/definition"
	"github.com/mindsgn-studio/donut/render"
)

func newAnimateCmd() *cobra.Command {
	var (
		ring    string
		segment int
		out     string
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Write the drill-down animation as SVG frames",
		Long: `Focuses one segment of one ring, as a tap does on the device, and writes
every animation frame as a numbered SVG file until the spring comes to rest.

Example:
  donut animate --ring journey --segment 1 --out frames/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition()
			if err != nil {
				return err
			}
			index, err := ringIndex(def, ring)
			if err != nil {
				return err
			}
			frames, err := animate(cmd.Context(), def, index, segment, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", frames, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&ring, "ring", "0", "Ring name or index")
	cmd.Flags().IntVar(&segment, "segment", 0, "Segment to focus")
	cmd.Flags().StringVar(&out, "out", "frames", "Output directory")
	return cmd
}

// ringIndex resolves a ring by name first, then by position
func ringIndex(def *definition.Definition, ring string) (int, error) {
	for i, r := range def.Rings {
		if r.Name == ring {
			return i, nil
		}
	}
	i, err := strconv.Atoi(ring)
	if err != nil || i < 0 || i >= len(def.Rings) {
		return 0, fmt.Errorf("unknown ring %q", ring)
	}
	return i, nil
}

// animate writes the resting frame, then one frame per animation step
func animate(ctx context.Context, def *definition.Definition, ring, segment int, dir string) (int, error) {
	stack, err := def.Stack()
	if err != nil {
		return 0, err
	}
	base := stack.Rings[ring].Segments
	drill := anim.NewDrillDown(def.Rings[ring].Values())
	if err := drill.Toggle(segment); err != nil {
		return 0, err
	}

	opts := render.DefaultOptions()
	opts.Background = def.Background
	fw, err := render.NewFrameWriter(dir, stack.CanvasSize(), opts)
	if err != nil {
		return 0, err
	}

	write := func() error {
		stack.Rings[ring].Segments = drill.Segments(base)
		layers, err := stack.Compute(ctx)
		if err != nil {
			return err
		}
		_, err = fw.WriteFrame(layers)
		return err
	}

	if err := write(); err != nil {
		return fw.Count(), err
	}
	for more := true; more; {
		if err := ctx.Err(); err != nil {
			return fw.Count(), err
		}
		more = drill.Step()
		if err := write(); err != nil {
			return fw.Count(), err
		}
	}

	logger.Info("animation written",
		zap.String("ring", stack.Rings[ring].Name),
		zap.Int("segment", segment),
		zap.Int("frames", fw.Count()),
		zap.String("dir", fw.Dir()))
	return fw.Count(), nil
}
