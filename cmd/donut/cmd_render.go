package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindsgn-studio/donut/engine"
	"github.com/mindsgn-studio/donut/render"
)

func newRenderCmd() *cobra.Command {
	var (
		output string
		id     string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart as SVG",
		Long: `Renders every ring of the definition into one SVG document, outermost
ring first. Writes to stdout unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, stack, layers, err := computeDefinition(cmd.Context())
			if err != nil {
				return err
			}

			opts := render.DefaultOptions()
			opts.Background = def.Background
			opts.ID = id

			if output == "" {
				return render.SVG(cmd.OutOrStdout(), stack.CanvasSize(), layers, opts)
			}
			if err := writeSVGFile(output, stack.CanvasSize(), layers, opts); err != nil {
				return err
			}
			logger.Info("wrote svg", zap.String("path", output), zap.Int("rings", len(layers)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the SVG to this file")
	cmd.Flags().StringVar(&id, "id", "", "Element id prefix (random when empty)")
	return cmd
}

// writeSVGFile renders into path. A failed close is reported, since
// buffered data may not have reached the disk.
func writeSVGFile(path string, canvas float64, layers engine.Layers, opts render.Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := render.SVG(file, canvas, layers, opts); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}
