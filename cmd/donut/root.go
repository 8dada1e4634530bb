package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mindsgn-studio/donut/definition"
	"github.com/mindsgn-studio/donut/engine"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger = zap.NewNop()
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "donut",
		Short: "Donut and pie chart geometry",
		Long: `donut lays out concentric donut and pie charts and renders them.

Charts are described in a YAML or TOML definition file. Without --config the
built-in journey analysis screen is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Chart definition file (.yaml, .yml or .toml)")

	root.AddCommand(
		newRenderCmd(),
		newInspectCmd(),
		newAnimateCmd(),
		newViewCmd(),
		newVersionCmd(),
	)
	return root
}

// loadDefinition reads --config, or returns the built-in screen
func loadDefinition() (*definition.Definition, error) {
	if configPath == "" {
		logger.Debug("using built-in definition")
		return definition.Default(), nil
	}
	def, err := definition.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded definition", zap.String("path", configPath), zap.Int("rings", len(def.Rings)))
	return def, nil
}

// computeDefinition loads the definition and lays out every ring
func computeDefinition(ctx context.Context) (*definition.Definition, engine.Stack, engine.Layers, error) {
	def, err := loadDefinition()
	if err != nil {
		return nil, engine.Stack{}, nil, err
	}
	stack, err := def.Stack()
	if err != nil {
		return nil, engine.Stack{}, nil, err
	}
	layers, err := stack.Compute(ctx)
	if err != nil {
		return nil, engine.Stack{}, nil, err
	}
	for _, l := range layers {
		if l.Chart.Clamped {
			logger.Warn("inner radius clamped",
				zap.String("ring", l.Name),
				zap.Float64("innerRadius", l.Chart.InnerRadius))
		}
	}
	return def, stack, layers, nil
}
