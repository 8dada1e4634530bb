package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindsgn-studio/donut/tui"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Explore the chart in the terminal",
		Long: `Opens an interactive viewer: tab switches rings, the arrow keys pick a
segment, enter focuses it and r reloads the definition. The definition file is
reloaded automatically when it changes.

When stdout is not a terminal the geometry table is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout.Fd()) {
				logger.Debug("stdout is not a terminal, printing table")
				_, _, layers, err := computeDefinition(cmd.Context())
				if err != nil {
					return err
				}
				return writeTable(cmd.OutOrStdout(), layers)
			}

			def, err := loadDefinition()
			if err != nil {
				return err
			}
			model, err := tui.NewModel(def, configPath, logger)
			if err != nil {
				return err
			}
			defer model.Close()

			if _, err := tea.NewProgram(model).Run(); err != nil {
				logger.Error("viewer failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
