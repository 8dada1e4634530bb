package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindsgn-studio/donut/internal/appversion"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "donut", appversion.String())
		},
	}
}
