package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-sod/avl/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print avlbench version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", buildinfo.Info.Name(), buildinfo.Info.Tag(), buildinfo.Info.Time())
		},
	}
}
