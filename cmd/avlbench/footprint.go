package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFootprintCmd(a *app) *cobra.Command {
	var keys int
	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Report node layout and memory used by a tree of sequential keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.setup(cmd, func() error {
				if cmd.Flags().Changed("keys") {
					a.cfg.Footprint.Keys = keys
				}
				return nil
			})
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			meter, err := a.env.ProvideFootprint()()
			if err != nil {
				return fmt.Errorf("footprint provider function error: %w", err)
			}
			run, err := meter.Run(ctx)
			if err != nil {
				return fmt.Errorf("footprint.Run: %w", err)
			}
			return a.finish(ctx, cmd, run)
		},
	}
	cmd.Flags().IntVar(&keys, "keys", 0, "sequential keys to insert (env AVL_FOOTPRINT_KEYS)")
	return cmd
}
