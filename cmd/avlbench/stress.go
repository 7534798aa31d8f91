package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStressCmd(a *app) *cobra.Command {
	var (
		ds            datasetFlags
		rounds        int
		validateEvery int
		parallel      int
	)
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Check order, balance and round-trip invariants under random workloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.setup(cmd, func() error {
				flags := cmd.Flags()
				if flags.Changed("rounds") {
					a.cfg.Stress.Rounds = rounds
				}
				if flags.Changed("validate-every") {
					a.cfg.Stress.ValidateEvery = validateEvery
				}
				if flags.Changed("parallel") {
					a.cfg.Stress.Parallelism = parallel
				}
				return ds.apply(cmd, &a.cfg.Dataset)
			})
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			gen, err := a.env.ProvideDataset()()
			if err != nil {
				return fmt.Errorf("dataset provider function error: %w", err)
			}
			checker, err := a.env.ProvideStress()(gen, a.progress("stressing", a.cfg.Stress.Rounds))
			if err != nil {
				return fmt.Errorf("stress provider function error: %w", err)
			}
			run, err := checker.Run(ctx)
			if err != nil {
				return fmt.Errorf("stress.Run: %w", err)
			}
			if err := a.finish(ctx, cmd, run); err != nil {
				return err
			}
			if run.Stress.Failure != "" {
				return fmt.Errorf("stress check failed: %s", run.Stress.Failure)
			}
			return nil
		},
	}
	ds.register(cmd)
	cmd.Flags().IntVar(&rounds, "rounds", 0, "insert/delete rounds (env AVL_STRESS_ROUNDS)")
	cmd.Flags().IntVar(&validateEvery, "validate-every", 0, "validate the tree every n operations (env AVL_STRESS_VALIDATE_EVERY)")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "rounds checked at once (env AVL_STRESS_PARALLELISM)")
	return cmd
}
