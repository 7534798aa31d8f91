package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-sod/avl/internal/dataset"
)

type datasetFlags struct {
	kind  string
	size  int
	bound int
	seed  uint32
}

func (f *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "dataset kind: sequential, random or fixed (env AVL_DATASET_KIND)")
	cmd.Flags().IntVar(&f.size, "size", 0, "keys per dataset (env AVL_DATASET_SIZE)")
	cmd.Flags().IntVar(&f.bound, "bound", 0, "random keys are drawn from [0, bound) (env AVL_DATASET_KEY_BOUND)")
	cmd.Flags().Uint32Var(&f.seed, "seed", 0, "random seed, 0 picks one from the clock (env AVL_DATASET_SEED)")
}

func (f *datasetFlags) apply(cmd *cobra.Command, cfg *dataset.Config) error {
	flags := cmd.Flags()
	if flags.Changed("kind") {
		kind, err := dataset.ParseKind(f.kind)
		if err != nil {
			return err
		}
		cfg.Kind = kind
	}
	if flags.Changed("size") {
		cfg.Size = f.size
	}
	if flags.Changed("bound") {
		cfg.KeyBound = f.bound
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	return nil
}

func newProfileCmd(a *app) *cobra.Command {
	var (
		ds       datasetFlags
		trials   int
		parallel int
		noFind   bool
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Time insert, find and delete passes over generated datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.setup(cmd, func() error {
				if cmd.Flags().Changed("trials") {
					a.cfg.Profile.Trials = trials
				}
				if cmd.Flags().Changed("parallel") {
					a.cfg.Profile.Parallelism = parallel
				}
				if noFind {
					a.cfg.Profile.MeasureFind = false
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
			runner, err := a.env.ProvideProfiler()(gen, a.progress("profiling", a.cfg.Profile.Trials))
			if err != nil {
				return fmt.Errorf("profiler provider function error: %w", err)
			}
			run, err := runner.Run(ctx)
			if err != nil {
				return fmt.Errorf("profile.Run: %w", err)
			}
			return a.finish(ctx, cmd, run)
		},
	}
	ds.register(cmd)
	cmd.Flags().IntVar(&trials, "trials", 0, "number of datasets to time (env AVL_PROFILE_TRIALS)")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "trials timed at once (env AVL_PROFILE_PARALLELISM)")
	cmd.Flags().BoolVar(&noFind, "no-find", false, "skip the lookup pass")
	return cmd
}
