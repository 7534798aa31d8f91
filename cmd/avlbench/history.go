package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/go-sod/avl/internal/report"
	reportDb "github.com/go-sod/avl/internal/report/database"
	"github.com/go-sod/avl/internal/report/model"
)

var errNoDatabase = errors.New("report database is disabled")

func newHistoryCmd(a *app) *cobra.Command {
	var kind string
	open := func(cmd *cobra.Command) (*reportDb.DB, error) {
		if err := a.setup(cmd); err != nil {
			return nil, err
		}
		runs := a.env.Runs()
		if runs == nil {
			return nil, errNoDatabase
		}
		return runs, nil
	}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := open(cmd)
			if err != nil {
				return err
			}
			var filter reportDb.FilterFn
			if kind != "" {
				k, err := model.ParseKind(kind)
				if err != nil {
					return err
				}
				filter = func(run model.Run) bool { return run.Kind == k }
			}
			list, err := runs.FindAll(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("runs.FindAll: %w", err)
			}
			counts, err := countRuns(runs)
			if err != nil {
				return err
			}
			if err := report.RenderList(cmd.OutOrStdout(), list); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return report.RenderCounts(cmd.OutOrStdout(), counts)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list runs of this kind: profile, footprint or stress")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print a stored run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid run id %q: %w", args[0], err)
				}
				runs, err := open(cmd)
				if err != nil {
					return err
				}
				run, err := runs.FindByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				return report.Render(cmd.OutOrStdout(), &run, a.env.ReportFormat())
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a stored run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid run id %q: %w", args[0], err)
				}
				runs, err := open(cmd)
				if err != nil {
					return err
				}
				run, err := runs.FindByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				return runs.Delete(cmd.Context(), run)
			},
		},
	)
	return cmd
}

// countRuns reports the stored runs per kind, in index order.
func countRuns(runs *reportDb.DB) ([]model.KindCount, error) {
	kinds, err := runs.Kinds()
	if err != nil {
		return nil, fmt.Errorf("runs.Kinds: %w", err)
	}
	counts := make([]model.KindCount, 0, len(kinds))
	for _, kind := range kinds {
		n, err := runs.CountByKind(kind)
		if err != nil {
			return nil, fmt.Errorf("runs.CountByKind: %w", err)
		}
		counts = append(counts, model.KindCount{Kind: kind, Runs: n})
	}
	return counts, nil
}
