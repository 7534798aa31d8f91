package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/go-sod/avl/internal/config"
	"github.com/go-sod/avl/internal/logging"
	"github.com/go-sod/avl/internal/report"
	"github.com/go-sod/avl/internal/report/model"
	"github.com/go-sod/avl/internal/setup"
	"github.com/go-sod/avl/internal/srvenv"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	root    *cobra.Command
	cfg     config.Config
	env     *srvenv.SrvEnv
	format  string
	dbFile  string
	noStore bool
	quiet   bool
}

func newApp() *app {
	a := &app{}
	a.root = newRootCmd(a)
	return a
}

// execute runs the selected subcommand and releases the environment it set
// up, whether the command succeeded or not.
func (a *app) execute(ctx context.Context) (err error) {
	defer func() {
		if closeErr := a.env.Close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("close environment: %w", closeErr)
		}
	}()
	return a.root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "avlbench",
		Short:         "Profile and verify the AVL tree engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.format, "format", "", "report format: text, yaml or json (env AVL_REPORT_FORMAT)")
	flags.StringVar(&a.dbFile, "db", "", "bbolt file for run reports (env AVL_DB_FILENAME)")
	flags.BoolVar(&a.noStore, "no-store", false, "do not open the report database")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "hide banner and progress bars")

	root.AddCommand(
		newProfileCmd(a),
		newFootprintCmd(a),
		newStressCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, applies the persistent flags and then the
// command's own overrides, and attaches the configured logger to cmd.
func (a *app) setup(cmd *cobra.Command, overrides ...func() error) error {
	if !a.quiet {
		printBanner()
	}
	persistent := func() error {
		flags := cmd.Flags()
		if flags.Changed("format") {
			f, err := report.ParseFormat(a.format)
			if err != nil {
				return err
			}
			a.cfg.Report.Format = f
		}
		if flags.Changed("db") {
			a.cfg.Database.FileName = a.dbFile
		}
		if a.noStore {
			a.cfg.Database.Enabled = false
		}
		return nil
	}
	env, err := setup.Setup(cmd.Context(), &a.cfg, append([]func() error{persistent}, overrides...)...)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	a.env = env
	cmd.SetContext(logging.WithLogger(cmd.Context(), env.Logger()))
	return nil
}

func (a *app) progress(description string, total int) func(done, total int) {
	if a.quiet {
		return nil
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return func(done, _ int) {
		_ = bar.Set(done)
		if done == total {
			_ = bar.Finish()
		}
	}
}

// finish stores run when the database is open and prints it.
func (a *app) finish(ctx context.Context, cmd *cobra.Command, run *model.Run) error {
	logger := logging.FromContext(ctx)
	if runs := a.env.Runs(); runs != nil {
		if err := runs.Store(ctx, *run); err != nil {
			return fmt.Errorf("store run: %w", err)
		}
		logger.Infof("stored run %s", run.ID)
	}
	return report.Render(cmd.OutOrStdout(), run, a.env.ReportFormat())
}
