// Package profile times insert, find and delete passes over generated datasets.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-sod/avl/internal/dataset"
	"github.com/go-sod/avl/internal/logging"
	"github.com/go-sod/avl/internal/report/model"
	"github.com/go-sod/avl/pkg/container/avltree"
)

var ErrNotEmpty = errors.New("tree is not empty after deleting every key")

// ProgressFn is called once per finished trial.
type ProgressFn func(done, total int)

type ProvideFn func(*dataset.Generator, ProgressFn) (*Runner, error)

type Option func(*Runner)

func WithTrials(n int) Option {
	return func(r *Runner) {
		r.trials = n
	}
}

func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.parallelism = n
	}
}

func WithMeasureFind(t bool) Option {
	return func(r *Runner) {
		r.measureFind = t
	}
}

func WithProgress(fn ProgressFn) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

type Runner struct {
	gen         *dataset.Generator
	trials      int
	parallelism int
	measureFind bool
	progress    ProgressFn
	clock       func() time.Time
}

func New(gen *dataset.Generator, opts ...Option) (*Runner, error) {
	if gen == nil {
		return nil, fmt.Errorf("dataset generator is not created")
	}
	r := &Runner{gen: gen, trials: 100, parallelism: 1, measureFind: true, clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if r.trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", r.trials)
	}
	if r.parallelism <= 0 {
		r.parallelism = 1
	}
	return r, nil
}

// Run times every trial and returns the finished report. Datasets are drawn
// up front so a seeded run is reproducible regardless of parallelism.
func (r *Runner) Run(ctx context.Context) (*model.Run, error) {
	logger := logging.FromContext(ctx)
	run := model.NewRun(model.KindProfile, map[string]string{
		"dataset":     string(r.gen.Kind()),
		"size":        strconv.Itoa(r.gen.Size()),
		"seed":        strconv.FormatUint(uint64(r.gen.Seed()), 10),
		"trials":      strconv.Itoa(r.trials),
		"parallelism": strconv.Itoa(r.parallelism),
	})

	datasets := make([][]int, r.trials)
	for i := range datasets {
		datasets[i] = r.gen.Next()
	}

	logger.Infof("profiling %d trials of %d keys", r.trials, r.gen.Size())

	trials := make([]model.Trial, r.trials)
	var (
		mtx  sync.Mutex
		done int
	)
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(r.parallelism)
	for i := range datasets {
		i := i
		if grpCtx.Err() != nil {
			break
		}
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			trial, err := r.trial(i, datasets[i])
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			trials[i] = trial
			logger.Debugf("trial %d: insert %d ns, delete %d ns", i, trial.Insert.Nanoseconds(), trial.Delete.Nanoseconds())

			mtx.Lock()
			done++
			if r.progress != nil {
				r.progress(done, r.trials)
			}
			mtx.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run.Trials = trials
	run.Summary = Summarize(trials)
	run.FinishedAt = r.clock()
	return &run, nil
}

func (r *Runner) trial(idx int, keys []int) (model.Trial, error) {
	var root *avltree.Node[int]
	trial := model.Trial{Index: idx, Keys: len(keys), Distinct: dataset.Distinct(keys)}

	start := time.Now()
	for _, k := range keys {
		root = avltree.Insert(root, k)
	}
	trial.Insert = time.Since(start)
	trial.Height = root.Height()

	if r.measureFind {
		start = time.Now()
		for _, k := range keys {
			if !avltree.Find(root, k) {
				return trial, fmt.Errorf("inserted key %d not found", k)
			}
		}
		trial.Find = time.Since(start)
	}

	start = time.Now()
	for _, k := range keys {
		root = avltree.Delete(root, k)
	}
	trial.Delete = time.Since(start)

	if root != nil {
		return trial, ErrNotEmpty
	}
	return trial, nil
}

// Summarize aggregates per-phase durations over trials.
func Summarize(trials []model.Trial) *model.Summary {
	s := &model.Summary{Trials: len(trials)}
	if len(trials) == 0 {
		return s
	}
	insert := make([]time.Duration, len(trials))
	find := make([]time.Duration, len(trials))
	del := make([]time.Duration, len(trials))
	for i, t := range trials {
		insert[i], find[i], del[i] = t.Insert, t.Find, t.Delete
		s.MaxHeight = max(s.MaxHeight, t.Height)
	}
	s.Insert = summarizePhase(insert)
	s.Find = summarizePhase(find)
	s.Delete = summarizePhase(del)
	return s
}

func summarizePhase(ds []time.Duration) model.PhaseSummary {
	p := model.PhaseSummary{Min: ds[0], Max: ds[0]}
	for _, d := range ds {
		p.Total += d
		p.Min = min(p.Min, d)
		p.Max = max(p.Max, d)
	}
	p.Mean = p.Total / time.Duration(len(ds))
	return p
}
