// Package stress drives the tree through random insert/delete workloads and
// checks order, balance, membership and emptiness along the way.
package stress

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/go-sod/avl/internal/dataset"
	"github.com/go-sod/avl/internal/logging"
	"github.com/go-sod/avl/internal/report/model"
	"github.com/go-sod/avl/pkg/container/avltree"
)

// Trees larger than this are summarised instead of dumped on failure.
const maxDumpNodes = 64

type ProgressFn func(done, total int)

type ProvideFn func(*dataset.Generator, ProgressFn) (*Checker, error)

type Option func(*Checker)

func WithRounds(n int) Option {
	return func(c *Checker) {
		c.rounds = n
	}
}

func WithValidateEvery(n int) Option {
	return func(c *Checker) {
		c.validateEvery = n
	}
}

func WithParallelism(n int) Option {
	return func(c *Checker) {
		c.parallelism = n
	}
}

func WithProgress(fn ProgressFn) Option {
	return func(c *Checker) {
		c.progress = fn
	}
}

type Checker struct {
	gen           *dataset.Generator
	rounds        int
	validateEvery int
	parallelism   int
	progress      ProgressFn
}

func New(gen *dataset.Generator, opts ...Option) (*Checker, error) {
	if gen == nil {
		return nil, fmt.Errorf("dataset generator is not created")
	}
	c := &Checker{gen: gen, rounds: 50, validateEvery: 1, parallelism: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", c.rounds)
	}
	if c.parallelism <= 0 {
		c.parallelism = 1
	}
	return c, nil
}

type workload struct {
	inserts []int
	deletes []int
}

type roundResult struct {
	operations int
	maxHeight  int
}

// Run executes every round. A broken invariant does not return an error: it
// is recorded in the report's Failure field so the run can still be stored.
func (c *Checker) Run(ctx context.Context) (*model.Run, error) {
	logger := logging.FromContext(ctx)
	run := model.NewRun(model.KindStress, map[string]string{
		"dataset": string(c.gen.Kind()),
		"size":    strconv.Itoa(c.gen.Size()),
		"seed":    strconv.FormatUint(uint64(c.gen.Seed()), 10),
		"rounds":  strconv.Itoa(c.rounds),
	})

	workloads := make([]workload, c.rounds)
	for i := range workloads {
		inserts := c.gen.Next()
		deletes := append([]int(nil), inserts...)
		c.gen.Shuffle(deletes)
		workloads[i] = workload{inserts: inserts, deletes: deletes}
	}

	results := make([]roundResult, c.rounds)
	var (
		mtx  sync.Mutex
		done int
	)
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(c.parallelism)
	for i := range workloads {
		i := i
		if grpCtx.Err() != nil {
			break
		}
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			res, err := c.round(workloads[i])
			if err != nil {
				return fmt.Errorf("round %d: %w", i, err)
			}
			results[i] = res

			mtx.Lock()
			done++
			if c.progress != nil {
				c.progress(done, c.rounds)
			}
			mtx.Unlock()
			return nil
		})
	}
	err := grp.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	report := &model.Stress{Rounds: c.rounds}
	for _, res := range results {
		if res.operations == 0 {
			continue
		}
		report.Passed++
		report.Operations += res.operations
		report.MaxHeight = max(report.MaxHeight, res.maxHeight)
	}
	if err != nil {
		logger.Warnf("stress check failed: %v", err)
		report.Failure = err.Error()
	} else {
		logger.Infof("stress check passed %d rounds, %d operations", report.Passed, report.Operations)
	}

	run.Stress = report
	run.FinishedAt = time.Now()
	return &run, nil
}

func (c *Checker) round(w workload) (roundResult, error) {
	var (
		root *avltree.Node[int]
		res  roundResult
	)
	present := make(map[int]struct{}, len(w.inserts))

	for _, k := range w.inserts {
		root = avltree.Insert(root, k)
		present[k] = struct{}{}
		res.operations++
		if err := c.check(root, res.operations); err != nil {
			return roundResult{}, fmt.Errorf("after insert %d: %w", k, err)
		}
	}
	if err := avltree.Validate(root); err != nil {
		return roundResult{}, fmt.Errorf("after inserts: %w\n%s", err, dump(root))
	}
	res.maxHeight = root.Height()
	if bound := avltree.MaxHeight(len(present)); res.maxHeight > bound {
		return roundResult{}, fmt.Errorf("height %d exceeds bound %d for %d keys", res.maxHeight, bound, len(present))
	}
	for _, k := range w.inserts {
		if !avltree.Find(root, k) {
			return roundResult{}, fmt.Errorf("inserted key %d not found", k)
		}
		if _, ok := present[k+1]; avltree.Find(root, k+1) != ok {
			return roundResult{}, fmt.Errorf("membership of key %d: found %v, stored %v", k+1, !ok, ok)
		}
	}

	for _, k := range w.deletes {
		root = avltree.Delete(root, k)
		delete(present, k)
		res.operations++
		if avltree.Find(root, k) {
			return roundResult{}, fmt.Errorf("deleted key %d still found", k)
		}
		if err := c.check(root, res.operations); err != nil {
			return roundResult{}, fmt.Errorf("after delete %d: %w", k, err)
		}
	}
	if root != nil {
		return roundResult{}, fmt.Errorf("tree is not empty after deleting every key\n%s", dump(root))
	}
	return res, nil
}

func (c *Checker) check(root *avltree.Node[int], op int) error {
	if c.validateEvery <= 0 || op%c.validateEvery != 0 {
		return nil
	}
	return avltree.Validate(root)
}

func dump(root *avltree.Node[int]) string {
	if size := root.Len(); size > maxDumpNodes {
		return fmt.Sprintf("(%d nodes, height %d, root %d)", size, root.Height(), root.Key())
	}
	return spew.Sdump(root)
}
