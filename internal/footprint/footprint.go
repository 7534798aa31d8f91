// Package footprint reports how much memory a populated tree occupies.
package footprint

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"time"

	"github.com/go-sod/avl/internal/dataset"
	"github.com/go-sod/avl/internal/logging"
	"github.com/go-sod/avl/internal/report/model"
	"github.com/go-sod/avl/pkg/container/avltree"
)

type ProvideFn func() (*Meter, error)

// Meter measures a tree of sequential keys, as inserted in ascending order.
type Meter struct {
	keys []int
}

func New(keys int) (*Meter, error) {
	gen, err := dataset.New(dataset.WithKind(dataset.KindSequential), dataset.WithSize(keys))
	if err != nil {
		return nil, fmt.Errorf("dataset.New: %w", err)
	}
	return &Meter{keys: gen.Next()}, nil
}

func (m *Meter) Keys() int {
	return len(m.keys)
}

func (m *Meter) Run(ctx context.Context) (*model.Run, error) {
	return Measure(ctx, m.keys)
}

// Layout describes the in-memory layout of the struct held by v, which may be
// a struct value or a pointer to one.
func Layout(v any) []model.Field {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	fields := make([]model.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fields = append(fields, model.Field{
			Name:   f.Name,
			Type:   f.Type.String(),
			Offset: f.Offset,
			Size:   f.Type.Size(),
		})
	}
	return fields
}

// Measure builds a tree from keys and reports its footprint. HeapBytes is the
// live heap growth observed across the build, so it is only meaningful when
// nothing else allocates concurrently.
func Measure(ctx context.Context, keys []int) (*model.Run, error) {
	logger := logging.FromContext(ctx)
	run := model.NewRun(model.KindFootprint, map[string]string{
		"keys": strconv.Itoa(len(keys)),
	})

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	tree := avltree.New[int]()
	for i, k := range keys {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		tree.Add(k)
	}

	runtime.GC()
	runtime.ReadMemStats(&after)
	if err := avltree.Validate(tree.Root()); err != nil {
		return nil, fmt.Errorf("validate tree: %w", err)
	}

	nodeType := reflect.TypeOf(avltree.Node[int]{})
	fp := &model.Footprint{
		Keys:        len(keys),
		Nodes:       tree.Len(),
		NodeType:    nodeType.String(),
		NodeSize:    nodeType.Size(),
		NodeFields:  Layout(avltree.Node[int]{}),
		TreeBytes:   uint64(tree.Len()) * uint64(nodeType.Size()),
		HeapBytes:   delta(after.HeapAlloc, before.HeapAlloc),
		HeapObjects: delta(after.HeapObjects, before.HeapObjects),
		Height:      tree.Height(),
		HeightBound: avltree.MaxHeight(tree.Len()),
	}
	runtime.KeepAlive(tree)

	logger.Infof("footprint of %d nodes: %d bytes computed, %d bytes heap", fp.Nodes, fp.TreeBytes, fp.HeapBytes)

	run.Footprint = fp
	run.FinishedAt = time.Now()
	return &run, nil
}

func delta(after, before uint64) uint64 {
	if after < before {
		return 0
	}
	return after - before
}
