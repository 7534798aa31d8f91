package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindProfile   Kind = "profile"
	KindFootprint Kind = "footprint"
	KindStress    Kind = "stress"
)

var ErrUnknownKind = errors.New("unknown run kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindProfile, KindFootprint, KindStress:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// KindCount is the number of stored runs of one kind.
type KindCount struct {
	Kind Kind `json:"kind" yaml:"kind"`
	Runs int  `json:"runs" yaml:"runs"`
}

func NewRun(kind Kind, params map[string]string) Run {
	return Run{
		ID:        uuid.New(),
		Kind:      kind,
		Params:    params,
		StartedAt: time.Now(),
	}
}

// Run is everything one harness invocation produced.
type Run struct {
	ID         uuid.UUID         `json:"id" yaml:"id"`
	Kind       Kind              `json:"kind" yaml:"kind"`
	Params     map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	StartedAt  time.Time         `json:"startedAt" yaml:"startedAt"`
	FinishedAt time.Time         `json:"finishedAt" yaml:"finishedAt"`
	Trials     []Trial           `json:"trials,omitempty" yaml:"trials,omitempty"`
	Summary    *Summary          `json:"summary,omitempty" yaml:"summary,omitempty"`
	Footprint  *Footprint        `json:"footprint,omitempty" yaml:"footprint,omitempty"`
	Stress     *Stress           `json:"stress,omitempty" yaml:"stress,omitempty"`
}

func (r Run) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Trial is a single insert/find/delete pass over one dataset.
type Trial struct {
	Index    int           `json:"index" yaml:"index"`
	Keys     int           `json:"keys" yaml:"keys"`
	Distinct int           `json:"distinct" yaml:"distinct"`
	Height   int           `json:"height" yaml:"height"`
	Insert   time.Duration `json:"insertNs" yaml:"insertNs"`
	Find     time.Duration `json:"findNs" yaml:"findNs"`
	Delete   time.Duration `json:"deleteNs" yaml:"deleteNs"`
}

type PhaseSummary struct {
	Total time.Duration `json:"totalNs" yaml:"totalNs"`
	Mean  time.Duration `json:"meanNs" yaml:"meanNs"`
	Min   time.Duration `json:"minNs" yaml:"minNs"`
	Max   time.Duration `json:"maxNs" yaml:"maxNs"`
}

type Summary struct {
	Trials    int          `json:"trials" yaml:"trials"`
	MaxHeight int          `json:"maxHeight" yaml:"maxHeight"`
	Insert    PhaseSummary `json:"insert" yaml:"insert"`
	Find      PhaseSummary `json:"find" yaml:"find"`
	Delete    PhaseSummary `json:"delete" yaml:"delete"`
}

type Field struct {
	Name   string  `json:"name" yaml:"name"`
	Type   string  `json:"type" yaml:"type"`
	Offset uintptr `json:"offset" yaml:"offset"`
	Size   uintptr `json:"size" yaml:"size"`
}

type Footprint struct {
	Keys        int     `json:"keys" yaml:"keys"`
	Nodes       int     `json:"nodes" yaml:"nodes"`
	NodeType    string  `json:"nodeType" yaml:"nodeType"`
	NodeSize    uintptr `json:"nodeSize" yaml:"nodeSize"`
	NodeFields  []Field `json:"nodeFields" yaml:"nodeFields"`
	TreeBytes   uint64  `json:"treeBytes" yaml:"treeBytes"`
	HeapBytes   uint64  `json:"heapBytes" yaml:"heapBytes"`
	HeapObjects uint64  `json:"heapObjects" yaml:"heapObjects"`
	Height      int     `json:"height" yaml:"height"`
	HeightBound int     `json:"heightBound" yaml:"heightBound"`
}

type Stress struct {
	Rounds     int    `json:"rounds" yaml:"rounds"`
	Passed     int    `json:"passed" yaml:"passed"`
	Operations int    `json:"operations" yaml:"operations"`
	MaxHeight  int    `json:"maxHeight" yaml:"maxHeight"`
	Failure    string `json:"failure,omitempty" yaml:"failure,omitempty"`
}
