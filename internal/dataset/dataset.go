// Package dataset produces the key sequences fed to the tree harnesses.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/valyala/fastrand"
)

type Kind string

const (
	KindSequential Kind = "SEQUENTIAL"
	KindRandom     Kind = "RANDOM"
	KindFixed      Kind = "FIXED"
)

// FixedKeys is the insertion order that exercises every rotation case once.
var FixedKeys = []int{10, 20, 30, 40, 50, 25}

var ErrUnknownKind = errors.New("unknown dataset kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindSequential, KindRandom, KindFixed:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Decode lets envconfig accept any letter case and reject unknown kinds while
// the environment is loaded.
func (k *Kind) Decode(value string) error {
	kind, err := ParseKind(value)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

type Option func(*Generator)

func WithKind(k Kind) Option {
	return func(g *Generator) {
		g.kind = k
	}
}

func WithSize(n int) Option {
	return func(g *Generator) {
		g.size = n
	}
}

func WithKeyBound(n int) Option {
	return func(g *Generator) {
		g.bound = n
	}
}

func WithSeed(seed uint32) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// Generator hands out datasets one after another. It is not safe for
// concurrent use.
type Generator struct {
	kind  Kind
	size  int
	bound int
	seed  uint32
	rng   fastrand.RNG
}

func New(opts ...Option) (*Generator, error) {
	g := &Generator{kind: KindRandom, size: 1000, bound: 10000}
	for _, opt := range opts {
		opt(g)
	}
	switch g.kind {
	case KindSequential, KindRandom:
		if g.size <= 0 {
			return nil, fmt.Errorf("dataset size must be positive, got %d", g.size)
		}
	case KindFixed:
		g.size = len(FixedKeys)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, g.kind)
	}
	if g.kind == KindRandom && g.bound <= 0 {
		return nil, fmt.Errorf("dataset key bound must be positive, got %d", g.bound)
	}
	if g.kind == KindRandom && uint64(g.bound) > math.MaxUint32 {
		return nil, fmt.Errorf("dataset key bound must not exceed %d, got %d", uint64(math.MaxUint32), g.bound)
	}
	if g.seed == 0 {
		g.seed = uint32(time.Now().UnixNano())
	}
	g.rng.Seed(g.seed)
	return g, nil
}

// FromConfig builds a Generator from cfg.
func FromConfig(cfg *Config) (*Generator, error) {
	return New(
		WithKind(cfg.Kind),
		WithSize(cfg.Size),
		WithKeyBound(cfg.KeyBound),
		WithSeed(cfg.Seed),
	)
}

func (g *Generator) Kind() Kind { return g.kind }
func (g *Generator) Size() int { return g.size }
func (g *Generator) Seed() uint32 { return g.seed }

// Next returns a freshly allocated dataset.
func (g *Generator) Next() []int {
	keys := make([]int, g.size)
	switch g.kind {
	case KindSequential:
		for i := range keys {
			keys[i] = i
		}
	case KindFixed:
		copy(keys, FixedKeys)
	default:
		for i := range keys {
			keys[i] = int(g.rng.Uint32n(uint32(g.bound)))
		}
	}
	return keys
}

// Shuffle permutes keys in place using the generator's random source.
func (g *Generator) Shuffle(keys []int) {
	for i := len(keys) - 1; i > 0; i-- {
		j := int(g.rng.Uint32n(uint32(i + 1)))
		keys[i], keys[j] = keys[j], keys[i]
	}
}

// Distinct returns the number of different keys in keys.
func Distinct(keys []int) int {
	seen := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	return len(seen)
}

// ProvideFn builds a Generator from configuration resolved elsewhere.
type ProvideFn func() (*Generator, error)
