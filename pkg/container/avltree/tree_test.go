package avltree

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func inOrder[K int | string](n *Node[K], out *[]K) {
	if n == nil {
		return
	}
	inOrder(n.left, out)
	*out = append(*out, n.key)
	inOrder(n.right, out)
}

func keysOf[K int | string](root *Node[K]) []K {
	out := []K{}
	inOrder(root, &out)
	return out
}

func equalKeys[K comparable](a, b []K) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustValidate[K int | string](t *testing.T, root *Node[K]) {
	t.Helper()
	if err := Validate(root); err != nil {
		t.Fatalf("tree invariant broken: %v\n%s", err, spew.Sdump(root))
	}
}

func TestInsert_Rotations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		keys         []int
		expectedRoot int
		expected     []int
	}{
		{name: "left_left", keys: []int{30, 20, 10}, expectedRoot: 20, expected: []int{10, 20, 30}},
		{name: "right_right", keys: []int{10, 20, 30}, expectedRoot: 20, expected: []int{10, 20, 30}},
		{name: "left_right", keys: []int{30, 10, 20}, expectedRoot: 20, expected: []int{10, 20, 30}},
		{name: "right_left", keys: []int{10, 30, 20}, expectedRoot: 20, expected: []int{10, 20, 30}},
		{
			name:         "benchmark_keys",
			keys:         []int{10, 20, 30, 40, 50, 25},
			expectedRoot: 30,
			expected:     []int{10, 20, 25, 30, 40, 50},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var root *Node[int]
			for _, k := range test.keys {
				root = Insert(root, k)
				mustValidate(t, root)
			}
			if root.Key() != test.expectedRoot {
				t.Errorf("root key got: %v, expected: %v", root.Key(), test.expectedRoot)
			}
			if got := keysOf(root); !equalKeys(got, test.expected) {
				t.Errorf("in-order keys got: %v, expected: %v", got, test.expected)
			}
		})
	}
}

func TestInsert_Duplicate(t *testing.T) {
	t.Parallel()
	var once, twice *Node[int]
	for _, k := range []int{5, 3, 8, 1} {
		once = Insert(once, k)
		twice = Insert(twice, k)
	}
	twice = Insert(twice, 3)
	twice = Insert(twice, 8)
	mustValidate(t, twice)
	if got, expected := keysOf(twice), keysOf(once); !equalKeys(got, expected) {
		t.Errorf("duplicate insert changed the tree, got: %v, expected: %v", got, expected)
	}
	if twice.Height() != once.Height() {
		t.Errorf("duplicate insert changed the height, got: %d, expected: %d", twice.Height(), once.Height())
	}
}

func TestFind(t *testing.T) {
	t.Parallel()
	var root *Node[int]
	for _, k := range []int{10, 20, 30, 40, 50, 25} {
		root = Insert(root, k)
	}
	tests := []struct {
		name     string
		key      int
		expected bool
	}{
		{name: "positive_root", key: 30, expected: true},
		{name: "positive_leaf", key: 25, expected: true},
		{name: "positive_min", key: 10, expected: true},
		{name: "negative_between", key: 26, expected: false},
		{name: "negative_below", key: -1, expected: false},
		{name: "negative_above", key: 51, expected: false},
	}
	for _, test := range tests {
		if got := Find(root, test.key); got != test.expected {
			t.Errorf("%s: Find(%d) got: %v, expected: %v", test.name, test.key, got, test.expected)
		}
	}
	if Find[int](nil, 1) {
		t.Errorf("Find on an empty tree got: true, expected: false")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		keys     []int
		remove   []int
		expected []int
		absent   []int
	}{
		{
			name:     "benchmark_keys",
			keys:     []int{10, 20, 30, 40, 50, 25},
			remove:   []int{25, 10},
			expected: []int{20, 30, 40, 50},
			absent:   []int{10, 25},
		},
		{
			name:     "leaf",
			keys:     []int{2, 1, 3},
			remove:   []int{3},
			expected: []int{1, 2},
			absent:   []int{3},
		},
		{
			name:     "one_child",
			keys:     []int{2, 1, 3, 4},
			remove:   []int{3},
			expected: []int{1, 2, 4},
			absent:   []int{3},
		},
		{
			name:     "two_children_root",
			keys:     []int{40, 20, 60, 10, 30, 50, 70, 55},
			remove:   []int{40},
			expected: []int{10, 20, 30, 50, 55, 60, 70},
			absent:   []int{40},
		},
		{
			name:     "cascading_rebalance",
			keys:     []int{50, 25, 75, 10, 30, 60, 80, 5, 15, 27, 55, 1},
			remove:   []int{80},
			expected: []int{1, 5, 10, 15, 25, 27, 30, 50, 55, 60, 75},
			absent:   []int{80},
		},
		{
			name:     "absent_key",
			keys:     []int{1, 2, 3},
			remove:   []int{42},
			expected: []int{1, 2, 3},
			absent:   []int{42},
		},
		{
			name:     "all",
			keys:     []int{3, 1, 2},
			remove:   []int{1, 2, 3},
			expected: []int{},
			absent:   []int{1, 2, 3},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var root *Node[int]
			for _, k := range test.keys {
				root = Insert(root, k)
			}
			for _, k := range test.remove {
				root = Delete(root, k)
				mustValidate(t, root)
			}
			if got := keysOf(root); !equalKeys(got, test.expected) {
				t.Errorf("in-order keys got: %v, expected: %v", got, test.expected)
			}
			for _, k := range test.expected {
				if !Find(root, k) {
					t.Errorf("Find(%d) got: false, expected: true", k)
				}
			}
			for _, k := range test.absent {
				if Find(root, k) {
					t.Errorf("Find(%d) got: true, expected: false", k)
				}
			}
		})
	}
}

func TestDelete_Empty(t *testing.T) {
	t.Parallel()
	if root := Delete[int](nil, 7); root != nil {
		t.Errorf("Delete on an empty tree got: %v, expected: nil", root)
	}
}

func TestRoundTrip_Random(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		n := 1 + rnd.Intn(2000)
		keys := make([]int, n)
		set := map[int]struct{}{}
		var root *Node[int]
		for i := range keys {
			keys[i] = rnd.Intn(10000)
			set[keys[i]] = struct{}{}
			root = Insert(root, keys[i])
		}
		mustValidate(t, root)

		if got := root.size(); got != len(set) {
			t.Fatalf("round %d: size got: %d, expected: %d", round, got, len(set))
		}
		if h, bound := root.Height(), MaxHeight(len(set)); h > bound {
			t.Fatalf("round %d: height got: %d, expected at most: %d", round, h, bound)
		}
		for k := -5; k < 10005; k += 7 {
			_, ok := set[k]
			if Find(root, k) != ok {
				t.Fatalf("round %d: Find(%d) got: %v, expected: %v", round, k, !ok, ok)
			}
		}

		expected := make([]int, 0, len(set))
		for k := range set {
			expected = append(expected, k)
		}
		sort.Ints(expected)
		if got := keysOf(root); !equalKeys(got, expected) {
			t.Fatalf("round %d: in-order keys are not strictly increasing", round)
		}

		rnd.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		for i, k := range keys {
			root = Delete(root, k)
			if i%97 == 0 {
				mustValidate(t, root)
			}
		}
		if root != nil {
			t.Fatalf("round %d: tree is not empty after deleting every key:\n%s", round, spew.Sdump(root))
		}
	}
}

func TestHeight_Sequential(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    int
	}{
		{name: "one", n: 1},
		{name: "hundred", n: 100},
		{name: "ascending_100k", n: 100000},
	}
	for _, test := range tests {
		var root *Node[int]
		for i := 0; i < test.n; i++ {
			root = Insert(root, i)
		}
		mustValidate(t, root)
		if h, bound := root.Height(), MaxHeight(test.n); h > bound {
			t.Errorf("%s: height got: %d, expected at most: %d", test.name, h, bound)
		}
	}
}

func TestMaxHeight(t *testing.T) {
	t.Parallel()
	// Fewest keys an AVL tree of height h can hold: 1, 2, 4, 7, 12, 20, 33.
	// One key short of the next minimum still caps the height at h.
	tests := []struct {
		n        int
		expected int
	}{
		{n: 0, expected: 0},
		{n: 1, expected: 1},
		{n: 2, expected: 2},
		{n: 3, expected: 2},
		{n: 4, expected: 3},
		{n: 6, expected: 3},
		{n: 7, expected: 4},
		{n: 11, expected: 4},
		{n: 12, expected: 5},
		{n: 19, expected: 5},
		{n: 20, expected: 6},
		{n: 32, expected: 6},
		{n: 33, expected: 7},
	}
	for _, test := range tests {
		if got := MaxHeight(test.n); got != test.expected {
			t.Errorf("MaxHeight(%d) got: %d, expected: %d", test.n, got, test.expected)
		}
	}
}

func TestMaxHeight_MinimalTrees(t *testing.T) {
	t.Parallel()
	prev, cur := 0, 1
	for h := 1; h < 80; h++ {
		if got := MaxHeight(cur); got != h {
			t.Fatalf("MaxHeight(%d) got: %d, expected: %d", cur, got, h)
		}
		next := cur + prev + 1
		if got := MaxHeight(next - 1); got != h {
			t.Fatalf("MaxHeight(%d) got: %d, expected: %d", next-1, got, h)
		}
		prev, cur = cur, next
	}
}

func TestMaxHeight_LogBound(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 100000; n++ {
		if h, bound := MaxHeight(n), 1.44*math.Log2(float64(n)+1); float64(h) > bound {
			t.Fatalf("MaxHeight(%d) got: %d, expected at most: %.3f", n, h, bound)
		}
	}
}

func TestHeight_MinimalTree(t *testing.T) {
	t.Parallel()
	// Fibonacci tree of height 6 built bottom up holds the fewest keys (20).
	var build func(h int, next *int) *Node[int]
	build = func(h int, next *int) *Node[int] {
		if h <= 0 {
			return nil
		}
		n := &Node[int]{height: h}
		n.left = build(h-1, next)
		n.key = *next
		*next++
		n.right = build(h-2, next)
		return n
	}
	next := 0
	root := build(6, &next)
	mustValidate(t, root)
	if got := root.size(); got != 20 {
		t.Fatalf("size got: %d, expected: %d", got, 20)
	}
	if got := MaxHeight(root.size()); got != root.Height() {
		t.Errorf("MaxHeight(%d) got: %d, expected: %d", root.size(), got, root.Height())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		root     *Node[int]
		expected error
	}{
		{name: "positive_empty", root: nil},
		{
			name: "positive_balanced",
			root: &Node[int]{key: 2, height: 2, left: &Node[int]{key: 1, height: 1}, right: &Node[int]{key: 3, height: 1}},
		},
		{
			name:     "negative_order",
			root:     &Node[int]{key: 2, height: 2, left: &Node[int]{key: 3, height: 1}},
			expected: ErrOrder,
		},
		{
			name:     "negative_duplicate",
			root:     &Node[int]{key: 2, height: 2, right: &Node[int]{key: 2, height: 1}},
			expected: ErrOrder,
		},
		{
			name:     "negative_height",
			root:     &Node[int]{key: 2, height: 5, left: &Node[int]{key: 1, height: 1}},
			expected: ErrHeight,
		},
		{
			name: "negative_balance",
			root: &Node[int]{key: 3, height: 3, left: &Node[int]{
				key: 2, height: 2, left: &Node[int]{key: 1, height: 1},
			}},
			expected: ErrBalance,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(test.root)
			if !errors.Is(err, test.expected) {
				t.Errorf("Validate got: %v, expected: %v", err, test.expected)
			}
		})
	}
}

func TestTree(t *testing.T) {
	t.Parallel()
	tree := New[string]()
	tree.Build("dog", "cat", "elephant", "bird", "cat")
	if tree.Len() != 4 {
		t.Errorf("Len got: %d, expected: 4", tree.Len())
	}
	if tree.Add("dog") {
		t.Errorf("Add of a duplicate got: true, expected: false")
	}
	if !tree.Remove("cat") {
		t.Errorf("Remove of a present key got: false, expected: true")
	}
	if tree.Remove("cat") {
		t.Errorf("Remove of an absent key got: true, expected: false")
	}
	if tree.Len() != 3 {
		t.Errorf("Len got: %d, expected: 3", tree.Len())
	}
	if !tree.Contains("bird") || tree.Contains("cat") {
		t.Errorf("Contains reports wrong membership")
	}
	mustValidate(t, tree.Root())
	if got, expected := keysOf(tree.Root()), []string{"bird", "dog", "elephant"}; !equalKeys(got, expected) {
		t.Errorf("in-order keys got: %v, expected: %v", got, expected)
	}
	if tree.Height() != 2 {
		t.Errorf("Height got: %d, expected: 2", tree.Height())
	}
	tree.Reset()
	if tree.Len() != 0 || tree.Root() != nil || tree.Height() != 0 {
		t.Errorf("Reset left a non-empty tree")
	}
}
