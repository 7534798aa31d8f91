// Package avltree implements a height-balanced binary search tree.
//
// The tree is a plain root reference: Insert and Delete return the new root,
// which the caller stores back. Tree wraps that reference together with a
// key count for callers that prefer a handle.
//
// Neither form is safe for concurrent use.
package avltree

import "cmp"

// Insert adds key to the tree rooted at root and returns the new root.
// Inserting a key that is already present leaves the tree unchanged.
func Insert[K cmp.Ordered](root *Node[K], key K) *Node[K] {
	root, _ = root.insert(key)
	return root
}

// Find reports whether key is stored in the tree rooted at root.
func Find[K cmp.Ordered](root *Node[K], key K) bool {
	return root.find(key) != nil
}

// Delete removes key from the tree rooted at root and returns the new root.
// Deleting an absent key leaves the tree unchanged.
func Delete[K cmp.Ordered](root *Node[K], key K) *Node[K] {
	root, _ = root.remove(key)
	return root
}

// MaxHeight returns the worst-case height of an AVL tree holding n keys, with
// a leaf counted as height 1. It is the largest h whose minimal tree fits in
// n keys, where the minimal tree of height h holds N(h) = N(h-1) + N(h-2) + 1
// keys and N(0) = 0, N(1) = 1.
func MaxHeight(n int) int {
	if n <= 0 {
		return 0
	}
	h, prev, cur := 1, 0, 1
	for {
		next := cur + prev + 1
		if next > n || next < cur {
			return h
		}
		prev, cur = cur, next
		h++
	}
}

func New[K cmp.Ordered]() *Tree[K] {
	return &Tree[K]{}
}

type Tree[K cmp.Ordered] struct {
	root *Node[K]
	len  int
}

func (t *Tree[K]) Build(keys ...K) {
	for i := range keys {
		t.Add(keys[i])
	}
}

func (t *Tree[K]) Len() int {
	return t.len
}

func (t *Tree[K]) Height() int {
	return height(t.root)
}

// Root returns the current root, nil when the tree is empty.
func (t *Tree[K]) Root() *Node[K] {
	return t.root
}

func (t *Tree[K]) Reset() {
	t.root = nil
	t.len = 0
}

// Add inserts key and reports whether the tree grew.
func (t *Tree[K]) Add(key K) bool {
	var added bool
	t.root, added = t.root.insert(key)
	if added {
		t.len += 1
	}
	return added
}

// Remove deletes key and reports whether it was present.
func (t *Tree[K]) Remove(key K) bool {
	var removed bool
	t.root, removed = t.root.remove(key)
	if removed {
		t.len -= 1
	}
	return removed
}

func (t *Tree[K]) Contains(key K) bool {
	return t.root.find(key) != nil
}
