package avltree

import (
	"cmp"
)

const needBalanceHeight = 2

// Node is a single key in the tree together with the subtrees it owns.
// A nil *Node is an empty tree.
type Node[K cmp.Ordered] struct {
	key    K
	left   *Node[K]
	right  *Node[K]
	height int
}

// Key returns the key stored in the node.
func (n *Node[K]) Key() K {
	return n.key
}

// Height returns the cached height of the subtree rooted at n, 0 for nil.
func (n *Node[K]) Height() int {
	return height(n)
}

// Len counts the keys in the subtree rooted at n, 0 for nil.
func (n *Node[K]) Len() int {
	return n.size()
}

func newNode[K cmp.Ordered](key K) *Node[K] {
	return &Node[K]{key: key, height: 1}
}

func height[K cmp.Ordered](n *Node[K]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor[K cmp.Ordered](n *Node[K]) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func (n *Node[K]) computeHeight() {
	n.height = 1 + max(height(n.left), height(n.right))
}

func (n *Node[K]) rotateRight() *Node[K] {
	root := n.left
	grandson := root.right
	n.left = grandson
	root.right = n
	n.computeHeight()
	root.computeHeight()
	return root
}

func (n *Node[K]) rotateLeft() *Node[K] {
	root := n.right
	grandson := root.left
	n.right = grandson
	root.left = n
	n.computeHeight()
	root.computeHeight()
	return root
}

// rebalance restores the AVL property at n, assuming both subtrees are
// already balanced, and returns the new subtree root.
func (n *Node[K]) rebalance() *Node[K] {
	n.computeHeight()
	switch bf := balanceFactor(n); {
	case bf >= needBalanceHeight:
		if balanceFactor(n.left) < 0 {
			n.left = n.left.rotateLeft()
		}
		return n.rotateRight()
	case bf <= -needBalanceHeight:
		if balanceFactor(n.right) > 0 {
			n.right = n.right.rotateRight()
		}
		return n.rotateLeft()
	}
	return n
}

func (n *Node[K]) insert(key K) (*Node[K], bool) {
	if n == nil {
		return newNode(key), true
	}
	var added bool
	switch c := cmp.Compare(key, n.key); {
	case c < 0:
		n.left, added = n.left.insert(key)
	case c > 0:
		n.right, added = n.right.insert(key)
	default:
		return n, false
	}
	if !added {
		return n, false
	}
	return n.rebalance(), true
}

func (n *Node[K]) remove(key K) (*Node[K], bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch c := cmp.Compare(key, n.key); {
	case c < 0:
		n.left, removed = n.left.remove(key)
	case c > 0:
		n.right, removed = n.right.remove(key)
	default:
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		successor := n.right.min()
		if successor == nil {
			panic("avltree: two-child node without successor")
		}
		n.key = successor.key
		n.right, _ = n.right.remove(successor.key)
		removed = true
	}
	if !removed {
		return n, false
	}
	return n.rebalance(), true
}

func (n *Node[K]) find(key K) *Node[K] {
	for n != nil {
		switch c := cmp.Compare(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func (n *Node[K]) min() *Node[K] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *Node[K]) size() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.size() + n.right.size()
}
