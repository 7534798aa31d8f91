package avltree

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	ErrOrder   = errors.New("avltree: keys out of order")
	ErrHeight  = errors.New("avltree: stale cached height")
	ErrBalance = errors.New("avltree: node out of balance")
)

// Validate walks the whole tree and returns an error describing the first
// node that breaks key order, carries a wrong height, or is out of balance.
func Validate[K cmp.Ordered](root *Node[K]) error {
	_, err := validate(root, nil, nil)
	return err
}

// validate checks n against the open interval (lo, hi) and returns its
// recomputed height.
func validate[K cmp.Ordered](n *Node[K], lo, hi *K) (int, error) {
	if n == nil {
		return 0, nil
	}
	if lo != nil && cmp.Compare(n.key, *lo) <= 0 {
		return 0, fmt.Errorf("%w: %v is not greater than %v", ErrOrder, n.key, *lo)
	}
	if hi != nil && cmp.Compare(n.key, *hi) >= 0 {
		return 0, fmt.Errorf("%w: %v is not less than %v", ErrOrder, n.key, *hi)
	}
	lh, err := validate(n.left, lo, &n.key)
	if err != nil {
		return 0, err
	}
	rh, err := validate(n.right, &n.key, hi)
	if err != nil {
		return 0, err
	}
	h := 1 + max(lh, rh)
	if n.height != h {
		return 0, fmt.Errorf("%w: node %v has %d, want %d", ErrHeight, n.key, n.height, h)
	}
	if bf := lh - rh; bf >= needBalanceHeight || bf <= -needBalanceHeight {
		return 0, fmt.Errorf("%w: node %v has balance factor %d", ErrBalance, n.key, bf)
	}
	return h, nil
}
