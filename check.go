package xbtree

import (
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
)

type checker[K, V any] struct {
	t *Tree[K, V]

	leafDepth int
	items     int
}

// Check walks the whole tree and returns the first broken invariant
// wrapped into ErrCorrupted. It's O(n) and meant for tests and debugging.
func (t *Tree[K, V]) Check() error {
	if t.root == nil {
		return errors.Wrap(ErrCorrupted, "%v: nil root", loc.Caller(0))
	}

	c := checker[K, V]{t: t, leafDepth: -1}

	err := c.walk(t.root, nil, bound[K]{}, bound[K]{})
	if err != nil {
		return err
	}

	if c.leafDepth+1 != t.h {
		return c.errorf(nil, "height %d, leaves at depth %d", t.h, c.leafDepth)
	}

	if c.items != t.n {
		return c.errorf(nil, "len %d, counted %d items", t.n, c.items)
	}

	return nil
}

// path is the list of child indexes from the root.
func (c *checker[K, V]) walk(n *node[K, V], path []int, lo, hi bound[K]) error {
	t := c.t
	d := len(path)

	if n == nil {
		return c.errorf(path, "nil node")
	}

	if d != 0 && len(n.items) < t.minItems() {
		return c.errorf(path, "underflow: %d items, min %d", len(n.items), t.minItems())
	}

	if len(n.items) > t.maxItems() {
		return c.errorf(path, "overflow: %d items, max %d", len(n.items), t.maxItems())
	}

	if d == 0 && len(n.items) == 0 && !n.leaf() {
		return c.errorf(path, "empty internal root")
	}

	for i, it := range n.items {
		if i > 0 && t.cmp(n.items[i-1].k, it.k) >= 0 {
			return c.errorf(path, "items %d and %d out of order: %v >= %v", i-1, i, n.items[i-1].k, it.k)
		}

		if lo.ok && t.cmp(it.k, lo.k) <= 0 {
			return c.errorf(path, "item %d: %v <= lower bound %v", i, it.k, lo.k)
		}

		if hi.ok && t.cmp(it.k, hi.k) >= 0 {
			return c.errorf(path, "item %d: %v >= upper bound %v", i, it.k, hi.k)
		}
	}

	c.items += len(n.items)

	if n.leaf() {
		switch {
		case c.leafDepth == -1:
			c.leafDepth = d
		case c.leafDepth != d:
			return c.errorf(path, "leaf at depth %d, expected %d", d, c.leafDepth)
		}

		return nil
	}

	if len(n.children) != len(n.items)+1 {
		return c.errorf(path, "%d children for %d items", len(n.children), len(n.items))
	}

	for i, ch := range n.children {
		clo, chi := lo, hi

		if i > 0 {
			clo = bound[K]{k: n.items[i-1].k, ok: true}
		}

		if i < len(n.items) {
			chi = bound[K]{k: n.items[i].k, ok: true}
		}

		err := c.walk(ch, append(path[:d:d], i), clo, chi)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *checker[K, V]) errorf(path []int, f string, args ...interface{}) error {
	return errors.Wrap(ErrCorrupted, "%v: node %v: %s", loc.Caller(1), path, fmt.Sprintf(f, args...))
}
