package xbtree

import (
	"github.com/sirupsen/logrus"
	"tlog.app/go/errors"
)

type toRemove int

const (
	removeItem toRemove = iota
	removeMin
	removeMax
)

// Delete removes k and returns its value.
// ErrKeyNotFound is returned if there was no such key.
//
// Deletion is a single top-down pass: every child is grown to at least t items
// before it's descended into, so nodes may be rotated or merged on the path
// even if k turns out to be absent. Invariants hold either way.
func (t *Tree[K, V]) Delete(k K) (v V, err error) {
	it, ok := t.delete(k, removeItem)
	if !ok {
		return v, errors.Wrap(ErrKeyNotFound, "key %v", k)
	}

	return it.v, nil
}

func (t *Tree[K, V]) DeleteMin() (k K, v V, ok bool) {
	it, ok := t.delete(k, removeMin)

	return it.k, it.v, ok
}

func (t *Tree[K, V]) DeleteMax() (k K, v V, ok bool) {
	it, ok := t.delete(k, removeMax)

	return it.k, it.v, ok
}

func (t *Tree[K, V]) delete(k K, typ toRemove) (it item[K, V], ok bool) {
	it, ok = t.remove(t.root, k, typ)
	if ok {
		t.n--
	}

	if len(t.root.items) == 0 && !t.root.leaf() {
		t.root = t.root.children[0]
		t.h--

		t.debug("collapse root", nil)
	}

	return it, ok
}

func (t *Tree[K, V]) remove(n *node[K, V], k K, typ toRemove) (it item[K, V], ok bool) {
	var i int
	var found bool

	switch typ {
	case removeMin:
		if n.leaf() {
			if len(n.items) == 0 {
				return
			}

			return n.items.removeAt(0), true
		}
	case removeMax:
		i = len(n.items)

		if n.leaf() {
			if len(n.items) == 0 {
				return
			}

			return n.items.pop(), true
		}
	case removeItem:
		i, found = n.items.find(k, t.cmp)

		if n.leaf() {
			if !found {
				return
			}

			return n.items.removeAt(i), true
		}
	default:
		panic(typ)
	}

	if found {
		return t.removeInternal(n, i)
	}

	i = t.growChild(n, i)

	return t.remove(n.children[i], k, typ)
}

// removeInternal removes n.items[i] from internal node n.
func (t *Tree[K, V]) removeInternal(n *node[K, V], i int) (it item[K, V], ok bool) {
	it = n.items[i]
	min := t.minItems()

	switch {
	case len(n.children[i].items) > min:
		n.items[i], _ = t.remove(n.children[i], it.k, removeMax) // predecessor
	case len(n.children[i+1].items) > min:
		n.items[i], _ = t.remove(n.children[i+1], it.k, removeMin) // successor
	default:
		m := n.merge(i)

		t.trace("merge", logrus.Fields{"key": it.k})

		// it is at m.items[t-1] now
		return t.remove(m, it.k, removeItem)
	}

	return it, true
}

// growChild makes n.children[i] hold at least t items
// and returns the index of the child covering the same key range.
func (t *Tree[K, V]) growChild(n *node[K, V], i int) int {
	min := t.minItems()

	if len(n.children[i].items) > min {
		return i
	}

	switch {
	case i > 0 && len(n.children[i-1].items) > min:
		n.borrowFromLeft(i)

		t.trace("borrow left", logrus.Fields{"key": n.items[i-1].k})
	case i < len(n.items) && len(n.children[i+1].items) > min:
		n.borrowFromRight(i)

		t.trace("borrow right", logrus.Fields{"key": n.items[i].k})
	default:
		if i == len(n.items) {
			i--
		}

		t.trace("merge", logrus.Fields{"key": n.items[i].k})

		n.merge(i)
	}

	return i
}
