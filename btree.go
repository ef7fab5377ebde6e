package xbtree

import (
	"github.com/sirupsen/logrus"
	"tlog.app/go/errors"
)

type (
	// Tree is an in-memory B-Tree of minimum degree t.
	// Every node except the root holds t-1..2t-1 items, the root 0..2t-1.
	// All leaves are at the same depth.
	//
	// Tree is not safe for concurrent use.
	Tree[K, V any] struct {
		root *node[K, V]
		cmp  func(a, b K) int

		t int // minimum degree
		n int // items
		h int // height, leaf root is 1

		l *logrus.Logger
	}

	Ordered interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
			~float32 | ~float64 |
			~string
	}
)

var ( // errors
	ErrInvalidDegree = errors.New("invalid minimum degree")
	ErrNilCompare    = errors.New("nil compare function")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrKeyNotFound   = errors.New("key not found")
	ErrCorrupted     = errors.New("tree invariant violated")
)

// New creates an empty tree of minimum degree t ordered by cmp.
// cmp returns a negative number if a < b, zero if a == b and positive if a > b.
func New[K, V any](t int, cmp func(a, b K) int) (*Tree[K, V], error) {
	if t < 2 {
		return nil, errors.Wrap(ErrInvalidDegree, "degree %d (want >= 2)", t)
	}

	if cmp == nil {
		return nil, ErrNilCompare
	}

	return &Tree[K, V]{
		root: &node[K, V]{},
		cmp:  cmp,
		t:    t,
		h:    1,
	}, nil
}

// NewOrdered creates a tree ordered by the natural < of K.
func NewOrdered[K Ordered, V any](t int) (*Tree[K, V], error) {
	return New[K, V](t, Compare[K])
}

func Compare[K Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

// SetLogger enables structural tracing (splits, merges, rotations) to l.
// nil disables it.
func (t *Tree[K, V]) SetLogger(l *logrus.Logger) {
	t.l = l
}

func (t *Tree[K, V]) Len() int { return t.n }

func (t *Tree[K, V]) Height() int { return t.h }

func (t *Tree[K, V]) Degree() int { return t.t }

func (t *Tree[K, V]) maxItems() int { return 2*t.t - 1 }

func (t *Tree[K, V]) minItems() int { return t.t - 1 }

// Clear drops all the items. Degree and logger are kept.
func (t *Tree[K, V]) Clear() {
	t.root = &node[K, V]{}
	t.n = 0
	t.h = 1

	t.debug("clear", nil)
}

func (t *Tree[K, V]) Search(k K) (v V, ok bool) {
	n, i, ok := t.search(k)
	if !ok {
		return v, false
	}

	return n.items[i].v, true
}

func (t *Tree[K, V]) Has(k K) bool {
	_, _, ok := t.search(k)
	return ok
}

func (t *Tree[K, V]) search(k K) (*node[K, V], int, bool) {
	n := t.root
	for {
		i, eq := n.items.find(k, t.cmp)
		if eq {
			return n, i, true
		}

		if n.leaf() {
			return nil, 0, false
		}

		n = n.children[i]
	}
}

// Insert adds a new item. The tree is left unchanged and ErrDuplicateKey is returned
// if k is already there. Use Put to overwrite.
func (t *Tree[K, V]) Insert(k K, v V) error {
	if t.Has(k) {
		return errors.Wrap(ErrDuplicateKey, "key %v", k)
	}

	t.put(item[K, V]{k: k, v: v})

	return nil
}

// Put inserts or replaces the value for k.
func (t *Tree[K, V]) Put(k K, v V) (old V, replaced bool) {
	return t.put(item[K, V]{k: k, v: v})
}

func (t *Tree[K, V]) put(it item[K, V]) (old V, replaced bool) {
	if len(t.root.items) == t.maxItems() {
		t.splitRoot()
	}

	old, replaced = t.insertNonFull(t.root, it)
	if !replaced {
		t.n++
	}

	return
}

// splitRoot is the only place the tree grows in height.
func (t *Tree[K, V]) splitRoot() {
	old := t.root

	t.root = &node[K, V]{
		children: children[K, V]{old},
	}

	med := t.root.splitChild(0, t.t)
	t.h++

	t.debug("split root", logrus.Fields{"key": med.k})
}

// insertNonFull expects n to have room for one more item.
func (t *Tree[K, V]) insertNonFull(n *node[K, V], it item[K, V]) (old V, replaced bool) {
	for {
		i, eq := n.items.find(it.k, t.cmp)
		if eq {
			old = n.items[i].v
			n.items[i].v = it.v

			return old, true
		}

		if n.leaf() {
			n.items.insertAt(i, it)

			return
		}

		if len(n.children[i].items) == t.maxItems() {
			med := n.splitChild(i, t.t)

			t.trace("split", logrus.Fields{"key": med.k})

			switch c := t.cmp(it.k, med.k); {
			case c > 0:
				i++
			case c == 0:
				old = n.items[i].v
				n.items[i].v = it.v

				return old, true
			}
		}

		n = n.children[i]
	}
}

func (t *Tree[K, V]) trace(op string, f logrus.Fields) {
	if t.l == nil || !t.l.IsLevelEnabled(logrus.TraceLevel) {
		return
	}

	t.l.WithFields(f).WithFields(logrus.Fields{"op": op, "height": t.h, "len": t.n}).Trace("btree")
}

func (t *Tree[K, V]) debug(op string, f logrus.Fields) {
	if t.l == nil || !t.l.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	t.l.WithFields(f).WithFields(logrus.Fields{"op": op, "height": t.h, "len": t.n}).Debug("btree")
}
