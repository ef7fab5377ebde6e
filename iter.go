package xbtree

type (
	// Iterator is called for each item in order. Returning false stops the walk.
	Iterator[K, V any] func(k K, v V) bool

	bound[K any] struct {
		k  K
		ok bool
	}
)

func (t *Tree[K, V]) Ascend(f Iterator[K, V]) {
	t.ascend(t.root, bound[K]{}, bound[K]{}, f)
}

// AscendRange calls f for every item with ge <= k < lt.
func (t *Tree[K, V]) AscendRange(ge, lt K, f Iterator[K, V]) {
	t.ascend(t.root, bound[K]{k: ge, ok: true}, bound[K]{k: lt, ok: true}, f)
}

func (t *Tree[K, V]) AscendGreaterOrEqual(pivot K, f Iterator[K, V]) {
	t.ascend(t.root, bound[K]{k: pivot, ok: true}, bound[K]{}, f)
}

func (t *Tree[K, V]) AscendLessThan(pivot K, f Iterator[K, V]) {
	t.ascend(t.root, bound[K]{}, bound[K]{k: pivot, ok: true}, f)
}

func (t *Tree[K, V]) Descend(f Iterator[K, V]) {
	t.descend(t.root, f)
}

// Keys returns all the keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	r := make([]K, 0, t.n)

	t.Ascend(func(k K, _ V) bool {
		r = append(r, k)
		return true
	})

	return r
}

func (t *Tree[K, V]) Min() (k K, v V, ok bool) {
	if t.n == 0 {
		return
	}

	n := t.root
	for !n.leaf() {
		n = n.children[0]
	}

	it := n.items[0]

	return it.k, it.v, true
}

func (t *Tree[K, V]) Max() (k K, v V, ok bool) {
	if t.n == 0 {
		return
	}

	n := t.root
	for !n.leaf() {
		n = n.children[len(n.children)-1]
	}

	it := n.items[len(n.items)-1]

	return it.k, it.v, true
}

func (t *Tree[K, V]) ascend(n *node[K, V], from, to bound[K], f Iterator[K, V]) bool {
	var i int
	if from.ok {
		i, _ = n.items.find(from.k, t.cmp)
	}

	for ; i < len(n.items); i++ {
		if !n.leaf() && !t.ascend(n.children[i], from, to, f) {
			return false
		}

		it := n.items[i]

		if to.ok && t.cmp(it.k, to.k) >= 0 {
			return false
		}

		if !f(it.k, it.v) {
			return false
		}
	}

	if n.leaf() {
		return true
	}

	return t.ascend(n.children[i], from, to, f)
}

func (t *Tree[K, V]) descend(n *node[K, V], f Iterator[K, V]) bool {
	for i := len(n.items) - 1; i >= 0; i-- {
		if !n.leaf() && !t.descend(n.children[i+1], f) {
			return false
		}

		it := n.items[i]

		if !f(it.k, it.v) {
			return false
		}
	}

	if n.leaf() {
		return true
	}

	return t.descend(n.children[0], f)
}
