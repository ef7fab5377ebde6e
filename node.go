package xbtree

import "sort"

type (
	item[K, V any] struct {
		k K
		v V
	}

	items[K, V any]    []item[K, V]
	children[K, V any] []*node[K, V]

	// node owns its children exclusively. No parent links.
	node[K, V any] struct {
		items    items[K, V]
		children children[K, V]
	}
)

func (n *node[K, V]) leaf() bool {
	return len(n.children) == 0
}

// find returns the smallest index i such that k <= s[i].k.
func (s items[K, V]) find(k K, cmp func(a, b K) int) (i int, eq bool) {
	i = sort.Search(len(s), func(i int) bool {
		return cmp(k, s[i].k) <= 0
	})

	eq = i < len(s) && cmp(k, s[i].k) == 0

	return
}

// idx <= len(*s)
func (s *items[K, V]) insertAt(idx int, it item[K, V]) {
	*s = append(*s, item[K, V]{})
	if idx < len(*s)-1 {
		copy((*s)[idx+1:], (*s)[idx:])
	}
	(*s)[idx] = it
}

func (s *items[K, V]) removeAt(idx int) item[K, V] {
	it := (*s)[idx]
	copy((*s)[idx:], (*s)[idx+1:])
	(*s)[len(*s)-1] = item[K, V]{}
	*s = (*s)[:len(*s)-1]
	return it
}

func (s *items[K, V]) pop() item[K, V] {
	return s.removeAt(len(*s) - 1)
}

// truncate drops s[idx:] and clears the tail so values can be collected.
func (s *items[K, V]) truncate(idx int) {
	tail := (*s)[idx:]
	for i := range tail {
		tail[i] = item[K, V]{}
	}
	*s = (*s)[:idx]
}

func (s *children[K, V]) insertAt(idx int, c *node[K, V]) {
	*s = append(*s, nil)
	if idx < len(*s)-1 {
		copy((*s)[idx+1:], (*s)[idx:])
	}
	(*s)[idx] = c
}

func (s *children[K, V]) removeAt(idx int) *node[K, V] {
	c := (*s)[idx]
	copy((*s)[idx:], (*s)[idx+1:])
	(*s)[len(*s)-1] = nil
	*s = (*s)[:len(*s)-1]
	return c
}

func (s *children[K, V]) pop() *node[K, V] {
	return s.removeAt(len(*s) - 1)
}

func (s *children[K, V]) truncate(idx int) {
	tail := (*s)[idx:]
	for i := range tail {
		tail[i] = nil
	}
	*s = (*s)[:idx]
}

/*
splitChild splits full child y = n.children[i] (2t-1 items).

	          n: [ .. a  b .. ]
	                  |
	    y: [ y0 .. y(t-2)  M  y(t) .. y(2t-2) ]
	-->
	          n: [ .. a  M  b .. ]
	                  |    \
	  y: [ y0 .. y(t-2) ]  z: [ y(t) .. y(2t-2) ]

If y is internal, z takes the upper t children and y keeps the lower t.
*/
func (n *node[K, V]) splitChild(i, t int) (median item[K, V]) {
	y := n.children[i]
	z := &node[K, V]{}

	median = y.items[t-1]

	z.items = append(z.items, y.items[t:]...)
	y.items.truncate(t - 1)

	if !y.leaf() {
		z.children = append(z.children, y.children[t:]...)
		y.children.truncate(t)
	}

	n.items.insertAt(i, median)
	n.children.insertAt(i+1, z)

	return median
}

// borrowFromLeft rotates the last item of children[i-1] through items[i-1] into children[i].
func (n *node[K, V]) borrowFromLeft(i int) {
	child := n.children[i]
	left := n.children[i-1]

	child.items.insertAt(0, n.items[i-1])
	n.items[i-1] = left.items.pop()

	if !left.leaf() {
		child.children.insertAt(0, left.children.pop())
	}
}

// borrowFromRight rotates the first item of children[i+1] through items[i] into children[i].
func (n *node[K, V]) borrowFromRight(i int) {
	child := n.children[i]
	right := n.children[i+1]

	child.items = append(child.items, n.items[i])
	n.items[i] = right.items.removeAt(0)

	if !right.leaf() {
		child.children = append(child.children, right.children.removeAt(0))
	}
}

/*
merge folds items[i] and children[i+1] into children[i].

	       n: [ .. a  S  b .. ]
	              /    \
	    [ l0 .. ]      [ r0 .. ]
	-->
	       n: [ .. a  b .. ]
	              |
	    [ l0 .. S  r0 .. ]

The right node is dropped. The merged node is returned.
*/
func (n *node[K, V]) merge(i int) *node[K, V] {
	child := n.children[i]
	right := n.children.removeAt(i + 1)

	child.items = append(child.items, n.items.removeAt(i))
	child.items = append(child.items, right.items...)
	child.children = append(child.children, right.children...)

	return child
}
