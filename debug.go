package xbtree

import (
	"fmt"
	"io"

	"github.com/nikandfor/hacked/low"
)

// Dump writes the tree level by level, one line per level:
//
//	L0: [3]
//	L1: [0 1 2] [4 5 6 7 8 9]
func (t *Tree[K, V]) Dump(w io.Writer) error {
	return t.dumpTo(w, false)
}

// DumpValues is like Dump but prints key:value pairs.
func (t *Tree[K, V]) DumpValues(w io.Writer) error {
	return t.dumpTo(w, true)
}

func (t *Tree[K, V]) String() string {
	var b low.Buf

	t.dump(&b, false)

	return string(b)
}

func (t *Tree[K, V]) dumpTo(w io.Writer, values bool) error {
	var b low.Buf

	t.dump(&b, values)

	_, err := w.Write(b)

	return err
}

func (t *Tree[K, V]) dump(b *low.Buf, values bool) {
	level := []*node[K, V]{t.root}

	for d := 0; len(level) != 0; d++ {
		var next []*node[K, V]

		fmt.Fprintf(b, "L%d:", d)

		for _, n := range level {
			*b = append(*b, " ["...)

			for i, it := range n.items {
				if i != 0 {
					*b = append(*b, ' ')
				}

				if values {
					fmt.Fprintf(b, "%v:%v", it.k, it.v)
				} else {
					fmt.Fprintf(b, "%v", it.k)
				}
			}

			*b = append(*b, ']')

			next = append(next, n.children...)
		}

		*b = append(*b, '\n')

		level = next
	}
}
