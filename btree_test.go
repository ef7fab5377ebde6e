package xbtree

import (
	"testing"

	"github.com/nikandfor/hacked/low"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTree(tb testing.TB, t int) *Tree[int, int] {
	tb.Helper()

	tr, err := NewOrdered[int, int](t)
	require.NoError(tb, err)

	return tr
}

func checkTree(tb testing.TB, tr interface{ Check() error }) {
	tb.Helper()

	require.NoError(tb, tr.Check())
}

func TestNew(t *testing.T) {
	_, err := NewOrdered[int, int](1)
	assert.ErrorIs(t, err, ErrInvalidDegree)

	_, err = NewOrdered[int, int](0)
	assert.ErrorIs(t, err, ErrInvalidDegree)

	_, err = New[int, int](2, nil)
	assert.ErrorIs(t, err, ErrNilCompare)

	tr := newTestTree(t, 2)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 1, tr.Height())
	assert.Equal(t, 2, tr.Degree())
	assert.True(t, tr.root.leaf())
	checkTree(t, tr)

	_, ok := tr.Search(1)
	assert.False(t, ok)
}

func TestInsertAscending(t *testing.T) {
	tr := newTestTree(t, 3)

	for k := 0; k < 10; k++ {
		require.NoError(t, tr.Insert(k, 2*k))
		checkTree(t, tr)
	}

	n, i, ok := tr.search(5)
	require.True(t, ok)
	assert.Equal(t, 5, n.items[i].k)
	assert.Equal(t, 10, n.items[i].v)

	v, ok := tr.Search(5)
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, tr.Keys())
	assert.Equal(t, 10, tr.Len())
	assert.Equal(t, "L0: [2 5]\nL1: [0 1] [3 4] [6 7 8 9]\n", tr.String())
}

func TestDeleteBorrowRight(t *testing.T) {
	tr := newTestTree(t, 3)

	for k := 0; k < 10; k++ {
		require.NoError(t, tr.Insert(k, 2*k))
	}

	v, err := tr.Delete(3)
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	checkTree(t, tr)

	_, ok := tr.Search(3)
	assert.False(t, ok)

	assert.Equal(t, []int{0, 1, 2, 4, 5, 6, 7, 8, 9}, tr.Keys())
	assert.Equal(t, "L0: [2 6]\nL1: [0 1] [4 5] [7 8 9]\n", tr.String())
	assert.Equal(t, 2, tr.Height())
}

func TestRootSplit(t *testing.T) {
	tr := newTestTree(t, 2)

	for k := 1; k <= 3; k++ {
		require.NoError(t, tr.Insert(k, k))
	}

	assert.Equal(t, 1, tr.Height())
	assert.Len(t, tr.root.items, 3)

	require.NoError(t, tr.Insert(4, 4))

	assert.Equal(t, 2, tr.Height())
	assert.Len(t, tr.root.items, 1)
	assert.Equal(t, "L0: [2]\nL1: [1] [3 4]\n", tr.String())

	for k := 5; k <= 7; k++ {
		require.NoError(t, tr.Insert(k, k))
		checkTree(t, tr)
	}

	assert.Equal(t, "L0: [2 4]\nL1: [1] [3] [5 6 7]\n", tr.String())
}

func TestDeleteOnlyKey(t *testing.T) {
	tr := newTestTree(t, 3)

	require.NoError(t, tr.Insert(42, 1))

	v, err := tr.Delete(42)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	checkTree(t, tr)

	assert.True(t, tr.root.leaf())
	assert.Len(t, tr.root.items, 0)
	assert.Equal(t, 0, tr.Len())

	for _, k := range []int{0, 42, -1} {
		_, ok := tr.Search(k)
		assert.False(t, ok, "key %d", k)
	}

	_, err = tr.Delete(42)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDeleteAscendingAll(t *testing.T) {
	tr := newTestTree(t, 2)

	for k := 0; k < 20; k++ {
		require.NoError(t, tr.Insert(k, k))
	}

	checkTree(t, tr)

	for k := 0; k < 20; k++ {
		v, err := tr.Delete(k)
		require.NoError(t, err, "key %d", k)
		assert.Equal(t, k, v)

		checkTree(t, tr)
		assert.Equal(t, 19-k, tr.Len())

		_, ok := tr.Search(k)
		assert.False(t, ok)
	}

	assert.Equal(t, 1, tr.Height())
	assert.Equal(t, "L0: []\n", tr.String())
}

func TestDeleteMergeRoot(t *testing.T) {
	tr := newTestTree(t, 2)

	for k := 1; k <= 4; k++ {
		require.NoError(t, tr.Insert(k, k))
	}

	_, err := tr.Delete(4)
	require.NoError(t, err)

	require.Equal(t, "L0: [2]\nL1: [1] [3]\n", tr.String())
	require.Equal(t, 2, tr.Height())

	merged := tr.root.children[0]

	_, err = tr.Delete(1)
	require.NoError(t, err)
	checkTree(t, tr)

	assert.Equal(t, 1, tr.Height())
	assert.True(t, tr.root == merged, "merged child must become the root")
	assert.Equal(t, "L0: [2 3]\n", tr.String())
}

func TestDeleteInternal(t *testing.T) {
	t.Run("predecessor", func(t *testing.T) {
		tr := newTestTree(t, 2)

		for _, k := range []int{3, 4, 1, 2} {
			require.NoError(t, tr.Insert(k, k))
		}

		require.Equal(t, "L0: [3]\nL1: [1 2] [4]\n", tr.String())

		_, err := tr.Delete(3)
		require.NoError(t, err)
		checkTree(t, tr)

		assert.Equal(t, "L0: [2]\nL1: [1] [4]\n", tr.String())
	})

	t.Run("successor", func(t *testing.T) {
		tr := newTestTree(t, 2)

		for k := 1; k <= 4; k++ {
			require.NoError(t, tr.Insert(k, k))
		}

		require.Equal(t, "L0: [2]\nL1: [1] [3 4]\n", tr.String())

		_, err := tr.Delete(2)
		require.NoError(t, err)
		checkTree(t, tr)

		assert.Equal(t, "L0: [3]\nL1: [1] [4]\n", tr.String())
	})

	t.Run("merge", func(t *testing.T) {
		tr := newTestTree(t, 2)

		for k := 1; k <= 3; k++ {
			require.NoError(t, tr.Insert(k, k))
		}

		require.NoError(t, tr.Insert(0, 0))
		_, err := tr.Delete(0)
		require.NoError(t, err)

		require.Equal(t, "L0: [2]\nL1: [1] [3]\n", tr.String())

		v, err := tr.Delete(2)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
		checkTree(t, tr)

		assert.Equal(t, "L0: [1 3]\n", tr.String())
		assert.Equal(t, 1, tr.Height())
	})
}

func TestDeleteAbsent(t *testing.T) {
	tr := newTestTree(t, 2)

	_, err := tr.Delete(1)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	for k := 0; k < 20; k += 2 {
		require.NoError(t, tr.Insert(k, k))
	}

	for k := -1; k < 21; k += 2 {
		_, err = tr.Delete(k)
		assert.ErrorIs(t, err, ErrKeyNotFound, "key %d", k)

		checkTree(t, tr)
		assert.Equal(t, 10, tr.Len())
	}

	assert.Equal(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, tr.Keys())
}

func TestInsertDuplicate(t *testing.T) {
	tr := newTestTree(t, 2)

	for k := 0; k < 10; k++ {
		require.NoError(t, tr.Insert(k, k))
	}

	before := tr.String()

	for k := 0; k < 10; k++ {
		err := tr.Insert(k, -k)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	}

	assert.Equal(t, 10, tr.Len())
	assert.Equal(t, before, tr.String())

	v, ok := tr.Search(7)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestPut(t *testing.T) {
	tr := newTestTree(t, 2)

	for k := 0; k < 10; k++ {
		_, replaced := tr.Put(k, k)
		assert.False(t, replaced)
	}

	for k := 0; k < 10; k++ {
		old, replaced := tr.Put(k, 10*k)
		assert.True(t, replaced)
		assert.Equal(t, k, old)

		checkTree(t, tr)
	}

	assert.Equal(t, 10, tr.Len())

	for k := 0; k < 10; k++ {
		v, ok := tr.Search(k)
		assert.True(t, ok)
		assert.Equal(t, 10*k, v)
	}
}

func TestClear(t *testing.T) {
	tr := newTestTree(t, 2)

	for k := 0; k < 10; k++ {
		tr.Put(k, k)
	}

	tr.Clear()
	checkTree(t, tr)

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 1, tr.Height())
	assert.False(t, tr.Has(3))
}

func TestCustomCompare(t *testing.T) {
	tr, err := New[int, string](2, func(a, b int) int { return b - a })
	require.NoError(t, err)

	for k := 0; k < 10; k++ {
		require.NoError(t, tr.Insert(k, ""))
	}

	checkTree(t, tr)
	assert.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, tr.Keys())
}

func TestLogger(t *testing.T) {
	var out low.Buf

	l := logrus.New()
	l.SetOutput(&out)
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	tr := newTestTree(t, 2)
	tr.SetLogger(l)

	for k := 0; k < 10; k++ {
		tr.Put(k, k)
	}

	for k := 0; k < 10; k++ {
		_, err := tr.Delete(k)
		require.NoError(t, err)
	}

	s := string(out)

	assert.Contains(t, s, `op="split root"`)
	assert.Contains(t, s, "op=split\n")
	assert.Contains(t, s, "op=merge")
	assert.Contains(t, s, `op="collapse root"`)

	out = out[:0]
	tr.SetLogger(nil)

	tr.Put(1, 1)
	assert.Empty(t, out)
}
