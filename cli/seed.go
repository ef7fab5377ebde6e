package cli

import (
	"github.com/go-faker/faker/v4"

	"nikand.dev/go/xbtree"
)

// Seed puts n random word pairs into t. Keys may repeat, so t grows by at most n.
func Seed(t *xbtree.Tree[string, string], n int) (inserted int) {
	for i := 0; i < n; i++ {
		k := faker.Word() + faker.Word()
		v := faker.Word() + faker.Word()

		if _, replaced := t.Put(k, v); !replaced {
			inserted++
		}
	}

	return inserted
}
