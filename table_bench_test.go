package facet

import (
	"math/rand"
	"testing"
)

func buildBenchTable(n int, memo bool) *Table[int, person] {
	tbl := New[int, person]()
	_ = tbl.Sort(byAge)
	if memo {
		_ = tbl.Memo(true)
	}
	rng := rand.New(rand.NewSource(1))
	for i := range n {
		_ = tbl.Set(i, person{Age: rng.Intn(1 << 20)})
	}
	return tbl
}

func BenchmarkKeysMemoized(b *testing.B) {
	tbl := buildBenchTable(10_000, true)
	b.ResetTimer()
	for range b.N {
		_ = tbl.Keys()
	}
}

func BenchmarkKeysUnmemoized(b *testing.B) {
	tbl := buildBenchTable(10_000, false)
	b.ResetTimer()
	for range b.N {
		_ = tbl.Keys()
	}
}

// Incremental single-key update against a large materialized view; the
// merge path, not a full re-sort.
func BenchmarkIncrementalUpdateMemoized(b *testing.B) {
	tbl := buildBenchTable(10_000, true)
	rng := rand.New(rand.NewSource(2))
	b.ResetTimer()
	for i := range b.N {
		_ = tbl.Set(i%10_000, person{Age: rng.Intn(1 << 20)})
	}
}

func BenchmarkBatchSet(b *testing.B) {
	tbl := New[int, person]()
	rng := rand.New(rand.NewSource(3))
	b.ResetTimer()
	for range b.N {
		_ = tbl.Batch(func(batch *Batch[int, person]) error {
			for range 100 {
				batch.Set(rng.Intn(10_000), person{Age: rng.Intn(1 << 20)})
			}
			return nil
		})
	}
}
