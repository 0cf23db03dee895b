package facet

import (
	"iter"
	"slices"

	"github.com/hupe1980/facet/internal/merge"
)

// Sort installs (or, with nil, clears) the comparator and propagates it
// recursively to every existing partition. Any memoized ordering is
// rebuilt under the new comparator. Subscribers are notified with an
// empty delta: the order changed but no key did.
//
// cmp follows the slices.SortFunc convention.
func (t *Table[K, V]) Sort(cmp func(a, b V) int) error {
	if t.batch != nil {
		return ErrBatchInProgress
	}
	t.cmp = cmp
	for _, name := range t.partNames {
		// Partitions cannot be mid-batch; the error path is unreachable.
		_ = t.partitions[name].Sort(cmp)
	}
	t.memoKeys, t.memoValues = nil, nil
	t.materialized = false
	t.refreshMemo()
	t.logger.LogStructural("sort", t.path)
	t.notify(nil)
	return nil
}

// Keys returns the keys in current order: memoized order if materialized,
// freshly sorted if a comparator is set, insertion order otherwise. The
// returned slice is always a copy.
func (t *Table[K, V]) Keys() []K {
	if t.materialized {
		return slices.Clone(t.memoKeys)
	}
	keys := slices.Clone(t.keySeq)
	if t.cmp != nil {
		slices.SortStableFunc(keys, t.compareKeys)
	}
	return keys
}

// Values returns the values in current order. The returned slice is
// always a copy, never the internal memoized array.
func (t *Table[K, V]) Values() []V {
	if t.materialized {
		return slices.Clone(t.memoValues)
	}
	return t.valuesFor(t.Keys())
}

// All returns an iterator over entries in current order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range t.Keys() {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// compareKeys orders keys by their stored values.
func (t *Table[K, V]) compareKeys(a, b K) int {
	return t.cmp(t.entries[a], t.entries[b])
}

func (t *Table[K, V]) valuesFor(keys []K) []V {
	vals := make([]V, len(keys))
	for i, k := range keys {
		vals[i] = t.entries[k]
	}
	return vals
}

// refreshView maintains the materialized ordering incrementally: the
// updated keys are cut out of the prior order, the still-present ones are
// sorted among themselves and merged back with a stable two-pointer pass.
// O(N + M log M) for N materialized keys and M updates, against
// O((N+M) log (N+M)) for a re-sort. Ties keep the prior position.
func (t *Table[K, V]) refreshView(ups []update[K, V]) {
	if !t.materialized {
		return
	}

	inDelta := make(map[K]struct{}, len(ups))
	still := make([]K, 0, len(ups))
	for _, up := range ups {
		inDelta[up.key] = struct{}{}
		if _, ok := t.entries[up.key]; ok {
			still = append(still, up.key)
		}
	}
	slices.SortStableFunc(still, t.compareKeys)

	unchanged := make([]K, 0, len(t.memoKeys))
	for _, k := range t.memoKeys {
		if _, ok := inDelta[k]; !ok {
			unchanged = append(unchanged, k)
		}
	}

	t.memoKeys = merge.Stable(unchanged, still, t.compareKeys)
	t.memoValues = t.valuesFor(t.memoKeys)
}
