package facet

import (
	"slices"
	"time"
)

// Memo sets the memoization flag, propagates it depth-first to every
// existing partition, and then materializes or drops the ordered view.
// Materializing only happens while a comparator is set; without one there
// is no ordering worth caching.
func (t *Table[K, V]) Memo(enabled bool) error {
	if t.batch != nil {
		return ErrBatchInProgress
	}
	t.shouldMemo = enabled
	for _, name := range t.partNames {
		_ = t.partitions[name].Memo(enabled)
	}
	t.refreshMemo()
	t.logger.LogStructural("memo", t.path)
	return nil
}

// IsMemoized reports whether a materialized ordered view currently exists.
func (t *Table[K, V]) IsMemoized() bool {
	return t.materialized
}

// refreshMemo reconciles the materialized view with the current flag and
// comparator state.
func (t *Table[K, V]) refreshMemo() {
	switch {
	case t.shouldMemo && t.cmp != nil && !t.materialized:
		t.materialize()
	case t.materialized && (!t.shouldMemo || t.cmp == nil):
		t.memoKeys, t.memoValues = nil, nil
		t.materialized = false
		t.logger.LogMaterialize(t.path, 0, false)
	}
}

// materialize snapshots the store into sorted key/value arrays.
func (t *Table[K, V]) materialize() {
	start := time.Now()
	keys := slices.Clone(t.keySeq)
	slices.SortStableFunc(keys, t.compareKeys)
	t.memoKeys = keys
	t.memoValues = t.valuesFor(keys)
	t.materialized = true
	t.logger.LogMaterialize(t.path, len(keys), true)
	t.metrics.OnMaterialize(len(keys), time.Since(start))
}
