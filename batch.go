package facet

// Batch is the restricted mutation surface available inside a batch
// callback. Writes accumulate in a staging area; later writes to the same
// key override earlier ones. Nothing reaches the Table until the callback
// returns nil.
type Batch[K comparable, V any] struct {
	table  *Table[K, V]
	staged map[K]stagedOp[V]
	order  []K // first-staged order, drives the notification delta
}

type stagedOp[V any] struct {
	value  V
	remove bool
	touch  bool
}

// Batch stages multiple mutations and applies them as one atomic unit
// with a single notification carrying every affected key once.
//
// If fn returns an error (or panics), the staging area is discarded in
// full: the store, the derived views and the subscribers see nothing.
// Structural operations (Sort, Index, Memo, Clear) fail with
// ErrBatchInProgress while fn executes. Nested Batch calls join the
// outer batch; commit and rollback are decided by the outermost call.
func (t *Table[K, V]) Batch(fn func(b *Batch[K, V]) error) error {
	if t.parent != nil {
		return ErrReadOnlyPartition
	}
	if t.batch != nil {
		return fn(t.batch)
	}

	b := &Batch[K, V]{
		table:  t,
		staged: make(map[K]stagedOp[V]),
	}
	t.batch = b
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				t.batch = nil
				panic(r)
			}
		}()
		return fn(b)
	}()
	t.batch = nil
	if err != nil {
		return err
	}
	return t.commitBatch(b)
}

// commitBatch resolves the staging area against the live store, drops the
// no-ops (removals of absent keys, equal writes under WithEquals) and runs
// the pipeline once over what remains. An entirely no-op batch produces no
// notification.
func (t *Table[K, V]) commitBatch(b *Batch[K, V]) error {
	ups := make([]update[K, V], 0, len(b.order))
	for _, k := range b.order {
		s := b.staged[k]
		switch {
		case s.remove:
			if _, ok := t.entries[k]; !ok {
				continue
			}
			ups = append(ups, update[K, V]{key: k, op: opDelete})
		case s.touch:
			if _, ok := t.entries[k]; !ok {
				continue
			}
			ups = append(ups, update[K, V]{key: k, op: opTouch})
		default:
			if old, ok := t.entries[k]; ok && t.eq != nil && t.eq(old, s.value) {
				continue
			}
			ups = append(ups, update[K, V]{key: k, op: opSet, value: s.value})
		}
	}
	if len(ups) == 0 {
		return nil
	}
	return t.run("batch", ups)
}

// Set stages an insert or replace. A Set after a staged Delete cancels
// the removal.
func (b *Batch[K, V]) Set(key K, value V) {
	b.stage(key, stagedOp[V]{value: value})
}

// Delete stages a removal, reporting whether the key is currently visible
// (present in the store or staged earlier in this batch). A Delete after
// a staged Set cancels the pending write; if the key also pre-exists in
// the store it becomes a real removal.
func (b *Batch[K, V]) Delete(key K) bool {
	present := b.visible(key)
	b.stage(key, stagedOp[V]{remove: true})
	return present
}

// Touch stages a derived-state refresh for key. A no-op for absent keys
// and for keys that already carry a staged write.
func (b *Batch[K, V]) Touch(key K) {
	if _, ok := b.staged[key]; ok {
		return
	}
	if _, ok := b.table.entries[key]; !ok {
		return
	}
	b.stage(key, stagedOp[V]{touch: true})
}

func (b *Batch[K, V]) stage(key K, op stagedOp[V]) {
	if _, ok := b.staged[key]; !ok {
		b.order = append(b.order, key)
	}
	b.staged[key] = op
}

func (b *Batch[K, V]) visible(key K) bool {
	if s, ok := b.staged[key]; ok {
		return !s.remove
	}
	_, ok := b.table.entries[key]
	return ok
}
