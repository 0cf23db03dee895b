package facet

import (
	"iter"
	"strings"

	"github.com/hupe1980/facet/internal/nameset"
)

// IndexFunc maps a value to the names of the partitions it belongs to.
// A value may belong to any number of partitions at once. Empty strings
// are dropped during normalization; names containing PathSeparator are
// rejected at the point of use.
type IndexFunc[V any] func(value V) []string

// Index installs (or replaces) the index definition and immediately
// re-indexes all entries. Existing partitions whose names the new
// definition still produces are kept and diffed, not rebuilt. Passing a
// nil definition is equivalent to ClearIndex. Subscribers are notified
// with the keys whose membership changed, or an empty delta.
func (t *Table[K, V]) Index(def IndexFunc[V], optFns ...IndexOption[K, V]) error {
	if t.batch != nil {
		return ErrBatchInProgress
	}
	if def == nil {
		return t.ClearIndex()
	}
	var cfg indexConfig[K, V]
	for _, fn := range optFns {
		fn(&cfg)
	}
	t.indexFn = def
	t.partInit = cfg.init
	t.logger.LogStructural("index", t.path)
	return t.reindexAll()
}

// Reindex re-runs the current index definition over all entries. Use it
// when the definition closes over external state that changed. Membership
// that did not change produces no partition writes and no partition
// notifications.
func (t *Table[K, V]) Reindex() error {
	if t.batch != nil {
		return ErrBatchInProgress
	}
	if t.indexFn == nil {
		return nil
	}
	return t.reindexAll()
}

// ClearIndex drops the index definition, all membership bookkeeping and
// all partitions.
func (t *Table[K, V]) ClearIndex() error {
	if t.batch != nil {
		return ErrBatchInProgress
	}
	t.indexFn = nil
	t.partInit = nil
	t.partitions = make(map[string]*Table[K, V])
	t.partNames = nil
	t.membership = make(map[K]*nameset.Set)
	t.names = nameset.NewInterner()
	t.logger.LogStructural("index-clear", t.path)
	t.notify(nil)
	return nil
}

// Partition returns the child Table for name, creating it empty if it does
// not exist yet. Created partitions inherit the comparator and memoization
// flag and persist until ClearIndex or Clear.
func (t *Table[K, V]) Partition(name string) (*Table[K, V], error) {
	if err := validatePartitionName(name); err != nil {
		return nil, err
	}
	return t.ensurePartition(name), nil
}

// Partitions iterates over the existing partitions in creation order.
func (t *Table[K, V]) Partitions() iter.Seq2[string, *Table[K, V]] {
	return func(yield func(string, *Table[K, V]) bool) {
		for _, name := range t.partNames {
			if !yield(name, t.partitions[name]) {
				return
			}
		}
	}
}

func (t *Table[K, V]) reindexAll() error {
	ups := make([]update[K, V], 0, len(t.keySeq))
	for _, k := range t.keySeq {
		ups = append(ups, update[K, V]{key: k, op: opReindex})
	}
	changed, err := t.applyIndex(ups)
	if err != nil {
		return err
	}
	t.notify(changed)
	return nil
}

// applyIndex diffs old vs. new membership for every updated key and
// forwards the resulting adds/removes into each affected partition as one
// atomic child application, so each child notifies at most once. It
// returns the keys whose membership actually changed.
//
// Name evaluation is a separate first phase: a rejected name must not
// leave earlier keys' membership rewritten while their partition writes
// were never applied.
func (t *Table[K, V]) applyIndex(ups []update[K, V]) ([]K, error) {
	if t.indexFn == nil && len(t.membership) == 0 {
		return nil, nil
	}

	curSets := make([]*nameset.Set, len(ups))
	for i, up := range ups {
		if v, present := t.entries[up.key]; present && t.indexFn != nil {
			set, err := t.internNames(t.indexFn(v))
			if err != nil {
				return nil, err
			}
			curSets[i] = set
		}
	}

	var changed []K
	childOps := make(map[uint32][]update[K, V])
	var touched []uint32
	stage := func(id uint32, up update[K, V]) {
		if _, ok := childOps[id]; !ok {
			touched = append(touched, id)
		}
		childOps[id] = append(childOps[id], up)
	}

	for i, up := range ups {
		k := up.key
		old := t.membership[k]
		cur := curSets[i]
		v := t.entries[k]

		moved := false
		if old != nil {
			for id := range old.Diff(cur).All() {
				stage(id, update[K, V]{key: k, op: opDelete})
				moved = true
			}
		}
		if cur != nil {
			for id := range cur.All() {
				switch {
				case old == nil || !old.Contains(id):
					stage(id, update[K, V]{key: k, op: opSet, value: v})
					moved = true
				case up.op == opSet:
					// Value changed; refresh retained partitions.
					stage(id, update[K, V]{key: k, op: opSet, value: v})
				case up.op == opTouch:
					stage(id, update[K, V]{key: k, op: opTouch})
				case up.op == opReindex:
					// Membership is unchanged, which is normally a no-op.
					// After an aborted propagation the partition may still
					// lack the key; forward it so Reindex re-settles the
					// membership invariant.
					if p, ok := t.partitions[t.names.Name(id)]; !ok || !p.Has(k) {
						stage(id, update[K, V]{key: k, op: opSet, value: v})
						moved = true
					}
				}
			}
		}

		if cur == nil || cur.IsEmpty() {
			delete(t.membership, k)
		} else {
			t.membership[k] = cur
		}
		if moved {
			changed = append(changed, k)
		}
	}

	for _, id := range touched {
		child := t.ensurePartition(t.names.Name(id))
		if err := child.run("apply", childOps[id]); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// internNames normalizes an index function's output: empty strings are
// dropped, names with the reserved separator are rejected, duplicates
// collapse.
func (t *Table[K, V]) internNames(names []string) (*nameset.Set, error) {
	set := nameset.New()
	for _, name := range names {
		if name == "" {
			continue
		}
		if strings.Contains(name, PathSeparator) {
			return nil, &ErrInvalidPartitionName{Name: name}
		}
		set.Add(t.names.Intern(name))
	}
	return set, nil
}

func (t *Table[K, V]) ensurePartition(name string) *Table[K, V] {
	if p, ok := t.partitions[name]; ok {
		return p
	}
	p := New[K, V]()
	p.cmp = t.cmp
	p.shouldMemo = t.shouldMemo
	p.logger = t.logger
	p.metrics = t.metrics
	p.parent = t
	p.name = name
	p.path = joinPath(t.path, name)
	t.partitions[name] = p
	t.partNames = append(t.partNames, name)
	if t.partInit != nil {
		t.partInit(name, p)
	}
	p.refreshMemo()
	t.logger.LogPartitionCreated(p.path)
	t.metrics.OnPartitionCreated(p.path)
	return p
}

func validatePartitionName(name string) error {
	if name == "" || strings.Contains(name, PathSeparator) {
		return &ErrInvalidPartitionName{Name: name}
	}
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + PathSeparator + name
}
