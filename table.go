package facet

import (
	"slices"
	"time"

	"github.com/hupe1980/facet/internal/nameset"
)

// PathSeparator joins partition names into hierarchical paths (see Path).
// Partition names must not contain it.
const PathSeparator = "/"

// DefaultPartition is a conventional partition name for index functions
// that only distinguish membership, not grouping.
const DefaultPartition = "default"

type opKind uint8

const (
	opSet opKind = iota
	opDelete
	opTouch
	opReindex
)

// update is one staged change flowing through the propagation pipeline.
type update[K comparable, V any] struct {
	key   K
	op    opKind
	value V
}

// Table is a recursive, observable, partitioned key→value container.
//
// Every mutation runs a synchronous pipeline before returning: the base
// store is updated, partition membership is diffed and forwarded into
// child Tables, the ordered view is maintained incrementally, and
// subscribers are notified with the affected keys. Partitions are Tables
// themselves and reject public mutators; their contents derive solely
// from the parent's index function.
//
// A Table is not safe for concurrent use.
type Table[K comparable, V any] struct {
	entries map[K]V
	keySeq  []K // insertion order of present keys

	cmp func(a, b V) int
	eq  func(a, b V) bool

	indexFn    IndexFunc[V]
	partInit   func(name string, p *Table[K, V])
	names      *nameset.Interner
	membership map[K]*nameset.Set
	partitions map[string]*Table[K, V]
	partNames  []string // creation order

	memoKeys     []K
	memoValues   []V
	materialized bool
	shouldMemo   bool

	subs  []*subscriber[K]
	batch *Batch[K, V] // non-nil while a batch callback executes

	parent *Table[K, V]
	name   string
	path   string

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty root Table.
func New[K comparable, V any](optFns ...Option[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		entries:    make(map[K]V),
		names:      nameset.NewInterner(),
		membership: make(map[K]*nameset.Set),
		partitions: make(map[string]*Table[K, V]),
		logger:     NoopLogger(),
		metrics:    &NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(t)
	}
	t.refreshMemo()
	return t
}

// Get retrieves the value stored under key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table[K, V]) Has(key K) bool {
	_, ok := t.entries[key]
	return ok
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int {
	return len(t.entries)
}

// Name returns the partition name, or "" for a root Table.
func (t *Table[K, V]) Name() string {
	return t.name
}

// Path returns the PathSeparator-joined partition path from the root,
// or "" for a root Table.
func (t *Table[K, V]) Path() string {
	return t.path
}

// Parent returns the owning Table of a partition, if any.
func (t *Table[K, V]) Parent() (*Table[K, V], bool) {
	return t.parent, t.parent != nil
}

// Set inserts or replaces the value under key and propagates the change
// into the index, the ordered view and subscribers. During a batch the
// write is staged instead. With WithEquals configured, writing an equal
// value is a complete no-op.
func (t *Table[K, V]) Set(key K, value V) error {
	if t.parent != nil {
		return ErrReadOnlyPartition
	}
	if t.batch != nil {
		t.batch.Set(key, value)
		return nil
	}
	if old, ok := t.entries[key]; ok && t.eq != nil && t.eq(old, value) {
		return nil
	}
	return t.run("set", []update[K, V]{{key: key, op: opSet, value: value}})
}

// Delete removes key, reporting whether it was present. During a batch the
// removal is staged instead.
func (t *Table[K, V]) Delete(key K) (bool, error) {
	if t.parent != nil {
		return false, ErrReadOnlyPartition
	}
	if t.batch != nil {
		return t.batch.Delete(key), nil
	}
	if _, ok := t.entries[key]; !ok {
		return false, nil
	}
	if err := t.run("delete", []update[K, V]{{key: key, op: opDelete}}); err != nil {
		return true, err
	}
	return true, nil
}

// Touch re-evaluates all derived structures for key without changing its
// stored value. Use it after mutating a stored value in place, or when an
// index function or comparator closes over external state that changed.
// Touching an absent key is a no-op.
func (t *Table[K, V]) Touch(key K) error {
	if t.parent != nil {
		return ErrReadOnlyPartition
	}
	if t.batch != nil {
		t.batch.Touch(key)
		return nil
	}
	if _, ok := t.entries[key]; !ok {
		return nil
	}
	return t.run("touch", []update[K, V]{{key: key, op: opTouch}})
}

// Clear removes all entries and partitions. The index definition, the
// comparator and the memoization flag survive. Subscribers are notified
// with the removed keys.
func (t *Table[K, V]) Clear() error {
	if t.parent != nil {
		return ErrReadOnlyPartition
	}
	if t.batch != nil {
		return ErrBatchInProgress
	}
	removed := slices.Clone(t.keySeq)
	t.entries = make(map[K]V)
	t.keySeq = nil
	t.membership = make(map[K]*nameset.Set)
	t.partitions = make(map[string]*Table[K, V])
	t.partNames = nil
	t.names = nameset.NewInterner()
	t.memoKeys, t.memoValues = nil, nil
	t.materialized = false
	t.refreshMemo()
	t.logger.LogStructural("clear", t.path)
	if len(removed) > 0 {
		t.notify(removed)
	}
	return nil
}

// run executes the propagation pipeline for a set of updates: base store,
// index membership, ordered view, notification. Updates must be unique
// per key. An index error aborts before notification; the store and view
// are still left mutually consistent.
func (t *Table[K, V]) run(label string, ups []update[K, V]) error {
	start := time.Now()
	changed := make([]K, 0, len(ups))
	for i := range ups {
		t.commitStore(ups[i])
		changed = append(changed, ups[i].key)
	}
	_, idxErr := t.applyIndex(ups)
	t.refreshView(ups)
	if idxErr != nil {
		return idxErr
	}
	t.logger.LogMutation(label, t.path, len(changed))
	t.metrics.OnMutation(label, len(changed), time.Since(start))
	t.notify(changed)
	return nil
}

func (t *Table[K, V]) commitStore(up update[K, V]) {
	switch up.op {
	case opSet:
		if _, ok := t.entries[up.key]; !ok {
			t.keySeq = append(t.keySeq, up.key)
		}
		t.entries[up.key] = up.value
	case opDelete:
		delete(t.entries, up.key)
		if i := slices.Index(t.keySeq, up.key); i >= 0 {
			t.keySeq = slices.Delete(t.keySeq, i, i+1)
		}
	}
}
