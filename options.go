package facet

// Option configures a Table at construction time.
//
// Options exist to avoid exploding the constructor surface; everything an
// Option sets can also be changed later through the corresponding method
// (Sort, Memo), except the equality function which is fixed at creation.
type Option[K comparable, V any] func(*Table[K, V])

// WithLogger configures structured logging. If l is nil, logging stays
// disabled. The logger is inherited by partitions.
func WithLogger[K comparable, V any](l *Logger) Option[K, V] {
	return func(t *Table[K, V]) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection. The collector is
// inherited by partitions.
func WithMetricsCollector[K comparable, V any](c MetricsCollector) Option[K, V] {
	return func(t *Table[K, V]) {
		if c == nil {
			c = &NoopMetricsCollector{}
		}
		t.metrics = c
	}
}

// WithEquals configures an equality function over values. When set, a Set
// whose new value equals the stored one is a complete no-op: no pipeline
// run and no notification. Without it, every Set counts as a change.
func WithEquals[K comparable, V any](eq func(a, b V) bool) Option[K, V] {
	return func(t *Table[K, V]) {
		t.eq = eq
	}
}

// WithComparator sets the initial comparator, equivalent to calling Sort
// right after construction. cmp follows the slices.SortFunc convention:
// negative if a orders before b, zero on ties, positive otherwise.
func WithComparator[K comparable, V any](cmp func(a, b V) int) Option[K, V] {
	return func(t *Table[K, V]) {
		t.cmp = cmp
	}
}

// WithMemo sets the initial memoization flag, equivalent to calling Memo
// right after construction.
func WithMemo[K comparable, V any](enabled bool) Option[K, V] {
	return func(t *Table[K, V]) {
		t.shouldMemo = enabled
	}
}

// IndexOption configures an Index call.
type IndexOption[K comparable, V any] func(*indexConfig[K, V])

type indexConfig[K comparable, V any] struct {
	init func(name string, p *Table[K, V])
}

// WithPartitionInit registers a callback invoked exactly once per newly
// created partition, before the partition receives its first entries. Use
// it to give partitions their own index, comparator or memoization:
//
//	tbl.Index(byCity, facet.WithPartitionInit(func(name string, p *facet.Table[string, Person]) {
//	    p.Sort(byName)
//	}))
//
// A comparator set here applies only until an ancestor Sort propagates a
// new one.
func WithPartitionInit[K comparable, V any](init func(name string, p *Table[K, V])) IndexOption[K, V] {
	return func(c *indexConfig[K, V]) {
		c.init = init
	}
}
