package facet

import (
	"slices"
	"time"
)

type subscriber[K comparable] struct {
	fn   func(keys []K)
	gone bool
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners run synchronously, in subscription order, exactly
// once per completed mutation or batch, with the keys that were added,
// removed, touched or whose membership was refreshed. Pure structural
// operations deliver an empty delta. The delta slice is shared between
// listeners and must be treated as read-only.
//
// Unsubscribing is idempotent and safe from inside a notification; the
// listener will not be called again afterwards.
func (t *Table[K, V]) Subscribe(fn func(keys []K)) (unsubscribe func()) {
	s := &subscriber[K]{fn: fn}
	t.subs = append(t.subs, s)
	return func() {
		if s.gone {
			return
		}
		s.gone = true
		if i := slices.Index(t.subs, s); i >= 0 {
			t.subs = slices.Delete(t.subs, i, i+1)
		}
	}
}

// notify dispatches one delta to every subscriber. Each listener runs
// under its own recover so that a panicking listener cannot starve the
// ones after it; once delivery is complete the mutating call re-panics
// with a ListenerPanicError aggregating everything recovered.
func (t *Table[K, V]) notify(keys []K) {
	if len(t.subs) == 0 {
		return
	}
	start := time.Now()
	subs := slices.Clone(t.subs)
	var panics []any
	for _, s := range subs {
		if s.gone {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					panics = append(panics, r)
				}
			}()
			s.fn(keys)
		}()
	}
	t.metrics.OnNotify(len(subs), time.Since(start))
	if len(panics) > 0 {
		panic(&ListenerPanicError{Panics: panics})
	}
}
