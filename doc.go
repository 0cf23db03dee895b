// Package facet provides a recursive, observable, partitioned in-memory table.
//
// A Table is a key→value container that keeps three derived views consistent
// with every mutation: a recursive partition tree driven by an index
// function, a total order driven by a comparator, and an opt-in memoized
// copy of the ordered projection. Partitions are Tables themselves, so
// indexes nest to arbitrary depth.
//
// # Quick Start
//
//	tbl := facet.New[string, Person]()
//	tbl.Set("1", Person{Name: "Ada", Age: 36})
//	tbl.Set("2", Person{Name: "Linus", Age: 25})
//
//	// Partition by a derived attribute. A value may land in many
//	// partitions at once.
//	tbl.Index(func(p Person) []string {
//	    if p.Age < 30 {
//	        return []string{"young"}
//	    }
//	    return []string{"old"}
//	})
//
//	young, _ := tbl.Partition("young")
//	fmt.Println(young.Len()) // 1
//
//	// Order the table (and, recursively, every partition).
//	tbl.Sort(func(a, b Person) int { return a.Age - b.Age })
//
// # Propagation Pipeline
//
// Every Set/Delete/Touch (or one Batch) runs the same synchronous pipeline
// before it returns: base store → partition membership diff → ordered view
// → subscriber notification. Readers therefore always observe a fully
// consistent container.
//
// # Memoization
//
// Memo(true) materializes the sorted key/value projection and keeps it
// incrementally up to date with a two-pointer merge, so ordered reads are a
// copy instead of a full sort. Memoization only takes effect while a
// comparator is set; it is inherited by partitions at creation and
// re-propagated to all of them on every Memo call.
//
// # Observation
//
// Subscribe registers a listener that receives the exact set of keys
// affected by each mutation or batch. Structural operations (Sort, Index)
// that change no key deliver an empty delta. Typical reactive binding:
//
//	unsubscribe := tbl.Subscribe(func(keys []string) { rerender() })
//	defer unsubscribe()
//
// The Table is not safe for concurrent use; all operations are synchronous
// and single-threaded by design.
package facet
