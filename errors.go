package facet

import (
	"errors"
	"fmt"
)

var (
	// ErrBatchInProgress is returned when a structural operation (Sort,
	// Index, Reindex, ClearIndex, Memo, Clear) is invoked while a batch
	// callback is executing. Structural changes would corrupt the batch's
	// diff bookkeeping, so they fail immediately without touching state.
	ErrBatchInProgress = errors.New("structural operation during batch")

	// ErrReadOnlyPartition is returned when a mutating operation is invoked
	// on a partition. Partitions are views; their contents may only change
	// through the parent's index.
	ErrReadOnlyPartition = errors.New("partition is read-only")
)

// ErrInvalidPartitionName indicates a partition name that contains the
// reserved path separator, or is empty.
type ErrInvalidPartitionName struct {
	Name string
}

func (e *ErrInvalidPartitionName) Error() string {
	return fmt.Sprintf("invalid partition name: %q", e.Name)
}

// ListenerPanicError aggregates panics recovered from subscribers during a
// single notification. Every subscriber is notified before the mutating
// call re-panics with this error, so delivery is always complete.
type ListenerPanicError struct {
	// Panics holds the recovered values in subscription order.
	Panics []any
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("%d subscriber(s) panicked during notification: %v", len(e.Panics), e.Panics)
}
