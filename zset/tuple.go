package zset

import "github.com/vmware/database-stream-processor/algebra"

// Tuple is a single (record, weight) pair as it arrives at a consolidation
// boundary — the Go equivalent of the original's `(T, R)` pair.
type Tuple[T Ordered[T], R algebra.Value[R]] struct {
	Item   T
	Weight R
}
