package zset

import (
	"sort"

	"github.com/vmware/database-stream-processor/algebra"
)

// Consolidate sorts tuples by Item and sums the weights of runs sharing an
// equal Item, dropping any run whose accumulated weight is zero. It works
// in place, reordering tuples, and returns the canonical prefix of that
// same backing array: strictly increasing by Item, no zero weights, no
// duplicate items.
//
// This is the same sort-then-merge algorithm as the original's
// `consolidate_slice`: a stable sort followed by a single pass with a
// write index and a read index, where the write index only advances past
// a run once that run's accumulated weight is known to be non-zero. The
// original elides bounds checks with raw pointer swaps; Go's bounds
// checks are cheap enough that a plain index-swap reproduces the same
// amortized O(n log n) + O(n) shape without unsafe code (this satisfies
// the "any equivalent in-place stable compaction" Open Question).
func Consolidate[T Ordered[T], R algebra.Value[R]](tuples []Tuple[T, R]) []Tuple[T, R] {
	if len(tuples) == 0 {
		return tuples
	}
	sort.SliceStable(tuples, func(i, j int) bool {
		return tuples[i].Item.Less(tuples[j].Item)
	})

	offset := 0
	for index := 1; index < len(tuples); index++ {
		if tuples[offset].Item.Equal(tuples[index].Item) {
			tuples[offset].Weight = tuples[offset].Weight.Add(tuples[index].Weight)
		} else {
			if !tuples[offset].Weight.IsZero() {
				offset++
			}
			tuples[offset], tuples[index] = tuples[index], tuples[offset]
		}
	}
	if !tuples[offset].Weight.IsZero() {
		offset++
	}
	return tuples[:offset]
}
