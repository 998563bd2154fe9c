package operator

import (
	"sort"

	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// Monotonicity tells GroupTransform what it may assume about how a
// group's transformed output changes as the group's input values
// change, letting it interleave retractions of the previous output with
// insertions of the new one in a single sorted merge walk instead of
// retracting everything before inserting anything. Ported from the
// original's crates/dbsp/src/operator/group/mod.rs
// (DiffGroupTransformer::transform).
type Monotonicity int

const (
	// Unordered gives GroupTransform no ordering guarantee to exploit:
	// every output entry the transform previously emitted for the key is
	// retracted unconditionally, and the transform is re-run over the
	// whole (post-tick) group from scratch. This is the safe default:
	// unordered groups get full replacement, not a diff, matching
	// DiffGroupTransformer::transform's actual Unordered branch.
	Unordered Monotonicity = iota
	// Ascending promises transform returns its rows in ascending Val
	// order (true of any transform built from a sorted group scan, e.g.
	// a range filter): GroupTransform merges the fresh rows against the
	// previous output trace by Val, retracting every previous row ≤ the
	// value about to be inserted immediately before inserting it.
	Ascending
	// Descending is Ascending's mirror image: transform must return rows
	// in descending Val order, and the merge retracts previous rows ≥
	// the value about to be inserted, walking the output trace from its
	// high end.
	Descending
)

// GroupTransformFunc maps one key's full (post-tick) group of
// (value, weight) rows to the set of output rows that key should
// contribute, ordered (ascending or descending, per the Monotonicity
// passed to GroupTransform) by Val when monotonicity is not Unordered.
type GroupTransformFunc[V any, R algebra.Value[R], O any] func(group []zset.Tuple[V, R]) []zset.Tuple[O, R]

// GroupTransform re-derives a per-key transform's output whenever the
// key's input group changes. Ascending/Descending walk the previous
// output trace and the freshly computed rows together in Val order, so
// a retraction is emitted immediately before the insertion that
// invalidates it rather than after every retraction for the key;
// Unordered has no such guarantee to exploit and retracts the entire
// previous output for the key up front.
func GroupTransform[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R], O zset.Ordered[O]](c *circuit.Circuit, name string, delta circuit.Stream[zset.IZ[K, V, R]], mono Monotonicity, transform GroupTransformFunc[V, R, O]) circuit.Stream[zset.Z[zset.Pair[K, O], R]] {
	integral := IntegrateIndexed(c, name+".integral", delta)
	outputTrace := newOutputTrace[K, O, R]()

	return circuit.AddBinaryOperator(c, name, delta, integral, func(d zset.IZ[K, V, R], after zset.IZ[K, V, R]) (zset.Z[zset.Pair[K, O], R], error) {
		var out []zset.Tuple[zset.Pair[K, O], R]
		retract := func(k K, row zset.Tuple[O, R]) {
			out = append(out, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: row.Item}, Weight: row.Weight.Neg()})
		}
		insert := func(k K, row zset.Tuple[O, R]) {
			out = append(out, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: row.Item}, Weight: row.Weight})
		}

		for _, k := range d.Keys() {
			prevRows := outputTrace.take(k)
			fresh := transform(after.Group(k))

			switch mono {
			case Ascending:
				sort.Slice(fresh, func(i, j int) bool { return fresh[i].Item.Less(fresh[j].Item) })
				pi := 0
				for _, row := range fresh {
					for pi < len(prevRows) && !row.Item.Less(prevRows[pi].Item) {
						retract(k, prevRows[pi])
						pi++
					}
					insert(k, row)
				}
				for ; pi < len(prevRows); pi++ {
					retract(k, prevRows[pi])
				}
				outputTrace.put(k, fresh)

			case Descending:
				sort.Slice(fresh, func(i, j int) bool { return fresh[j].Item.Less(fresh[i].Item) })
				pi := len(prevRows) - 1
				var buffered []zset.Tuple[zset.Pair[K, O], R]
				bufRetract := func(row zset.Tuple[O, R]) {
					buffered = append(buffered, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: row.Item}, Weight: row.Weight.Neg()})
				}
				bufInsert := func(row zset.Tuple[O, R]) {
					buffered = append(buffered, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: row.Item}, Weight: row.Weight})
				}
				for _, row := range fresh {
					for pi >= 0 && !prevRows[pi].Item.Less(row.Item) {
						bufRetract(prevRows[pi])
						pi--
					}
					bufInsert(row)
				}
				for ; pi >= 0; pi-- {
					bufRetract(prevRows[pi])
				}
				for i := len(buffered) - 1; i >= 0; i-- {
					out = append(out, buffered[i])
				}
				ascending := make([]zset.Tuple[O, R], len(fresh))
				for i, row := range fresh {
					ascending[len(fresh)-1-i] = row
				}
				outputTrace.put(k, ascending)

			default: // Unordered
				for _, row := range prevRows {
					retract(k, row)
				}
				outputTrace.put(k, fresh)
				for _, row := range fresh {
					insert(k, row)
				}
			}
		}

		return zset.FromTuples(out), nil
	})
}

// outputTrace remembers, per key, the last set of rows GroupTransform
// emitted for it, so the next tick's retraction knows exactly what to
// undo. K is only known to satisfy zset.Ordered (Less/Equal), not
// comparable, so entries are kept in a key-sorted slice and located by
// binary search, the same representation zset.Z itself uses.
type outputTrace[K zset.Ordered[K], O any, R algebra.Value[R]] struct {
	entries []traceEntry[K, O, R]
}

type traceEntry[K zset.Ordered[K], O any, R algebra.Value[R]] struct {
	key  K
	rows []zset.Tuple[O, R]
}

func newOutputTrace[K zset.Ordered[K], O any, R algebra.Value[R]]() *outputTrace[K, O, R] {
	return &outputTrace[K, O, R]{}
}

func (t *outputTrace[K, O, R]) find(k K) int {
	lo, hi := 0, len(t.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case t.entries[mid].key.Equal(k):
			return mid
		case t.entries[mid].key.Less(k):
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1
}

// take removes and returns the rows previously recorded for k, if any.
func (t *outputTrace[K, O, R]) take(k K) []zset.Tuple[O, R] {
	i := t.find(k)
	if i < 0 {
		return nil
	}
	rows := t.entries[i].rows
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return rows
}

// put records rows as the current output for k, inserting in key order.
func (t *outputTrace[K, O, R]) put(k K, rows []zset.Tuple[O, R]) {
	if len(rows) == 0 {
		return
	}
	lo, hi := 0, len(t.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.entries[mid].key.Less(k) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	t.entries = append(t.entries, traceEntry[K, O, R]{})
	copy(t.entries[lo+1:], t.entries[lo:])
	t.entries[lo] = traceEntry[K, O, R]{key: k, rows: rows}
}
