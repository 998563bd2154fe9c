// Package trace implements the immutable, ordered batch and the
// log-structured spine trace that approximates a Z-set's running
// integral. A batch's rows are consolidated once, at construction, and
// never mutated afterwards, so a batch needs no lock; the
// consolidation/spine layout follows the dbsp Rust crate's design.
package trace

import (
	"github.com/segmentio/ksuid"

	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/timeproduct"
	"github.com/vmware/database-stream-processor/zset"
)

// Ordered is the shared key/value ordering contract, re-exported here so
// callers of the trace package don't need to import zset directly.
type Ordered[T any] = zset.Ordered[T]

// item is the (key, val, time) triple a batch stores one weight per.
type item[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time]] struct {
	Key  K
	Val  V
	Time Time
}

func (i item[K, V, Time]) Less(o item[K, V, Time]) bool {
	if !i.Key.Equal(o.Key) {
		return i.Key.Less(o.Key)
	}
	if !i.Val.Equal(o.Val) {
		return i.Val.Less(o.Val)
	}
	return i.timeLess(o.Time)
}

// timeLess gives the triple a total order over Time even though Timestamp
// only promises a partial order (LessEqual): batches need a single
// deterministic tuple ordering, so ties under the lattice order are
// broken by treating equal-under-LessEqual-both-ways as Equal and
// otherwise ordering by the forward direction of LessEqual.
func (i item[K, V, Time]) timeLess(o Time) bool {
	return i.Time.LessEqual(o) && !o.LessEqual(i.Time)
}

func (i item[K, V, Time]) Equal(o item[K, V, Time]) bool {
	return i.Key.Equal(o.Key) && i.Val.Equal(o.Val) && i.Time.LessEqual(o.Time) && o.Time.LessEqual(i.Time)
}

// Tuple is a single (key, val, time, weight) record as it arrives at a
// batch boundary.
type Tuple[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time], R algebra.Value[R]] struct {
	Key    K
	Val    V
	Time   Time
	Weight R
}

// Batch is an immutable, key-sorted, value-sorted, time-tagged slice of an
// indexed Z-set. Once built it is never mutated; Merge always returns a
// fresh Batch.
type Batch[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time], R algebra.Value[R]] struct {
	id   ksuid.KSUID
	rows []zset.Tuple[item[K, V, Time], R]
}

// FromTuples consolidates an unsorted, possibly-duplicate-containing
// slice of tuples into a canonical Batch: sorted by (key, val, time), no
// two rows sharing a (key, val, time), no zero weights.
func FromTuples[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time], R algebra.Value[R]](tuples []Tuple[K, V, Time, R]) Batch[K, V, Time, R] {
	zt := make([]zset.Tuple[item[K, V, Time], R], len(tuples))
	for i, t := range tuples {
		zt[i] = zset.Tuple[item[K, V, Time], R]{
			Item:   item[K, V, Time]{Key: t.Key, Val: t.Val, Time: t.Time},
			Weight: t.Weight,
		}
	}
	return Batch[K, V, Time, R]{id: ksuid.New(), rows: zset.Consolidate(zt)}
}

// Empty returns a Batch with no rows.
func Empty[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time], R algebra.Value[R]]() Batch[K, V, Time, R] {
	return Batch[K, V, Time, R]{id: ksuid.New()}
}

// ID is the batch's unique identity, used only for correlating log and
// metric output across merges — it carries no semantic weight in the
// data model itself.
func (b Batch[K, V, Time, R]) ID() ksuid.KSUID { return b.id }

func (b Batch[K, V, Time, R]) Len() int      { return len(b.rows) }
func (b Batch[K, V, Time, R]) IsEmpty() bool { return len(b.rows) == 0 }

// Keys returns the distinct keys present, in ascending order.
func (b Batch[K, V, Time, R]) Keys() []K {
	var out []K
	first := true
	var last K
	for _, r := range b.rows {
		if first || !last.Equal(r.Item.Key) {
			out = append(out, r.Item.Key)
			last = r.Item.Key
			first = false
		}
	}
	return out
}

// Merge produces a new Batch containing the additive sum of b and o:
// keys/values present in only one side are copied, coincident
// (key, val, time) tuples have weights summed and dropped if zero.
func (b Batch[K, V, Time, R]) Merge(o Batch[K, V, Time, R]) Batch[K, V, Time, R] {
	combined := make([]zset.Tuple[item[K, V, Time], R], 0, len(b.rows)+len(o.rows))
	combined = append(combined, b.rows...)
	combined = append(combined, o.rows...)
	return Batch[K, V, Time, R]{id: ksuid.New(), rows: zset.Consolidate(combined)}
}

// rowsView exposes the consolidated rows for cursor construction within
// this package and trace/cursor via the Source interface below.
func (b Batch[K, V, Time, R]) rowsView() []zset.Tuple[item[K, V, Time], R] { return b.rows }
