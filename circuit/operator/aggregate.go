package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// IntegrateIndexed is Integrate's indexed-Z-set counterpart.
func IntegrateIndexed[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.IZ[K, V, R]]) circuit.Stream[zset.IZ[K, V, R]] {
	return integrateGeneric(c, name, in, zset.IZ[K, V, R]{}, func(a, b zset.IZ[K, V, R]) zset.IZ[K, V, R] { return a.Plus(b) })
}

// AggregateFunc reduces one key's full group of (value, weight) rows down
// to a single aggregate output. It is called once against the group as
// it stood before this tick's delta and once against the group as it
// stands after, so it must be a pure function of the group contents, not
// of the delta itself — that is what lets AggregateIncremental compute
// it without re-scanning the whole table.
type AggregateFunc[V any, R algebra.Value[R], O any] func(group []zset.Tuple[V, R]) O

// AggregateIncremental computes, for every key touched by this tick's
// delta, the aggregate value before and after the tick and emits a
// retraction of the old (key, value) pair plus an insertion of the new
// one. Ported in spirit from the original's retract_old/insert_new
// decomposition (src/operator/aggregate.rs): retract_old is the binary
// operator over (delta, pre-tick integral), insert_new is the binary
// operator over (delta, post-tick integral), and their sum is the
// output — when the aggregate didn't actually change for a key, the
// retraction and insertion carry equal (key, value) pairs with opposite
// weight and cancel during consolidation, so no spurious churn escapes.
// The table-keyed-grouping shape (Aggregator/Row) follows
// runtime/sam/op/aggregate/aggregate.go.
func AggregateIncremental[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R], O zset.Ordered[O]](c *circuit.Circuit, name string, delta circuit.Stream[zset.IZ[K, V, R]], agg AggregateFunc[V, R, O]) circuit.Stream[zset.Z[zset.Pair[K, O], R]] {
	integralAfter := IntegrateIndexed(c, name+".integral", delta)
	integralBefore, connect := circuit.AddDelay(c, name+".integral.z1", zset.IZ[K, V, R]{})
	connect(integralAfter)

	return circuit.AddTernaryOperator(c, name, delta, integralBefore, integralAfter, func(d, before, after zset.IZ[K, V, R]) (zset.Z[zset.Pair[K, O], R], error) {
		var one R
		one = one.Zero().One()

		out := make([]zset.Tuple[zset.Pair[K, O], R], 0, 2*len(d.Keys()))
		for _, k := range d.Keys() {
			// Only retract/insert a key that actually has rows in that
			// half of the integral — a key touched by this tick's delta
			// for the first time has no "before" entry at all, and one
			// retracted down to nothing has no "after" entry, so those
			// halves contribute nothing rather than a spurious
			// agg(empty group) row.
			if g := before.Group(k); len(g) > 0 {
				out = append(out, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: agg(g)}, Weight: one.Neg()})
			}
			if g := after.Group(k); len(g) > 0 {
				out = append(out, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: agg(g)}, Weight: one})
			}
		}
		return zset.FromTuples(out), nil
	})
}

// AggregateIncrementalNested is AggregateIncremental generalized to run
// inside a nested iterating Scope: the caller supplies the scope-local
// delta/before/after streams (already wired to the scope's own Z^-1
// register by the caller, since the feedback loop has to be built inside
// circuit.Scope.Inner(), not here) and AggregateIncrementalNested only
// contributes the per-tick reduction, matching the original's
// AggregateIncrementalNested, which reuses the same retract_old/
// insert_new operator body as the non-nested version and differs only in
// which circuit it is instantiated on.
func AggregateIncrementalNested[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R], O zset.Ordered[O]](c *circuit.Circuit, name string, delta, before, after circuit.Stream[zset.IZ[K, V, R]], agg AggregateFunc[V, R, O]) circuit.Stream[zset.Z[zset.Pair[K, O], R]] {
	return circuit.AddTernaryOperator(c, name, delta, before, after, func(d, b, a zset.IZ[K, V, R]) (zset.Z[zset.Pair[K, O], R], error) {
		var one R
		one = one.Zero().One()

		out := make([]zset.Tuple[zset.Pair[K, O], R], 0, 2*len(d.Keys()))
		for _, k := range d.Keys() {
			if g := b.Group(k); len(g) > 0 {
				out = append(out, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: agg(g)}, Weight: one.Neg()})
			}
			if g := a.Group(k); len(g) > 0 {
				out = append(out, zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: agg(g)}, Weight: one})
			}
		}
		return zset.FromTuples(out), nil
	})
}
