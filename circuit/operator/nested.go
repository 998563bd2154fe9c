package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// integrateNestedGeneric is integrateGeneric with a nested-scope register:
// the running total resets to zero at the start of scope's epoch instead
// of accumulating across the whole run.
func integrateNestedGeneric[T any](c *circuit.Circuit, name string, scope int, in circuit.Stream[T], zero T, add func(T, T) T) circuit.Stream[T] {
	delayed, connect := circuit.AddNestedDelay(c, name+".z1", scope, zero)
	sum := circuit.AddBinaryOperator(c, name, in, delayed, func(a, b T) (T, error) { return add(a, b), nil })
	connect(sum)
	return sum
}

// differentiateNestedGeneric is Differentiate's delay-and-subtract shape
// (linear.go) with a nested-scope register: the subtrahend resets to zero at the start of scope's epoch,
// so the first tick of a new epoch differentiates against zero rather
// than the previous epoch's final value.
func differentiateNestedGeneric[T any](c *circuit.Circuit, name string, scope int, in circuit.Stream[T], zero T, minus func(T, T) T) circuit.Stream[T] {
	delayed, connect := circuit.AddNestedDelay(c, name+".z1", scope, zero)
	connect(in)
	return circuit.AddBinaryOperator(c, name, in, delayed, func(a, b T) (T, error) { return minus(a, b), nil })
}

// IntegrateNested is Integrate generalized to run inside a nested
// iterating scope: it accumulates deltas into a running total the same
// way, except the total resets to empty at the start of every new epoch
// of scope instead of carrying the previous epoch's total forward. This
// is the nested-time integral i_nested used to build
// aggregate_incremental_nested's non-incremental reference pipeline; see
// original_source's integrate_nested.
func IntegrateNested[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R]](c *circuit.Circuit, name string, scope int, in circuit.Stream[zset.IZ[K, V, R]]) circuit.Stream[zset.IZ[K, V, R]] {
	return integrateNestedGeneric(c, name, scope, in, zset.IZ[K, V, R]{}, func(a, b zset.IZ[K, V, R]) zset.IZ[K, V, R] { return a.Plus(b) })
}

// DifferentiateNested is Differentiate generalized the same way: an
// epoch's first tick differentiates against zero, not against whatever
// the previous epoch's accumulator ended on.
func DifferentiateNested[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, scope int, in circuit.Stream[zset.Z[A, R]]) circuit.Stream[zset.Z[A, R]] {
	return differentiateNestedGeneric(c, name, scope, in, zset.Empty[A, R](), func(a, b zset.Z[A, R]) zset.Z[A, R] { return a.Minus(b) })
}

// Aggregate is the non-incremental counterpart to AggregateIncremental:
// every key present in in's current value gets its aggregate recomputed
// from scratch, emitted with weight +1. It is O(table size) per tick
// rather than O(delta size), so production pipelines want
// AggregateIncremental/AggregateIncrementalNested instead; Aggregate
// exists as the brute-force reference those are checked against, and to
// give aggregate_incremental_nested's snapshot step
// (integrate_nested().integrate().aggregate(f)...) an operator to call.
func Aggregate[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R], O zset.Ordered[O]](c *circuit.Circuit, name string, in circuit.Stream[zset.IZ[K, V, R]], agg AggregateFunc[V, R, O]) circuit.Stream[zset.Z[zset.Pair[K, O], R]] {
	return circuit.AddUnaryOperator(c, name, in, func(iz zset.IZ[K, V, R]) (zset.Z[zset.Pair[K, O], R], error) {
		var one R
		one = one.Zero().One()

		keys := iz.Keys()
		out := make([]zset.Tuple[zset.Pair[K, O], R], len(keys))
		for i, k := range keys {
			out[i] = zset.Tuple[zset.Pair[K, O], R]{Item: zset.Pair[K, O]{Key: k, Val: agg(iz.Group(k))}, Weight: one}
		}
		return zset.FromTuples(out), nil
	})
}
