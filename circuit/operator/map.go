// Package operator implements the dataflow operator library: the
// relational/set primitives (Map, Filter, Index, Distinct, Join,
// Aggregate, GroupTransform, Window) built on top of circuit.Circuit and
// zset.Z/zset.IZ. The operator shape generalizes runtime/vam/op and
// runtime/sam/op's Pull-loop/done-protocol pattern to a push-per-tick Eval
// shape; the incremental algorithms themselves follow
// crates/dbsp/src/operator/*.
package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// Map applies f to every item in the stream's Z-set, keeping weights
// unchanged. f need not be injective: when two distinct inputs map to the
// same output, Map sums their weights while consolidating, which keeps
// the result canonical and is exactly the Z-set-algebra-correct behavior
// (two input rows mapping to equal output rows really do contribute
// additively).
func Map[A zset.Ordered[A], B zset.Ordered[B], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]], f func(A) B) circuit.Stream[zset.Z[B, R]] {
	return circuit.AddUnaryOperator(c, name, in, func(z zset.Z[A, R]) (zset.Z[B, R], error) {
		items := z.Items()
		out := make([]zset.Tuple[B, R], len(items))
		for i, t := range items {
			out[i] = zset.Tuple[B, R]{Item: f(t.Item), Weight: t.Weight}
		}
		return zset.FromTuples(out), nil
	})
}

// FlatMap applies f to every item, producing zero or more output items
// per input item, each carrying the input row's weight.
func FlatMap[A zset.Ordered[A], B zset.Ordered[B], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]], f func(A) []B) circuit.Stream[zset.Z[B, R]] {
	return circuit.AddUnaryOperator(c, name, in, func(z zset.Z[A, R]) (zset.Z[B, R], error) {
		var out []zset.Tuple[B, R]
		for _, t := range z.Items() {
			for _, b := range f(t.Item) {
				out = append(out, zset.Tuple[B, R]{Item: b, Weight: t.Weight})
			}
		}
		return zset.FromTuples(out), nil
	})
}

// Filter keeps only items for which pred returns true.
func Filter[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]], pred func(A) bool) circuit.Stream[zset.Z[A, R]] {
	return circuit.AddUnaryOperator(c, name, in, func(z zset.Z[A, R]) (zset.Z[A, R], error) {
		var out []zset.Tuple[A, R]
		for _, t := range z.Items() {
			if pred(t.Item) {
				out = append(out, t)
			}
		}
		return zset.FromTuples(out), nil
	})
}
