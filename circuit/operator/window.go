package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// Window keeps, per key, only the rows whose value satisfies inRange as
// of the current tick, re-deriving the kept set
// whenever the key's group changes. It is layered directly on
// GroupTransform the way the original layers lag/topk-style operators on
// its GroupTransformer trait (crates/dbsp/src/operator/group/mod.rs),
// rather than introducing a separate incremental algorithm: a window is
// exactly a group transform whose output is "the subset of the group
// satisfying a range predicate."
func Window[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R]](c *circuit.Circuit, name string, delta circuit.Stream[zset.IZ[K, V, R]], inRange func(V) bool) circuit.Stream[zset.Z[zset.Pair[K, V], R]] {
	return GroupTransform(c, name, delta, Ascending, func(group []zset.Tuple[V, R]) []zset.Tuple[V, R] {
		var out []zset.Tuple[V, R]
		for _, row := range group {
			if inRange(row.Item) {
				out = append(out, row)
			}
		}
		return out
	})
}
