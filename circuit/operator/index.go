package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// Index reshapes a flat Z-set into an indexed Z-set by key, the
// operation every join and aggregate is built on top of. Grounded on the
// teacher's runtime/sam/op/meta/slicer.go, which does the same
// partition-by-key bookkeeping for its stash/slice records.
func Index[A zset.Ordered[A], K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]], key func(A) K, val func(A) V) circuit.Stream[zset.IZ[K, V, R]] {
	return circuit.AddUnaryOperator(c, name, in, func(z zset.Z[A, R]) (zset.IZ[K, V, R], error) {
		triples := make([]struct {
			Key    K
			Val    V
			Weight R
		}, len(z.Items()))
		for i, t := range z.Items() {
			triples[i].Key = key(t.Item)
			triples[i].Val = val(t.Item)
			triples[i].Weight = t.Weight
		}
		return zset.FromPairTuples(triples), nil
	})
}
