package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// Join computes the incremental equi-join of two indexed Z-set delta
// streams sharing a key type, via the semi-naive decomposition
// Δa⋈b_prev + a_prev⋈Δb + Δa⋈Δb, ported in spirit from
// operator/join.rs and generalized from runtime/sam/op/join/join.go's
// getLeftKey/getRightKey evaluators and key-keyed accumulation. combine
// is called once per matching (valueA, valueB) pair; the output weight is
// the product of the two input weights, per Z-set join semantics.
func Join[K zset.Ordered[K], VA zset.Ordered[VA], VB zset.Ordered[VB], O zset.Ordered[O], R algebra.Value[R]](c *circuit.Circuit, name string, deltaA circuit.Stream[zset.IZ[K, VA, R]], deltaB circuit.Stream[zset.IZ[K, VB, R]], combine func(K, VA, VB) O) circuit.Stream[zset.Z[O, R]] {
	integralA := IntegrateIndexed(c, name+".a.integral", deltaA)
	beforeA, connectA := circuit.AddDelay(c, name+".a.integral.z1", zset.IZ[K, VA, R]{})
	connectA(integralA)

	integralB := IntegrateIndexed(c, name+".b.integral", deltaB)
	beforeB, connectB := circuit.AddDelay(c, name+".b.integral.z1", zset.IZ[K, VB, R]{})
	connectB(integralB)

	return circuit.AddQuaternaryOperator(c, name, deltaA, beforeA, deltaB, beforeB,
		func(da zset.IZ[K, VA, R], ba zset.IZ[K, VA, R], db zset.IZ[K, VB, R], bb zset.IZ[K, VB, R]) (zset.Z[O, R], error) {
			var out []zset.Tuple[O, R]

			joinPair := func(a zset.IZ[K, VA, R], b zset.IZ[K, VB, R], keys []K) {
				for _, k := range keys {
					avals := a.Group(k)
					bvals := b.Group(k)
					for _, av := range avals {
						for _, bv := range bvals {
							out = append(out, zset.Tuple[O, R]{
								Item:   combine(k, av.Item, bv.Item),
								Weight: av.Weight.Mul(bv.Weight),
							})
						}
					}
				}
			}

			// Δa ⋈ b_prev: only keys touched by da need scanning against ba.
			joinPair(da, bb, da.Keys())
			// a_prev ⋈ Δb: only keys touched by db need scanning against ba.
			joinPair(ba, db, db.Keys())
			// Δa ⋈ Δb: keys touched by both this tick.
			joinPair(da, db, da.Keys())

			return zset.FromTuples(out), nil
		})
}
