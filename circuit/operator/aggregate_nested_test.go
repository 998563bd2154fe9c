package operator

import (
	"testing"

	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

type numKey int64

func (k numKey) Less(o numKey) bool  { return k < o }
func (k numKey) Equal(o numKey) bool { return k == o }

func numIZ(triples ...[3]int64) zset.IZ[numKey, numKey, algebra.I64] {
	out := make([]struct {
		Key    numKey
		Val    numKey
		Weight algebra.I64
	}, len(triples))
	for i, t := range triples {
		out[i] = struct {
			Key    numKey
			Val    numKey
			Weight algebra.I64
		}{Key: numKey(t[0]), Val: numKey(t[1]), Weight: algebra.I64(t[2])}
	}
	return zset.FromPairTuples(out)
}

// TestAggregateIncrementalNestedMatchesBruteForce is the nested-stream
// counterpart to TestAggregateIncrementalCount: it checks
// aggregate_incremental_nested's central soundness property, that the
// fused (delta, before, after) reduction AggregateIncrementalNested
// builds on agrees, tick for tick, with the brute-force composition
// integrate_nested().integrate().aggregate(sum).differentiate().
// differentiate_nested() — ported from original_source's aggregate_test,
// which runs the same two equivalence pipelines side by side inside a
// genuinely nested/iterating scope and asserts they never diverge.
//
// ClockStart(scope) is called directly (rather than via circuit.Scope)
// to mark each new epoch boundary, mirroring what Scope.RunKillable does
// internally; this lets the test drive several sub-ticks per epoch
// without needing a full Scope wrapper around a single flat circuit.
func TestAggregateIncrementalNestedMatchesBruteForce(t *testing.T) {
	const scope = 0

	c := circuit.New(nil)
	h := circuit.AddInputIndexedZSet[numKey, numKey, algebra.I64](c, "in")

	sum := func(group []zset.Tuple[numKey, algebra.I64]) algebra.I64 {
		var total algebra.I64
		for _, tp := range group {
			total += algebra.I64(tp.Item) * tp.Weight
		}
		return total
	}

	// LHS: the fused incremental-nested aggregate, wired the way
	// AggregateIncrementalNested's doc comment describes — before/after
	// are the scope-local nested integral's pre- and post-tick values,
	// built with exactly the integrate+delay shape AggregateIncremental
	// builds around a plain (non-nested) delta.
	nestedIntegral := IntegrateNested(c, "x", scope, h.Stream())
	integralAfter := IntegrateIndexed(c, "x.integral", nestedIntegral)
	integralBefore, connectBefore := circuit.AddDelay(c, "x.integral.z1", zset.IZ[numKey, numKey, algebra.I64]{})
	connectBefore(integralAfter)
	aggIncNested := AggregateIncrementalNested(c, "agg-inc-nested", nestedIntegral, integralBefore, integralAfter, sum)
	lhs := DifferentiateNested(c, "lhs-diff-nested", scope, aggIncNested)

	// RHS: the brute-force reference, composed entirely from the
	// generic nested/outer integrate-differentiate operators plus the
	// non-incremental snapshot Aggregate.
	nestedIntegral2 := IntegrateNested(c, "x2", scope, h.Stream())
	doubleIntegral := IntegrateIndexed(c, "x2.integral", nestedIntegral2)
	snapshot := Aggregate(c, "snapshot", doubleIntegral, sum)
	diffOuter := Differentiate(c, "diff-outer", snapshot)
	rhs := DifferentiateNested(c, "rhs-diff-nested", scope, diffOuter)

	rounds := [][]zset.IZ[numKey, numKey, algebra.I64]{
		{
			numIZ([3]int64{1, 10, 1}, [3]int64{1, 20, 1}),
			numIZ([3]int64{2, 10, 1}, [3]int64{1, 10, -1}, [3]int64{1, 20, 1}, [3]int64{3, 10, 1}),
		},
		{
			numIZ([3]int64{4, 20, 1}, [3]int64{2, 10, -1}),
			numIZ([3]int64{5, 10, 1}, [3]int64{6, 10, 1}),
		},
	}

	for round, deltas := range rounds {
		c.ClockStart(scope)
		for tick, delta := range deltas {
			h.Push(delta)
			if err := c.Step(); err != nil {
				t.Fatalf("round %d tick %d: %v", round, tick, err)
			}
			if got, want := lhs.Value(), rhs.Value(); !got.Equal(want) {
				t.Fatalf("round %d tick %d: aggregate_incremental_nested = %v, want %v (brute-force)", round, tick, got.Items(), want.Items())
			}
		}
	}
}
