package trace

import (
	"context"
	"fmt"
	"testing"

	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/timeproduct"
)

// TestSpineLargeMergeDoesNotPoisonSubsequentInserts exercises mergeLevel's
// background path (row counts above mergeThreshold) across several
// Inserts in a row. A spine that shared one long-lived errgroup.Group
// across every merge would have its background context cancelled by the
// first merge's own error channel bookkeeping and silently fail every
// merge after it; this drives enough large batches through the same
// spine to catch that regression.
func TestSpineLargeMergeDoesNotPoisonSubsequentInserts(t *testing.T) {
	s := NewSpine[strKey, strKey, timeproduct.Nat, algebra.I64](context.Background())

	bigBatch := func(prefix string, n int) Batch[strKey, strKey, timeproduct.Nat, algebra.I64] {
		tuples := make([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64], n)
		for i := 0; i < n; i++ {
			tuples[i] = tup(fmt.Sprintf("%s-%04d", prefix, i), "v", 0, 1)
		}
		return FromTuples(tuples)
	}

	// Four batches of mergeThreshold (4096) rows each, so every merge goes
	// through the background path. The second Insert merges r1 with r2;
	// the fourth merges r3 with r4 and then cascades into the r1+r2 level,
	// so those two later merges run after the first merge's errgroup has
	// already completed and (if poisoned) would have left a cancelled
	// context behind.
	for i, prefix := range []string{"r1", "r2", "r3", "r4"} {
		if err := s.Insert(bigBatch(prefix, mergeThreshold)); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	merged := s.Cursor()
	if merged.Len() != 4*mergeThreshold {
		t.Fatalf("got %d rows across 4 disjoint large batches, want %d", merged.Len(), 4*mergeThreshold)
	}
}
