package trace

import (
	"context"
	"testing"

	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/timeproduct"
)

type strKey string

func (s strKey) Less(o strKey) bool  { return s < o }
func (s strKey) Equal(o strKey) bool { return s == o }

func tup(k, v string, t timeproduct.Nat, w int64) Tuple[strKey, strKey, timeproduct.Nat, algebra.I64] {
	return Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{
		Key: strKey(k), Val: strKey(v), Time: t, Weight: algebra.I64(w),
	}
}

func TestBatchConsolidatesDuplicates(t *testing.T) {
	b := FromTuples([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{
		tup("a", "x", 0, 1),
		tup("a", "x", 0, 1),
		tup("a", "x", 0, -2),
	})
	if b.Len() != 0 {
		t.Fatalf("expected fully cancelling tuples to vanish, got %d rows", b.Len())
	}
}

func TestBatchKeysSorted(t *testing.T) {
	b := FromTuples([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{
		tup("b", "x", 0, 1),
		tup("a", "x", 0, 1),
		tup("c", "x", 0, 1),
	})
	keys := b.Keys()
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, k := range keys {
		if string(k) != want[i] {
			t.Fatalf("key %d: got %s want %s", i, k, want[i])
		}
	}
}

func TestBatchMerge(t *testing.T) {
	b1 := FromTuples([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{tup("a", "x", 0, 1)})
	b2 := FromTuples([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{tup("a", "x", 0, -1), tup("b", "y", 0, 3)})
	merged := b1.Merge(b2)
	if merged.Len() != 1 {
		t.Fatalf("expected a/x to cancel leaving one row, got %d", merged.Len())
	}
	if merged.Keys()[0] != "b" {
		t.Fatalf("expected surviving key b, got %s", merged.Keys()[0])
	}
}

func TestBatchCursorWalksKeysAndVals(t *testing.T) {
	b := FromTuples([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{
		tup("a", "x", 0, 1),
		tup("a", "y", 0, 2),
		tup("b", "z", 0, 3),
	})
	c := b.Cursor()
	var seen [][2]string
	for c.KeyValid() {
		k := c.Key()
		for c.ValValid() {
			seen = append(seen, [2]string{string(k), string(c.Val())})
			c.StepVal()
		}
		c.StepKey()
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 (key,val) pairs, got %d: %v", len(seen), seen)
	}
	if seen[0] != [2]string{"a", "x"} || seen[1] != [2]string{"a", "y"} || seen[2] != [2]string{"b", "z"} {
		t.Fatalf("unexpected cursor order: %v", seen)
	}
}

func TestSpineInsertAndCursor(t *testing.T) {
	s := NewSpine[strKey, strKey, timeproduct.Nat, algebra.I64](context.Background())
	if err := s.Insert(FromTuples([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{tup("a", "x", 0, 1)})); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(FromTuples([]Tuple[strKey, strKey, timeproduct.Nat, algebra.I64]{tup("a", "x", 0, -1), tup("b", "y", 0, 5)})); err != nil {
		t.Fatal(err)
	}
	merged := s.Cursor()
	if merged.Len() != 1 {
		t.Fatalf("expected a/x to cancel across levels, got %d rows", merged.Len())
	}
	if merged.Keys()[0] != "b" {
		t.Fatalf("expected surviving key b, got %s", merged.Keys()[0])
	}
}
