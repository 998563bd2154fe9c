package zset

import (
	"testing"

	"github.com/vmware/database-stream-processor/algebra"
)

// strKey is a minimal Ordered string wrapper used across these tests.
type strKey string

func (s strKey) Less(o strKey) bool  { return s < o }
func (s strKey) Equal(o strKey) bool { return s == o }

func tup(item string, w int64) Tuple[strKey, algebra.I64] {
	return Tuple[strKey, algebra.I64]{Item: strKey(item), Weight: algebra.I64(w)}
}

func TestConsolidateScenario1(t *testing.T) {
	in := []Tuple[strKey, algebra.I64]{tup("a", -1), tup("b", -2), tup("a", 1)}
	z := FromTuples(in)
	want := []Tuple[strKey, algebra.I64]{tup("b", -2)}
	got := z.Items()
	if len(got) != len(want) || got[0].Item != want[0].Item || got[0].Weight != want[0].Weight {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestConsolidateScenario2(t *testing.T) {
	in := []Tuple[strKey, algebra.I64]{tup("a", -1), tup("b", 0), tup("a", 1)}
	z := FromTuples(in)
	if !z.IsEmpty() {
		t.Fatalf("got %v, want empty", z.Items())
	}
}

func TestConsolidateIdempotent(t *testing.T) {
	in := []Tuple[strKey, algebra.I64]{tup("x", 3), tup("y", -1), tup("x", -3), tup("z", 2)}
	once := FromTuples(in)
	twice := FromTuples(once.Items())
	if !once.Equal(twice) {
		t.Fatalf("consolidate not idempotent: %v vs %v", once.Items(), twice.Items())
	}
}

func TestCanonicalFormSorted(t *testing.T) {
	in := []Tuple[strKey, algebra.I64]{tup("c", 1), tup("a", 1), tup("b", 1)}
	z := FromTuples(in)
	items := z.Items()
	for i := 1; i < len(items); i++ {
		if !items[i-1].Item.Less(items[i].Item) {
			t.Fatalf("not strictly sorted at %d: %v", i, items)
		}
	}
}

func TestPlusMinus(t *testing.T) {
	a := FromTuples([]Tuple[strKey, algebra.I64]{tup("x", 2)})
	b := FromTuples([]Tuple[strKey, algebra.I64]{tup("x", 2)})
	sum := a.Plus(b)
	if sum.Weight(strKey("x")) != 4 {
		t.Fatalf("got %d, want 4", sum.Weight(strKey("x")))
	}
	diff := sum.Minus(a).Minus(b)
	if !diff.IsEmpty() {
		t.Fatalf("got %v, want empty", diff.Items())
	}
}

func TestIndexedZSetGroupAndKeys(t *testing.T) {
	type triple = struct {
		Key    strKey
		Val    strKey
		Weight algebra.I64
	}
	iz := FromPairTuples([]triple{
		{Key: "k1", Val: "v1", Weight: 1},
		{Key: "k1", Val: "v2", Weight: 1},
		{Key: "k2", Val: "v1", Weight: 1},
	})
	keys := iz.Keys()
	if len(keys) != 2 || keys[0] != "k1" || keys[1] != "k2" {
		t.Fatalf("got keys %v", keys)
	}
	group := iz.Group("k1")
	if len(group) != 2 {
		t.Fatalf("got group %v, want 2 entries", group)
	}
}
