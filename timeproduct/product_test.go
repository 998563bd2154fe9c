package timeproduct

import "testing"

func TestProductAdvanceInner(t *testing.T) {
	p := New[Nat, Nat](5, 2)
	p2 := p.Advance(0)
	if p2.Outer != 5 || p2.Inner != 3 {
		t.Fatalf("got %+v, want outer=5 inner=3", p2)
	}
}

func TestProductAdvanceOuterResetsInner(t *testing.T) {
	p := New[Nat, Nat](5, 7)
	p2 := p.Advance(1)
	if p2.Outer != 6 || p2.Inner != 0 {
		t.Fatalf("got %+v, want outer=6 inner=0", p2)
	}
}

func TestProductJoinMeet(t *testing.T) {
	a := New[Nat, Nat](3, 9)
	b := New[Nat, Nat](5, 1)
	j := a.Join(b)
	if j.Outer != 5 || j.Inner != 9 {
		t.Fatalf("join: got %+v", j)
	}
	m := a.Meet(b)
	if m.Outer != 3 || m.Inner != 1 {
		t.Fatalf("meet: got %+v", m)
	}
}

func TestProductLessEqual(t *testing.T) {
	a := New[Nat, Nat](3, 3)
	b := New[Nat, Nat](5, 5)
	if !a.LessEqual(b) {
		t.Fatal("expected a <= b")
	}
	c := New[Nat, Nat](5, 1)
	if a.LessEqual(c) {
		t.Fatal("expected a not <= c (inner coordinate bigger on a)")
	}
}
