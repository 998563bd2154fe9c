package algebra

import (
	"math"
	"testing"
)

func TestI64Ring(t *testing.T) {
	a, b := I64(3), I64(-5)
	if got := a.Add(b); got != -2 {
		t.Fatalf("Add: got %d, want -2", got)
	}
	if got := a.Neg(); got != -3 {
		t.Fatalf("Neg: got %d, want -3", got)
	}
	if !I64(0).IsZero() {
		t.Fatal("IsZero: 0 should be zero")
	}
	if I64(1).IsZero() {
		t.Fatal("IsZero: 1 should not be zero")
	}
}

func TestCheckedOverflow(t *testing.T) {
	maxI64 := NewChecked[int64](math.MaxInt64)
	one := NewChecked[int64](1)

	defer func() {
		r := recover()
		if r != ErrOverflow {
			t.Fatalf("expected ErrOverflow panic, got %v", r)
		}
	}()
	_ = maxI64.Add(one)
	t.Fatal("expected panic on overflow")
}

func TestCheckedNoOverflow(t *testing.T) {
	a := NewChecked[int64](10)
	b := NewChecked[int64](20)
	got := a.Add(b)
	if got.Value() != 30 {
		t.Fatalf("got %d, want 30", got.Value())
	}
}

func TestCheckedNegOverflow(t *testing.T) {
	minI32 := NewChecked[int32](math.MinInt32)
	defer func() {
		if r := recover(); r != ErrOverflow {
			t.Fatalf("expected ErrOverflow panic, got %v", r)
		}
	}()
	_ = minI32.Neg()
	t.Fatal("expected panic on overflow")
}

func TestRational(t *testing.T) {
	half := NewRational(1, 2)
	quarter := NewRational(1, 4)
	sum := half.Add(quarter)
	if sum.String() != "3/4" {
		t.Fatalf("got %s, want 3/4", sum.String())
	}
	if !NewRational(0, 1).IsZero() {
		t.Fatal("0/1 should be zero")
	}
}

func TestSum(t *testing.T) {
	got := Sum([]I64{1, 2, 3, -1})
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}
