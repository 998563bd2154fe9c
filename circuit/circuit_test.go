package circuit

import (
	"errors"
	"testing"

	"github.com/vmware/database-stream-processor/algebra"
)

func TestUnaryAndBinaryWiring(t *testing.T) {
	c := New(nil)
	a := AddSource(c, "a", func() (int, error) { return 2, nil })
	doubled := AddUnaryOperator(c, "double", a, func(x int) (int, error) { return x * 2, nil })
	sum := AddBinaryOperator(c, "sum", a, doubled, func(x, y int) (int, error) { return x + y, nil })

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if got := sum.Value(); got != 6 {
		t.Fatalf("got %d, want 6", got)
	}
}

func TestDelayFeedsBackPreviousTick(t *testing.T) {
	c := New(nil)
	tick := 0
	src := AddSource(c, "src", func() (int, error) { tick++; return tick, nil })
	delayOut, connect := AddDelay(c, "z1", 0)
	sum := AddBinaryOperator(c, "sum", src, delayOut, func(a, b int) (int, error) { return a + b, nil })
	connect(sum)

	// sum_n = src_n + sum_{n-1}, a running total fed back through the
	// delay register.
	want := []int{1, 3, 6, 10}
	for i, w := range want {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
		if got := sum.Value(); got != w {
			t.Fatalf("tick %d: got %d want %d", i, got, w)
		}
	}
}

func TestBuildDetectsUnconnectedDelay(t *testing.T) {
	c := New(nil)
	AddDelay(c, "z1", 0) // connect is deliberately discarded

	err := c.Step()
	if err == nil {
		t.Fatal("expected a build error for an unconnected delay")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *circuit.Error, got %T: %v", err, err)
	}
	if cerr.Kind != KindBuildError {
		t.Fatalf("got kind %v, want KindBuildError", cerr.Kind)
	}
	if cerr.Op != "z1" {
		t.Fatalf("got op %q, want the unconnected delay's name", cerr.Op)
	}
}

func TestBuildPassesOnceDelayIsConnected(t *testing.T) {
	c := New(nil)
	src := AddSource(c, "src", func() (int, error) { return 1, nil })
	delayOut, connect := AddDelay(c, "z1", 0)
	connect(src)

	if err := c.Build(); err != nil {
		t.Fatalf("Build: unexpected error %v", err)
	}
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	// The delay's Commit has already captured src's first-tick value, so
	// from outside the circuit the output now holds what the second tick
	// will read.
	if got := delayOut.Value(); got != 1 {
		t.Fatalf("delay output after the first tick = %d, want 1 (src's value, captured at Commit)", got)
	}
}

func TestStepConvertsOverflowPanicToKindOverflow(t *testing.T) {
	c := New(nil)
	src := AddSource(c, "src", func() (algebra.Checked[int64], error) {
		return algebra.NewChecked(int64(9223372036854775807)), nil
	})
	AddUnaryOperator(c, "boom", src, func(x algebra.Checked[int64]) (algebra.Checked[int64], error) {
		return x.Add(algebra.NewChecked(int64(1))), nil
	})

	err := c.Step()
	if err == nil {
		t.Fatal("expected overflow error")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *circuit.Error, got %T: %v", err, err)
	}
	if cerr.Kind != KindOverflow {
		t.Fatalf("got kind %v, want KindOverflow", cerr.Kind)
	}
}
