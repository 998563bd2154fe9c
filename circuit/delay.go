package circuit

import "fmt"

// AddDelay registers a Z^-1 register: its output at tick n equals the
// connected upstream stream's value at tick n-1. This is the only way a
// cycle is allowed to close in a circuit (spec's "every cycle must pass
// through a delay"); the two-phase construction — get the output first,
// connect its feedback source once the loop body exists — mirrors how a
// feedback edge has to be built in any dataflow API where streams are
// only handed out by the operator that produces them.
//
// The register's output is only ever written during Commit, after every
// node (including upstream's own producer) has finished Eval for the
// tick. That is what makes "delay an already-existing stream" and
// "delay as the back-edge of a feedback loop" both correct with the same
// implementation regardless of which one was built first in
// construction order: out always holds exactly the value upstream had
// at the end of the previous tick while the current tick's nodes read it.
func AddDelay[T any](c *Circuit, name string, zero T) (out Stream[T], connect func(Stream[T])) {
	out = newStream[T](c)
	out.set(zero)
	n := &delayNode[T]{label: name, out: out}
	c.nodes = append(c.nodes, n)
	return out, func(upstream Stream[T]) { n.upstream = &upstream }
}

type delayNode[T any] struct {
	label    string
	upstream *Stream[T]
	out      Stream[T]
}

func (n *delayNode[T]) Name() string        { return n.label }
func (n *delayNode[T]) ClockStart(int)      {}
func (n *delayNode[T]) ClockEnd(int)        {}
func (n *delayNode[T]) Fixedpoint(int) bool { return true }
func (n *delayNode[T]) connected() bool     { return n.upstream != nil }

// Eval does nothing: out already holds the value Commit captured at the
// end of the previous tick.
func (n *delayNode[T]) Eval() error { return nil }

// Commit captures upstream's now-final value for this tick, to be read
// as "last tick's value" by anyone consulting out during the next tick.
func (n *delayNode[T]) Commit() error {
	if n.upstream == nil {
		return fmt.Errorf("circuit: delay %q stepped before its feedback loop was connected", n.label)
	}
	n.out.set(n.upstream.Value())
	return nil
}

// AddNestedDelay is AddDelay generalized for nested-scope accumulators: in
// addition to the usual Z^-1 feedback, out resets to zero whenever
// ClockStart fires for scope — i.e. at the start of every new epoch of
// that scope — rather than carrying the previous epoch's final value
// forward into the next one. A plain AddDelay wired into the same circuit
// never resets this way, which is what lets a nested accumulator (reset
// every epoch) and an outer one (never reset) coexist on the same inner
// circuit; see operator.IntegrateNested/DifferentiateNested, which are
// built on exactly this primitive.
func AddNestedDelay[T any](c *Circuit, name string, scope int, zero T) (out Stream[T], connect func(Stream[T])) {
	out = newStream[T](c)
	out.set(zero)
	n := &nestedDelayNode[T]{label: name, scope: scope, zero: zero, out: out}
	c.nodes = append(c.nodes, n)
	return out, func(upstream Stream[T]) { n.upstream = &upstream }
}

type nestedDelayNode[T any] struct {
	label    string
	scope    int
	zero     T
	upstream *Stream[T]
	out      Stream[T]
}

func (n *nestedDelayNode[T]) Name() string { return n.label }

// ClockStart resets out to zero at the start of scope's epoch, so the
// first tick of a new epoch reads the reset value rather than the
// previous epoch's final one.
func (n *nestedDelayNode[T]) ClockStart(scope int) {
	if scope == n.scope {
		n.out.set(n.zero)
	}
}

func (n *nestedDelayNode[T]) ClockEnd(int)        {}
func (n *nestedDelayNode[T]) Fixedpoint(int) bool { return true }
func (n *nestedDelayNode[T]) Eval() error         { return nil }
func (n *nestedDelayNode[T]) connected() bool     { return n.upstream != nil }

func (n *nestedDelayNode[T]) Commit() error {
	if n.upstream == nil {
		return fmt.Errorf("circuit: nested delay %q stepped before its feedback loop was connected", n.label)
	}
	n.out.set(n.upstream.Value())
	return nil
}
