// Package circuit implements the dataflow graph: streams, operators, and
// the circuit that wires them together and steps them one tick at a
// time. The component construction/wiring shape follows service/core.go;
// a node holding its upstream dependencies follows
// runtime/sam/op/join/join.go. The graph is validated once, by Build,
// before its first tick.
package circuit

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vmware/database-stream-processor/algebra"
)

// node is the type-erased evaluation contract every operator satisfies;
// Circuit only ever talks to its nodes through this interface, which is
// what lets Stream[T] stay strongly typed while the graph itself is
// heterogeneous.
type node interface {
	Name() string
	ClockStart(scope int)
	ClockEnd(scope int)
	Fixedpoint(scope int) bool
	Eval() error
	// Commit runs once per tick, after every node's Eval has completed.
	// Only delay (Z^-1) nodes do anything here: they capture their
	// upstream's final value for this tick so it can be handed back as
	// "last tick's value" during Eval next tick, regardless of where the
	// delay happens to sit in construction order relative to its
	// upstream's producer. Every other node leaves this a no-op.
	Commit() error
}

// Circuit is a fixed dataflow graph: a value slot per stream and a list
// of operator nodes in evaluation order. Nodes are only ever appended in
// the order their constructing Add*Operator call runs, so by
// construction every node's non-delay inputs were already written this
// tick by the time the node itself evaluates.
type Circuit struct {
	log   *zap.Logger
	slots []any
	nodes []node
	depth int  // nesting depth; 0 is the root circuit, see scope.go
	built bool // set once Build has validated the graph
}

// New returns an empty root circuit.
func New(log *zap.Logger) *Circuit {
	if log == nil {
		log = zap.NewNop()
	}
	return &Circuit{log: log}
}

func (c *Circuit) newSlot(initial any) int {
	c.slots = append(c.slots, initial)
	return len(c.slots) - 1
}

// delayLike is implemented by every delay-family node (AddDelay,
// AddNestedDelay); Build uses it to check that a delay's feedback loop
// was actually wired before the circuit runs. A delay is the only node
// type whose output is handed out before its input is known — that
// two-phase construction is what lets a cycle close at all — so it is
// also the only node type Build needs to inspect: every other node is
// wired to its inputs atomically at construction time and so can never
// reference a stream that doesn't yet exist.
type delayLike interface {
	node
	connected() bool
}

// Build validates that every delay registered on the circuit had its
// connect closure called before the graph runs; an AddDelay/AddNestedDelay
// whose feedback loop was never wired up would otherwise only surface as
// a generic Commit error on the circuit's first tick; Build catches it as
// a KindBuildError instead, with the delay's own name attached. Step and
// StepKillable call Build automatically before a circuit's first tick, so
// most callers never need to call it directly — it is exported for a
// caller that assembles a circuit across several functions and wants to
// fail fast at the end of construction rather than discover the mistake
// on first Step.
func (c *Circuit) Build() error {
	for _, n := range c.nodes {
		dn, ok := n.(delayLike)
		if ok && !dn.connected() {
			return newError(KindBuildError, dn.Name(), fmt.Errorf("circuit: delay registered but its feedback loop was never connected"))
		}
	}
	c.built = true
	return nil
}

// Step evaluates every node once, in construction order, converting an
// algebra.ErrOverflow panic raised by any node's Eval into a KindOverflow
// Error — operators themselves never recover from this panic; the
// circuit is the single point that catches it.
func (c *Circuit) Step() (err error) {
	if !c.built {
		if err := c.Build(); err != nil {
			return err
		}
	}
	defer func() {
		if r := recover(); r != nil {
			if oerr, ok := r.(error); ok && errors.Is(oerr, algebra.ErrOverflow) {
				err = newError(KindOverflow, "", oerr)
				return
			}
			err = newError(KindUserError, "", fmt.Errorf("circuit: panic: %v", r))
		}
	}()
	for _, n := range c.nodes {
		if e := n.Eval(); e != nil {
			var cerr *Error
			if errors.As(e, &cerr) {
				return cerr
			}
			return newError(KindUserError, n.Name(), e)
		}
	}
	for _, n := range c.nodes {
		if e := n.Commit(); e != nil {
			return newError(KindUserError, n.Name(), e)
		}
	}
	return nil
}

// StepKillable is Step with a cooperative cancellation check: killed is
// polled before every node's Eval and before every node's Commit, and a
// true result aborts the tick immediately with KindKilled rather than
// running it to completion. A nil killed behaves exactly like Step.
// This is the hook scheduler.Static/scheduler.Dynamic drive; Step itself
// stays free of any scheduling policy so callers with no runtime/kill
// flag in play (most tests) don't have to thread one through.
func (c *Circuit) StepKillable(killed func() bool) (err error) {
	if killed == nil {
		return c.Step()
	}
	if !c.built {
		if err := c.Build(); err != nil {
			return err
		}
	}
	defer func() {
		if r := recover(); r != nil {
			if oerr, ok := r.(error); ok && errors.Is(oerr, algebra.ErrOverflow) {
				err = newError(KindOverflow, "", oerr)
				return
			}
			err = newError(KindUserError, "", fmt.Errorf("circuit: panic: %v", r))
		}
	}()
	for _, n := range c.nodes {
		if killed() {
			return newError(KindKilled, n.Name(), fmt.Errorf("circuit: kill flag observed before eval"))
		}
		if e := n.Eval(); e != nil {
			var cerr *Error
			if errors.As(e, &cerr) {
				return cerr
			}
			return newError(KindUserError, n.Name(), e)
		}
	}
	for _, n := range c.nodes {
		if killed() {
			return newError(KindKilled, n.Name(), fmt.Errorf("circuit: kill flag observed before commit"))
		}
		if e := n.Commit(); e != nil {
			return newError(KindUserError, n.Name(), e)
		}
	}
	return nil
}

// NumNodes returns the number of operator nodes in the circuit, i.e. how
// many Eval calls one Step/StepKillable performs. Used by runtime.Worker's
// metrics wiring to account operator evaluations without the circuit
// package needing to know anything about prometheus.
func (c *Circuit) NumNodes() int { return len(c.nodes) }

// ClockStart/ClockEnd propagate scope lifecycle events (entering or
// leaving a nested iterating Scope, see scope.go) to every node in
// construction order; ClockEnd additionally reports whether every node
// claims the scope reached a fixedpoint, which a Scope uses to decide
// whether to iterate again.
func (c *Circuit) ClockStart(scope int) {
	for _, n := range c.nodes {
		n.ClockStart(scope)
	}
}

func (c *Circuit) ClockEnd(scope int) bool {
	fixed := true
	for _, n := range c.nodes {
		n.ClockEnd(scope)
		if !n.Fixedpoint(scope) {
			fixed = false
		}
	}
	return fixed
}

// AddSource registers a leaf operator that produces a fresh value every
// tick by calling pull, with no upstream circuit dependency (e.g. an
// external feed). Most inputs should use AddInputZSet/AddInputIndexedZSet
// instead; AddSource exists for sources the circuit owns outright.
func AddSource[T any](c *Circuit, name string, pull func() (T, error)) Stream[T] {
	out := newStream[T](c)
	c.nodes = append(c.nodes, &sourceNode[T]{label: name, pull: pull, out: out})
	return out
}

type sourceNode[T any] struct {
	label string
	pull  func() (T, error)
	out   Stream[T]
}

func (n *sourceNode[T]) Name() string             { return n.label }
func (n *sourceNode[T]) ClockStart(int)           {}
func (n *sourceNode[T]) ClockEnd(int)             {}
func (n *sourceNode[T]) Fixedpoint(int) bool      { return true }
func (n *sourceNode[T]) Commit() error            { return nil }
func (n *sourceNode[T]) Eval() error {
	v, err := n.pull()
	if err != nil {
		return err
	}
	n.out.set(v)
	return nil
}

// AddUnaryOperator wires a single-input operator: f runs once per tick
// against in's current-tick value and produces this tick's value for the
// returned stream.
func AddUnaryOperator[A any, B any](c *Circuit, name string, in Stream[A], f func(A) (B, error)) Stream[B] {
	out := newStream[B](c)
	c.nodes = append(c.nodes, &unaryNode[A, B]{label: name, in: in, f: f, out: out})
	return out
}

type unaryNode[A any, B any] struct {
	label string
	in    Stream[A]
	f     func(A) (B, error)
	out   Stream[B]
}

func (n *unaryNode[A, B]) Name() string        { return n.label }
func (n *unaryNode[A, B]) ClockStart(int)      {}
func (n *unaryNode[A, B]) ClockEnd(int)        {}
func (n *unaryNode[A, B]) Fixedpoint(int) bool { return true }
func (n *unaryNode[A, B]) Commit() error       { return nil }
func (n *unaryNode[A, B]) Eval() error {
	v, err := n.f(n.in.Value())
	if err != nil {
		return err
	}
	n.out.set(v)
	return nil
}

// AddBinaryOperator wires a two-input operator.
func AddBinaryOperator[A any, B any, C any](c *Circuit, name string, a Stream[A], b Stream[B], f func(A, B) (C, error)) Stream[C] {
	out := newStream[C](c)
	c.nodes = append(c.nodes, &binaryNode[A, B, C]{label: name, a: a, b: b, f: f, out: out})
	return out
}

type binaryNode[A any, B any, C any] struct {
	label string
	a     Stream[A]
	b     Stream[B]
	f     func(A, B) (C, error)
	out   Stream[C]
}

func (n *binaryNode[A, B, C]) Name() string        { return n.label }
func (n *binaryNode[A, B, C]) ClockStart(int)      {}
func (n *binaryNode[A, B, C]) ClockEnd(int)        {}
func (n *binaryNode[A, B, C]) Fixedpoint(int) bool { return true }
func (n *binaryNode[A, B, C]) Commit() error       { return nil }
func (n *binaryNode[A, B, C]) Eval() error {
	v, err := n.f(n.a.Value(), n.b.Value())
	if err != nil {
		return err
	}
	n.out.set(v)
	return nil
}

// AddTernaryOperator wires a three-input operator; GroupTransform-style
// operators that need (delta, integral-before, integral-after) use this.
func AddTernaryOperator[A any, B any, C any, D any](c *Circuit, name string, a Stream[A], b Stream[B], cc Stream[C], f func(A, B, C) (D, error)) Stream[D] {
	out := newStream[D](c)
	c.nodes = append(c.nodes, &ternaryNode[A, B, C, D]{label: name, a: a, b: b, c: cc, f: f, out: out})
	return out
}

type ternaryNode[A any, B any, C any, D any] struct {
	label string
	a     Stream[A]
	b     Stream[B]
	c     Stream[C]
	f     func(A, B, C) (D, error)
	out   Stream[D]
}

func (n *ternaryNode[A, B, C, D]) Name() string        { return n.label }
func (n *ternaryNode[A, B, C, D]) ClockStart(int)      {}
func (n *ternaryNode[A, B, C, D]) ClockEnd(int)        {}
func (n *ternaryNode[A, B, C, D]) Fixedpoint(int) bool { return true }
func (n *ternaryNode[A, B, C, D]) Commit() error       { return nil }
func (n *ternaryNode[A, B, C, D]) Eval() error {
	v, err := n.f(n.a.Value(), n.b.Value(), n.c.Value())
	if err != nil {
		return err
	}
	n.out.set(v)
	return nil
}

// AddQuaternaryOperator wires a four-input operator; Join's semi-naive
// decomposition (delta x prev-integral on each side, plus delta x delta)
// needs all four streams available in one Eval call.
func AddQuaternaryOperator[A any, B any, C any, D any, E any](c *Circuit, name string, a Stream[A], b Stream[B], cc Stream[C], d Stream[D], f func(A, B, C, D) (E, error)) Stream[E] {
	out := newStream[E](c)
	c.nodes = append(c.nodes, &quaternaryNode[A, B, C, D, E]{label: name, a: a, b: b, c: cc, d: d, f: f, out: out})
	return out
}

type quaternaryNode[A any, B any, C any, D any, E any] struct {
	label string
	a     Stream[A]
	b     Stream[B]
	c     Stream[C]
	d     Stream[D]
	f     func(A, B, C, D) (E, error)
	out   Stream[E]
}

func (n *quaternaryNode[A, B, C, D, E]) Name() string        { return n.label }
func (n *quaternaryNode[A, B, C, D, E]) ClockStart(int)      {}
func (n *quaternaryNode[A, B, C, D, E]) ClockEnd(int)        {}
func (n *quaternaryNode[A, B, C, D, E]) Fixedpoint(int) bool { return true }
func (n *quaternaryNode[A, B, C, D, E]) Commit() error       { return nil }
func (n *quaternaryNode[A, B, C, D, E]) Eval() error {
	v, err := n.f(n.a.Value(), n.b.Value(), n.c.Value(), n.d.Value())
	if err != nil {
		return err
	}
	n.out.set(v)
	return nil
}

// AddSink wires a side-effecting terminal operator (Inspect/Condition)
// that consumes a stream's value without producing one of its own.
func AddSink[A any](c *Circuit, name string, in Stream[A], f func(A) error) {
	c.nodes = append(c.nodes, &sinkNode[A]{label: name, in: in, f: f})
}

type sinkNode[A any] struct {
	label string
	in    Stream[A]
	f     func(A) error
}

func (n *sinkNode[A]) Name() string        { return n.label }
func (n *sinkNode[A]) ClockStart(int)      {}
func (n *sinkNode[A]) ClockEnd(int)        {}
func (n *sinkNode[A]) Fixedpoint(int) bool { return true }
func (n *sinkNode[A]) Commit() error       { return nil }
func (n *sinkNode[A]) Eval() error         { return n.f(n.in.Value()) }
