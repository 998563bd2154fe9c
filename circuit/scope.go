package circuit

import "fmt"

// Scope is a nested, iterating subcircuit — the construct a recursive or
// iterative query compiles down to: a circuit nested inside an iterating
// scope. Each outer tick, the inner circuit runs clock_start,
// then repeatedly evaluates and checks clock_end until every inner node
// reports the scope has reached a fixedpoint.
type Scope struct {
	inner    *Circuit
	scopeIdx int
	maxIters int
}

// NewScope builds a fresh nested circuit one level deeper than parent.
// maxIters <= 0 means iterate until fixedpoint with no bound; callers
// processing untrusted or potentially-divergent recursive queries should
// pass a positive bound.
func NewScope(parent *Circuit, maxIters int) *Scope {
	child := New(parent.log)
	child.depth = parent.depth + 1
	return &Scope{inner: child, scopeIdx: parent.depth, maxIters: maxIters}
}

// Inner returns the nested circuit so operators can be wired onto it
// exactly as they would be on a root circuit.
func (s *Scope) Inner() *Circuit { return s.inner }

// Run drives the nested circuit through one full outer tick: clock_start,
// then eval/clock_end iterations until a fixedpoint or the iteration
// bound is hit.
func (s *Scope) Run() error {
	return s.RunKillable(nil)
}

// RunKillable is Run with a cooperative cancellation check polled between
// every sub-tick's operator evaluations (scheduler.Dynamic drives nested
// scopes through this). A true result from killed aborts the outer tick
// with KindKilled instead of continuing toward a fixedpoint.
func (s *Scope) RunKillable(killed func() bool) error {
	s.inner.ClockStart(s.scopeIdx)
	for iter := 0; ; iter++ {
		if err := s.inner.StepKillable(killed); err != nil {
			return err
		}
		if s.inner.ClockEnd(s.scopeIdx) {
			return nil
		}
		if s.maxIters > 0 && iter+1 >= s.maxIters {
			return newError(KindUserError, "", fmt.Errorf("scope at depth %d did not reach a fixedpoint within %d iterations", s.inner.depth, s.maxIters))
		}
	}
}
