// Package scheduler drives a circuit.Circuit through its ticks. Two
// variants share the same Scheduler interface: Static evaluates a fixed,
// build-time order once per tick; Dynamic additionally drives a nested
// scope's sub-tick iterations until it reaches a fixedpoint, checking the
// kill flag between every operator evaluation. The driving-loop shape —
// polling a shared cancellation signal between units of work — follows
// runtime/sam/op/meta/lister.go's scan loop.
package scheduler

import (
	"github.com/vmware/database-stream-processor/circuit"
)

// Scheduler steps a circuit for one logical tick, observing killed
// between operator evaluations. killed is polled, not owned: callers
// typically close over a runtime worker's atomic kill flag.
type Scheduler interface {
	Step(killed func() bool) error
}

// Static evaluates the circuit's operators in the fixed order they were
// added during construction, once per call to Step. This is the default
// and correct choice for any acyclic circuit, and for cyclic ones closed
// exclusively through circuit.AddDelay — the delay's Commit-phase design
// (see circuit/delay.go) makes construction order irrelevant to
// correctness there, so no explicit topological sort is needed: the
// order operators were added in is already a valid schedule.
type Static struct {
	c *circuit.Circuit
}

// NewStatic wraps c for static scheduling.
func NewStatic(c *circuit.Circuit) *Static { return &Static{c: c} }

func (s *Static) Step(killed func() bool) error {
	return s.c.StepKillable(killed)
}

// Dynamic drives a nested, iterating circuit.Scope through one full outer
// tick: clock_start, then repeated eval/clock_end sub-tick iterations
// until every node in the scope reports fixedpoint, or the kill flag is
// observed. Unlike Static's single fixed-order pass, the number of
// sub-tick iterations is not known ahead of a tick — it depends on how
// many rounds the enclosed recursive/iterative computation needs to
// settle: every node is always "ready" each sub-tick (this circuit model
// evaluates the whole node list per sub-tick rather than tracking
// per-node readiness bits), and the loop itself is what varies
// dynamically.
type Dynamic struct {
	scope *circuit.Scope
}

// NewDynamic wraps scope for kill-aware fixpoint iteration.
func NewDynamic(scope *circuit.Scope) *Dynamic {
	return &Dynamic{scope: scope}
}

func (d *Dynamic) Step(killed func() bool) error {
	return d.scope.RunKillable(killed)
}
