package circuit

// Stream is a typed handle onto one slot of a Circuit's per-tick value
// table. Streams are produced by Add*Operator calls and consumed as
// arguments to later Add*Operator calls; the order in which they are
// created is the order operators evaluate in, except where a Delay
// stream breaks that ordering deliberately (see delay.go).
type Stream[T any] struct {
	c    *Circuit
	slot int
}

// Value reads the stream's value as of the most recently completed
// Step. A delay's output stream is the exception: its Commit has already
// replaced the value with the one the next tick will read. Calling Value
// from inside an operator's own Eval before that stream's producer has
// run this tick returns the previous tick's value, which no operator may
// rely on — non-delay operators must only read streams produced earlier
// in construction order.
func (s Stream[T]) Value() T {
	v, _ := s.c.slots[s.slot].(T)
	return v
}

func (s Stream[T]) set(v T) { s.c.slots[s.slot] = v }

func newStream[T any](c *Circuit) Stream[T] {
	var zero T
	return Stream[T]{c: c, slot: c.newSlot(zero)}
}
