// Package cursor implements the batch/trace traversal contract and its
// combinators, ported in spirit from the original's
// crates/dbsp/src/trace/cursor/{mod,cursor_pair}.rs.
package cursor

// Cursor walks a batch or trace ordered first by key, then by value
// within a key. A cursor is always positioned at a key (possibly past
// the end, in which case KeyValid is false) and, within that key, at a
// value (possibly past the end of that key's values, in which case
// ValValid is false).
type Cursor[K any, V any, R any] interface {
	KeyValid() bool
	ValValid() bool
	Key() K
	Val() V
	// Weight returns the accumulated weight of the current (key, val)
	// pair as of the trace's upper frontier.
	Weight() R

	StepKey()
	StepKeyReverse()
	StepVal()
	StepValReverse()

	SeekKey(K)
	SeekKeyReverse(K)
	SeekVal(V)
	SeekValReverse(V)

	Rewind()
	RewindVals()
	FastForward()
	FastForwardVals()
}

// Direction records which way a CursorPair's two inputs are currently
// being driven, so that switching direction can be done lazily (only
// when the caller actually reverses).
type Direction int

const (
	Forward Direction = iota
	Reverse
)
