package circuit

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/zset"
)

// ZSetHandle lets code outside the circuit push one Z-set delta per tick
// into the graph. A tick with nothing pushed feeds an empty Z-set, the
// same "absence means no change" convention the rest of the data model
// uses.
type ZSetHandle[T zset.Ordered[T], R algebra.Value[R]] struct {
	out    Stream[zset.Z[T, R]]
	staged zset.Z[T, R]
}

// Push stages z to be delivered on the next Step. Calling Push more than
// once before the next Step overwrites the earlier value; callers that
// want to union multiple updates into one tick must do so themselves
// before calling Push.
func (h *ZSetHandle[T, R]) Push(z zset.Z[T, R]) { h.staged = z }

func (h *ZSetHandle[T, R]) Stream() Stream[zset.Z[T, R]] { return h.out }

type zsetInputNode[T zset.Ordered[T], R algebra.Value[R]] struct {
	label  string
	handle *ZSetHandle[T, R]
}

func (n *zsetInputNode[T, R]) Name() string        { return n.label }
func (n *zsetInputNode[T, R]) ClockStart(int)      {}
func (n *zsetInputNode[T, R]) ClockEnd(int)        {}
func (n *zsetInputNode[T, R]) Fixedpoint(int) bool { return true }
func (n *zsetInputNode[T, R]) Commit() error       { return nil }
func (n *zsetInputNode[T, R]) Eval() error {
	n.handle.out.set(n.handle.staged)
	n.handle.staged = zset.Empty[T, R]()
	return nil
}

// AddInputZSet registers an externally-fed Z-set stream and returns the
// handle used to push data into it each tick.
func AddInputZSet[T zset.Ordered[T], R algebra.Value[R]](c *Circuit, name string) *ZSetHandle[T, R] {
	h := &ZSetHandle[T, R]{out: newStream[zset.Z[T, R]](c), staged: zset.Empty[T, R]()}
	c.nodes = append(c.nodes, &zsetInputNode[T, R]{label: name, handle: h})
	return h
}

// IndexedZSetHandle is ZSetHandle's indexed-Z-set counterpart, for inputs
// that are naturally keyed (tables, change feeds).
type IndexedZSetHandle[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R]] struct {
	out    Stream[zset.IZ[K, V, R]]
	staged zset.IZ[K, V, R]
}

func (h *IndexedZSetHandle[K, V, R]) Push(iz zset.IZ[K, V, R]) { h.staged = iz }

func (h *IndexedZSetHandle[K, V, R]) Stream() Stream[zset.IZ[K, V, R]] { return h.out }

type izsetInputNode[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R]] struct {
	label  string
	handle *IndexedZSetHandle[K, V, R]
}

func (n *izsetInputNode[K, V, R]) Name() string        { return n.label }
func (n *izsetInputNode[K, V, R]) ClockStart(int)      {}
func (n *izsetInputNode[K, V, R]) ClockEnd(int)        {}
func (n *izsetInputNode[K, V, R]) Fixedpoint(int) bool { return true }
func (n *izsetInputNode[K, V, R]) Commit() error       { return nil }
func (n *izsetInputNode[K, V, R]) Eval() error {
	n.handle.out.set(n.handle.staged)
	n.handle.staged = zset.IZ[K, V, R]{}
	return nil
}

// AddInputIndexedZSet registers an externally-fed indexed Z-set stream.
func AddInputIndexedZSet[K zset.Ordered[K], V zset.Ordered[V], R algebra.Value[R]](c *Circuit, name string) *IndexedZSetHandle[K, V, R] {
	h := &IndexedZSetHandle[K, V, R]{out: newStream[zset.IZ[K, V, R]](c)}
	c.nodes = append(c.nodes, &izsetInputNode[K, V, R]{label: name, handle: h})
	return h
}
