package zset

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/trace/cursor"
)

// IZ is an indexed Z-set: a Z-set over (key, value) pairs, presented so
// callers can iterate grouped by key without re-deriving the grouping
// themselves. Internally it is exactly Z[Pair[K,V], R] — the indexed
// presentation is just a view over the same canonical, sorted storage.
type IZ[K Ordered[K], V Ordered[V], R algebra.Value[R]] struct {
	z Z[Pair[K, V], R]
}

// FromPairTuples builds an indexed Z-set from (key, value, weight) triples.
func FromPairTuples[K Ordered[K], V Ordered[V], R algebra.Value[R]](triples []struct {
	Key    K
	Val    V
	Weight R
}) IZ[K, V, R] {
	tuples := make([]Tuple[Pair[K, V], R], len(triples))
	for i, t := range triples {
		tuples[i] = Tuple[Pair[K, V], R]{Item: Pair[K, V]{Key: t.Key, Val: t.Val}, Weight: t.Weight}
	}
	return IZ[K, V, R]{z: FromTuples(tuples)}
}

func FromZ[K Ordered[K], V Ordered[V], R algebra.Value[R]](z Z[Pair[K, V], R]) IZ[K, V, R] {
	return IZ[K, V, R]{z: z}
}

func (iz IZ[K, V, R]) Underlying() Z[Pair[K, V], R] { return iz.z }

func (iz IZ[K, V, R]) Len() int      { return iz.z.Len() }
func (iz IZ[K, V, R]) IsEmpty() bool { return iz.z.IsEmpty() }

func (iz IZ[K, V, R]) Items() []Tuple[Pair[K, V], R] { return iz.z.Items() }

func (iz IZ[K, V, R]) Plus(o IZ[K, V, R]) IZ[K, V, R] {
	return IZ[K, V, R]{z: iz.z.Plus(o.z)}
}

func (iz IZ[K, V, R]) Minus(o IZ[K, V, R]) IZ[K, V, R] {
	return IZ[K, V, R]{z: iz.z.Minus(o.z)}
}

func (iz IZ[K, V, R]) Negate() IZ[K, V, R] {
	return IZ[K, V, R]{z: iz.z.Negate()}
}

func (iz IZ[K, V, R]) Equal(o IZ[K, V, R]) bool { return iz.z.Equal(o.z) }

// Group returns the (value, weight) pairs associated with key, in
// ascending value order. Keys absent from the indexed Z-set yield nil.
// Walks a Group cursor rather than re-deriving the grouping by hand, the
// way an operator that has already seeked to a key only needs that
// key's values (trace/cursor.Group).
func (iz IZ[K, V, R]) Group(key K) []Tuple[V, R] {
	g := cursor.NewGroup[K, V, R](iz.Cursor(), key)
	var out []Tuple[V, R]
	for g.ValValid() {
		out = append(out, Tuple[V, R]{Item: g.Val(), Weight: g.Weight()})
		g.StepVal()
	}
	return out
}

// Keys returns the distinct keys present, in ascending order.
func (iz IZ[K, V, R]) Keys() []K {
	c := iz.Cursor()
	var out []K
	for c.KeyValid() {
		out = append(out, c.Key())
		c.StepKey()
	}
	return out
}
