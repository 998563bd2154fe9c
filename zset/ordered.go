// Package zset implements the Z-set and indexed Z-set data model: finite
// mappings from records to signed multiplicities, plus the consolidation
// algorithm that keeps them in canonical (sorted, zero-stripped) form.
package zset

// Ordered constrains a type usable as a Z-set key or batch key/value: a
// total order (Less) plus value equality (Equal), mirroring the `Ord`
// bound the original Rust implementation places on every key and value
// type it stores in a batch.
type Ordered[T any] interface {
	Less(T) bool
	Equal(T) bool
}

// Pair is an indexed Z-set's (key, value) pair, itself Ordered
// lexicographically by (Key, Val) when K and V are.
type Pair[K Ordered[K], V Ordered[V]] struct {
	Key K
	Val V
}

func (p Pair[K, V]) Less(o Pair[K, V]) bool {
	if !p.Key.Equal(o.Key) {
		return p.Key.Less(o.Key)
	}
	return p.Val.Less(o.Val)
}

func (p Pair[K, V]) Equal(o Pair[K, V]) bool {
	return p.Key.Equal(o.Key) && p.Val.Equal(o.Val)
}
