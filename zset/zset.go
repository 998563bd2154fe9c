package zset

import "github.com/vmware/database-stream-processor/algebra"

// Z is a Z-set: a finite mapping from records of type T to signed weights
// R, always kept in canonical form — strictly sorted by T, no zero
// weights, no duplicate items.
type Z[T Ordered[T], R algebra.Value[R]] struct {
	items []Tuple[T, R]
}

// FromTuples builds a Z-set from a (possibly unsorted, possibly
// duplicate-containing) slice of (item, weight) tuples by consolidating
// them. This is the canonical constructor every operator that produces a
// fresh Z-set goes through.
func FromTuples[T Ordered[T], R algebra.Value[R]](tuples []Tuple[T, R]) Z[T, R] {
	cp := make([]Tuple[T, R], len(tuples))
	copy(cp, tuples)
	return Z[T, R]{items: Consolidate(cp)}
}

// Empty returns the zero Z-set.
func Empty[T Ordered[T], R algebra.Value[R]]() Z[T, R] {
	return Z[T, R]{}
}

func (z Z[T, R]) Len() int      { return len(z.items) }
func (z Z[T, R]) IsEmpty() bool { return len(z.items) == 0 }

// Items returns the canonical (item, weight) pairs in ascending order.
// Callers must not mutate the returned slice.
func (z Z[T, R]) Items() []Tuple[T, R] { return z.items }

// Weight returns the multiplicity of item, or zero if absent.
func (z Z[T, R]) Weight(item T) R {
	var zero R
	zero = zero.Zero()
	for _, t := range z.items {
		if t.Item.Equal(item) {
			return t.Weight
		}
	}
	return zero
}

// Plus adds two Z-sets pointwise, returning a fresh canonical result.
func (z Z[T, R]) Plus(o Z[T, R]) Z[T, R] {
	merged := make([]Tuple[T, R], 0, len(z.items)+len(o.items))
	merged = append(merged, z.items...)
	merged = append(merged, o.items...)
	return Z[T, R]{items: Consolidate(merged)}
}

// Negate returns -z, i.e. every weight negated.
func (z Z[T, R]) Negate() Z[T, R] {
	out := make([]Tuple[T, R], len(z.items))
	for i, t := range z.items {
		out[i] = Tuple[T, R]{Item: t.Item, Weight: t.Weight.Neg()}
	}
	return Z[T, R]{items: out}
}

// Minus computes z - o.
func (z Z[T, R]) Minus(o Z[T, R]) Z[T, R] {
	return z.Plus(o.Negate())
}

// Equal reports whether z and o have identical canonical forms.
func (z Z[T, R]) Equal(o Z[T, R]) bool {
	if len(z.items) != len(o.items) {
		return false
	}
	for i := range z.items {
		if !z.items[i].Item.Equal(o.items[i].Item) || !z.items[i].Weight.Equal(o.items[i].Weight) {
			return false
		}
	}
	return true
}
