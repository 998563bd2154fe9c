package timeproduct

// Product is a nested pair of timestamps, one outer (the enclosing
// scope's clock) and one inner (this scope's own clock). Scope 0 refers
// to Inner; scope k>0 is delegated to Outer at scope k-1.
type Product[TOuter Timestamp[TOuter], TInner Timestamp[TInner]] struct {
	Outer TOuter
	Inner TInner
}

func New[TOuter Timestamp[TOuter], TInner Timestamp[TInner]](outer TOuter, inner TInner) Product[TOuter, TInner] {
	return Product[TOuter, TInner]{Outer: outer, Inner: inner}
}

func (p Product[TOuter, TInner]) Minimum() Product[TOuter, TInner] {
	var o TOuter
	var i TInner
	return Product[TOuter, TInner]{Outer: o.Minimum(), Inner: i.Minimum()}
}

func (p Product[TOuter, TInner]) Join(o Product[TOuter, TInner]) Product[TOuter, TInner] {
	return Product[TOuter, TInner]{
		Outer: p.Outer.Join(o.Outer),
		Inner: p.Inner.Join(o.Inner),
	}
}

func (p Product[TOuter, TInner]) Meet(o Product[TOuter, TInner]) Product[TOuter, TInner] {
	return Product[TOuter, TInner]{
		Outer: p.Outer.Meet(o.Outer),
		Inner: p.Inner.Meet(o.Inner),
	}
}

// LessEqual is componentwise, matching the original's partial order: both
// coordinates must be less-equal for the product to be less-equal.
func (p Product[TOuter, TInner]) LessEqual(o Product[TOuter, TInner]) bool {
	return p.Outer.LessEqual(o.Outer) && p.Inner.LessEqual(o.Inner)
}

// Advance increments the clock at the given scope. Scope 0 advances Inner
// in place; scope k>0 advances Outer at scope k-1 and resets Inner to its
// minimum, since entering a new outer iteration restarts the inner clock.
func (p Product[TOuter, TInner]) Advance(scope int) Product[TOuter, TInner] {
	if scope == 0 {
		return Product[TOuter, TInner]{Outer: p.Outer, Inner: p.Inner.Advance(0)}
	}
	var zero TInner
	return Product[TOuter, TInner]{Outer: p.Outer.Advance(scope - 1), Inner: zero.Minimum()}
}

// Recede is Advance's inverse: scope 0 recedes Inner; scope k>0 recedes
// Outer and leaves Inner untouched (mirroring the original, which does
// not reset Inner on recede).
func (p Product[TOuter, TInner]) Recede(scope int) Product[TOuter, TInner] {
	if scope == 0 {
		return Product[TOuter, TInner]{Outer: p.Outer, Inner: p.Inner.Recede(0)}
	}
	return Product[TOuter, TInner]{Outer: p.Outer.Recede(scope - 1), Inner: p.Inner}
}

func (p Product[TOuter, TInner]) EpochStart(scope int) Product[TOuter, TInner] {
	if scope == 0 {
		var zero TInner
		return Product[TOuter, TInner]{Outer: p.Outer, Inner: zero.Minimum()}
	}
	return Product[TOuter, TInner]{Outer: p.Outer.EpochStart(scope - 1), Inner: func() TInner { var z TInner; return z.Minimum() }()}
}

func (p Product[TOuter, TInner]) EpochEnd(scope int) Product[TOuter, TInner] {
	if scope == 0 {
		return Product[TOuter, TInner]{Outer: p.Outer, Inner: p.Inner.EpochEnd(0)}
	}
	return Product[TOuter, TInner]{Outer: p.Outer.EpochEnd(scope - 1), Inner: p.Inner.EpochEnd(0)}
}
