package cursor

// WeightAlgebra is the minimal contract Pair needs from a weight type:
// enough to add two weights together when both inputs agree on a value.
type WeightAlgebra[R any] interface {
	Add(R) R
	IsZero() bool
}

// Pair presents two cursors sharing a key/value order as a single merged
// cursor, the way a Spine presents its backing batches as one logical
// trace without materializing the merge. Ported in spirit from the
// original's crates/dbsp/src/trace/cursor/cursor_pair.rs: key_order and
// val_order record which side currently leads so stepping only advances
// the side(s) that were actually positioned at the value just consumed.
type Pair[K Ordered[K], V Ordered[V], R WeightAlgebra[R]] struct {
	c1, c2     Cursor[K, V, R]
	keyOrder   int // -1: c1 leads, 0: tied, 1: c2 leads
	valOrder   int
}

func NewPair[K Ordered[K], V Ordered[V], R WeightAlgebra[R]](c1, c2 Cursor[K, V, R]) *Pair[K, V, R] {
	p := &Pair[K, V, R]{c1: c1, c2: c2}
	p.fixKeyOrder()
	if p.currentKeyValid() {
		p.fixValOrder()
	}
	return p
}

func (p *Pair[K, V, R]) fixKeyOrder() {
	switch {
	case !p.c1.KeyValid() && !p.c2.KeyValid():
		p.keyOrder = 0
	case !p.c1.KeyValid():
		p.keyOrder = 1
	case !p.c2.KeyValid():
		p.keyOrder = -1
	case p.c1.Key().Less(p.c2.Key()):
		p.keyOrder = -1
	case p.c2.Key().Less(p.c1.Key()):
		p.keyOrder = 1
	default:
		p.keyOrder = 0
	}
}

func (p *Pair[K, V, R]) fixValOrder() {
	c1v, c2v := p.currentKey1Valid(), p.currentKey2Valid()
	switch {
	case !c1v && !c2v:
		p.valOrder = 0
	case !c1v || !p.c1.ValValid():
		p.valOrder = 1
	case !c2v || !p.c2.ValValid():
		p.valOrder = -1
	case p.c1.Val().Less(p.c2.Val()):
		p.valOrder = -1
	case p.c2.Val().Less(p.c1.Val()):
		p.valOrder = 1
	default:
		p.valOrder = 0
	}
}

func (p *Pair[K, V, R]) currentKey1Valid() bool { return p.keyOrder <= 0 && p.c1.KeyValid() }
func (p *Pair[K, V, R]) currentKey2Valid() bool { return p.keyOrder >= 0 && p.c2.KeyValid() }
func (p *Pair[K, V, R]) currentKeyValid() bool  { return p.currentKey1Valid() || p.currentKey2Valid() }

func (p *Pair[K, V, R]) KeyValid() bool { return p.currentKeyValid() }

func (p *Pair[K, V, R]) ValValid() bool {
	v1 := p.valOrder <= 0 && p.currentKey1Valid() && p.c1.ValValid()
	v2 := p.valOrder >= 0 && p.currentKey2Valid() && p.c2.ValValid()
	return v1 || v2
}

func (p *Pair[K, V, R]) Key() K {
	if p.keyOrder <= 0 {
		return p.c1.Key()
	}
	return p.c2.Key()
}

func (p *Pair[K, V, R]) Val() V {
	if p.valOrder <= 0 && p.currentKey1Valid() && p.c1.ValValid() {
		return p.c1.Val()
	}
	return p.c2.Val()
}

// Weight sums the contributions of both sides when they currently agree
// on the same (key, val); otherwise it is just the one side's weight.
func (p *Pair[K, V, R]) Weight() R {
	left := p.valOrder <= 0 && p.currentKey1Valid() && p.c1.ValValid()
	right := p.valOrder >= 0 && p.currentKey2Valid() && p.c2.ValValid()
	switch {
	case left && right:
		return p.c1.Weight().Add(p.c2.Weight())
	case left:
		return p.c1.Weight()
	default:
		return p.c2.Weight()
	}
}

func (p *Pair[K, V, R]) StepVal() {
	if p.valOrder <= 0 && p.currentKey1Valid() {
		p.c1.StepVal()
	}
	if p.valOrder >= 0 && p.currentKey2Valid() {
		p.c2.StepVal()
	}
	p.fixValOrder()
}

func (p *Pair[K, V, R]) StepValReverse() {
	if p.valOrder <= 0 && p.currentKey1Valid() {
		p.c1.StepValReverse()
	}
	if p.valOrder >= 0 && p.currentKey2Valid() {
		p.c2.StepValReverse()
	}
	p.fixValOrder()
}

func (p *Pair[K, V, R]) SeekVal(v V) {
	if p.currentKey1Valid() {
		p.c1.SeekVal(v)
	}
	if p.currentKey2Valid() {
		p.c2.SeekVal(v)
	}
	p.fixValOrder()
}

func (p *Pair[K, V, R]) SeekValReverse(v V) {
	if p.currentKey1Valid() {
		p.c1.SeekValReverse(v)
	}
	if p.currentKey2Valid() {
		p.c2.SeekValReverse(v)
	}
	p.fixValOrder()
}

func (p *Pair[K, V, R]) StepKey() {
	if p.keyOrder <= 0 {
		p.c1.StepKey()
	}
	if p.keyOrder >= 0 {
		p.c2.StepKey()
	}
	p.fixKeyOrder()
	if p.currentKeyValid() {
		p.fixValOrder()
	}
}

func (p *Pair[K, V, R]) StepKeyReverse() {
	if p.keyOrder <= 0 {
		p.c1.StepKeyReverse()
	}
	if p.keyOrder >= 0 {
		p.c2.StepKeyReverse()
	}
	p.fixKeyOrder()
	if p.currentKeyValid() {
		p.fixValOrder()
	}
}

func (p *Pair[K, V, R]) SeekKey(k K) {
	p.c1.SeekKey(k)
	p.c2.SeekKey(k)
	p.fixKeyOrder()
	if p.currentKeyValid() {
		p.fixValOrder()
	}
}

func (p *Pair[K, V, R]) SeekKeyReverse(k K) {
	p.c1.SeekKeyReverse(k)
	p.c2.SeekKeyReverse(k)
	p.fixKeyOrder()
	if p.currentKeyValid() {
		p.fixValOrder()
	}
}

func (p *Pair[K, V, R]) Rewind() {
	p.c1.Rewind()
	p.c2.Rewind()
	p.fixKeyOrder()
	if p.currentKeyValid() {
		p.fixValOrder()
	}
}

func (p *Pair[K, V, R]) RewindVals() {
	p.c1.RewindVals()
	p.c2.RewindVals()
	p.fixValOrder()
}

func (p *Pair[K, V, R]) FastForward() {
	p.c1.FastForward()
	p.c2.FastForward()
	p.fixKeyOrder()
	if p.currentKeyValid() {
		p.fixValOrder()
	}
}

func (p *Pair[K, V, R]) FastForwardVals() {
	p.c1.FastForwardVals()
	p.c2.FastForwardVals()
	p.fixValOrder()
}
