package cursor

// Ordered is the minimal comparison contract a Group cursor's key type
// must satisfy to tell when the underlying cursor has walked off the
// restricted key.
type Ordered[T any] interface {
	Less(T) bool
	Equal(T) bool
}

// Group restricts an underlying Cursor to the single key it was built
// with: KeyValid stays true until the underlying cursor moves to a
// different key, at which point the group reports exhaustion even if
// the underlying cursor still has more keys left to give. This is the
// shape an aggregate or join operator wants when it has already seeked
// to a key and only needs that key's values.
type Group[K Ordered[K], V any, R any] struct {
	inner Cursor[K, V, R]
	key   K
	valid bool
}

// NewGroup seeks inner to key and wraps it. If inner has no rows for
// key, the returned Group is immediately exhausted.
func NewGroup[K Ordered[K], V any, R any](inner Cursor[K, V, R], key K) *Group[K, V, R] {
	inner.SeekKey(key)
	g := &Group[K, V, R]{inner: inner, key: key}
	g.valid = inner.KeyValid() && inner.Key().Equal(key)
	return g
}

func (g *Group[K, V, R]) KeyValid() bool { return g.valid }
func (g *Group[K, V, R]) ValValid() bool { return g.valid && g.inner.ValValid() }
func (g *Group[K, V, R]) Key() K         { return g.key }
func (g *Group[K, V, R]) Val() V         { return g.inner.Val() }
func (g *Group[K, V, R]) Weight() R      { return g.inner.Weight() }

func (g *Group[K, V, R]) StepKey() { g.valid = false }
func (g *Group[K, V, R]) StepKeyReverse() { g.valid = false }
func (g *Group[K, V, R]) StepVal()        { g.inner.StepVal() }
func (g *Group[K, V, R]) StepValReverse() { g.inner.StepValReverse() }

func (g *Group[K, V, R]) SeekKey(K)        {}
func (g *Group[K, V, R]) SeekKeyReverse(K) {}
func (g *Group[K, V, R]) SeekVal(v V)        { g.inner.SeekVal(v) }
func (g *Group[K, V, R]) SeekValReverse(v V) { g.inner.SeekValReverse(v) }

func (g *Group[K, V, R]) Rewind()          { g.inner.RewindVals() }
func (g *Group[K, V, R]) RewindVals()      { g.inner.RewindVals() }
func (g *Group[K, V, R]) FastForward()     { g.inner.FastForwardVals() }
func (g *Group[K, V, R]) FastForwardVals() { g.inner.FastForwardVals() }
