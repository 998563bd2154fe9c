package zset

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/trace/cursor"
)

// izCursor walks an indexed Z-set's consolidated rows grouped by key,
// then by value within a key — the same grouped representation
// trace.batchCursor builds for a Batch, but over an IZ's already-sorted
// Pair items directly rather than over timestamped rows that still need
// summing.
type izCursor[K Ordered[K], V Ordered[V], R algebra.Value[R]] struct {
	groups []izGroup[K, V, R]
	keyPos int
	valPos int
}

type izGroup[K Ordered[K], V Ordered[V], R algebra.Value[R]] struct {
	key  K
	vals []Tuple[V, R]
}

func newIZCursor[K Ordered[K], V Ordered[V], R algebra.Value[R]](items []Tuple[Pair[K, V], R]) *izCursor[K, V, R] {
	c := &izCursor[K, V, R]{}
	var cur *izGroup[K, V, R]
	for _, t := range items {
		if cur == nil || !cur.key.Equal(t.Item.Key) {
			c.groups = append(c.groups, izGroup[K, V, R]{key: t.Item.Key})
			cur = &c.groups[len(c.groups)-1]
		}
		cur.vals = append(cur.vals, Tuple[V, R]{Item: t.Item.Val, Weight: t.Weight})
	}
	return c
}

func (c *izCursor[K, V, R]) KeyValid() bool { return c.keyPos >= 0 && c.keyPos < len(c.groups) }
func (c *izCursor[K, V, R]) ValValid() bool {
	return c.KeyValid() && c.valPos >= 0 && c.valPos < len(c.groups[c.keyPos].vals)
}
func (c *izCursor[K, V, R]) Key() K    { return c.groups[c.keyPos].key }
func (c *izCursor[K, V, R]) Val() V    { return c.groups[c.keyPos].vals[c.valPos].Item }
func (c *izCursor[K, V, R]) Weight() R { return c.groups[c.keyPos].vals[c.valPos].Weight }

func (c *izCursor[K, V, R]) StepKey() {
	c.keyPos++
	c.valPos = 0
}
func (c *izCursor[K, V, R]) StepKeyReverse() {
	c.keyPos--
	c.valPos = 0
}
func (c *izCursor[K, V, R]) StepVal()        { c.valPos++ }
func (c *izCursor[K, V, R]) StepValReverse() { c.valPos-- }

func (c *izCursor[K, V, R]) SeekKey(k K) {
	for c.KeyValid() && c.groups[c.keyPos].key.Less(k) {
		c.keyPos++
	}
	c.valPos = 0
}
func (c *izCursor[K, V, R]) SeekKeyReverse(k K) {
	for c.KeyValid() && k.Less(c.groups[c.keyPos].key) {
		c.keyPos--
	}
	c.valPos = 0
}
func (c *izCursor[K, V, R]) SeekVal(v V) {
	vals := c.groups[c.keyPos].vals
	for c.ValValid() && vals[c.valPos].Item.Less(v) {
		c.valPos++
	}
}
func (c *izCursor[K, V, R]) SeekValReverse(v V) {
	vals := c.groups[c.keyPos].vals
	for c.ValValid() && v.Less(vals[c.valPos].Item) {
		c.valPos--
	}
}

func (c *izCursor[K, V, R]) Rewind()     { c.keyPos = 0; c.valPos = 0 }
func (c *izCursor[K, V, R]) RewindVals() { c.valPos = 0 }
func (c *izCursor[K, V, R]) FastForward() {
	c.keyPos = len(c.groups) - 1
	c.valPos = 0
}
func (c *izCursor[K, V, R]) FastForwardVals() {
	if c.KeyValid() {
		c.valPos = len(c.groups[c.keyPos].vals) - 1
	}
}

// Cursor returns a fresh read cursor over iz's rows, grouped by key and
// ordered ascending by value within a key.
func (iz IZ[K, V, R]) Cursor() cursor.Cursor[K, V, R] {
	return newIZCursor[K, V, R](iz.z.Items())
}
