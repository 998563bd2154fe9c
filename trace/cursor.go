package trace

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/trace/cursor"
)

// batchCursor walks a Batch's consolidated rows grouped by key, then by
// value within a key, summing the weights of every time-stamped entry
// that shares the same (key, val) pair. A single batch already
// represents one bounded span of time, so unlike a trace cursor it never
// needs to consult an upper frontier.
type batchCursor[K Ordered[K], V Ordered[V], Time any, R algebra.Value[R]] struct {
	rows    []row[K, V, Time, R]
	keyPos  int
	keyEnd  int // exclusive end of the current key's value-run
	keyHigh int // one past the last row belonging to the current key
	valPos  int
	groups  []keyGroup[K, V, R]
}

type row[K any, V any, Time any, R any] struct {
	key    K
	val    V
	t      Time
	weight R
}

type valGroup[V any, R any] struct {
	val    V
	weight R
}

type keyGroup[K any, V any, R any] struct {
	key  K
	vals []valGroup[V, R]
}

// newBatchCursor builds the grouped representation once, up front; batches
// are immutable so this is paid exactly once per cursor.
func newBatchCursor[K Ordered[K], V Ordered[V], Time any, R algebra.Value[R]](rows []row[K, V, Time, R]) *batchCursor[K, V, Time, R] {
	c := &batchCursor[K, V, Time, R]{rows: rows}
	var curKey *keyGroup[K, V, R]
	var curVal *valGroup[V, R]
	for _, r := range rows {
		if curKey == nil || !curKey.key.Equal(r.key) {
			c.groups = append(c.groups, keyGroup[K, V, R]{key: r.key})
			curKey = &c.groups[len(c.groups)-1]
			curVal = nil
		}
		if curVal == nil || !curVal.val.Equal(r.val) {
			curKey.vals = append(curKey.vals, valGroup[V, R]{val: r.val, weight: r.weight})
			curVal = &curKey.vals[len(curKey.vals)-1]
		} else {
			curVal.weight = curVal.weight.Add(r.weight)
		}
	}
	return c
}

func (c *batchCursor[K, V, Time, R]) KeyValid() bool { return c.keyPos >= 0 && c.keyPos < len(c.groups) }
func (c *batchCursor[K, V, Time, R]) ValValid() bool {
	return c.KeyValid() && c.valPos >= 0 && c.valPos < len(c.groups[c.keyPos].vals)
}
func (c *batchCursor[K, V, Time, R]) Key() K { return c.groups[c.keyPos].key }
func (c *batchCursor[K, V, Time, R]) Val() V { return c.groups[c.keyPos].vals[c.valPos].val }
func (c *batchCursor[K, V, Time, R]) Weight() R {
	return c.groups[c.keyPos].vals[c.valPos].weight
}

func (c *batchCursor[K, V, Time, R]) StepKey() {
	c.keyPos++
	c.valPos = 0
}
func (c *batchCursor[K, V, Time, R]) StepKeyReverse() {
	c.keyPos--
	c.valPos = 0
}
func (c *batchCursor[K, V, Time, R]) StepVal()        { c.valPos++ }
func (c *batchCursor[K, V, Time, R]) StepValReverse() { c.valPos-- }

func (c *batchCursor[K, V, Time, R]) SeekKey(k K) {
	for c.KeyValid() && c.groups[c.keyPos].key.Less(k) {
		c.keyPos++
	}
	c.valPos = 0
}
func (c *batchCursor[K, V, Time, R]) SeekKeyReverse(k K) {
	for c.KeyValid() && k.Less(c.groups[c.keyPos].key) {
		c.keyPos--
	}
	c.valPos = 0
}
func (c *batchCursor[K, V, Time, R]) SeekVal(v V) {
	vals := c.groups[c.keyPos].vals
	for c.ValValid() && vals[c.valPos].val.Less(v) {
		c.valPos++
	}
}
func (c *batchCursor[K, V, Time, R]) SeekValReverse(v V) {
	vals := c.groups[c.keyPos].vals
	for c.ValValid() && v.Less(vals[c.valPos].val) {
		c.valPos--
	}
}

func (c *batchCursor[K, V, Time, R]) Rewind()     { c.keyPos = 0; c.valPos = 0 }
func (c *batchCursor[K, V, Time, R]) RewindVals() { c.valPos = 0 }
func (c *batchCursor[K, V, Time, R]) FastForward() {
	c.keyPos = len(c.groups) - 1
	c.valPos = 0
}
func (c *batchCursor[K, V, Time, R]) FastForwardVals() {
	if c.KeyValid() {
		c.valPos = len(c.groups[c.keyPos].vals) - 1
	}
}

var _ cursor.Cursor[intKey, intKey, algebra.I64] =(*batchCursor[intKey, intKey, struct{}, algebra.I64])(nil)

// intKey exists only to let the compile-time interface assertion above
// instantiate batchCursor's generic parameters with something that
// satisfies Ordered.
type intKey int

func (i intKey) Less(o intKey) bool  { return i < o }
func (i intKey) Equal(o intKey) bool { return i == o }

// Cursor returns a fresh read cursor positioned at the start of the
// batch's key order.
func (b Batch[K, V, Time, R]) Cursor() cursor.Cursor[K, V, R] {
	rows := make([]row[K, V, Time, R], len(b.rows))
	for i, t := range b.rows {
		rows[i] = row[K, V, Time, R]{key: t.Item.Key, val: t.Item.Val, t: t.Item.Time, weight: t.Weight}
	}
	return newBatchCursor[K, V, Time, R](rows)
}
