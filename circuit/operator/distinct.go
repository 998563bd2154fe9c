package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// Distinct turns a weighted delta stream into a set-semantics delta
// stream: every item's weight collapses to +1 (present) or its retraction
// -1 (absent), computed incrementally by a merge walk comparing this
// tick's running integral against the previous tick's, so only items
// whose presence actually flipped contribute to the output.
func Distinct[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]]) circuit.Stream[zset.Z[A, R]] {
	integral := Integrate(c, name+".integral", in)
	prevIntegral, connect := circuit.AddDelay(c, name+".integral.z1", zset.Empty[A, R]())
	connect(integral)

	return circuit.AddBinaryOperator(c, name, integral, prevIntegral, func(cur, prev zset.Z[A, R]) (zset.Z[A, R], error) {
		curItems, prevItems := cur.Items(), prev.Items()
		isPositive := func(w R) bool { return w.Zero().Less(w) }

		type change struct {
			item  A
			delta int8 // +1 newly present, -1 newly absent
		}
		var changes []change
		mark := func(item A, delta int8) {
			changes = append(changes, change{item: item, delta: delta})
		}

		i, j := 0, 0
		for i < len(curItems) || j < len(prevItems) {
			switch {
			case j >= len(prevItems) || (i < len(curItems) && curItems[i].Item.Less(prevItems[j].Item)):
				// present now, absent before: becomes present iff cur's
				// weight is actually positive (canonical Z-sets only
				// guarantee nonzero, not positive).
				if isPositive(curItems[i].Weight) {
					mark(curItems[i].Item, 1)
				}
				i++
			case i >= len(curItems) || prevItems[j].Item.Less(curItems[i].Item):
				// was present before, absent now: becomes absent iff prev's
				// weight was positive.
				if isPositive(prevItems[j].Weight) {
					mark(prevItems[j].Item, -1)
				}
				j++
			default:
				curPositive, prevPositive := isPositive(curItems[i].Weight), isPositive(prevItems[j].Weight)
				if curPositive && !prevPositive {
					mark(curItems[i].Item, 1)
				} else if !curPositive && prevPositive {
					mark(prevItems[j].Item, -1)
				}
				i++
				j++
			}
		}

		out := make([]zset.Tuple[A, R], 0, len(changes))
		var one R
		one = one.Zero().One()
		for _, ch := range changes {
			w := one
			if ch.delta < 0 {
				w = one.Neg()
			}
			out = append(out, zset.Tuple[A, R]{Item: ch.item, Weight: w})
		}
		return zset.FromTuples(out), nil
	})
}
