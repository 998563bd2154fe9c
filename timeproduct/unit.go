package timeproduct

// Unit is the trivial one-element timestamp used by point batches — Z-sets
// that carry no time distinction at all (spec's "batches that carry no
// time have a unit time field").
type Unit struct{}

func (Unit) Minimum() Unit            { return Unit{} }
func (Unit) Join(Unit) Unit           { return Unit{} }
func (Unit) Meet(Unit) Unit           { return Unit{} }
func (Unit) LessEqual(Unit) bool      { return true }
func (Unit) Advance(int) Unit         { return Unit{} }
func (Unit) Recede(int) Unit          { return Unit{} }
func (Unit) EpochStart(int) Unit      { return Unit{} }
func (Unit) EpochEnd(int) Unit        { return Unit{} }
func (Unit) Equal(Unit) bool          { return true }
func (Unit) Less(Unit) bool           { return false }
