package cursor

// Empty is a Cursor over zero keys, used as the identity element when
// combining cursors (e.g. one side of a Pair when a batch is absent).
type Empty[K any, V any, R any] struct{}

func (Empty[K, V, R]) KeyValid() bool { return false }
func (Empty[K, V, R]) ValValid() bool { return false }
func (Empty[K, V, R]) Key() (k K)      { return k }
func (Empty[K, V, R]) Val() (v V)      { return v }
func (Empty[K, V, R]) Weight() (r R)   { return r }

func (Empty[K, V, R]) StepKey()        {}
func (Empty[K, V, R]) StepKeyReverse() {}
func (Empty[K, V, R]) StepVal()        {}
func (Empty[K, V, R]) StepValReverse() {}

func (Empty[K, V, R]) SeekKey(K)        {}
func (Empty[K, V, R]) SeekKeyReverse(K) {}
func (Empty[K, V, R]) SeekVal(V)        {}
func (Empty[K, V, R]) SeekValReverse(V) {}

func (Empty[K, V, R]) Rewind()          {}
func (Empty[K, V, R]) RewindVals()      {}
func (Empty[K, V, R]) FastForward()     {}
func (Empty[K, V, R]) FastForwardVals() {}

var _ Cursor[int, int, int] = Empty[int, int, int]{}
