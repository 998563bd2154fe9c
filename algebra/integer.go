package algebra

// I64 is the default unchecked signed-integer weight: ordinary wraparound
// two's-complement arithmetic, same as the original's plain `isize`/`i64`
// ring impls.
type I64 int64

func (I64) Zero() I64            { return 0 }
func (I64) One() I64             { return 1 }
func (v I64) IsZero() bool       { return v == 0 }
func (v I64) Equal(o I64) bool   { return v == o }
func (v I64) Add(o I64) I64      { return v + o }
func (v I64) Neg() I64           { return -v }
func (v I64) Mul(o I64) I64      { return v * o }
func (v I64) Less(o I64) bool    { return v < o }

// I32 is the 32-bit analogue of I64.
type I32 int32

func (I32) Zero() I32          { return 0 }
func (I32) One() I32           { return 1 }
func (v I32) IsZero() bool     { return v == 0 }
func (v I32) Equal(o I32) bool { return v == o }
func (v I32) Add(o I32) I32    { return v + o }
func (v I32) Neg() I32         { return -v }
func (v I32) Mul(o I32) I32    { return v * o }
func (v I32) Less(o I32) bool  { return v < o }
