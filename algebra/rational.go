package algebra

import "math/big"

// Rational is an exact-rational weight ring, supplementing spec's mention
// of rational multiplicities (the original source only references these in
// passing; no concrete ring impl is provided there, so this one is built
// directly on the standard library's exact-arithmetic big.Rat).
type Rational struct {
	r *big.Rat
}

// NewRational builds a rational weight num/den.
func NewRational(num, den int64) Rational {
	return Rational{r: big.NewRat(num, den)}
}

func (Rational) Zero() Rational { return Rational{r: new(big.Rat)} }
func (Rational) One() Rational  { return Rational{r: big.NewRat(1, 1)} }

func (v Rational) ratOrZero() *big.Rat {
	if v.r == nil {
		return new(big.Rat)
	}
	return v.r
}

func (v Rational) IsZero() bool { return v.ratOrZero().Sign() == 0 }

func (v Rational) Equal(o Rational) bool {
	return v.ratOrZero().Cmp(o.ratOrZero()) == 0
}

func (v Rational) Less(o Rational) bool {
	return v.ratOrZero().Cmp(o.ratOrZero()) < 0
}

func (v Rational) Add(o Rational) Rational {
	return Rational{r: new(big.Rat).Add(v.ratOrZero(), o.ratOrZero())}
}

func (v Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(v.ratOrZero())}
}

func (v Rational) Mul(o Rational) Rational {
	return Rational{r: new(big.Rat).Mul(v.ratOrZero(), o.ratOrZero())}
}

func (v Rational) String() string { return v.ratOrZero().RatString() }
