package integer

import (
	"math/big"

	"github.com/pkg/errors"
)

// promote implements the integral promotions; anything narrower than int becomes int.
func promote(i Int) Int {
	if i.t.bits < 32 {
		// int32 holds every 8 and 16 bit value, so this can't fail.
		p, _ := i.Cast(Int32)
		return p
	}
	return i
}

// convert applies the usual arithmetic conversions of C++11 [expr]/10 to a pair of operands.
// The order of the branches below is the order the standard lists them in, and it decides the result type,
// which in turn decides the result value; don't reorder them.
func convert(a, b Int) (Int, Int) {
	a, b = promote(a), promote(b)
	at, bt := a.t, b.t
	if at == bt {
		return a, b
	}

	// If both operands have signed integer types or both have unsigned integer types,
	// the operand with the type of lesser integer conversion rank is converted to the type of the operand with greater rank.
	if at.signed == bt.signed {
		switch {
		case at.bits > bt.bits:
			b, _ = b.Cast(at)
		case bt.bits > at.bits:
			a, _ = a.Cast(bt)
		}
		return a, b
	}

	// Otherwise, if the operand that has unsigned integer type has rank greater than or equal to the rank of the type of the other operand,
	// the operand with signed integer type is converted to the type of the operand with unsigned integer type.
	if !at.signed && at.bits >= bt.bits {
		b, _ = b.Cast(at)
		return a, b
	}
	if !bt.signed && bt.bits >= at.bits {
		a, _ = a.Cast(bt)
		return a, b
	}

	// Otherwise, if the type of the operand with signed integer type can represent all of the values of the type of the operand with unsigned integer type,
	// the operand with unsigned integer type is converted to the type of the operand with signed integer type.
	if at.signed && at.max.Cmp(bt.max) >= 0 && at.min.Cmp(bt.min) <= 0 {
		b, _ = b.Cast(at)
		return a, b
	}
	if bt.signed && bt.max.Cmp(at.max) >= 0 && bt.min.Cmp(at.min) <= 0 {
		a, _ = a.Cast(bt)
		return a, b
	}

	// Otherwise, both operands are converted to the unsigned integer type corresponding to the type of the operand with signed integer type.
	// None of the types in this package reach here, but it's what the standard says.
	st := at
	if bt.signed {
		st = bt
	}
	ut := unsignedOf(st)
	a, _ = a.Cast(ut)
	b, _ = b.Cast(ut)
	return a, b
}

func unsignedOf(t *Type) *Type {
	for _, u := range Types {
		if !u.signed && u.bits == t.bits && u.variable == t.variable {
			return u
		}
	}
	return t
}

func operator(a, b Int, behavior []OverflowBehavior, fn func(a, b *big.Int) (*big.Int, error)) (Int, error) {
	if a.t == nil || b.t == nil {
		return Int{}, errors.Wrap(ErrInvalidNumber, "operand has no type")
	}

	a, b = convert(a, b)
	v, err := fn(a.value(), b.value())
	if err != nil {
		return Int{}, err
	}

	// Like C++, results wrap unless told otherwise.
	bh := Truncate
	if len(behavior) > 0 {
		bh = behavior[0]
	}
	return a.t.fromBig(v, bh)
}

// Add returns a + b in the type chosen by the usual arithmetic conversions.
func Add(a, b Int, behavior ...OverflowBehavior) (Int, error) {
	return operator(a, b, behavior, func(x, y *big.Int) (*big.Int, error) {
		return new(big.Int).Add(x, y), nil
	})
}

// Sub returns a - b in the type chosen by the usual arithmetic conversions.
func Sub(a, b Int, behavior ...OverflowBehavior) (Int, error) {
	return operator(a, b, behavior, func(x, y *big.Int) (*big.Int, error) {
		return new(big.Int).Sub(x, y), nil
	})
}

// Mul returns a * b in the type chosen by the usual arithmetic conversions.
func Mul(a, b Int, behavior ...OverflowBehavior) (Int, error) {
	return operator(a, b, behavior, func(x, y *big.Int) (*big.Int, error) {
		return new(big.Int).Mul(x, y), nil
	})
}

// Div returns a / b, truncated toward zero.
func Div(a, b Int, behavior ...OverflowBehavior) (Int, error) {
	return operator(a, b, behavior, func(x, y *big.Int) (*big.Int, error) {
		if y.Sign() == 0 {
			return nil, errors.WithStack(ErrDivisionByZero)
		}
		return new(big.Int).Quo(x, y), nil
	})
}

// DivRound returns a / b rounded to the nearest integer, with halves rounded away from zero.
func DivRound(a, b Int, behavior ...OverflowBehavior) (Int, error) {
	return operator(a, b, behavior, func(x, y *big.Int) (*big.Int, error) {
		if y.Sign() == 0 {
			return nil, errors.WithStack(ErrDivisionByZero)
		}
		q, r := new(big.Int).QuoRem(x, y, new(big.Int))
		if r.Sign() == 0 {
			return q, nil
		}

		twice := new(big.Int).Lsh(new(big.Int).Abs(r), 1)
		if twice.Cmp(new(big.Int).Abs(y)) >= 0 {
			if x.Sign() == y.Sign() {
				q.Add(q, big.NewInt(1))
			} else {
				q.Sub(q, big.NewInt(1))
			}
		}
		return q, nil
	})
}

// DivCeil returns a / b rounded up toward positive infinity.
func DivCeil(a, b Int, behavior ...OverflowBehavior) (Int, error) {
	return operator(a, b, behavior, func(x, y *big.Int) (*big.Int, error) {
		if y.Sign() == 0 {
			return nil, errors.WithStack(ErrDivisionByZero)
		}
		q, r := new(big.Int).QuoRem(x, y, new(big.Int))
		// truncation already rounded negative quotients up
		if r.Sign() != 0 && x.Sign() == y.Sign() {
			q.Add(q, big.NewInt(1))
		}
		return q, nil
	})
}

// Add returns i + o. See the package level Add.
func (i Int) Add(o Int, behavior ...OverflowBehavior) (Int, error) { return Add(i, o, behavior...) }

// Sub returns i - o. See the package level Sub.
func (i Int) Sub(o Int, behavior ...OverflowBehavior) (Int, error) { return Sub(i, o, behavior...) }

// Mul returns i * o. See the package level Mul.
func (i Int) Mul(o Int, behavior ...OverflowBehavior) (Int, error) { return Mul(i, o, behavior...) }

// Div returns i / o. See the package level Div.
func (i Int) Div(o Int, behavior ...OverflowBehavior) (Int, error) { return Div(i, o, behavior...) }
