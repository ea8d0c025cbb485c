package integer

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// OverflowBehavior selects what happens when a value doesn't fit its destination type.
type OverflowBehavior int

const (
	// Throw fails with ErrOverflow or ErrUnderflow.
	Throw OverflowBehavior = iota

	// Truncate keeps the low bits of the two's complement representation,
	// the same as a narrowing static_cast in C++.
	Truncate

	// Clamp saturates to the destination type's range.
	Clamp
)

// String implements fmt.Stringer.
func (b OverflowBehavior) String() string {
	switch b {
	case Throw:
		return "throw"
	case Truncate:
		return "truncate"
	case Clamp:
		return "clamp"
	}
	return fmt.Sprintf("OverflowBehavior(%d)", int(b))
}

// New returns v as an integer of type t, failing if it is out of range.
func (t *Type) New(v *big.Int) (Int, error) {
	return t.fromBig(v, Throw)
}

// From converts value to an integer of type t.
//
// value may be an Int, a *big.Int or big.Int, any Go integer kind, an integral float, a decimal string or json.Number,
// or a []byte holding a little-endian two's complement number.
// If no behaviour is given, out of range values fail.
func (t *Type) From(value interface{}, behavior ...OverflowBehavior) (Int, error) {
	b := Throw
	if len(behavior) > 0 {
		b = behavior[0]
	}

	if i, ok := value.(Int); ok && i.t == t {
		return i, nil
	}

	v, err := toBig(value, t)
	if err != nil {
		return Int{}, err
	}
	return t.fromBig(v, b)
}

// MustFrom is like From but panics on error. It is intended for constants and tests.
func (t *Type) MustFrom(value interface{}, behavior ...OverflowBehavior) Int {
	i, err := t.From(value, behavior...)
	if err != nil {
		panic(err)
	}
	return i
}

// FromBytes decodes the little-endian two's complement form produced by Int.Bytes.
// buff must be exactly ByteWidth() long.
func (t *Type) FromBytes(buff []byte) (Int, error) {
	if len(buff) != t.ByteWidth() {
		return Int{}, errors.Wrapf(ErrInvalidNumber, "%v needs %v bytes, got %v", t, t.ByteWidth(), len(buff))
	}
	return Int{t: t, v: fromLE(buff, t.signed)}, nil
}

func (t *Type) fromBig(v *big.Int, b OverflowBehavior) (Int, error) {
	switch b {
	case Truncate:
		return Int{t: t, v: truncate(v, t)}, nil

	case Clamp:
		switch {
		case v.Cmp(t.max) > 0:
			return Int{t: t, v: t.Max()}, nil
		case v.Cmp(t.min) < 0:
			return Int{t: t, v: t.Min()}, nil
		}

	default:
		switch {
		case v.Cmp(t.max) > 0:
			return Int{}, errors.Wrapf(ErrOverflow, "%v is larger than %v max %v", v, t, t.max)
		case v.Cmp(t.min) < 0:
			return Int{}, errors.Wrapf(ErrUnderflow, "%v is smaller than %v min %v", v, t, t.min)
		}
	}

	return Int{t: t, v: new(big.Int).Set(v)}, nil
}

// truncate reinterprets the low t.bits of v's two's complement form as a value of type t.
// Because big.Int behaves as if it were sign extended to infinite width, this matches C++ for both
// widening (sign or zero extension) and narrowing (dropping high bytes) conversions.
func truncate(v *big.Int, t *Type) *big.Int {
	modulus := new(big.Int).Lsh(big.NewInt(1), t.bits)

	// Mod is Euclidean, so the result is always in [0, 2^bits).
	out := new(big.Int).Mod(v, modulus)
	if t.signed && out.Bit(int(t.bits-1)) == 1 {
		out.Sub(out, modulus)
	}
	return out
}

func fromLE(buff []byte, signed bool) *big.Int {
	be := make([]byte, len(buff))
	for i := range buff {
		be[len(buff)-1-i] = buff[i]
	}

	v := new(big.Int).SetBytes(be)
	if signed && len(buff) > 0 && buff[len(buff)-1]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(buff)*8)))
	}
	return v
}

func toBig(value interface{}, t *Type) (*big.Int, error) {
	switch v := value.(type) {
	case Int:
		return v.value(), nil
	case *Int:
		if v == nil {
			return nil, errors.Wrap(ErrInvalidNumber, "nil *Int")
		}
		return v.value(), nil
	case *big.Int:
		if v == nil {
			return nil, errors.Wrap(ErrInvalidNumber, "nil *big.Int")
		}
		return v, nil
	case big.Int:
		return &v, nil

	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil

	case float32:
		return floatToBig(float64(v))
	case float64:
		return floatToBig(v)

	case string:
		return stringToBig(v)
	case json.Number:
		return stringToBig(string(v))

	case []byte:
		return fromLE(v, t.signed), nil
	}

	return nil, errors.Wrapf(ErrInvalidNumber, "cannot convert %T to %v", value, t)
}

func floatToBig(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errors.Wrapf(ErrInvalidNumber, "%v is not an integer", f)
	}
	v, _ := big.NewFloat(f).Int(nil)
	return v, nil
}

func stringToBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q is not a decimal integer", s)
	}
	return v, nil
}
