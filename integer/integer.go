// Package integer provides exact-width integer types mirroring the chain's C++ integers.
//
// Each Type is a width and signedness pair. Int values carry their Type and an arbitrary-precision value,
// and conversions between types follow the same rules a C++11 compiler would apply: range checks on construction,
// two's complement truncation or saturation on request, and the usual arithmetic conversions for binary operators.
// Getting these rules exactly right is what makes encoded amounts match the reference implementation bit for bit.
package integer

import (
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrOverflow is returned when a value is larger than its type's maximum.
	ErrOverflow = errors.New("integer overflow")

	// ErrUnderflow is returned when a value is smaller than its type's minimum.
	ErrUnderflow = errors.New("integer underflow")

	// ErrDivisionByZero is returned by the division operators regardless of overflow behaviour.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidNumber is returned when a value cannot be interpreted as an integer at all.
	ErrInvalidNumber = errors.New("invalid number")
)

// Type describes one integer width and signedness.
// Types are compared by identity; use the package level values.
type Type struct {
	name     string
	bits     uint
	signed   bool
	variable bool

	min, max *big.Int
}

func newType(name string, bits uint, signed, variable bool) *Type {
	t := &Type{
		name:     name,
		bits:     bits,
		signed:   signed,
		variable: variable,
	}

	one := big.NewInt(1)
	if signed {
		t.max = new(big.Int).Sub(new(big.Int).Lsh(one, bits-1), one)
		t.min = new(big.Int).Sub(new(big.Int).Neg(t.max), one)
	} else {
		t.max = new(big.Int).Sub(new(big.Int).Lsh(one, bits), one)
		t.min = new(big.Int)
	}
	return t
}

// Integer types
var (
	Int8   = newType("int8", 8, true, false)
	Int16  = newType("int16", 16, true, false)
	Int32  = newType("int32", 32, true, false)
	Int64  = newType("int64", 64, true, false)
	Int128 = newType("int128", 128, true, false)

	UInt8   = newType("uint8", 8, false, false)
	UInt16  = newType("uint16", 16, false, false)
	UInt32  = newType("uint32", 32, false, false)
	UInt64  = newType("uint64", 64, false, false)
	UInt128 = newType("uint128", 128, false, false)

	// VarInt32 and VarUInt32 have 32-bit range but are written in variable-length form on the wire.
	VarInt32  = newType("varint32", 32, true, true)
	VarUInt32 = newType("varuint32", 32, false, true)
)

// Types lists every integer type.
var Types = []*Type{
	Int8, Int16, Int32, Int64, Int128,
	UInt8, UInt16, UInt32, UInt64, UInt128,
	VarInt32, VarUInt32,
}

// TypeByName returns the integer type with the given ABI name.
func TypeByName(name string) (*Type, bool) {
	for _, t := range Types {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}

// Name returns the ABI name of the type.
func (t *Type) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *Type) String() string { return t.name }

// Bits returns the width of the type in bits.
func (t *Type) Bits() int { return int(t.bits) }

// ByteWidth returns the width of the type in bytes.
func (t *Type) ByteWidth() int { return int(t.bits / 8) }

// Signed reports whether the type is signed.
func (t *Type) Signed() bool { return t.signed }

// Variable reports whether the type uses variable-length wire encoding.
func (t *Type) Variable() bool { return t.variable }

// Min returns a copy of the smallest value the type can hold.
func (t *Type) Min() *big.Int { return new(big.Int).Set(t.min) }

// Max returns a copy of the largest value the type can hold.
func (t *Type) Max() *big.Int { return new(big.Int).Set(t.max) }

// Zero returns the zero value of the type.
func (t *Type) Zero() Int {
	return Int{t: t, v: new(big.Int)}
}

// Int is an integer of a specific Type. Values are immutable.
// The zero Int has no type and a value of 0.
type Int struct {
	t *Type
	v *big.Int
}

func (i Int) value() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

// Type returns the integer's type.
func (i Int) Type() *Type { return i.t }

// BigInt returns a copy of the value.
func (i Int) BigInt() *big.Int { return new(big.Int).Set(i.value()) }

// Int64 returns the value as an int64. It is only meaningful if the value fits.
func (i Int) Int64() int64 { return i.value().Int64() }

// Uint64 returns the value as a uint64. It is only meaningful if the value fits.
func (i Int) Uint64() uint64 { return i.value().Uint64() }

// Sign returns -1, 0 or 1.
func (i Int) Sign() int { return i.value().Sign() }

// IsZero reports whether the value is 0.
func (i Int) IsZero() bool { return i.value().Sign() == 0 }

// String returns the value in decimal.
func (i Int) String() string { return i.value().String() }

// Cmp compares the values of i and o, ignoring their types.
func (i Int) Cmp(o Int) int { return i.value().Cmp(o.value()) }

// Equal reports whether i and o have the same type and value.
func (i Int) Equal(o Int) bool {
	return i.t == o.t && i.value().Cmp(o.value()) == 0
}

// Cast converts i to type t. Unlike From, the default behaviour is Truncate, as with a C++ cast.
func (i Int) Cast(t *Type, behavior ...OverflowBehavior) (Int, error) {
	b := Truncate
	if len(behavior) > 0 {
		b = behavior[0]
	}
	return t.fromBig(i.value(), b)
}

// Bytes returns the little-endian two's complement representation of the value at exactly the type's width.
func (i Int) Bytes() []byte {
	width := i.t.ByteWidth()
	v := i.value()
	if v.Sign() < 0 {
		v = new(big.Int).Add(v, new(big.Int).Lsh(big.NewInt(1), i.t.bits))
	}

	be := v.Bytes()
	out := make([]byte, width)
	for j := 0; j < len(be) && j < width; j++ {
		out[j] = be[len(be)-1-j]
	}
	return out
}

// MarshalJSON writes values up to 32 bits as JSON numbers and wider values as decimal strings,
// since JSON numbers can't be trusted beyond 53 bits.
func (i Int) MarshalJSON() ([]byte, error) {
	if i.t != nil && i.t.bits <= 32 {
		return []byte(i.String()), nil
	}
	return []byte(strconv.Quote(i.String())), nil
}
