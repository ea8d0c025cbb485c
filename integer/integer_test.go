package integer_test

import (
	"math/big"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wire-Network/sdk-core-sub000/integer"
)

func TestRange(t *testing.T) {
	testCases := []struct {
		t        *integer.Type
		min, max string
	}{
		{t: integer.Int8, min: "-128", max: "127"},
		{t: integer.UInt8, min: "0", max: "255"},
		{t: integer.Int16, min: "-32768", max: "32767"},
		{t: integer.UInt32, min: "0", max: "4294967295"},
		{t: integer.Int64, min: "-9223372036854775808", max: "9223372036854775807"},
		{t: integer.UInt64, min: "0", max: "18446744073709551615"},
		{t: integer.Int128, min: "-170141183460469231731687303715884105728", max: "170141183460469231731687303715884105727"},
		{t: integer.UInt128, min: "0", max: "340282366920938463463374607431768211455"},
		{t: integer.VarInt32, min: "-2147483648", max: "2147483647"},
	}

	for _, tC := range testCases {
		t.Run(tC.t.Name(), func(t *testing.T) {
			td.Cmp(t, tC.t.Min().String(), tC.min)
			td.Cmp(t, tC.t.Max().String(), tC.max)
		})
	}
}

func TestOverflowBehavior(t *testing.T) {
	testCases := []struct {
		desc     string
		t        *integer.Type
		in       interface{}
		behavior []integer.OverflowBehavior
		want     string
		err      error
	}{
		{desc: "truncate 850 to int8", t: integer.Int8, in: 850, behavior: []integer.OverflowBehavior{integer.Truncate}, want: "82"},
		{desc: "truncate 200 to int8", t: integer.Int8, in: 200, behavior: []integer.OverflowBehavior{integer.Truncate}, want: "-56"},
		{desc: "truncate -1 to uint8", t: integer.UInt8, in: -1, behavior: []integer.OverflowBehavior{integer.Truncate}, want: "255"},
		{desc: "truncate -1 to uint64", t: integer.UInt64, in: -1, behavior: []integer.OverflowBehavior{integer.Truncate}, want: "18446744073709551615"},
		{desc: "truncate in range", t: integer.Int16, in: -300, behavior: []integer.OverflowBehavior{integer.Truncate}, want: "-300"},
		{desc: "clamp negative unsigned", t: integer.UInt32, in: -5, behavior: []integer.OverflowBehavior{integer.Clamp}, want: "0"},
		{desc: "clamp large signed", t: integer.Int8, in: 1000, behavior: []integer.OverflowBehavior{integer.Clamp}, want: "127"},
		{desc: "clamp small signed", t: integer.Int8, in: -1000, behavior: []integer.OverflowBehavior{integer.Clamp}, want: "-128"},
		{desc: "underflow", t: integer.UInt8, in: -1, err: integer.ErrUnderflow},
		{desc: "overflow", t: integer.Int8, in: 200, err: integer.ErrOverflow},
		{desc: "explicit throw", t: integer.UInt16, in: 70000, behavior: []integer.OverflowBehavior{integer.Throw}, err: integer.ErrOverflow},
		{desc: "decimal string", t: integer.UInt128, in: "340282366920938463463374607431768211455", want: "340282366920938463463374607431768211455"},
		{desc: "float", t: integer.Int32, in: float64(-42), want: "-42"},
		{desc: "fractional float", t: integer.Int32, in: 1.5, err: integer.ErrInvalidNumber},
		{desc: "garbage string", t: integer.Int32, in: "12abc", err: integer.ErrInvalidNumber},
		{desc: "unsupported kind", t: integer.Int32, in: struct{}{}, err: integer.ErrInvalidNumber},
		{desc: "big int", t: integer.Int64, in: big.NewInt(-7), want: "-7"},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			i, err := tC.t.From(tC.in, tC.behavior...)
			if tC.err != nil {
				if !errors.Is(err, tC.err) {
					t.Fatalf("want %v, got %v", tC.err, err)
				}
				return
			}
			td.CmpNoError(t, err)
			td.Cmp(t, i.String(), tC.want)
			td.Cmp(t, i.Type(), tC.t)
		})
	}
}

func TestFromSameType(t *testing.T) {
	a := integer.Int32.MustFrom(5)
	b, err := integer.Int32.From(a)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := integer.Int64.From(a)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
	assert.Equal(t, 0, a.Cmp(c))
}

func TestBytes(t *testing.T) {
	testCases := []struct {
		desc string
		i    integer.Int
		want []byte
	}{
		{desc: "uint64 5", i: integer.UInt64.MustFrom(5), want: []byte{5, 0, 0, 0, 0, 0, 0, 0}},
		{desc: "int16 -2", i: integer.Int16.MustFrom(-2), want: []byte{0xfe, 0xff}},
		{desc: "int8 min", i: integer.Int8.MustFrom(-128), want: []byte{0x80}},
		{desc: "uint32", i: integer.UInt32.MustFrom(0xdeadbeef), want: []byte{0xef, 0xbe, 0xad, 0xde}},
		{desc: "int128 -1", i: integer.Int128.MustFrom(-1), want: []byte{
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		}},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, tC.i.Bytes(), tC.want)

			back, err := tC.i.Type().FromBytes(tC.want)
			td.CmpNoError(t, err)
			td.CmpTrue(t, back.Equal(tC.i))
		})
	}

	_, err := integer.UInt32.FromBytes([]byte{1, 2})
	assert.True(t, errors.Is(err, integer.ErrInvalidNumber))
}

func TestFromLittleEndianBytes(t *testing.T) {
	i, err := integer.Int16.From([]byte{0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "-1", i.String())

	u, err := integer.UInt16.From([]byte{0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "65535", u.String())
}

func TestArithmeticConversion(t *testing.T) {
	testCases := []struct {
		desc     string
		a, b     integer.Int
		op       func(a, b integer.Int, behavior ...integer.OverflowBehavior) (integer.Int, error)
		behavior []integer.OverflowBehavior
		wantType *integer.Type
		want     string
		err      error
	}{
		{
			desc: "small types promote to int32",
			a:    integer.UInt8.MustFrom(200), b: integer.UInt8.MustFrom(100),
			op: integer.Add, wantType: integer.Int32, want: "300",
		},
		{
			desc: "uint8 plus int64 is int64",
			a:    integer.UInt8.MustFrom(255), b: integer.Int64.MustFrom(-256),
			op: integer.Add, wantType: integer.Int64, want: "-1",
		},
		{
			desc: "same signedness picks wider",
			a:    integer.Int32.MustFrom(-1), b: integer.Int64.MustFrom(10),
			op: integer.Mul, wantType: integer.Int64, want: "-10",
		},
		{
			desc: "unsigned of equal rank wins",
			a:    integer.Int32.MustFrom(-1), b: integer.UInt32.MustFrom(1),
			op: integer.Add, behavior: []integer.OverflowBehavior{integer.Truncate},
			wantType: integer.UInt32, want: "0",
		},
		{
			desc: "signed to unsigned wraps with truncate",
			a:    integer.Int32.MustFrom(-1), b: integer.UInt32.MustFrom(0),
			op: integer.Add, wantType: integer.UInt32, want: "4294967295",
		},
		{
			desc: "wider unsigned wins",
			a:    integer.Int32.MustFrom(-2), b: integer.UInt64.MustFrom(3),
			op: integer.Add, behavior: []integer.OverflowBehavior{integer.Truncate},
			wantType: integer.UInt64, want: "1",
		},
		{
			desc: "wider signed holds unsigned",
			a:    integer.UInt32.MustFrom(4000000000), b: integer.Int64.MustFrom(-4000000000),
			op: integer.Sub, wantType: integer.Int64, want: "8000000000",
		},
		{
			desc: "overflow wraps",
			a:    integer.UInt32.MustFrom(uint32(0xffffffff)), b: integer.UInt32.MustFrom(1),
			op: integer.Add, wantType: integer.UInt32, want: "0",
		},
		{
			desc: "overflow throws when asked",
			a:    integer.Int64.MustFrom("9223372036854775807"), b: integer.Int64.MustFrom(1),
			op: integer.Add, behavior: []integer.OverflowBehavior{integer.Throw}, err: integer.ErrOverflow,
		},
		{
			desc: "overflow clamps when asked",
			a:    integer.Int64.MustFrom("9223372036854775807"), b: integer.Int64.MustFrom(1),
			op: integer.Add, behavior: []integer.OverflowBehavior{integer.Clamp},
			wantType: integer.Int64, want: "9223372036854775807",
		},
		{
			desc: "truncate on overflow",
			a:    integer.Int64.MustFrom("9223372036854775807"), b: integer.Int64.MustFrom(1),
			op: integer.Add, behavior: []integer.OverflowBehavior{integer.Truncate},
			wantType: integer.Int64, want: "-9223372036854775808",
		},
		{
			desc: "unsigned underflow wraps",
			a:    integer.UInt64.Zero(), b: integer.UInt64.MustFrom(1),
			op: integer.Sub, wantType: integer.UInt64, want: "18446744073709551615",
		},
		{
			desc: "unsigned underflow throws when asked",
			a:    integer.UInt64.MustFrom(1), b: integer.UInt64.MustFrom(2),
			op: integer.Sub, behavior: []integer.OverflowBehavior{integer.Throw}, err: integer.ErrUnderflow,
		},
		{
			desc: "signed multiply wraps",
			a:    integer.Int32.MustFrom(65536), b: integer.Int32.MustFrom(65536),
			op: integer.Mul, wantType: integer.Int32, want: "0",
		},
		{
			desc: "div truncates",
			a:    integer.Int32.MustFrom(-7), b: integer.Int32.MustFrom(2),
			op: integer.Div, wantType: integer.Int32, want: "-3",
		},
		{
			desc: "div by zero",
			a:    integer.Int32.MustFrom(1), b: integer.Int32.Zero(),
			op: integer.Div, behavior: []integer.OverflowBehavior{integer.Clamp}, err: integer.ErrDivisionByZero,
		},
		{
			desc: "div round half away from zero",
			a:    integer.Int32.MustFrom(5), b: integer.Int32.MustFrom(2),
			op: integer.DivRound, wantType: integer.Int32, want: "3",
		},
		{
			desc: "div round negative half",
			a:    integer.Int32.MustFrom(-5), b: integer.Int32.MustFrom(2),
			op: integer.DivRound, wantType: integer.Int32, want: "-3",
		},
		{
			desc: "div round down",
			a:    integer.Int32.MustFrom(7), b: integer.Int32.MustFrom(3),
			op: integer.DivRound, wantType: integer.Int32, want: "2",
		},
		{
			desc: "div ceil positive",
			a:    integer.Int32.MustFrom(7), b: integer.Int32.MustFrom(2),
			op: integer.DivCeil, wantType: integer.Int32, want: "4",
		},
		{
			desc: "div ceil negative",
			a:    integer.Int32.MustFrom(-7), b: integer.Int32.MustFrom(2),
			op: integer.DivCeil, wantType: integer.Int32, want: "-3",
		},
		{
			desc: "div ceil exact",
			a:    integer.UInt64.MustFrom(8), b: integer.UInt64.MustFrom(2),
			op: integer.DivCeil, wantType: integer.UInt64, want: "4",
		},
		{
			desc: "div ceil by zero",
			a:    integer.UInt64.MustFrom(8), b: integer.UInt64.Zero(),
			op: integer.DivCeil, err: integer.ErrDivisionByZero,
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, err := tC.op(tC.a, tC.b, tC.behavior...)
			if tC.err != nil {
				if !errors.Is(err, tC.err) {
					t.Fatalf("want %v, got %v", tC.err, err)
				}
				return
			}
			td.CmpNoError(t, err)
			td.Cmp(t, got.Type(), tC.wantType)
			td.Cmp(t, got.String(), tC.want)
		})
	}
}

func TestMethods(t *testing.T) {
	a := integer.UInt16.MustFrom(10)
	b := integer.UInt16.MustFrom(3)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "13", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "7", diff.String())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, "30", prod.String())

	quo, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, "3", quo.String())
	assert.Equal(t, integer.Int32, quo.Type())
}

func TestCast(t *testing.T) {
	i := integer.Int32.MustFrom(-1)

	u, err := i.Cast(integer.UInt16)
	require.NoError(t, err)
	assert.Equal(t, "65535", u.String())

	_, err = i.Cast(integer.UInt16, integer.Throw)
	assert.True(t, errors.Is(err, integer.ErrUnderflow))
}

func TestMarshalJSON(t *testing.T) {
	b, err := integer.UInt32.MustFrom(7).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))

	b, err = integer.UInt64.MustFrom(7).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"7"`, string(b))
}
