package encode

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/encio"
	"github.com/Wire-Network/sdk-core-sub000/integer"
)

func toFloat64(v interface{}, name string) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	case json.Number:
		return toFloat64(string(f), name)
	case string:
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, errors.Wrapf(encio.ErrBadType, "%q is not a %v", f, name)
		}
		return n, nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case uint64:
		return float64(f), nil
	case integer.Int:
		n, _ := new(big.Float).SetInt(f.BigInt()).Float64()
		return n, nil
	}
	return 0, badType(v, name)
}

// Float32 is the codec for float32, a little-endian IEEE-754 single.
type Float32 struct{}

// ABIName implements Codec.
func (Float32) ABIName() string { return "float32" }

// GoType implements Native.
func (Float32) GoType() reflect.Type { return reflect.TypeOf(float32(0)) }

// Default implements Codec.
func (Float32) Default() interface{} { return float32(0) }

// DecodeBinary implements Codec.
func (Float32) DecodeBinary(r *encio.Reader) (interface{}, error) {
	f, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return f, nil
}

// EncodeBinary implements Codec.
func (e Float32) EncodeBinary(v interface{}, w *encio.Writer) error {
	f, err := e.FromObject(v)
	if err != nil {
		return err
	}
	w.WriteFloat32(f.(float32))
	return nil
}

// FromObject implements Codec.
func (Float32) FromObject(v interface{}) (interface{}, error) {
	if f, ok := v.(float32); ok {
		return f, nil
	}
	f, err := toFloat64(v, "float32")
	if err != nil {
		return nil, err
	}
	return float32(f), nil
}

// ToObject implements Codec.
func (e Float32) ToObject(v interface{}) (interface{}, error) {
	return e.FromObject(v)
}

// Float64 is the codec for float64, a little-endian IEEE-754 double.
type Float64 struct{}

// ABIName implements Codec.
func (Float64) ABIName() string { return "float64" }

// GoType implements Native.
func (Float64) GoType() reflect.Type { return reflect.TypeOf(float64(0)) }

// Default implements Codec.
func (Float64) Default() interface{} { return float64(0) }

// DecodeBinary implements Codec.
func (Float64) DecodeBinary(r *encio.Reader) (interface{}, error) {
	f, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	return f, nil
}

// EncodeBinary implements Codec.
func (e Float64) EncodeBinary(v interface{}, w *encio.Writer) error {
	f, err := toFloat64(v, "float64")
	if err != nil {
		return err
	}
	w.WriteFloat64(f)
	return nil
}

// FromObject implements Codec.
func (Float64) FromObject(v interface{}) (interface{}, error) {
	f, err := toFloat64(v, "float64")
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ToObject implements Codec.
// NaN and the infinities have no JSON form, so they become strings.
func (Float64) ToObject(v interface{}) (interface{}, error) {
	f, err := toFloat64(v, "float64")
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return f, nil
}

// Float128 holds the raw bytes of a quad precision float.
// Go has no such type; the bytes are carried through untouched.
type Float128 [16]byte

// String returns the bytes in hex.
func (f Float128) String() string { return encio.HexEncode(f[:]) }

// Float128Codec is the codec for float128.
type Float128Codec struct{}

// ABIName implements Codec.
func (Float128Codec) ABIName() string { return "float128" }

// GoType implements Native.
func (Float128Codec) GoType() reflect.Type { return reflect.TypeOf(Float128{}) }

// Default implements Codec.
func (Float128Codec) Default() interface{} { return Float128{} }

// DecodeBinary implements Codec.
func (Float128Codec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	var f Float128
	buff, err := r.ReadArray(len(f))
	if err != nil {
		return nil, err
	}
	copy(f[:], buff)
	return f, nil
}

// EncodeBinary implements Codec.
func (e Float128Codec) EncodeBinary(v interface{}, w *encio.Writer) error {
	f, err := e.FromObject(v)
	if err != nil {
		return err
	}
	b := f.(Float128)
	w.WriteArray(b[:])
	return nil
}

// FromObject implements Codec.
func (Float128Codec) FromObject(v interface{}) (interface{}, error) {
	var f Float128
	if err := fixedFromObject(v, f[:], "float128"); err != nil {
		return nil, err
	}
	return f, nil
}

// ToObject implements Codec.
func (e Float128Codec) ToObject(v interface{}) (interface{}, error) {
	f, err := e.FromObject(v)
	if err != nil {
		return nil, err
	}
	return f.(Float128).String(), nil
}
