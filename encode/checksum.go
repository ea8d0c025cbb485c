package encode

import (
	"reflect"

	"github.com/Wire-Network/sdk-core-sub000/encio"
)

// Checksum160 is a 20 byte digest, e.g. ripemd160.
type Checksum160 [20]byte

// Checksum256 is a 32 byte digest, e.g. sha256. Transaction and block ids are these.
type Checksum256 [32]byte

// Checksum512 is a 64 byte digest, e.g. sha512.
type Checksum512 [64]byte

func (c Checksum160) String() string { return encio.HexEncode(c[:]) }
func (c Checksum256) String() string { return encio.HexEncode(c[:]) }
func (c Checksum512) String() string { return encio.HexEncode(c[:]) }

// checksum does the work for the three checksum codecs, which only differ in size and Go type.
type checksum struct {
	name  string
	size  int
	ty    reflect.Type
	build func([]byte) interface{}
}

func (c checksum) decode(r *encio.Reader) (interface{}, error) {
	buff, err := r.ReadArray(c.size)
	if err != nil {
		return nil, err
	}
	return c.build(buff), nil
}

func (c checksum) fromObject(v interface{}) (interface{}, error) {
	if reflect.TypeOf(v) == c.ty {
		return v, nil
	}
	buff := make([]byte, c.size)
	if err := fixedFromObject(v, buff, c.name); err != nil {
		return nil, err
	}
	return c.build(buff), nil
}

func (c checksum) encode(v interface{}, w *encio.Writer) error {
	typed, err := c.fromObject(v)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(typed)
	buff := make([]byte, c.size)
	reflect.Copy(reflect.ValueOf(buff), rv)
	w.WriteArray(buff)
	return nil
}

func (c checksum) toObject(v interface{}) (interface{}, error) {
	typed, err := c.fromObject(v)
	if err != nil {
		return nil, err
	}
	return typed.(interface{ String() string }).String(), nil
}

var (
	checksum160 = checksum{name: "checksum160", size: 20, ty: reflect.TypeOf(Checksum160{}), build: func(b []byte) interface{} {
		var c Checksum160
		copy(c[:], b)
		return c
	}}
	checksum256 = checksum{name: "checksum256", size: 32, ty: reflect.TypeOf(Checksum256{}), build: func(b []byte) interface{} {
		var c Checksum256
		copy(c[:], b)
		return c
	}}
	checksum512 = checksum{name: "checksum512", size: 64, ty: reflect.TypeOf(Checksum512{}), build: func(b []byte) interface{} {
		var c Checksum512
		copy(c[:], b)
		return c
	}}
)

// Checksum160Codec is the codec for checksum160. The plain form is lowercase hex.
type Checksum160Codec struct{}

// ABIName implements Codec.
func (Checksum160Codec) ABIName() string { return checksum160.name }

// GoType implements Native.
func (Checksum160Codec) GoType() reflect.Type { return checksum160.ty }

// Default implements Codec.
func (Checksum160Codec) Default() interface{} { return Checksum160{} }

// DecodeBinary implements Codec.
func (Checksum160Codec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	return checksum160.decode(r)
}

// EncodeBinary implements Codec.
func (Checksum160Codec) EncodeBinary(v interface{}, w *encio.Writer) error {
	return checksum160.encode(v, w)
}

// FromObject implements Codec.
func (Checksum160Codec) FromObject(v interface{}) (interface{}, error) {
	return checksum160.fromObject(v)
}

// ToObject implements Codec.
func (Checksum160Codec) ToObject(v interface{}) (interface{}, error) {
	return checksum160.toObject(v)
}

// Checksum256Codec is the codec for checksum256. The plain form is lowercase hex.
type Checksum256Codec struct{}

// ABIName implements Codec.
func (Checksum256Codec) ABIName() string { return checksum256.name }

// GoType implements Native.
func (Checksum256Codec) GoType() reflect.Type { return checksum256.ty }

// Default implements Codec.
func (Checksum256Codec) Default() interface{} { return Checksum256{} }

// DecodeBinary implements Codec.
func (Checksum256Codec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	return checksum256.decode(r)
}

// EncodeBinary implements Codec.
func (Checksum256Codec) EncodeBinary(v interface{}, w *encio.Writer) error {
	return checksum256.encode(v, w)
}

// FromObject implements Codec.
func (Checksum256Codec) FromObject(v interface{}) (interface{}, error) {
	return checksum256.fromObject(v)
}

// ToObject implements Codec.
func (Checksum256Codec) ToObject(v interface{}) (interface{}, error) {
	return checksum256.toObject(v)
}

// Checksum512Codec is the codec for checksum512. The plain form is lowercase hex.
type Checksum512Codec struct{}

// ABIName implements Codec.
func (Checksum512Codec) ABIName() string { return checksum512.name }

// GoType implements Native.
func (Checksum512Codec) GoType() reflect.Type { return checksum512.ty }

// Default implements Codec.
func (Checksum512Codec) Default() interface{} { return Checksum512{} }

// DecodeBinary implements Codec.
func (Checksum512Codec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	return checksum512.decode(r)
}

// EncodeBinary implements Codec.
func (Checksum512Codec) EncodeBinary(v interface{}, w *encio.Writer) error {
	return checksum512.encode(v, w)
}

// FromObject implements Codec.
func (Checksum512Codec) FromObject(v interface{}) (interface{}, error) {
	return checksum512.fromObject(v)
}

// ToObject implements Codec.
func (Checksum512Codec) ToObject(v interface{}) (interface{}, error) {
	return checksum512.toObject(v)
}
