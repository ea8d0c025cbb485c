package encode

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/encio"
)

// fixedFromObject fills dst from a hex string, a byte slice or a byte array of exactly the right length.
func fixedFromObject(v interface{}, dst []byte, name string) error {
	var src []byte
	switch b := v.(type) {
	case string:
		var err error
		src, err = encio.HexDecode(b)
		if err != nil {
			return errors.Wrapf(err, "decoding %v", name)
		}
	case []byte:
		src = b
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
			return badType(v, name)
		}
		src = make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(src), rv)
	}

	if len(src) != len(dst) {
		return errors.Wrapf(encio.ErrBadType, "%v needs %v bytes, got %v", name, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// Bytes is the codec for bytes, a varuint32 length followed by raw bytes.
// The plain form is lowercase hex.
type Bytes struct{}

// ABIName implements Codec.
func (Bytes) ABIName() string { return "bytes" }

// GoType implements Native.
func (Bytes) GoType() reflect.Type { return reflect.TypeOf([]byte(nil)) }

// Default implements Codec.
func (Bytes) Default() interface{} { return []byte{} }

// DecodeBinary implements Codec.
func (Bytes) DecodeBinary(r *encio.Reader) (interface{}, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// EncodeBinary implements Codec.
func (e Bytes) EncodeBinary(v interface{}, w *encio.Writer) error {
	b, err := e.FromObject(v)
	if err != nil {
		return err
	}
	w.WriteBytes(b.([]byte))
	return nil
}

// FromObject implements Codec.
func (Bytes) FromObject(v interface{}) (interface{}, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		out, err := encio.HexDecode(b)
		if err != nil {
			return nil, errors.Wrap(err, "decoding bytes")
		}
		return out, nil
	case []interface{}:
		out := make([]byte, len(b))
		for i, elem := range b {
			n, err := toFloat64(elem, "byte")
			if err != nil || n < 0 || n > 255 || n != float64(byte(n)) {
				return nil, errors.Wrapf(encio.ErrBadType, "element %v (%v) is not a byte", i, elem)
			}
			out[i] = byte(n)
		}
		return out, nil
	}
	return nil, badType(v, "bytes")
}

// ToObject implements Codec.
func (e Bytes) ToObject(v interface{}) (interface{}, error) {
	b, err := e.FromObject(v)
	if err != nil {
		return nil, err
	}
	return encio.HexEncode(b.([]byte)), nil
}

// String is the codec for string, a varuint32 length followed by UTF-8.
type String struct{}

// ABIName implements Codec.
func (String) ABIName() string { return "string" }

// GoType implements Native.
func (String) GoType() reflect.Type { return reflect.TypeOf("") }

// Default implements Codec.
func (String) Default() interface{} { return "" }

// DecodeBinary implements Codec.
func (String) DecodeBinary(r *encio.Reader) (interface{}, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeBinary implements Codec.
func (e String) EncodeBinary(v interface{}, w *encio.Writer) error {
	s, err := e.FromObject(v)
	if err != nil {
		return err
	}
	w.WriteString(s.(string))
	return nil
}

// FromObject implements Codec.
func (String) FromObject(v interface{}) (interface{}, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return nil, badType(v, "string")
}

// ToObject implements Codec.
func (e String) ToObject(v interface{}) (interface{}, error) {
	return e.FromObject(v)
}
