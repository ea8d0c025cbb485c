package encode

import (
	"reflect"

	"github.com/Wire-Network/sdk-core-sub000/encio"
	"github.com/Wire-Network/sdk-core-sub000/integer"
)

var integerGoTypes = map[*integer.Type]reflect.Type{
	integer.Int8:    reflect.TypeOf(int8(0)),
	integer.Int16:   reflect.TypeOf(int16(0)),
	integer.Int32:   reflect.TypeOf(int32(0)),
	integer.Int64:   reflect.TypeOf(int64(0)),
	integer.UInt8:   reflect.TypeOf(uint8(0)),
	integer.UInt16:  reflect.TypeOf(uint16(0)),
	integer.UInt32:  reflect.TypeOf(uint32(0)),
	integer.UInt64:  reflect.TypeOf(uint64(0)),
}

func integerCodecs() []Codec {
	codecs := make([]Codec, len(integer.Types))
	for i, t := range integer.Types {
		codecs[i] = NewInteger(t)
	}
	return codecs
}

// NewInteger returns the codec for integers of type t.
func NewInteger(t *integer.Type) *Integer {
	return &Integer{t: t}
}

// Integer is the codec for every integer type.
// Fixed width types are little-endian two's complement; varint32 and varuint32 are LEB128.
//
// Typed values are integer.Int of the codec's type. Plain values are Go integers up to 32 bits,
// and decimal strings beyond that, since JSON numbers lose precision past 53 bits.
type Integer struct {
	t *integer.Type
}

// ABIName implements Codec.
func (e *Integer) ABIName() string { return e.t.Name() }

// Type returns the integer type handled by the codec.
func (e *Integer) Type() *integer.Type { return e.t }

// GoType implements Native.
func (e *Integer) GoType() reflect.Type { return integerGoTypes[e.t] }

// Default implements Codec.
func (e *Integer) Default() interface{} { return e.t.Zero() }

// DecodeBinary implements Codec.
func (e *Integer) DecodeBinary(r *encio.Reader) (interface{}, error) {
	if e.t.Variable() {
		if e.t.Signed() {
			n, err := r.ReadVarint32()
			if err != nil {
				return nil, err
			}
			return e.t.From(n)
		}

		n, err := r.ReadVaruint32()
		if err != nil {
			return nil, err
		}
		return e.t.From(n)
	}

	var (
		n   uint64
		err error
	)
	switch e.t.ByteWidth() {
	case 1:
		var b byte
		b, err = r.ReadByte()
		n = uint64(b)
	case 2:
		var b uint16
		b, err = r.ReadUint16()
		n = uint64(b)
	case 4:
		var b uint32
		b, err = r.ReadUint32()
		n = uint64(b)
	case 8:
		n, err = r.ReadUint64()
	default:
		buff, err := r.ReadArray(e.t.ByteWidth())
		if err != nil {
			return nil, err
		}
		return e.t.FromBytes(buff)
	}
	if err != nil {
		return nil, err
	}

	// Reinterpret the raw bits; for signed types this sign extends.
	return e.t.From(n, integer.Truncate)
}

// EncodeBinary implements Codec.
func (e *Integer) EncodeBinary(v interface{}, w *encio.Writer) error {
	i, err := e.t.From(v)
	if err != nil {
		return err
	}

	switch {
	case e.t.Variable() && e.t.Signed():
		w.WriteVarint32(int32(i.Int64()))
	case e.t.Variable():
		w.WriteVaruint32(uint32(i.Uint64()))
	default:
		e.writeFixed(i, w)
	}
	return nil
}

func (e *Integer) writeFixed(i integer.Int, w *encio.Writer) {
	n := i.Uint64()
	if e.t.Signed() {
		n = uint64(i.Int64())
	}

	switch e.t.ByteWidth() {
	case 1:
		_ = w.WriteByte(byte(n))
	case 2:
		w.WriteUint16(uint16(n))
	case 4:
		w.WriteUint32(uint32(n))
	case 8:
		w.WriteUint64(n)
	default:
		w.WriteArray(i.Bytes())
	}
}

// FromObject implements Codec.
// Out of range values are an error; nothing is silently truncated.
func (e *Integer) FromObject(v interface{}) (interface{}, error) {
	return e.t.From(v)
}

// ToObject implements Codec.
func (e *Integer) ToObject(v interface{}) (interface{}, error) {
	i, err := e.t.From(v)
	if err != nil {
		return nil, err
	}

	switch {
	case e.t.Bits() > 32:
		return i.String(), nil
	case e.t.Signed():
		return i.Int64(), nil
	default:
		return i.Uint64(), nil
	}
}
