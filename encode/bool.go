package encode

import (
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/encio"
)

func badType(v interface{}, name string) error {
	return errors.Wrapf(encio.ErrBadType, "cannot use %T as %v", v, name)
}

// Bool is the codec for bool. It is one byte on the wire, and only 1 is true.
type Bool struct{}

// ABIName implements Codec.
func (Bool) ABIName() string { return "bool" }

// GoType implements Native.
func (Bool) GoType() reflect.Type { return reflect.TypeOf(false) }

// Default implements Codec.
func (Bool) Default() interface{} { return false }

// DecodeBinary implements Codec.
func (Bool) DecodeBinary(r *encio.Reader) (interface{}, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return b == 1, nil
}

// EncodeBinary implements Codec.
func (e Bool) EncodeBinary(v interface{}, w *encio.Writer) error {
	b, err := e.FromObject(v)
	if err != nil {
		return err
	}
	if b.(bool) {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// FromObject implements Codec.
// Besides bools it takes "true", "false", 0 and 1.
func (e Bool) FromObject(v interface{}) (interface{}, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch b {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	case json.Number:
		return e.FromObject(string(b))
	case float64:
		switch b {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	case int:
		switch b {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return nil, badType(v, "bool")
}

// ToObject implements Codec.
func (e Bool) ToObject(v interface{}) (interface{}, error) {
	return e.FromObject(v)
}
