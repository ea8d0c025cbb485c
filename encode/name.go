package encode

import (
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/encio"
)

const nameCharmap = ".12345abcdefghijklmnopqrstuvwxyz"

// Name is an account, action or table name packed into 64 bits.
// The first 12 characters take 5 bits each from the top down, and a 13th character may use the last 4 bits.
type Name uint64

// NameFromString packs s into a Name.
// s may have up to 13 characters from ".12345abcdefghijklmnopqrstuvwxyz", and the 13th must be one of the first 16.
func NameFromString(s string) (Name, error) {
	if len(s) > 13 {
		return 0, errors.Wrapf(encio.ErrMalformed, "name %q is longer than 13 characters", s)
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		c, ok := nameSymbol(s[i])
		if !ok {
			return 0, errors.Wrapf(encio.ErrMalformed, "name %q has invalid character %q", s, s[i])
		}

		if i < 12 {
			n |= uint64(c) << (64 - 5*(i+1))
			continue
		}

		if c > 0x0f {
			return 0, errors.Wrapf(encio.ErrMalformed, "name %q has invalid 13th character %q", s, s[i])
		}
		n |= uint64(c)
	}

	return Name(n), nil
}

// MustName is like NameFromString but panics if s isn't valid.
func MustName(s string) Name {
	n, err := NameFromString(s)
	if err != nil {
		panic(err)
	}
	return n
}

func nameSymbol(c byte) (byte, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 6, true
	case c >= '1' && c <= '5':
		return c - '1' + 1, true
	case c == '.':
		return 0, true
	}
	return 0, false
}

// String returns the name as text, with trailing dots removed.
func (n Name) String() string {
	var str [13]byte
	tmp := uint64(n)
	for i := 0; i <= 12; i++ {
		if i == 0 {
			str[12-i] = nameCharmap[tmp&0x0f]
			tmp >>= 4
		} else {
			str[12-i] = nameCharmap[tmp&0x1f]
			tmp >>= 5
		}
	}

	end := len(str)
	for end > 0 && str[end-1] == '.' {
		end--
	}
	return string(str[:end])
}

// MarshalJSON implements json.Marshaler.
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Name) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := NameFromString(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// NameCodec is the codec for name. It is a little-endian uint64 on the wire, and a string in plain form.
type NameCodec struct{}

// ABIName implements Codec.
func (NameCodec) ABIName() string { return "name" }

// GoType implements Native.
func (NameCodec) GoType() reflect.Type { return reflect.TypeOf(Name(0)) }

// Default implements Codec.
func (NameCodec) Default() interface{} { return Name(0) }

// DecodeBinary implements Codec.
func (NameCodec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return Name(n), nil
}

// EncodeBinary implements Codec.
func (e NameCodec) EncodeBinary(v interface{}, w *encio.Writer) error {
	n, err := e.FromObject(v)
	if err != nil {
		return err
	}
	w.WriteUint64(uint64(n.(Name)))
	return nil
}

// FromObject implements Codec.
func (NameCodec) FromObject(v interface{}) (interface{}, error) {
	switch n := v.(type) {
	case Name:
		return n, nil
	case string:
		return NameFromString(n)
	case uint64:
		return Name(n), nil
	}
	return nil, badType(v, "name")
}

// ToObject implements Codec.
func (e NameCodec) ToObject(v interface{}) (interface{}, error) {
	n, err := e.FromObject(v)
	if err != nil {
		return nil, err
	}
	return n.(Name).String(), nil
}
