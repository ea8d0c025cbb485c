package serializer

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
)

// NativeTypes maps ABI struct names to the Go types they decode into.
type NativeTypes map[string]reflect.Type

// Register adds the types of values, keyed by the ABI name they declare through abi.Named.
func (n NativeTypes) Register(values ...interface{}) error {
	for _, v := range values {
		t := reflect.TypeOf(v)
		if t == nil {
			return errors.Wrap(abi.ErrMissingName, "cannot register nil")
		}
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		name := abi.NameOf(t)
		if name == "" {
			return errors.Wrapf(abi.ErrMissingName, "%v", t)
		}
		n[name] = t
	}
	return nil
}

// RegisterNative returns NativeTypes holding the types of values.
func RegisterNative(values ...interface{}) (NativeTypes, error) {
	n := make(NativeTypes)
	return n, n.Register(values...)
}
