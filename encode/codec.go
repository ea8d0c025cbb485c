// Package encode holds the leaf codecs of the ABI serializer.
//
// A Codec knows one ABI type name, and how to move a value of that type between its binary form,
// its typed Go form and its plain object form. The serializer never looks inside leaf values;
// everything it knows about them goes through this interface, so new domain types (signatures, keys, assets)
// plug in the same way the builtins do.
//
// There are three forms a value can be in:
//
//	binary: the bytes on the wire.
//	typed:  the Go value DecodeBinary returns and EncodeBinary accepts, e.g. integer.Int or Name.
//	plain:  what encoding/json would produce or accept, e.g. "eosio" or "18446744073709551615".
//
// FromObject turns plain (or already typed) values into typed ones, ToObject goes the other way.
package encode

import (
	"reflect"

	"github.com/Wire-Network/sdk-core-sub000/encio"
)

// Codec encodes and decodes values of a single ABI type.
//
// Codecs must be safe to use from multiple goroutines; none of the builtins keep state.
type Codec interface {
	// ABIName returns the name the type is referenced by in ABIs.
	ABIName() string

	// Default returns the typed zero value.
	Default() interface{}

	// DecodeBinary reads one value from r and returns it in typed form.
	DecodeBinary(r *encio.Reader) (interface{}, error)

	// EncodeBinary writes v to w. v should be in typed form, but codecs accept anything FromObject does.
	EncodeBinary(v interface{}, w *encio.Writer) error

	// FromObject converts a plain or typed value to typed form.
	FromObject(v interface{}) (interface{}, error)

	// ToObject converts a typed value to plain form.
	ToObject(v interface{}) (interface{}, error)
}

// Native is implemented by codecs whose typed form is a single Go type.
// It lets the synthesizer map Go types back to ABI names. GoType may return nil if there is no such type.
type Native interface {
	GoType() reflect.Type
}

// Builtins returns new instances of every builtin codec.
func Builtins() []Codec {
	codecs := []Codec{
		Bool{},
		Float32{},
		Float64{},
		Float128Codec{},
		Bytes{},
		String{},
		NameCodec{},
		Checksum160Codec{},
		Checksum256Codec{},
		Checksum512Codec{},
		TimePointCodec{},
		TimePointSecCodec{},
		BlockTimestampCodec{},
	}
	return append(codecs, integerCodecs()...)
}

// NewRegistry returns a registry with every builtin codec, overridden by custom.
func NewRegistry(custom ...Codec) *Registry {
	r := &Registry{
		byName: make(map[string]Codec),
		byType: map[reflect.Type]string{
			reflect.TypeOf(int(0)):  "int64",
			reflect.TypeOf(uint(0)): "uint64",
		},
	}
	r.add(Builtins()...)
	r.add(custom...)
	return r
}

// Registry maps ABI type names to codecs.
// It is read only once constructed.
type Registry struct {
	byName map[string]Codec
	byType map[reflect.Type]string
}

func (r *Registry) add(codecs ...Codec) {
	for _, c := range codecs {
		if c == nil {
			continue
		}
		r.byName[c.ABIName()] = c
		if n, ok := c.(Native); ok && n.GoType() != nil {
			r.byType[n.GoType()] = c.ABIName()
		}
	}
}

// With returns a copy of the registry with custom added, replacing codecs of the same name.
func (r *Registry) With(custom ...Codec) *Registry {
	if len(custom) == 0 {
		return r
	}

	n := &Registry{
		byName: make(map[string]Codec, len(r.byName)+len(custom)),
		byType: make(map[reflect.Type]string, len(r.byType)+len(custom)),
	}
	for k, v := range r.byName {
		n.byName[k] = v
	}
	for k, v := range r.byType {
		n.byType[k] = v
	}
	n.add(custom...)
	return n
}

// Get returns the codec for name.
func (r *Registry) Get(name string) (Codec, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// NameOf returns the ABI name of the codec whose typed form is t.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	name, ok := r.byType[t]
	return name, ok
}

// Names returns every registered name, in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}
