// Package serializer encodes and decodes values described by an Antelope-style ABI.
//
// Values move between three forms. Binary is the chain's wire format. Typed values are what Decode
// returns: codec values such as integer.Int and encode.Name, map[string]interface{} for structs,
// []interface{} for arrays and Variant for variants. Plain values are what encoding/json produces.
// FromObject and ToObject convert between plain and typed.
//
//	def, _ := abi.FromJSON(abiJSON)
//	data, err := serializer.Encode(serializer.EncodeArgs{
//		ABI:   def,
//		Type:  "transfer",
//		Value: map[string]interface{}{"from": "alice", "to": "bob", "quantity": "1.0000 SYS", "memo": ""},
//	})
//
// Every call builds its own Context, so concurrent calls are safe. Failures are returned as
// *DecodingError or *EncodingError, carrying the path to the value that failed.
package serializer

import (
	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
)

// DecodeArgs are the arguments to Decode.
// Either Resolved, or Type (and usually ABI), must be set.
type DecodeArgs struct {
	Data     []byte
	ABI      *abi.Def
	Type     string
	Resolved *abi.ResolvedType
	Config   *Config
}

// EncodeArgs are the arguments to Encode.
// Value may be wrapped in Raw or Resolved; a bare value is treated as Raw.
type EncodeArgs struct {
	Value    interface{}
	ABI      *abi.Def
	Type     string
	Resolved *abi.ResolvedType
	Config   *Config
}

// ObjectArgs are the arguments to FromObject and ToObject.
type ObjectArgs struct {
	Object   interface{}
	ABI      *abi.Def
	Type     string
	Resolved *abi.ResolvedType
	Config   *Config
}

func resolve(ctx *Context, def *abi.Def, typeName string, resolved *abi.ResolvedType) (*abi.ResolvedType, error) {
	if resolved != nil {
		return resolved, nil
	}
	if typeName == "" {
		return nil, errors.Wrap(ErrUnknownType, "no type given")
	}
	return abi.NewResolver(def, ctx.Logger).Resolve(typeName), nil
}

// Decode decodes binary data into a typed value.
// Bytes left over after the value are ignored.
func Decode(args DecodeArgs) (interface{}, error) {
	ctx := NewContext(args.Config)
	t, err := resolve(ctx, args.ABI, args.Type, args.Resolved)
	if err != nil {
		return nil, wrapDecoding(ctx, err)
	}

	v, err := ctx.decodeRoot(t, args.Data)
	if err != nil {
		return nil, wrapDecoding(ctx, err)
	}
	return v, nil
}

// Encode encodes a value to binary.
func Encode(args EncodeArgs) ([]byte, error) {
	ctx := NewContext(args.Config)
	t, err := resolve(ctx, args.ABI, args.Type, args.Resolved)
	if err != nil {
		return nil, wrapEncoding(ctx, err)
	}

	var typed interface{}
	switch v := args.Value.(type) {
	case Resolved:
		typed = v.V
	case Raw:
		typed, err = ctx.fromObjectRoot(t, v.V)
	default:
		typed, err = ctx.fromObjectRoot(t, v)
	}
	if err != nil {
		return nil, wrapEncoding(ctx, err)
	}

	buff, err := ctx.encodeRoot(t, typed)
	if err != nil {
		return nil, wrapEncoding(ctx, err)
	}
	return buff, nil
}

// FromObject converts a plain value to typed form.
func FromObject(args ObjectArgs) (interface{}, error) {
	ctx := NewContext(args.Config)
	t, err := resolve(ctx, args.ABI, args.Type, args.Resolved)
	if err != nil {
		return nil, wrapDecoding(ctx, err)
	}

	v, err := ctx.fromObjectRoot(t, args.Object)
	if err != nil {
		return nil, wrapDecoding(ctx, err)
	}
	return v, nil
}

// ToObject converts a typed value to plain form.
func ToObject(args ObjectArgs) (interface{}, error) {
	ctx := NewContext(args.Config)
	t, err := resolve(ctx, args.ABI, args.Type, args.Resolved)
	if err != nil {
		return nil, wrapEncoding(ctx, err)
	}

	if err := ctx.enterField("root", t); err != nil {
		return nil, wrapEncoding(ctx, err)
	}
	v, err := ctx.toObject(t, args.Object)
	if err != nil {
		return nil, wrapEncoding(ctx, err)
	}
	return v, nil
}

// Default returns the default typed value of a type.
func Default(args ObjectArgs) (interface{}, error) {
	ctx := NewContext(args.Config)
	t, err := resolve(ctx, args.ABI, args.Type, args.Resolved)
	if err != nil {
		return nil, wrapDecoding(ctx, err)
	}

	v, err := ctx.Default(t)
	if err != nil {
		return nil, wrapDecoding(ctx, err)
	}
	return v, nil
}

func (c *Context) fromObjectRoot(t *abi.ResolvedType, v interface{}) (interface{}, error) {
	if err := c.enterField("root", t); err != nil {
		return nil, err
	}
	typed, err := c.fromObject(t, v)
	if err != nil {
		return nil, err
	}
	c.leave(true)
	return typed, nil
}
