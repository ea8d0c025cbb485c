package serializer

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encio"
	"github.com/Wire-Network/sdk-core-sub000/integer"
)

// EncodeNative encodes a Go value, using an ABI synthesized from its type.
// config may be nil.
func EncodeNative(v interface{}, config *Config) ([]byte, error) {
	ctx := NewContext(config)
	if v == nil {
		return nil, wrapEncoding(ctx, errors.Wrap(encio.ErrBadType, "cannot encode nil"))
	}

	t, err := ctx.synthesize(reflect.TypeOf(v))
	if err != nil {
		return nil, wrapEncoding(ctx, err)
	}

	typed, err := ctx.fromObjectRoot(t, v)
	if err != nil {
		return nil, wrapEncoding(ctx, err)
	}
	buff, err := ctx.encodeRoot(t, typed)
	return buff, wrapEncoding(ctx, err)
}

// DecodeNative decodes data into out, which must be a non-nil pointer.
// The ABI is synthesized from out's type.
func DecodeNative(data []byte, out interface{}, config *Config) error {
	ctx := NewContext(config)
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return wrapDecoding(ctx, errors.Wrapf(encio.ErrBadType, "decoded values must be passed by non-nil pointer, got %T", out))
	}

	t, err := ctx.synthesize(rv.Type().Elem())
	if err != nil {
		return wrapDecoding(ctx, err)
	}

	v, err := ctx.decodeRoot(t, data)
	if err != nil {
		return wrapDecoding(ctx, err)
	}
	return wrapDecoding(ctx, ctx.assign(rv.Elem(), v))
}

func (c *Context) synthesize(goType reflect.Type) (*abi.ResolvedType, error) {
	for goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}

	s := abi.NewSynthesizer(c.Registry)
	name, err := s.Add(goType)
	if err != nil {
		return nil, err
	}
	return abi.NewResolver(s.Def(), c.Logger).Resolve(name), nil
}

// assign sets dst from a typed value.
func (c *Context) assign(dst reflect.Value, src interface{}) error {
	dt := dst.Type()
	if src == nil {
		dst.Set(reflect.Zero(dt))
		return nil
	}

	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dt) {
		dst.Set(sv)
		return nil
	}

	switch dst.Kind() {
	case reflect.Interface:
		return errors.Wrapf(encio.ErrBadType, "%T doesn't implement %v", src, dt)

	case reflect.Ptr:
		p := reflect.New(dt.Elem())
		if err := c.assign(p.Elem(), src); err != nil {
			return err
		}
		dst.Set(p)
		return nil

	case reflect.Slice:
		if items, ok := src.([]interface{}); ok {
			s := reflect.MakeSlice(dt, len(items), len(items))
			for i, item := range items {
				if err := c.assign(s.Index(i), item); err != nil {
					return errors.Wrapf(err, "index %v", i)
				}
			}
			dst.Set(s)
			return nil
		}

	case reflect.Struct:
		if abi.VariantMembers(dt) != nil {
			return c.assignVariant(dst, src)
		}
		if obj, ok := src.(map[string]interface{}); ok {
			return c.assignStruct(dst, obj)
		}
	}

	if i, ok := src.(integer.Int); ok {
		return assignInt(dst, i)
	}

	if sv.Kind() == dst.Kind() && sv.Type().ConvertibleTo(dt) {
		dst.Set(sv.Convert(dt))
		return nil
	}

	return errors.Wrapf(encio.ErrBadType, "cannot assign %T to %v", src, dt)
}

func assignInt(dst reflect.Value, i integer.Int) error {
	v := i.BigInt()
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !v.IsInt64() || dst.OverflowInt(v.Int64()) {
			return errors.Wrapf(integer.ErrOverflow, "%v %v doesn't fit in %v", i.Type(), i, dst.Type())
		}
		dst.SetInt(v.Int64())
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !v.IsUint64() || dst.OverflowUint(v.Uint64()) {
			return errors.Wrapf(integer.ErrOverflow, "%v %v doesn't fit in %v", i.Type(), i, dst.Type())
		}
		dst.SetUint(v.Uint64())
		return nil
	}
	return errors.Wrapf(encio.ErrBadType, "cannot assign %v to %v", i.Type(), dst.Type())
}

func (c *Context) assignStruct(dst reflect.Value, obj map[string]interface{}) error {
	desc, err := abi.DescribeStruct(dst.Type())
	if err != nil {
		return err
	}

	if desc.Base != nil {
		if err := c.assignStruct(dst.FieldByIndex(desc.Base.Index), obj); err != nil {
			return err
		}
	}
	for _, f := range desc.Fields {
		v, ok := obj[f.Name]
		if !ok {
			continue
		}
		if err := c.assign(dst.FieldByIndex(f.Index), v); err != nil {
			return errors.Wrapf(err, "field %v", f.Name)
		}
	}
	return nil
}

// assignVariant picks the member of a Go variant type whose synthesized name matches src.
func (c *Context) assignVariant(dst reflect.Value, src interface{}) error {
	var v Variant
	switch tv := src.(type) {
	case Variant:
		v = tv
	case *Variant:
		if tv == nil {
			return nil
		}
		v = *tv
	default:
		return errors.Wrapf(encio.ErrBadType, "cannot assign %T to variant %v", src, dst.Type())
	}

	s := abi.NewSynthesizer(c.Registry)
	for _, m := range abi.VariantMembers(dst.Type()) {
		name, err := s.Add(m)
		if err != nil {
			return err
		}
		if name != v.Type {
			continue
		}

		member := reflect.New(m).Elem()
		if err := c.assign(member, v.Value); err != nil {
			return err
		}
		dst.FieldByName(abi.VariantValueField).Set(member)
		return nil
	}
	return errors.Wrapf(ErrUnknownVariantMember, "%q is not a member of %v", v.Type, dst.Type())
}
