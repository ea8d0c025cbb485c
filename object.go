package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encode"
	"github.com/Wire-Network/sdk-core-sub000/integer"
)

// isNil reports whether v is nil, or a nil pointer, map or slice.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// deref follows non-nil pointers, except to Variants.
func deref(v interface{}) interface{} {
	if _, ok := v.(*Variant); ok {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return v
	}
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv.Interface()
}

// asSlice returns the elements of a slice or array.
func asSlice(v interface{}) ([]interface{}, bool) {
	if items, ok := v.([]interface{}); ok {
		return items, true
	}
	if v == nil {
		return nil, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// structObject returns the fields of v by ABI field name.
// v may be a map with string keys, or a Go struct described by abi.DescribeStruct.
func structObject(t *abi.ResolvedType, v interface{}) (map[string]interface{}, error) {
	if obj, ok := v.(map[string]interface{}); ok {
		return obj, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		obj := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()] = iter.Value().Interface()
		}
		return obj, nil

	case reflect.Struct:
		obj := make(map[string]interface{})
		if err := goStructObject(rv, obj); err != nil {
			return nil, err
		}
		return obj, nil
	}

	return nil, errors.Wrapf(ErrInvalidStructShape, "%v needs an object, got %T", t.Name, v)
}

// goStructObject adds the fields of a Go struct, and its embedded base's, to obj.
func goStructObject(rv reflect.Value, obj map[string]interface{}) error {
	desc, err := abi.DescribeStruct(rv.Type())
	if err != nil {
		return err
	}

	if desc.Base != nil {
		if err := goStructObject(rv.FieldByIndex(desc.Base.Index), obj); err != nil {
			return err
		}
	}
	for _, f := range desc.Fields {
		obj[f.Name] = rv.FieldByIndex(f.Index).Interface()
	}
	return nil
}

var basicKinds = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeOf(false),
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
	reflect.String:  reflect.TypeOf(""),
}

// normalizeLeaf converts named Go types the codecs don't know, e.g. `type memo string`, to their underlying basic type.
func (c *Context) normalizeLeaf(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case integer.Int, json.Number:
		return v
	}

	rt := reflect.TypeOf(v)
	if _, ok := c.Registry.NameOf(rt); ok {
		return v
	}

	rv := reflect.ValueOf(v)
	if basic, ok := basicKinds[rt.Kind()]; ok && basic != rt {
		return rv.Convert(basic).Interface()
	}
	if rt.Kind() == reflect.Slice && rt.Elem() == reflect.TypeOf(byte(0)) {
		return rv.Convert(reflect.TypeOf([]byte(nil))).Interface()
	}
	return v
}

// fromObject converts a plain value to typed form as t, suffixes included.
func (c *Context) fromObject(t *abi.ResolvedType, v interface{}) (interface{}, error) {
	if t.IsExtension && isNil(v) {
		if c.StrictExtensions {
			return c.defaultValue(t, make(map[*abi.ResolvedType]bool))
		}
		return nil, nil
	}
	if t.IsOptional && isNil(v) {
		return nil, nil
	}
	v = deref(v)

	if !t.IsArray {
		return c.fromObjectElement(t, v)
	}

	items, ok := asSlice(v)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidStructShape, "%v needs a list, got %T", t.TypeName(), v)
	}
	out := make([]interface{}, len(items))
	for i, item := range items {
		if err := c.enterIndex(i, t); err != nil {
			return nil, err
		}
		elem, err := c.fromObjectElement(t, deref(item))
		if err != nil {
			return nil, err
		}
		c.leave(true)
		out[i] = elem
	}
	return out, nil
}

func (c *Context) fromObjectElement(t *abi.ResolvedType, v interface{}) (interface{}, error) {
	if codec, ok := c.codec(t); ok {
		return codec.FromObject(c.normalizeLeaf(v))
	}

	switch t.Kind {
	case abi.KindAlias:
		if err := c.enter(nil); err != nil {
			return nil, err
		}
		out, err := c.fromObject(t.Ref, v)
		if err != nil {
			return nil, err
		}
		c.leave(false)
		return out, nil

	case abi.KindStruct:
		fields, ok := t.AllFields()
		if !ok {
			return nil, errors.Wrapf(abi.ErrInvalidBase, "struct %v", t.Name)
		}
		obj, err := structObject(t, v)
		if err != nil {
			return nil, err
		}

		out := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			fv, ok := obj[f.Name]
			if !ok && !f.Type.IsOptional && !f.Type.IsExtension {
				return nil, errors.Wrapf(ErrMissingValue, "%v.%v", t.Name, f.Name)
			}
			if err := c.enterField(f.Name, f.Type); err != nil {
				return nil, err
			}
			typed, err := c.fromObject(f.Type, fv)
			if err != nil {
				return nil, err
			}
			c.leave(true)
			out[f.Name] = typed
		}
		return c.native(t, out)

	case abi.KindVariant:
		idx, value, err := c.variantMember(t, v)
		if err != nil {
			return nil, err
		}
		member := t.Variant[idx]
		if err := c.enterField(fmt.Sprintf("v%d", idx), member); err != nil {
			return nil, err
		}
		typed, err := c.fromObject(member, value)
		if err != nil {
			return nil, err
		}
		c.leave(true)
		return Variant{Type: member.TypeName(), Value: typed}, nil
	}

	if t.Name == anyType {
		return v, nil
	}
	return nil, errors.Wrapf(ErrUnknownType, "%v", t.Name)
}

// toObject converts a typed value of t to plain form, suffixes included.
func (c *Context) toObject(t *abi.ResolvedType, v interface{}) (interface{}, error) {
	if isNil(v) && (t.IsOptional || t.IsExtension) {
		return nil, nil
	}
	v = deref(v)

	if !t.IsArray {
		return c.toObjectElement(t, v)
	}

	items, ok := asSlice(v)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidStructShape, "%v needs a list, got %T", t.TypeName(), v)
	}
	out := make([]interface{}, len(items))
	for i, item := range items {
		if err := c.enterIndex(i, t); err != nil {
			return nil, err
		}
		elem, err := c.toObjectElement(t, deref(item))
		if err != nil {
			return nil, err
		}
		c.leave(true)
		out[i] = elem
	}
	return out, nil
}

func (c *Context) toObjectElement(t *abi.ResolvedType, v interface{}) (interface{}, error) {
	if codec, ok := c.codec(t); ok {
		typed, err := codec.FromObject(c.normalizeLeaf(v))
		if err != nil {
			return nil, err
		}
		return codec.ToObject(typed)
	}

	switch t.Kind {
	case abi.KindAlias:
		if err := c.enter(nil); err != nil {
			return nil, err
		}
		out, err := c.toObject(t.Ref, v)
		if err != nil {
			return nil, err
		}
		c.leave(false)
		return out, nil

	case abi.KindStruct:
		fields, ok := t.AllFields()
		if !ok {
			return nil, errors.Wrapf(abi.ErrInvalidBase, "struct %v", t.Name)
		}
		obj, err := structObject(t, v)
		if err != nil {
			return nil, err
		}

		out := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			fv, ok := obj[f.Name]
			if !ok {
				switch {
				case f.Type.IsExtension:
					continue
				case !f.Type.IsOptional:
					return nil, errors.Wrapf(ErrMissingValue, "%v.%v", t.Name, f.Name)
				}
			}
			if err := c.enterField(f.Name, f.Type); err != nil {
				return nil, err
			}
			plain, err := c.toObject(f.Type, fv)
			if err != nil {
				return nil, err
			}
			c.leave(true)
			out[f.Name] = plain
		}
		return out, nil

	case abi.KindVariant:
		idx, value, err := c.variantMember(t, v)
		if err != nil {
			return nil, err
		}
		member := t.Variant[idx]
		if err := c.enterField(fmt.Sprintf("v%d", idx), member); err != nil {
			return nil, err
		}
		plain, err := c.toObject(member, value)
		if err != nil {
			return nil, err
		}
		c.leave(true)
		return []interface{}{member.TypeName(), plain}, nil
	}

	if t.Name == anyType {
		return Objectify(v)
	}
	return nil, errors.Wrapf(ErrUnknownType, "%v", t.Name)
}

// Objectify converts a typed value to plain form without a schema.
// Variants become [type, value] pairs and wide integers become strings. Other values implementing
// json.Marshaler go through their JSON, then fmt.Stringer values become their string.
func Objectify(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case Variant:
		inner, err := Objectify(tv.Value)
		if err != nil {
			return nil, err
		}
		return []interface{}{tv.Type, inner}, nil
	case *Variant:
		if tv == nil {
			return nil, nil
		}
		return Objectify(*tv)
	case integer.Int:
		if tv.Type() == nil || tv.Type().Bits() > 32 {
			return tv.String(), nil
		}
		if tv.Type().Signed() {
			return tv.Int64(), nil
		}
		return tv.Uint64(), nil
	case encode.Name:
		return tv.String(), nil
	case []byte:
		return encode.Bytes{}.ToObject(tv)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(tv))
		for k, e := range tv {
			plain, err := Objectify(e)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			out[k] = plain
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			plain, err := Objectify(e)
			if err != nil {
				return nil, errors.Wrapf(err, "index %v", i)
			}
			out[i] = plain
		}
		return out, nil
	case json.Marshaler:
		data, err := tv.MarshalJSON()
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var out interface{}
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	case fmt.Stringer:
		return tv.String(), nil
	}
	return v, nil
}
