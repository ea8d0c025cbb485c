package serializer

import (
	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
)

// Default returns the default typed value of t: empty for arrays, nil for optionals, the codec's default
// for leaves, and the default of every field for structs. A variant defaults to its first member.
func (c *Context) Default(t *abi.ResolvedType) (interface{}, error) {
	return c.defaultValue(t, make(map[*abi.ResolvedType]bool))
}

// defaultValue tracks the types on the current path in seen. A type that needs its own default
// can't have one.
func (c *Context) defaultValue(t *abi.ResolvedType, seen map[*abi.ResolvedType]bool) (interface{}, error) {
	switch {
	case t.IsArray:
		return []interface{}{}, nil
	case t.IsOptional:
		return nil, nil
	}

	if codec, ok := c.codec(t); ok {
		return codec.Default(), nil
	}

	if seen[t] {
		return nil, errors.Wrapf(ErrCircularTypeReference, "%v", t.TypeName())
	}
	seen[t] = true
	defer delete(seen, t)

	switch t.Kind {
	case abi.KindAlias:
		return c.defaultValue(t.Ref, seen)

	case abi.KindStruct:
		fields, ok := t.AllFields()
		if !ok {
			return nil, errors.Wrapf(abi.ErrInvalidBase, "struct %v", t.Name)
		}
		obj := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			v, err := c.defaultValue(f.Type, seen)
			if err != nil {
				return nil, errors.Wrapf(err, "%v.%v", t.Name, f.Name)
			}
			obj[f.Name] = v
		}
		return c.native(t, obj)

	case abi.KindVariant:
		if len(t.Variant) == 0 {
			return nil, errors.Wrapf(ErrUnknownVariantMember, "%v has no members", t.Name)
		}
		first := t.Variant[0]
		v, err := c.defaultValue(first, seen)
		if err != nil {
			return nil, err
		}
		return Variant{Type: first.TypeName(), Value: v}, nil
	}

	if t.Name == anyType {
		return nil, nil
	}
	return nil, errors.Wrapf(ErrUnknownType, "%v", t.Name)
}
