package serializer

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encio"
)

// decodeBinary reads one value of type t, suffixes included.
func (c *Context) decodeBinary(t *abi.ResolvedType, r *encio.Reader) (interface{}, error) {
	if t.IsExtension && !r.CanRead() {
		c.Logger.Debug("binary extension absent", zap.String("type", t.TypeName()), zap.String("path", c.Path()))
		if c.StrictExtensions {
			return c.defaultValue(t, make(map[*abi.ResolvedType]bool))
		}
		return nil, nil
	}

	if t.IsOptional {
		present, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if present == 0 {
			return nil, nil
		}
	}

	if t.IsArray {
		return c.decodeArray(t, r)
	}

	return c.decodeElement(t, r)
}

// zeroWidthSlack is how many more elements than remaining bytes an array of zero-width elements may claim.
const zeroWidthSlack = 1024

func (c *Context) decodeArray(t *abi.ResolvedType, r *encio.Reader) (interface{}, error) {
	n, err := r.ReadVaruint32()
	if err != nil {
		return nil, err
	}

	size := int(n)
	if size > r.Remaining() {
		size = r.Remaining()
	}

	items := make([]interface{}, 0, size)
	for i := 0; i < int(n); i++ {
		if err := c.enterIndex(i, t); err != nil {
			return nil, err
		}
		start := r.Position()
		v, err := c.decodeElement(t, r)
		if err != nil {
			return nil, err
		}

		// Elements that take no bytes can't be bounded by the buffer, so a count much larger than
		// what's left is refused rather than iterated.
		if r.Position() == start && int(n) > r.Remaining()+zeroWidthSlack {
			return nil, encio.NewIOError(encio.ErrMalformed, start, fmt.Sprintf("%v zero-width elements from %v remaining bytes", n, r.Remaining()))
		}
		c.leave(true)
		items = append(items, v)
	}
	return items, nil
}

// decodeElement reads a value of t, ignoring t's suffixes.
func (c *Context) decodeElement(t *abi.ResolvedType, r *encio.Reader) (interface{}, error) {
	if codec, ok := c.codec(t); ok {
		return codec.DecodeBinary(r)
	}

	switch t.Kind {
	case abi.KindAlias:
		if err := c.enter(nil); err != nil {
			return nil, err
		}
		v, err := c.decodeBinary(t.Ref, r)
		if err != nil {
			return nil, err
		}
		c.leave(false)
		return v, nil

	case abi.KindStruct:
		return c.decodeStruct(t, r)

	case abi.KindVariant:
		return c.decodeVariant(t, r)
	}

	if t.Name == anyType {
		return nil, errors.Wrap(ErrUnknownType, "any has no binary form")
	}
	return nil, errors.Wrapf(ErrUnknownType, "%v", t.Name)
}

func (c *Context) decodeStruct(t *abi.ResolvedType, r *encio.Reader) (interface{}, error) {
	fields, ok := t.AllFields()
	if !ok {
		return nil, errors.Wrapf(abi.ErrInvalidBase, "struct %v", t.Name)
	}

	obj := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if err := c.enterField(f.Name, f.Type); err != nil {
			return nil, err
		}
		v, err := c.decodeBinary(f.Type, r)
		if err != nil {
			return nil, err
		}
		c.leave(true)
		obj[f.Name] = v
	}

	return c.native(t, obj)
}

// native converts a struct's map to its registered Go type, if it has one.
func (c *Context) native(t *abi.ResolvedType, obj map[string]interface{}) (interface{}, error) {
	goType, ok := c.NativeTypes[t.Name]
	if !ok {
		return obj, nil
	}

	v := reflect.New(goType).Elem()
	if err := c.assign(v, obj); err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (c *Context) decodeVariant(t *abi.ResolvedType, r *encio.Reader) (interface{}, error) {
	pos := r.Position()
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if int(tag) >= len(t.Variant) {
		return nil, errors.Wrapf(ErrUnknownVariantMember, "tag %v at position %v; %v has %v members", tag, pos, t.Name, len(t.Variant))
	}

	member := t.Variant[tag]
	if err := c.enterField(fmt.Sprintf("v%d", tag), member); err != nil {
		return nil, err
	}
	v, err := c.decodeBinary(member, r)
	if err != nil {
		return nil, err
	}
	c.leave(true)

	return Variant{Type: member.TypeName(), Value: v}, nil
}

// decodeRoot decodes a whole buffer as t. Bytes left over are logged and ignored.
func (c *Context) decodeRoot(t *abi.ResolvedType, data []byte) (interface{}, error) {
	r := encio.NewReader(data)
	r.AllowInvalidUTF8 = c.AllowInvalidUTF8
	r.Logger = c.Logger

	if err := c.enterField("root", t); err != nil {
		return nil, err
	}
	v, err := c.decodeBinary(t, r)
	if err != nil {
		return nil, err
	}
	c.leave(true)

	if r.CanRead() {
		c.Logger.Debug("ignoring trailing bytes",
			zap.String("type", t.TypeName()),
			zap.Int("remaining", r.Remaining()),
			zap.Int("size", len(data)),
		)
	}
	return v, nil
}
