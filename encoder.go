package serializer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encio"
)

// encodeBinary writes v as type t, suffixes included.
func (c *Context) encodeBinary(t *abi.ResolvedType, v interface{}, w *encio.Writer) error {
	if t.IsExtension && isNil(v) {
		return nil
	}

	if t.IsOptional {
		if isNil(v) {
			return w.WriteByte(0)
		}
		if err := w.WriteByte(1); err != nil {
			return err
		}
	}
	v = deref(v)

	if t.IsArray {
		return c.encodeArray(t, v, w)
	}

	return c.encodeElement(t, v, w)
}

func (c *Context) encodeArray(t *abi.ResolvedType, v interface{}, w *encio.Writer) error {
	items, ok := asSlice(v)
	if !ok {
		return errors.Wrapf(ErrInvalidStructShape, "%v needs a list, got %T", t.TypeName(), v)
	}

	w.WriteVaruint32(uint32(len(items)))
	for i, item := range items {
		if err := c.enterIndex(i, t); err != nil {
			return err
		}
		if err := c.encodeElement(t, deref(item), w); err != nil {
			return err
		}
		c.leave(true)
	}
	return nil
}

// encodeElement writes a value of t, ignoring t's suffixes.
func (c *Context) encodeElement(t *abi.ResolvedType, v interface{}, w *encio.Writer) error {
	if codec, ok := c.codec(t); ok {
		return codec.EncodeBinary(c.normalizeLeaf(v), w)
	}

	switch t.Kind {
	case abi.KindAlias:
		if err := c.enter(nil); err != nil {
			return err
		}
		if err := c.encodeBinary(t.Ref, v, w); err != nil {
			return err
		}
		c.leave(false)
		return nil

	case abi.KindStruct:
		return c.encodeStruct(t, v, w)

	case abi.KindVariant:
		return c.encodeVariant(t, v, w)
	}

	if t.Name == anyType {
		return errors.Wrap(ErrUnknownType, "any has no binary form")
	}
	return errors.Wrapf(ErrUnknownType, "%v", t.Name)
}

func (c *Context) encodeStruct(t *abi.ResolvedType, v interface{}, w *encio.Writer) error {
	fields, ok := t.AllFields()
	if !ok {
		return errors.Wrapf(abi.ErrInvalidBase, "struct %v", t.Name)
	}

	obj, err := structObject(t, v)
	if err != nil {
		return err
	}

	// Extensions are only recognised by running out of bytes, so once one is absent all that follow must be too.
	absent := ""
	for _, f := range fields {
		fv, ok := obj[f.Name]
		if !ok && !f.Type.IsOptional && !f.Type.IsExtension {
			return errors.Wrapf(ErrMissingValue, "%v.%v", t.Name, f.Name)
		}
		switch {
		case f.Type.IsExtension && isNil(fv):
			if absent == "" {
				absent = f.Name
			}
		case absent != "":
			return errors.Wrapf(ErrMissingValue, "%v.%v is needed before %v.%v", t.Name, absent, t.Name, f.Name)
		}
	}

	for _, f := range fields {
		fv := obj[f.Name]

		if err := c.enterField(f.Name, f.Type); err != nil {
			return err
		}
		if err := c.encodeBinary(f.Type, fv, w); err != nil {
			return err
		}
		c.leave(true)
	}
	return nil
}

func (c *Context) encodeVariant(t *abi.ResolvedType, v interface{}, w *encio.Writer) error {
	idx, value, err := c.variantMember(t, v)
	if err != nil {
		return err
	}

	w.WriteVaruint32(uint32(idx))

	member := t.Variant[idx]
	if err := c.enterField(fmt.Sprintf("v%d", idx), member); err != nil {
		return err
	}
	if err := c.encodeBinary(member, value, w); err != nil {
		return err
	}
	c.leave(true)
	return nil
}

// encodeRoot encodes v as t into a new buffer.
func (c *Context) encodeRoot(t *abi.ResolvedType, v interface{}) ([]byte, error) {
	w := encio.NewWriter(64)
	if err := c.enterField("root", t); err != nil {
		return nil, err
	}
	if err := c.encodeBinary(t, v, w); err != nil {
		return nil, err
	}
	c.leave(true)
	return w.Bytes(), nil
}
