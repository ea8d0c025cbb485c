package serializer

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/integer"
)

// anyType is the dynamic type. Object mode passes its values through untouched; it has no binary form.
const anyType = "any"

// Variant is a decoded variant value. Type is the name of the member Value holds.
type Variant struct {
	Type  string
	Value interface{}
}

func (v Variant) String() string { return fmt.Sprintf("%v(%v)", v.Type, v.Value) }

// Raw wraps a plain value for Encode; it's converted with FromObject before encoding.
type Raw struct {
	V interface{}
}

// Resolved wraps an already typed value for Encode, e.g. one returned by Decode or FromObject.
// It's encoded as is.
type Resolved struct {
	V interface{}
}

// variantMember works out which member of variant t the value v is.
// v may be a Variant, a [name, value] pair, a Go type implementing abi.Varianted, or a value whose type name
// matches a member. Members are scanned in declared order.
func (c *Context) variantMember(t *abi.ResolvedType, v interface{}) (int, interface{}, error) {
	name, value, ok := c.variantName(v)
	if !ok {
		return 0, nil, errors.Wrapf(ErrUnknownVariantMember, "cannot tell which member of %v a %T is", t.Name, v)
	}

	for i, m := range t.Variant {
		if m.TypeName() == name {
			return i, value, nil
		}
	}
	for i, m := range t.Variant {
		if m.Name == name {
			return i, value, nil
		}
	}
	return 0, nil, errors.Wrapf(ErrUnknownVariantMember, "%q is not a member of %v", name, t.Name)
}

func (c *Context) variantName(v interface{}) (string, interface{}, bool) {
	switch tv := v.(type) {
	case Variant:
		return tv.Type, tv.Value, true
	case *Variant:
		if tv != nil {
			return tv.Type, tv.Value, true
		}
		return "", nil, false
	case []interface{}:
		if len(tv) == 2 {
			if name, ok := tv[0].(string); ok {
				return name, tv[1], true
			}
		}
	}

	if v == nil {
		return "", nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if abi.VariantMembers(rv.Type()) != nil && rv.Kind() == reflect.Struct {
		inner := rv.FieldByName(abi.VariantValueField)
		if !inner.IsValid() || (inner.Kind() == reflect.Interface && inner.IsNil()) {
			return "", nil, false
		}
		return c.variantName(inner.Interface())
	}

	name := c.typeNameOf(v)
	return name, v, name != ""
}

// typeNameOf returns the ABI name of a value's own type, or "".
func (c *Context) typeNameOf(v interface{}) string {
	switch tv := v.(type) {
	case integer.Int:
		if tv.Type() != nil {
			return tv.Type().Name()
		}
		return ""
	case abi.Named:
		return tv.ABIName()
	case string:
		return "string"
	case bool:
		return "bool"
	}

	if name, ok := c.Registry.NameOf(reflect.TypeOf(v)); ok {
		return name
	}
	return ""
}
