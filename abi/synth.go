package abi

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/encode"
)

// Named is implemented by Go types that describe an ABI struct, variant or alias.
// The method is called on the zero value, so it must not depend on the receiver's contents.
type Named interface {
	ABIName() string
}

// Varianted is implemented by Go types describing variants, along with Named.
// ABIVariant returns one value of each member type, in tag order. The type must hold the current member
// in an interface field called Value.
type Varianted interface {
	ABIVariant() []interface{}
}

var (
	namedType     = reflect.TypeOf((*Named)(nil)).Elem()
	variantedType = reflect.TypeOf((*Varianted)(nil)).Elem()
)

// VariantValueField is the name of the field that holds a Go variant's current member.
const VariantValueField = "Value"

// GoField describes how one Go struct field maps to an ABI field.
type GoField struct {
	// Index is the field's index for reflect.Value.FieldByIndex.
	Index []int

	// Name is the ABI field name; the abi tag's name, or the Go name in snake case.
	Name string

	Optional  bool
	Extension bool

	// TypeOverride is the tag's type= option, if any.
	TypeOverride string
}

// GoStruct describes how a Go struct maps to an ABI struct.
type GoStruct struct {
	Name string

	// Base is the embedded struct, if any.
	Base *reflect.StructField

	Fields []GoField
}

// DescribeStruct reads the field layout of a Go struct type.
//
// Fields are tagged like:
//
//	Amount uint64 `abi:"quantity,optional,extension,type=asset"`
//
// A tag of "-" skips the field. Unexported fields are skipped. An embedded struct is the base.
func DescribeStruct(t reflect.Type) (*GoStruct, error) {
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrUnsupportedType, "%v is not a struct", t)
	}

	s := &GoStruct{Name: NameOf(t)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup("abi")
		if tag == "-" {
			continue
		}

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && !hasTag {
			if s.Base != nil {
				return nil, errors.Wrapf(ErrMultipleBases, "%v embeds %v and %v", t, s.Base.Type, sf.Type)
			}
			base := sf
			s.Base = &base
			continue
		}

		if sf.PkgPath != "" {
			continue
		}

		f := GoField{
			Index: sf.Index,
			Name:  snakeCase(sf.Name),
		}

		opts := strings.Split(tag, ",")
		if hasTag && opts[0] != "" {
			f.Name = opts[0]
		}
		for _, opt := range opts[1:] {
			switch {
			case opt == "optional":
				f.Optional = true
			case opt == "extension":
				f.Extension = true
			case strings.HasPrefix(opt, "type="):
				f.TypeOverride = strings.TrimPrefix(opt, "type=")
			}
		}

		s.Fields = append(s.Fields, f)
	}

	return s, nil
}

// NameOf returns the ABI name a Go type declares through Named, or "".
func NameOf(t reflect.Type) string {
	switch {
	case t.Implements(namedType):
		return reflect.Zero(t).Interface().(Named).ABIName()
	case reflect.PtrTo(t).Implements(namedType):
		return reflect.New(t).Interface().(Named).ABIName()
	}
	return ""
}

// VariantMembers returns the member types of a Go variant type, or nil if it isn't one.
func VariantMembers(t reflect.Type) []reflect.Type {
	var members []interface{}
	switch {
	case t.Implements(variantedType):
		members = reflect.Zero(t).Interface().(Varianted).ABIVariant()
	case reflect.PtrTo(t).Implements(variantedType):
		members = reflect.New(t).Interface().(Varianted).ABIVariant()
	default:
		return nil
	}

	types := make([]reflect.Type, len(members))
	for i, m := range members {
		types[i] = reflect.TypeOf(m)
	}
	return types
}

func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Start a new word unless this continues an acronym, e.g. the D in "ID".
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Synthesize derives an ABI from a Go type, returning it along with the type name of root.
// Codec types from the default registry are leaves.
func Synthesize(root reflect.Type) (*Def, string, error) {
	s := NewSynthesizer(nil)
	name, err := s.Add(root)
	if err != nil {
		return nil, "", err
	}
	return s.Def(), name, nil
}

// NewSynthesizer returns a Synthesizer using registry to recognise leaf types.
// A nil registry means the builtins.
func NewSynthesizer(registry *encode.Registry) *Synthesizer {
	if registry == nil {
		registry = encode.NewRegistry()
	}
	return &Synthesizer{
		registry: registry,
		def:      &Def{Version: DefaultVersion},
		names:    make(map[reflect.Type]string),
	}
}

// Synthesizer accumulates ABI definitions for Go types.
// Each Go type is visited once; shared and recursive types are emitted a single time.
type Synthesizer struct {
	registry *encode.Registry
	def      *Def
	names    map[reflect.Type]string
}

// Def returns the ABI built so far.
func (s *Synthesizer) Def() *Def { return s.def }

// Add adds t, and everything it references, to the ABI. It returns the type name to use for t.
func (s *Synthesizer) Add(t reflect.Type) (string, error) {
	if name, ok := s.names[t]; ok {
		return name, nil
	}

	if name, ok := s.registry.NameOf(t); ok {
		return name, nil
	}

	if t.Kind() == reflect.Ptr {
		elem, err := s.Add(t.Elem())
		if err != nil {
			return "", err
		}
		return withSuffix(elem, "?"), nil
	}

	if name := NameOf(t); name != "" || t.Kind() == reflect.Struct {
		return s.addNamed(t, name)
	}

	switch t.Kind() {
	case reflect.Slice:
		elem, err := s.Add(t.Elem())
		if err != nil {
			return "", err
		}
		return elem + "[]", nil

	default:
		if basic, ok := basicTypes[t.Kind()]; ok && basic != t {
			if name, ok := s.registry.NameOf(basic); ok {
				return name, nil
			}
		}
	}

	return "", errors.Wrapf(ErrUnsupportedType, "%v", t)
}

func (s *Synthesizer) addNamed(t reflect.Type, name string) (string, error) {
	if name == "" {
		return "", errors.Wrapf(ErrMissingName, "%v", t)
	}

	// Claimed before recursing so recursive types find it.
	s.names[t] = name

	if members := VariantMembers(t); members != nil {
		v := VariantDef{Name: name, Types: make([]string, len(members))}
		for i, m := range members {
			if m == nil {
				return "", errors.Wrapf(ErrUnsupportedType, "variant %v member %v is nil", name, i)
			}
			mname, err := s.Add(m)
			if err != nil {
				return "", errors.Wrapf(err, "variant %v", name)
			}
			v.Types[i] = mname
		}
		s.def.Variants = append(s.def.Variants, v)
		return name, nil
	}

	if t.Kind() != reflect.Struct {
		target, err := s.aliasTarget(t)
		if err != nil {
			return "", errors.Wrapf(err, "alias %v", name)
		}
		s.def.Types = append(s.def.Types, TypeDef{NewTypeName: name, Type: target})
		return name, nil
	}

	desc, err := DescribeStruct(t)
	if err != nil {
		return "", err
	}

	// Reserve the struct's slot now so it comes before the types it references.
	idx := len(s.def.Structs)
	s.def.Structs = append(s.def.Structs, StructDef{Name: name})
	sd := StructDef{Name: name, Fields: []FieldDef{}}

	if desc.Base != nil {
		base, err := s.Add(desc.Base.Type)
		if err != nil {
			return "", errors.Wrapf(err, "base of %v", name)
		}
		sd.Base = base
	}

	for _, f := range desc.Fields {
		typeName := f.TypeOverride
		if typeName == "" {
			typeName, err = s.Add(t.FieldByIndex(f.Index).Type)
			if err != nil {
				return "", errors.Wrapf(err, "field %v of %v", f.Name, name)
			}
		}
		if f.Optional {
			typeName = withSuffix(typeName, "?")
		}
		if f.Extension {
			typeName = withSuffix(typeName, "$")
		}
		sd.Fields = append(sd.Fields, FieldDef{Name: f.Name, Type: typeName})
	}

	if len(sd.Fields) == 0 && sd.Base == "" {
		return "", errors.Wrapf(ErrNoFields, "%v (%v)", name, t)
	}

	s.def.Structs[idx] = sd
	return name, nil
}

// aliasTarget returns the type name of the Go type underlying a named non-struct type.
func (s *Synthesizer) aliasTarget(t reflect.Type) (string, error) {
	switch t.Kind() {
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return "bytes", nil
		}
		elem, err := s.Add(t.Elem())
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	case reflect.Ptr:
		elem, err := s.Add(t.Elem())
		if err != nil {
			return "", err
		}
		return withSuffix(elem, "?"), nil
	}

	basic, ok := basicTypes[t.Kind()]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedType, "%v", t)
	}
	name, ok := s.registry.NameOf(basic)
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedType, "%v", t)
	}
	return name, nil
}

// withSuffix adds suffix unless the type name already ends with it.
func withSuffix(typeName, suffix string) string {
	if strings.HasSuffix(typeName, suffix) {
		return typeName
	}
	return typeName + suffix
}

var basicTypes = map[reflect.Kind]reflect.Type{
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
