package abi

import (
	"strings"

	"go.uber.org/zap"
)

// Kind is what a resolved type turned out to be.
type Kind int

// Kinds of resolved type.
const (
	// KindLeaf is a builtin, a custom codec type, or something unknown. The serializer decides which.
	KindLeaf Kind = iota
	KindAlias
	KindStruct
	KindVariant
)

func (k Kind) String() string {
	switch k {
	case KindAlias:
		return "alias"
	case KindStruct:
		return "struct"
	case KindVariant:
		return "variant"
	}
	return "leaf"
}

// ResolvedField is a struct field with its type resolved.
type ResolvedField struct {
	Name string
	Type *ResolvedType
}

// ResolvedType is a type name resolved against an ABI.
//
// Nodes are shared; every reference to the same type name within one Resolver is the same *ResolvedType,
// which is how recursive structs end up as cycles in the graph rather than infinite trees.
type ResolvedType struct {
	// Name is the type name without suffixes.
	Name string

	// ID is the node's index in its Resolver's arena.
	ID int

	IsArray     bool
	IsOptional  bool
	IsExtension bool

	Kind Kind

	// Ref is the target of an alias.
	Ref *ResolvedType

	// Base and Fields are set for structs. Fields doesn't include the base's fields; see AllFields.
	Base   *ResolvedType
	Fields []ResolvedField

	// Variant lists a variant's members. A member's index is its tag.
	Variant []*ResolvedType
}

// newResolvedType parses the suffixes off typeName.
// They're checked in a fixed order: extension, then optional, then array.
func newResolvedType(typeName string, id int) *ResolvedType {
	t := &ResolvedType{ID: id}
	name := typeName
	if strings.HasSuffix(name, "$") {
		name = name[:len(name)-1]
		t.IsExtension = true
	}
	if strings.HasSuffix(name, "?") {
		name = name[:len(name)-1]
		t.IsOptional = true
	}
	if strings.HasSuffix(name, "[]") {
		name = name[:len(name)-2]
		t.IsArray = true
	}
	t.Name = name
	return t
}

// TypeName returns the name with suffixes reapplied.
func (t *ResolvedType) TypeName() string {
	name := t.Name
	if t.IsArray {
		name += "[]"
	}
	if t.IsOptional {
		name += "?"
	}
	if t.IsExtension {
		name += "$"
	}
	return name
}

// String implements fmt.Stringer.
func (t *ResolvedType) String() string { return t.TypeName() }

// AllFields returns the struct's fields with its bases' fields first.
// ok is false if t isn't a struct, a base isn't a plain struct, or the bases form a cycle.
// Aliases of structs are accepted as bases.
func (t *ResolvedType) AllFields() (fields []ResolvedField, ok bool) {
	var chain []*ResolvedType
	seen := make(map[*ResolvedType]bool)

	for cur := t; cur != nil; cur = cur.Base {
		for cur != nil && cur.Kind == KindAlias && cur != t {
			if seen[cur] {
				return nil, false
			}
			seen[cur] = true
			cur = cur.Ref
		}
		if cur == nil || cur.Kind != KindStruct || seen[cur] {
			return nil, false
		}
		if cur != t && (cur.IsArray || cur.IsOptional || cur.IsExtension) {
			return nil, false
		}
		seen[cur] = true
		chain = append(chain, cur)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		fields = append(fields, chain[i].Fields...)
	}
	return fields, true
}

// Resolver resolves type names against one ABI.
// Results are memoized by full type name for the life of the Resolver; it isn't safe for concurrent use.
type Resolver struct {
	def    *Def
	types  map[string]*ResolvedType
	arena  []*ResolvedType
	logger *zap.Logger
}

// NewResolver returns a Resolver for def. logger may be nil.
func NewResolver(def *Def, logger *zap.Logger) *Resolver {
	if def == nil {
		def = new(Def)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		def:    def,
		types:  make(map[string]*ResolvedType),
		logger: logger,
	}
}

// Resolve is a convenience for resolving a single type name with a new Resolver.
func Resolve(typeName string, def *Def) *ResolvedType {
	return NewResolver(def, nil).Resolve(typeName)
}

// Def returns the ABI the resolver resolves against.
func (r *Resolver) Def() *Def { return r.def }

// Types returns every node resolved so far, indexed by ID.
func (r *Resolver) Types() []*ResolvedType { return r.arena }

// Resolve resolves typeName. It never fails; names that aren't declared in the ABI become leaves,
// and it's up to the serializer to know them or not.
func (r *Resolver) Resolve(typeName string) *ResolvedType {
	if t, ok := r.types[typeName]; ok {
		return t
	}

	t := newResolvedType(typeName, len(r.arena))
	r.arena = append(r.arena, t)

	// Registered before recursing so self references find it.
	r.types[typeName] = t

	if alias, ok := r.def.Alias(t.Name); ok {
		t.Kind = KindAlias
		t.Ref = r.Resolve(alias.Type)
		return t
	}

	if s, ok := r.def.Struct(t.Name); ok {
		t.Kind = KindStruct
		if s.Base != "" {
			t.Base = r.Resolve(s.Base)
		}
		t.Fields = make([]ResolvedField, len(s.Fields))
		for i, f := range s.Fields {
			t.Fields[i] = ResolvedField{
				Name: f.Name,
				Type: r.Resolve(f.Type),
			}
		}
		return t
	}

	if v, ok := r.def.Variant(t.Name); ok {
		t.Kind = KindVariant
		t.Variant = make([]*ResolvedType, len(v.Types))
		for i, member := range v.Types {
			t.Variant[i] = r.Resolve(member)
		}
		return t
	}

	r.logger.Debug("deferring leaf type", zap.String("type", typeName))
	return t
}
