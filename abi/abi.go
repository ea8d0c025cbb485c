// Package abi holds the ABI definition model, the resolver that turns type names into type graphs,
// and the synthesizer that derives ABIs from Go types.
//
// An ABI is a contract's schema: its structs, variants and type aliases, and which of them are actions and tables.
// Type names reference other types by name, with optional suffixes:
//
//	foo[]  an array of foo
//	foo?   an optional foo; one presence byte on the wire
//	foo$   a binary extension; may be missing from the end of older data
//
// Suffixes are stripped in the order $, ?, [], so "foo[]?$" is an extension holding an optional array of foo.
package abi

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateName is returned by Validate when two structs, variants or aliases share a name.
	ErrDuplicateName = errors.New("duplicate type name")

	// ErrInvalidBase is returned by Validate when a struct's base is not a struct.
	ErrInvalidBase = errors.New("struct base is not a struct")

	// ErrMissingName is returned by the synthesizer when a type has no ABI name.
	ErrMissingName = errors.New("type has no ABI name")

	// ErrNoFields is returned by the synthesizer when a struct has no fields and no base.
	ErrNoFields = errors.New("struct has no fields")

	// ErrMultipleBases is returned by the synthesizer when a struct embeds more than one struct.
	ErrMultipleBases = errors.New("struct has more than one base")

	// ErrUnsupportedType is returned by the synthesizer for Go types with no ABI equivalent.
	ErrUnsupportedType = errors.New("unsupported type")
)

// DefaultVersion is the version synthesized ABIs declare.
const DefaultVersion = "eosio::abi/1.1"

// Def is an ABI definition, in the same shape as the chain's ABI JSON.
type Def struct {
	Version          string            `json:"version" yaml:"version"`
	Types            []TypeDef         `json:"types" yaml:"types"`
	Structs          []StructDef       `json:"structs" yaml:"structs"`
	Actions          []ActionDef       `json:"actions" yaml:"actions"`
	Tables           []TableDef        `json:"tables" yaml:"tables"`
	RicardianClauses []ClausePair      `json:"ricardian_clauses" yaml:"ricardian_clauses"`
	ErrorMessages    []ErrorMessage    `json:"error_messages" yaml:"error_messages"`
	ABIExtensions    []ExtensionsEntry `json:"abi_extensions" yaml:"abi_extensions"`
	Variants         []VariantDef      `json:"variants" yaml:"variants"`
	ActionResults    []ActionResultDef `json:"action_results" yaml:"action_results"`
}

// TypeDef declares NewTypeName as an alias of Type.
type TypeDef struct {
	NewTypeName string `json:"new_type_name" yaml:"new_type_name"`
	Type        string `json:"type" yaml:"type"`
}

// FieldDef is one field of a struct.
type FieldDef struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// StructDef declares a struct. Base, if set, names the struct whose fields come first.
type StructDef struct {
	Name   string     `json:"name" yaml:"name"`
	Base   string     `json:"base" yaml:"base"`
	Fields []FieldDef `json:"fields" yaml:"fields"`
}

// VariantDef declares a tagged union. The position of a type in Types is its tag.
type VariantDef struct {
	Name  string   `json:"name" yaml:"name"`
	Types []string `json:"types" yaml:"types"`
}

// ActionDef associates an action name with the struct holding its data.
type ActionDef struct {
	Name              string `json:"name" yaml:"name"`
	Type              string `json:"type" yaml:"type"`
	RicardianContract string `json:"ricardian_contract" yaml:"ricardian_contract"`
}

// TableDef associates a table name with the struct of its rows.
type TableDef struct {
	Name      string   `json:"name" yaml:"name"`
	IndexType string   `json:"index_type" yaml:"index_type"`
	KeyNames  []string `json:"key_names" yaml:"key_names"`
	KeyTypes  []string `json:"key_types" yaml:"key_types"`
	Type      string   `json:"type" yaml:"type"`
}

// ClausePair is a ricardian clause.
type ClausePair struct {
	ID   string `json:"id" yaml:"id"`
	Body string `json:"body" yaml:"body"`
}

// ErrorMessage maps a contract error code to a message.
type ErrorMessage struct {
	ErrorCode Uint64 `json:"error_code" yaml:"error_code"`
	ErrorMsg  string `json:"error_msg" yaml:"error_msg"`
}

// ExtensionsEntry is an opaque ABI extension. Value is hex.
type ExtensionsEntry struct {
	Tag   uint16 `json:"tag" yaml:"tag"`
	Value string `json:"value" yaml:"value"`
}

// ActionResultDef declares the type an action returns.
type ActionResultDef struct {
	Name       string `json:"name" yaml:"name"`
	ResultType string `json:"result_type" yaml:"result_type"`
}

// Uint64 is a uint64 that unmarshals from either a JSON number or a decimal string,
// since 64 bit values are written as strings wherever precision matters.
type Uint64 uint64

// UnmarshalJSON implements json.Unmarshaler.
func (u *Uint64) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "parsing %s as uint64", data)
	}
	*u = Uint64(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(u), 10)), nil
}

// MarshalJSON implements json.Marshaler. Missing lists are written as empty rather than null.
func (d Def) MarshalJSON() ([]byte, error) {
	type plain Def
	return json.Marshal(plain(d.Normalized()))
}

// Normalized returns a copy of d with every nil list replaced by an empty one.
func (d Def) Normalized() Def {
	if d.Types == nil {
		d.Types = []TypeDef{}
	}
	structs := make([]StructDef, len(d.Structs))
	for i, st := range d.Structs {
		if st.Fields == nil {
			st.Fields = []FieldDef{}
		}
		structs[i] = st
	}
	d.Structs = structs

	if d.Actions == nil {
		d.Actions = []ActionDef{}
	}
	tables := make([]TableDef, len(d.Tables))
	for i, t := range d.Tables {
		if t.KeyNames == nil {
			t.KeyNames = []string{}
		}
		if t.KeyTypes == nil {
			t.KeyTypes = []string{}
		}
		tables[i] = t
	}
	d.Tables = tables

	if d.RicardianClauses == nil {
		d.RicardianClauses = []ClausePair{}
	}
	if d.ErrorMessages == nil {
		d.ErrorMessages = []ErrorMessage{}
	}
	if d.ABIExtensions == nil {
		d.ABIExtensions = []ExtensionsEntry{}
	}
	variants := make([]VariantDef, len(d.Variants))
	for i, v := range d.Variants {
		if v.Types == nil {
			v.Types = []string{}
		}
		variants[i] = v
	}
	d.Variants = variants

	if d.ActionResults == nil {
		d.ActionResults = []ActionResultDef{}
	}
	return d
}

// FromJSON parses an ABI from its JSON form.
func FromJSON(data []byte) (*Def, error) {
	def := new(Def)
	if err := json.Unmarshal(data, def); err != nil {
		return nil, errors.Wrap(err, "parsing abi json")
	}
	return def, nil
}

// Struct returns the struct called name.
func (d *Def) Struct(name string) (*StructDef, bool) {
	for i := range d.Structs {
		if d.Structs[i].Name == name {
			return &d.Structs[i], true
		}
	}
	return nil, false
}

// Variant returns the variant called name.
func (d *Def) Variant(name string) (*VariantDef, bool) {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

// Alias returns the alias called name.
func (d *Def) Alias(name string) (*TypeDef, bool) {
	for i := range d.Types {
		if d.Types[i].NewTypeName == name {
			return &d.Types[i], true
		}
	}
	return nil, false
}

// ActionType returns the type of the action's data.
func (d *Def) ActionType(action string) (string, bool) {
	for _, a := range d.Actions {
		if a.Name == action {
			return a.Type, true
		}
	}
	return "", false
}

// TableType returns the type of the table's rows.
func (d *Def) TableType(table string) (string, bool) {
	for _, t := range d.Tables {
		if t.Name == table {
			return t.Type, true
		}
	}
	return "", false
}

// Validate checks that type names are unique and that every struct base is a struct.
// It does not check that referenced types exist; unknown types only fail when they are used.
func (d *Def) Validate() error {
	seen := make(map[string]string)
	claim := func(name, kind string) error {
		if prev, ok := seen[name]; ok {
			return errors.Wrapf(ErrDuplicateName, "%v %q is also declared as a %v", kind, name, prev)
		}
		seen[name] = kind
		return nil
	}

	for _, t := range d.Types {
		if err := claim(t.NewTypeName, "type"); err != nil {
			return err
		}
	}
	for _, s := range d.Structs {
		if err := claim(s.Name, "struct"); err != nil {
			return err
		}
	}
	for _, v := range d.Variants {
		if err := claim(v.Name, "variant"); err != nil {
			return err
		}
	}

	for _, s := range d.Structs {
		if s.Base == "" {
			continue
		}
		if _, ok := d.Struct(s.Base); !ok {
			return errors.Wrapf(ErrInvalidBase, "base %q of struct %q", s.Base, s.Name)
		}
	}

	return nil
}

// String returns a short summary of the ABI.
func (d *Def) String() string {
	return fmt.Sprintf("%v (%v types, %v structs, %v variants, %v actions, %v tables)",
		d.Version, len(d.Types), len(d.Structs), len(d.Variants), len(d.Actions), len(d.Tables))
}
