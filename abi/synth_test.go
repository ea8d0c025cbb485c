package abi_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encode"
)

type permissionLevel struct {
	Actor      encode.Name
	Permission encode.Name
}

func (permissionLevel) ABIName() string { return "permission_level" }

type action struct {
	Account       encode.Name
	Name          encode.Name
	Authorization []permissionLevel
	Data          []byte
}

func (action) ABIName() string { return "action" }

type header struct {
	Expiration   encode.TimePointSec
	RefBlockNum  uint16 `abi:"ref_block_num"`
	DelaySec     uint32 `abi:"delay_sec,type=varuint32"`
	internalNote string
}

func (header) ABIName() string { return "transaction_header" }

type transaction struct {
	header
	Actions    []action
	Extensions *memo   `abi:"transaction_extensions"`
	Signatures []string `abi:",extension"`
	Skipped    int      `abi:"-"`
}

func (transaction) ABIName() string { return "transaction" }

type memo string

func (memo) ABIName() string { return "memo" }

type tree struct {
	Value    uint8
	Children []tree
	Next     *tree
}

func (*tree) ABIName() string { return "tree" }

type choice struct {
	Value interface{}
}

func (choice) ABIName() string { return "choice" }

func (choice) ABIVariant() []interface{} {
	return []interface{}{uint8(0), "", permissionLevel{}}
}

type holder struct {
	Pick  choice
	Picks []choice
}

func (holder) ABIName() string { return "holder" }

func TestSynthesize(t *testing.T) {
	def, name, err := abi.Synthesize(reflect.TypeOf(transaction{}))
	require.NoError(t, err)
	assert.Equal(t, "transaction", name)

	want := &abi.Def{
		Version: abi.DefaultVersion,
		Types: []abi.TypeDef{
			{NewTypeName: "memo", Type: "string"},
		},
		Structs: []abi.StructDef{
			{Name: "transaction", Base: "transaction_header", Fields: []abi.FieldDef{
				{Name: "actions", Type: "action[]"},
				{Name: "transaction_extensions", Type: "memo?"},
				{Name: "signatures", Type: "string[]$"},
			}},
			{Name: "transaction_header", Fields: []abi.FieldDef{
				{Name: "expiration", Type: "time_point_sec"},
				{Name: "ref_block_num", Type: "uint16"},
				{Name: "delay_sec", Type: "varuint32"},
			}},
			{Name: "action", Fields: []abi.FieldDef{
				{Name: "account", Type: "name"},
				{Name: "name", Type: "name"},
				{Name: "authorization", Type: "permission_level[]"},
				{Name: "data", Type: "bytes"},
			}},
			{Name: "permission_level", Fields: []abi.FieldDef{
				{Name: "actor", Type: "name"},
				{Name: "permission", Type: "name"},
			}},
		},
	}

	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("synthesized abi mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, def.Validate())
}

func TestSynthesizeRecursive(t *testing.T) {
	def, name, err := abi.Synthesize(reflect.TypeOf(tree{}))
	require.NoError(t, err)
	assert.Equal(t, "tree", name)

	want := []abi.StructDef{
		{Name: "tree", Fields: []abi.FieldDef{
			{Name: "value", Type: "uint8"},
			{Name: "children", Type: "tree[]"},
			{Name: "next", Type: "tree?"},
		}},
	}
	if diff := cmp.Diff(want, def.Structs); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSynthesizeVariant(t *testing.T) {
	def, _, err := abi.Synthesize(reflect.TypeOf(holder{}))
	require.NoError(t, err)

	wantVariants := []abi.VariantDef{
		{Name: "choice", Types: []string{"uint8", "string", "permission_level"}},
	}
	if diff := cmp.Diff(wantVariants, def.Variants); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	h, ok := def.Struct("holder")
	require.True(t, ok)
	assert.Equal(t, []abi.FieldDef{{Name: "pick", Type: "choice"}, {Name: "picks", Type: "choice[]"}}, h.Fields)

	// choice is emitted once even though it's referenced twice.
	assert.Len(t, def.Variants, 1)
	assert.Len(t, def.Structs, 2)
}

type unnamed struct {
	A uint8
}

type empty struct{}

func (empty) ABIName() string { return "empty" }

type twoBases struct {
	permissionLevel
	header
}

func (twoBases) ABIName() string { return "two_bases" }

type hasChan struct {
	C chan int
}

func (hasChan) ABIName() string { return "has_chan" }

type blankName struct {
	A uint8
}

func (blankName) ABIName() string { return "" }

func TestSynthesizeErrors(t *testing.T) {
	testCases := []struct {
		desc string
		t    reflect.Type
		want error
	}{
		{desc: "unnamed struct", t: reflect.TypeOf(unnamed{}), want: abi.ErrMissingName},
		{desc: "blank name", t: reflect.TypeOf(blankName{}), want: abi.ErrMissingName},
		{desc: "no fields", t: reflect.TypeOf(empty{}), want: abi.ErrNoFields},
		{desc: "two bases", t: reflect.TypeOf(twoBases{}), want: abi.ErrMultipleBases},
		{desc: "channel", t: reflect.TypeOf(hasChan{}), want: abi.ErrUnsupportedType},
		{desc: "map", t: reflect.TypeOf(map[string]int{}), want: abi.ErrUnsupportedType},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, _, err := abi.Synthesize(tC.t)
			assert.True(t, errors.Is(err, tC.want), "got %v", err)
		})
	}
}

func TestSnakeCaseNames(t *testing.T) {
	type ids struct {
		ID         uint8
		RefBlockID uint8
		HTTPCode   uint8
	}
	desc, err := abi.DescribeStruct(reflect.TypeOf(ids{}))
	require.NoError(t, err)

	names := make([]string, len(desc.Fields))
	for i, f := range desc.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"id", "ref_block_id", "http_code"}, names)
}
