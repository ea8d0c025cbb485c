package abi_test

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wire-Network/sdk-core-sub000/abi"
)

const tokenABI = `{
	"version": "eosio::abi/1.1",
	"types": [{"new_type_name": "account_name", "type": "name"}],
	"structs": [
		{"name": "transfer", "base": "", "fields": [
			{"name": "from", "type": "account_name"},
			{"name": "to", "type": "account_name"},
			{"name": "quantity", "type": "asset"},
			{"name": "memo", "type": "string"}
		]},
		{"name": "account", "base": "", "fields": [{"name": "balance", "type": "asset"}]}
	],
	"actions": [{"name": "transfer", "type": "transfer", "ricardian_contract": ""}],
	"tables": [{"name": "accounts", "index_type": "i64", "key_names": [], "key_types": [], "type": "account"}],
	"ricardian_clauses": [],
	"error_messages": [{"error_code": "18446744073709551615", "error_msg": "big"}, {"error_code": 7, "error_msg": "small"}],
	"abi_extensions": []
}`

func TestFromJSON(t *testing.T) {
	def, err := abi.FromJSON([]byte(tokenABI))
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	s, ok := def.Struct("transfer")
	require.True(t, ok)
	assert.Len(t, s.Fields, 4)

	alias, ok := def.Alias("account_name")
	require.True(t, ok)
	assert.Equal(t, "name", alias.Type)

	typ, ok := def.ActionType("transfer")
	require.True(t, ok)
	assert.Equal(t, "transfer", typ)

	typ, ok = def.TableType("accounts")
	require.True(t, ok)
	assert.Equal(t, "account", typ)

	_, ok = def.ActionType("issue")
	assert.False(t, ok)
	_, ok = def.Variant("transfer")
	assert.False(t, ok)

	assert.Equal(t, abi.Uint64(18446744073709551615), def.ErrorMessages[0].ErrorCode)
	assert.Equal(t, abi.Uint64(7), def.ErrorMessages[1].ErrorCode)
	assert.Nil(t, def.Variants)
}

func TestMarshalNormalizes(t *testing.T) {
	def := abi.Def{
		Version: abi.DefaultVersion,
		Structs: []abi.StructDef{{Name: "empty_fields"}},
	}

	data, err := json.Marshal(def)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"types", "structs", "actions", "tables", "ricardian_clauses", "error_messages", "abi_extensions", "variants", "action_results"} {
		assert.NotNil(t, raw[key], key)
	}
	assert.Equal(t, []interface{}{}, raw["structs"].([]interface{})[0].(map[string]interface{})["fields"])

	// The original is untouched.
	assert.Nil(t, def.Structs[0].Fields)
	assert.Nil(t, def.Types)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		desc string
		def  abi.Def
		want error
	}{
		{
			desc: "ok",
			def: abi.Def{
				Structs: []abi.StructDef{{Name: "a"}, {Name: "b", Base: "a"}},
			},
		},
		{
			desc: "duplicate struct",
			def: abi.Def{
				Structs: []abi.StructDef{{Name: "a"}, {Name: "a"}},
			},
			want: abi.ErrDuplicateName,
		},
		{
			desc: "struct and variant",
			def: abi.Def{
				Structs:  []abi.StructDef{{Name: "a"}},
				Variants: []abi.VariantDef{{Name: "a", Types: []string{"uint8"}}},
			},
			want: abi.ErrDuplicateName,
		},
		{
			desc: "alias and struct",
			def: abi.Def{
				Types:   []abi.TypeDef{{NewTypeName: "a", Type: "uint8"}},
				Structs: []abi.StructDef{{Name: "a"}},
			},
			want: abi.ErrDuplicateName,
		},
		{
			desc: "base is not a struct",
			def: abi.Def{
				Structs: []abi.StructDef{{Name: "a", Base: "uint8"}},
			},
			want: abi.ErrInvalidBase,
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			err := tC.def.Validate()
			if tC.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tC.want), "got %v", err)
		})
	}
}
