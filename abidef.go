package serializer

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
)

// ABIDefType is the name of the root type in ABIDef.
const ABIDefType = "abi_def"

func fieldDefs(pairs ...string) []abi.FieldDef {
	out := make([]abi.FieldDef, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, abi.FieldDef{Name: pairs[i], Type: pairs[i+1]})
	}
	return out
}

// ABIDef is the ABI describing the binary form of ABIs themselves, as stored on chain.
var ABIDef = &abi.Def{
	Version: abi.DefaultVersion,
	Structs: []abi.StructDef{
		{Name: "extensions_entry", Fields: fieldDefs("tag", "uint16", "value", "bytes")},
		{Name: "type_def", Fields: fieldDefs("new_type_name", "string", "type", "string")},
		{Name: "field_def", Fields: fieldDefs("name", "string", "type", "string")},
		{Name: "struct_def", Fields: fieldDefs("name", "string", "base", "string", "fields", "field_def[]")},
		{Name: "action_def", Fields: fieldDefs("name", "name", "type", "string", "ricardian_contract", "string")},
		{Name: "table_def", Fields: fieldDefs(
			"name", "name",
			"index_type", "string",
			"key_names", "string[]",
			"key_types", "string[]",
			"type", "string",
		)},
		{Name: "clause_pair", Fields: fieldDefs("id", "string", "body", "string")},
		{Name: "error_message", Fields: fieldDefs("error_code", "uint64", "error_msg", "string")},
		{Name: "variant_def", Fields: fieldDefs("name", "string", "types", "string[]")},
		{Name: "action_result_def", Fields: fieldDefs("name", "name", "result_type", "string")},
		{Name: ABIDefType, Fields: fieldDefs(
			"version", "string",
			"types", "type_def[]",
			"structs", "struct_def[]",
			"actions", "action_def[]",
			"tables", "table_def[]",
			"ricardian_clauses", "clause_pair[]",
			"error_messages", "error_message[]",
			"abi_extensions", "extensions_entry[]",
			"variants", "variant_def[]$",
			"action_results", "action_result_def[]$",
		)},
	},
}

// EncodeABI encodes an ABI to its binary form.
func EncodeABI(def *abi.Def, config *Config) ([]byte, error) {
	data, err := json.Marshal(def)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling abi")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj interface{}
	if err := dec.Decode(&obj); err != nil {
		return nil, errors.Wrap(err, "unmarshalling abi")
	}

	return Encode(EncodeArgs{
		Value:  Raw{V: obj},
		ABI:    ABIDef,
		Type:   ABIDefType,
		Config: config,
	})
}

// DecodeABI decodes an ABI from its binary form.
func DecodeABI(data []byte, config *Config) (*abi.Def, error) {
	typed, err := Decode(DecodeArgs{
		Data:   data,
		ABI:    ABIDef,
		Type:   ABIDefType,
		Config: config,
	})
	if err != nil {
		return nil, err
	}

	obj, err := ToObject(ObjectArgs{
		Object: typed,
		ABI:    ABIDef,
		Type:   ABIDefType,
		Config: config,
	})
	if err != nil {
		return nil, err
	}

	buff, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling decoded abi")
	}
	return abi.FromJSON(buff)
}
