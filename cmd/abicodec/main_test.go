package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transferABI = `{
	"version": "eosio::abi/1.1",
	"structs": [{"name": "transfer", "base": "", "fields": [
		{"name": "amount", "type": "uint64"},
		{"name": "memo", "type": "string"}
	]}]
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	abiPath := writeFile(t, dir, "transfer.abi", transferABI)

	out, err := run(t, "", "encode", "--abi", abiPath, "--type", "transfer", `{"amount": 5, "memo": "hi"}`)
	require.NoError(t, err)
	assert.Equal(t, "0500000000000000026869\n", out)

	out, err = run(t, "0500000000000000026869", "decode", "--abi", abiPath, "--type", "transfer")
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": "5", "memo": "hi"}`, out)

	out, err = run(t, "", "decode", "--abi", abiPath, "--type", "transfer", "--dump", "0500000000000000026869")
	require.NoError(t, err)
	assert.Contains(t, out, "memo")
}

func TestContractFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "token.abi", transferABI)
	config := writeFile(t, dir, "abicodec.yaml", "abi_dir: "+dir+"\ncache_size: 4\nlog_level: error\n")

	out, err := run(t, "", "--config", config, "encode", "--contract", "token", "--type", "transfer", `{"amount": "5", "memo": "hi"}`)
	require.NoError(t, err)
	assert.Equal(t, "0500000000000000026869\n", out)

	_, err = run(t, "", "encode", "--contract", "token", "--type", "transfer", `{}`)
	assert.Error(t, err)
}

func TestABIPackUnpack(t *testing.T) {
	dir := t.TempDir()
	abiPath := writeFile(t, dir, "transfer.abi", transferABI)

	packed, err := run(t, "", "abi", "pack", abiPath)
	require.NoError(t, err)

	out, err := run(t, "", "abi", "unpack", strings.TrimSpace(packed))
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "transfer"`)
	assert.Contains(t, out, `"type": "uint64"`)
}

func TestLoadConfig(t *testing.T) {
	config, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)

	path := writeFile(t, t.TempDir(), "c.yaml", "strict_extensions: true\n")
	config, err = loadConfig(path)
	require.NoError(t, err)
	assert.True(t, config.StrictExtensions)
	assert.Equal(t, "warn", config.LogLevel)

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}
