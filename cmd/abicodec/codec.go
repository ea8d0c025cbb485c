package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	serializer "github.com/Wire-Network/sdk-core-sub000"
	"github.com/Wire-Network/sdk-core-sub000/encio"
)

// readArg returns args[0], or stdin if there are no args.
func readArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *app) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [JSON]",
		Short: "Encode a JSON value, printing hex",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.loadABI(cmd.Context())
			if err != nil {
				return err
			}
			input, err := readArg(cmd, args)
			if err != nil {
				return err
			}

			dec := json.NewDecoder(strings.NewReader(input))
			dec.UseNumber()
			var value interface{}
			if err := dec.Decode(&value); err != nil {
				return errors.Wrap(err, "parsing value")
			}

			data, err := serializer.Encode(serializer.EncodeArgs{
				Value:  serializer.Raw{V: value},
				ABI:    def,
				Type:   a.flags.typeName,
				Config: a.serializerConfig(),
			})
			if err != nil {
				return err
			}

			a.logger.Debug("encoded", zap.String("type", a.flags.typeName), zap.Int("bytes", len(data)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), encio.HexEncode(data))
			return err
		},
	}
	a.addSchemaFlags(cmd)
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "decode [HEX]",
		Short: "Decode hex, printing JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.loadABI(cmd.Context())
			if err != nil {
				return err
			}
			input, err := readArg(cmd, args)
			if err != nil {
				return err
			}
			data, err := encio.HexDecode(input)
			if err != nil {
				return errors.Wrap(err, "parsing hex")
			}

			config := a.serializerConfig()
			typed, err := serializer.Decode(serializer.DecodeArgs{
				Data:   data,
				ABI:    def,
				Type:   a.flags.typeName,
				Config: config,
			})
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(cmd.OutOrStdout(), typed)
				return nil
			}

			obj, err := serializer.ToObject(serializer.ObjectArgs{
				Object: typed,
				ABI:    def,
				Type:   a.flags.typeName,
				Config: config,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), obj)
		},
	}
	a.addSchemaFlags(cmd)
	cmd.Flags().BoolVar(&dump, "dump", false, "print the typed value instead of JSON")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "writing json")
	}
	_, err := w.Write(buff.Bytes())
	return err
}
