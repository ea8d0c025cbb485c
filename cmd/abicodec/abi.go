package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	serializer "github.com/Wire-Network/sdk-core-sub000"
	"github.com/Wire-Network/sdk-core-sub000/abicache"
	"github.com/Wire-Network/sdk-core-sub000/encio"
)

func (a *app) abiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abi",
		Short: "Convert ABIs between JSON and binary",
	}

	pack := &cobra.Command{
		Use:   "pack FILE",
		Short: "Encode an ABI file, printing hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading abi")
			}
			def, err := abicache.Parse(data)
			if err != nil {
				return err
			}
			if err := def.Validate(); err != nil {
				return err
			}

			packed, err := serializer.EncodeABI(def, a.serializerConfig())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), encio.HexEncode(packed))
			return err
		},
	}

	unpack := &cobra.Command{
		Use:   "unpack [HEX]",
		Short: "Decode a binary ABI, printing JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readArg(cmd, args)
			if err != nil {
				return err
			}
			data, err := encio.HexDecode(input)
			if err != nil {
				return errors.Wrap(err, "parsing hex")
			}

			def, err := serializer.DecodeABI(data, a.serializerConfig())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), def)
		},
	}

	cmd.AddCommand(pack, unpack)
	return cmd
}
