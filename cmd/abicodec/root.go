package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	serializer "github.com/Wire-Network/sdk-core-sub000"
	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/abicache"
)

type globalFlags struct {
	configPath string
	verbose    bool
	abiPath    string
	contract   string
	typeName   string
	strict     bool
}

// app is the state shared by every command once flags are parsed.
type app struct {
	flags  globalFlags
	config *fileConfig
	logger *zap.Logger
	cache  *abicache.Cache
}

func newRootCmd() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:           "abicodec",
		Short:         "Convert contract data between JSON and binary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(a.encodeCmd(), a.decodeCmd(), a.abiCmd())
	return root
}

func (a *app) init() error {
	config, err := loadConfig(a.flags.configPath)
	if err != nil {
		return err
	}
	a.config = config

	a.logger, err = newLogger(config.LogLevel, a.flags.verbose)
	if err != nil {
		return err
	}

	if config.ABIDir != "" {
		a.cache, err = abicache.New(config.CacheSize, abicache.DirFetcher{Dir: config.ABIDir}, a.logger)
		if err != nil {
			return err
		}
	}
	return nil
}

// addSchemaFlags adds the flags selecting an ABI and type.
func (a *app) addSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.flags.abiPath, "abi", "", "ABI file, JSON or YAML")
	cmd.Flags().StringVar(&a.flags.contract, "contract", "", "contract whose ABI is in the configured abi_dir")
	cmd.Flags().StringVarP(&a.flags.typeName, "type", "t", "", "type to convert")
	cmd.Flags().BoolVar(&a.flags.strict, "strict", false, "fill absent binary extensions with defaults")
	_ = cmd.MarkFlagRequired("type")
}

func (a *app) loadABI(ctx context.Context) (*abi.Def, error) {
	switch {
	case a.flags.abiPath != "":
		data, err := os.ReadFile(a.flags.abiPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading abi")
		}
		def, err := abicache.Parse(data)
		if err != nil {
			return nil, err
		}
		return def, def.Validate()

	case a.flags.contract != "":
		if a.cache == nil {
			return nil, errors.New("--contract needs abi_dir in the config file")
		}
		return a.cache.Get(ctx, a.flags.contract)
	}
	return nil, errors.New("one of --abi or --contract is required")
}

func (a *app) serializerConfig() *serializer.Config {
	return &serializer.Config{
		StrictExtensions: a.flags.strict || a.config.StrictExtensions,
		Logger:           a.logger,
	}
}
