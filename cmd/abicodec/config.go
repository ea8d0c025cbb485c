package main

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// fileConfig is the --config file.
type fileConfig struct {
	ABIDir           string `yaml:"abi_dir"`
	StrictExtensions bool   `yaml:"strict_extensions"`
	CacheSize        int    `yaml:"cache_size"`
	LogLevel         string `yaml:"log_level"`
}

func loadConfig(path string) (*fileConfig, error) {
	config := &fileConfig{LogLevel: "warn"}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "parsing %v", path)
	}
	return config, nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}
